package duckdb

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RetentionConfig holds configuration for the retention cleaner.
type RetentionConfig struct {
	MaxAge   time.Duration // cache entries older than this are purged
	Interval time.Duration // defaults to 1h
	Logger   zerolog.Logger
}

// RetentionCleaner periodically deletes expired response cache entries.
type RetentionCleaner struct {
	store    *Store
	maxAge   time.Duration
	interval time.Duration
	log      zerolog.Logger
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewRetentionCleaner creates a cleaner for expired cache entries.
// Returns nil when MaxAge is 0 (cache disabled).
func NewRetentionCleaner(store *Store, conf RetentionConfig) *RetentionCleaner {
	if conf.MaxAge <= 0 {
		return nil
	}
	interval := conf.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	rc := &RetentionCleaner{
		store:    store,
		maxAge:   conf.MaxAge,
		interval: interval,
		log:      conf.Logger,
		done:     make(chan struct{}),
	}

	// Startup cleanup to catch up after downtime.
	rc.cleanup()

	rc.wg.Add(1)
	go rc.tickLoop()

	return rc
}

func (rc *RetentionCleaner) tickLoop() {
	defer rc.wg.Done()
	ticker := time.NewTicker(rc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rc.cleanup()
		case <-rc.done:
			return
		}
	}
}

func (rc *RetentionCleaner) cleanup() {
	cutoff := time.Now().Add(-rc.maxAge)

	rows, err := rc.store.DeleteResponsesBefore(context.Background(), cutoff)
	if err != nil {
		rc.log.Error().Err(err).Msg("duckdb: retention cleanup failed")
		return
	}
	if rows > 0 {
		rc.log.Debug().Int64("rows", rows).Dur("max_age", rc.maxAge).Msg("duckdb: purged expired cache entries")
	}
}

// Stop signals the cleaner to stop and waits for it to finish.
func (rc *RetentionCleaner) Stop() {
	rc.stopOnce.Do(func() {
		close(rc.done)
		rc.wg.Wait()
	})
}
