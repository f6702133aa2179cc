package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CachedResponse returns the body stored under key if it is younger than
// maxAge. A miss is reported with ok=false and a nil error.
func (s *Store) CachedResponse(ctx context.Context, key string, maxAge time.Duration) (body []byte, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var fetchedAt time.Time
	err = s.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM response_cache WHERE cache_key = ?`, key,
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("duckdb: select cached response: %w", err)
	}
	if time.Since(fetchedAt) > maxAge {
		return nil, false, nil
	}
	return body, true, nil
}

// StoreResponse saves body under key, replacing any previous entry.
func (s *Store) StoreResponse(ctx context.Context, key string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO response_cache (cache_key, body, fetched_at) VALUES (?, ?, ?)`,
		key, body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("duckdb: store cached response: %w", err)
	}
	return nil
}

// DeleteResponsesBefore removes cache entries fetched before cutoff and
// returns how many were deleted.
func (s *Store) DeleteResponsesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM response_cache WHERE fetched_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("duckdb: delete cached responses: %w", err)
	}
	return res.RowsAffected()
}
