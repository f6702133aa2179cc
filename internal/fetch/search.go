package fetch

import (
	"context"
	"errors"
	"strings"
)

// ErrNoResults is recorded as the last error when a query returns nothing.
var ErrNoResults = errors.New("fetch: no results")

// QueryLoader reads remote data for a free-text query.
type QueryLoader[T any] func(ctx context.Context, query string) ([]T, error)

// Search loads remote data keyed by a text query. Fetches only happen on an
// explicit Submit; an empty result is an error, not an empty success.
type Search[T any] struct {
	inflight

	load     QueryLoader[T]
	failMsg  string
	emptyMsg string

	query   string
	status  Status
	items   []T
	errMsg  string
	lastErr error
}

// NewSearch creates an idle search. failMsg is shown when the read fails,
// emptyMsg when it returns no records.
func NewSearch[T any](load QueryLoader[T], failMsg, emptyMsg string) *Search[T] {
	return &Search[T]{
		load:     load,
		failMsg:  failMsg,
		emptyMsg: emptyMsg,
	}
}

func (s *Search[T]) Query() string      { return s.query }
func (s *Search[T]) Status() Status     { return s.status }
func (s *Search[T]) Loading() bool      { return s.status == StatusLoading }
func (s *Search[T]) Items() []T         { return s.items }
func (s *Search[T]) ErrMessage() string { return s.errMsg }
func (s *Search[T]) LastErr() error     { return s.lastErr }

// Submit starts a fetch for query. Blank queries are ignored.
func (s *Search[T]) Submit(ctx context.Context, query string) (Request, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, false
	}
	gen, rctx := s.start(ctx)
	s.query = query
	s.status = StatusLoading
	s.errMsg = ""
	return Request{Gen: gen, Query: query, ctx: rctx}, true
}

// Reset returns to idle with no data and cancels any request in flight.
func (s *Search[T]) Reset() {
	s.stop()
	s.query = ""
	s.status = StatusIdle
	s.items = nil
	s.errMsg = ""
	s.lastErr = nil
}

// Load performs the remote read for req.
func (s *Search[T]) Load(req Request) Result[T] {
	items, err := s.load(req.Context(), req.Query)
	return Result[T]{Gen: req.Gen, Query: req.Query, Items: items, Err: err}
}

// Apply records a result. It returns false when the result belongs to a
// superseded request and was dropped.
func (s *Search[T]) Apply(res Result[T]) bool {
	if !s.finish(res.Gen) {
		return false
	}
	switch {
	case res.Err != nil:
		s.status = StatusError
		s.errMsg = s.failMsg
		s.lastErr = res.Err
	case len(res.Items) == 0:
		s.status = StatusError
		s.errMsg = s.emptyMsg
		s.lastErr = ErrNoResults
	default:
		s.items = res.Items
		s.status = StatusLoaded
		s.lastErr = nil
	}
	return true
}
