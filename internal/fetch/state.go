// Package fetch holds the remote-read state machines used by the dashboard
// tabs. Each fetcher moves idle -> loading -> {loaded, error} and back to
// loading on every new request. Requests are tagged with a generation so a
// superseded response is never applied, and starting a request cancels the
// context of the one before it.
//
// Fetchers are not safe for concurrent use: Mount/Next/Prev/Submit/Apply
// belong to the owning event loop. Load only reads immutable configuration
// and may run on any goroutine.
package fetch

import "context"

// Status is the lifecycle of one remote read as observed by a view.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Request identifies one started fetch.
type Request struct {
	Gen   uint64
	Page  int    // paginated fetchers only
	Query string // search fetchers only

	ctx context.Context
}

// Context returns the request's cancellation context. It is cancelled when a
// newer request starts, when the result is applied, or on Reset.
func (r Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Result carries the outcome of Load back to Apply.
type Result[T any] struct {
	Gen   uint64
	Page  int
	Query string
	Items []T
	Err   error
}

// inflight tracks the current generation and its cancel func.
type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

func (f *inflight) start(parent context.Context) (uint64, context.Context) {
	if f.cancel != nil {
		f.cancel()
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	f.gen++
	f.cancel = cancel
	return f.gen, ctx
}

// finish reports whether gen is current and releases its context.
func (f *inflight) finish(gen uint64) bool {
	if gen != f.gen {
		return false
	}
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	return true
}

// stop cancels the outstanding request and invalidates its generation.
func (f *inflight) stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
}

// Generation returns the generation of the most recent request.
func (f *inflight) Generation() uint64 {
	return f.gen
}
