package fetch

import "context"

// PageLoader reads one page of remote data. Pages start at 1.
type PageLoader[T any] func(ctx context.Context, page, limit int) ([]T, error)

// Paginator loads a page of remote data and tracks loading, error, and
// has-next-page state.
type Paginator[T any] struct {
	inflight

	load     PageLoader[T]
	pageSize int
	failMsg  string

	page    int
	hasNext bool
	status  Status
	items   []T
	errMsg  string
	lastErr error
}

// NewPaginator creates a paginator at page 1. failMsg is the user-facing
// message shown when a page fails to load.
func NewPaginator[T any](pageSize int, load PageLoader[T], failMsg string) *Paginator[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator[T]{
		load:     load,
		pageSize: pageSize,
		failMsg:  failMsg,
		page:     1,
		hasNext:  true,
	}
}

func (p *Paginator[T]) Page() int          { return p.page }
func (p *Paginator[T]) PageSize() int      { return p.pageSize }
func (p *Paginator[T]) HasNext() bool      { return p.hasNext }
func (p *Paginator[T]) HasPrev() bool      { return p.page > 1 }
func (p *Paginator[T]) Status() Status     { return p.status }
func (p *Paginator[T]) Loading() bool      { return p.status == StatusLoading }
func (p *Paginator[T]) Items() []T         { return p.items }
func (p *Paginator[T]) ErrMessage() string { return p.errMsg }

// LastErr returns the underlying error of the most recent failed load.
func (p *Paginator[T]) LastErr() error { return p.lastErr }

// Mount starts a fetch of the current page.
func (p *Paginator[T]) Mount(ctx context.Context) Request {
	return p.begin(ctx)
}

// Next advances one page and starts a fetch. It is a no-op when there is
// no next page.
func (p *Paginator[T]) Next(ctx context.Context) (Request, bool) {
	if !p.hasNext {
		return Request{}, false
	}
	p.page++
	return p.begin(ctx), true
}

// Prev goes back one page and starts a fetch. It never goes below page 1
// and does not fetch when already there.
func (p *Paginator[T]) Prev(ctx context.Context) (Request, bool) {
	if p.page <= 1 {
		p.page = 1
		return Request{}, false
	}
	p.page--
	return p.begin(ctx), true
}

// Reset returns to page 1 with no data and cancels any request in flight.
func (p *Paginator[T]) Reset() {
	p.stop()
	p.page = 1
	p.hasNext = true
	p.status = StatusIdle
	p.items = nil
	p.errMsg = ""
	p.lastErr = nil
}

func (p *Paginator[T]) begin(ctx context.Context) Request {
	gen, rctx := p.start(ctx)
	p.status = StatusLoading
	p.errMsg = ""
	return Request{Gen: gen, Page: p.page, ctx: rctx}
}

// Load performs the remote read for req.
func (p *Paginator[T]) Load(req Request) Result[T] {
	items, err := p.load(req.Context(), req.Page, p.pageSize)
	return Result[T]{Gen: req.Gen, Page: req.Page, Items: items, Err: err}
}

// Apply records a result. It returns false when the result belongs to a
// superseded request and was dropped.
func (p *Paginator[T]) Apply(res Result[T]) bool {
	if !p.finish(res.Gen) {
		return false
	}
	if res.Err != nil {
		p.status = StatusError
		p.errMsg = p.failMsg
		p.lastErr = res.Err
		return true
	}
	p.items = res.Items
	// A short page ends the list until Reset, even when paging back.
	if len(res.Items) < p.pageSize {
		p.hasNext = false
	}
	p.status = StatusLoaded
	p.lastErr = nil
	return true
}
