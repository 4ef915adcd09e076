package listing

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/storelane/admin-panel/internal/core/domain"
)

// Phase is the coarse state of a list view instance.
type Phase int

const (
	// PhaseResolving: owner identity not yet known; no fetch is issued.
	PhaseResolving Phase = iota
	// PhaseLoading: identity known, fetch in flight.
	PhaseLoading
	// PhaseReady: data present.
	PhaseReady
	// PhaseError: fetch failed; retry-eligible.
	PhaseError
)

// Readiness distinguishes the empty states of a ready view.
type Readiness int

const (
	// ReadinessPopulated: at least one row.
	ReadinessPopulated Readiness = iota
	// ReadinessEmpty: zero rows without a search term.
	ReadinessEmpty
	// ReadinessNoResults: zero rows with a search term.
	ReadinessNoResults
)

// DefaultDebounce is the quiescence window before raw search input is
// promoted to the committed search term.
const DefaultDebounce = 500 * time.Millisecond

// ResolveFunc resolves the current user id. An empty id with a nil error
// means "no user".
type ResolveFunc func(ctx context.Context) (string, error)

// FetchFunc loads one page of products for the owner.
type FetchFunc func(ctx context.Context, ownerID string, q Query) ([]*domain.Product, int64, error)

// Snapshot is an immutable view of the controller state.
type Snapshot struct {
	Phase       Phase
	Query       Query
	SearchInput string
	Items       []*domain.Product
	Total       int64
	Err         error

	seq uint64
}

// Readiness classifies a ready snapshot by its result set. Zero results with a
// committed search term get distinct messaging from a genuinely empty
// collection.
func (s Snapshot) Readiness() Readiness {
	if len(s.Items) > 0 {
		return ReadinessPopulated
	}
	if s.Query.Search != "" {
		return ReadinessNoResults
	}
	return ReadinessEmpty
}

// Config wires a Controller to its collaborators.
type Config struct {
	Resolve  ResolveFunc
	Fetch    FetchFunc
	Debounce time.Duration // 0 = DefaultDebounce
	Initial  Query         // parsed from the URL on mount

	// OnNavigate receives the encoded query state whenever it changes, so the
	// host can write it back to the URL.
	OnNavigate func(url.Values)
	// OnUnauthenticated fires when identity resolution finds no user. No
	// fetch is ever issued in that case.
	OnUnauthenticated func()
	// OnChange receives a snapshot after every state transition.
	OnChange func(Snapshot)
}

// Controller is the product list state machine. It gates the first fetch on
// identity resolution, debounces search input, keeps the URL in sync with the
// committed query state, and discards in-flight results that have been
// superseded by a newer request.
type Controller struct {
	cfg Config

	mu          sync.Mutex
	ctx         context.Context
	phase       Phase
	query       Query
	searchInput string
	ownerID     string
	items       []*domain.Product
	total       int64
	err         error
	gen         uint64
	seq         uint64
	timer       *time.Timer
	stopped     bool

	emitMu   sync.Mutex
	lastEmit uint64
}

// NewController builds a controller in the Resolving phase. The search input
// box is initialized from the URL's search parameter.
func NewController(cfg Config) *Controller {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Controller{
		cfg:         cfg,
		phase:       PhaseResolving,
		query:       cfg.Initial,
		searchInput: cfg.Initial.Search,
	}
}

// Start resolves the current user and, once an identity is known, issues the
// first fetch keyed by (owner, page, limit, committed search). Resolution is
// asynchronous; the fetch is gated on its result, not merely sequenced after
// it.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	c.resolve(ctx)
}

// resolve runs identity resolution and transitions out of Resolving. It is
// invoked on Start and again from Retry when resolution itself failed.
func (c *Controller) resolve(ctx context.Context) {
	go func() {
		ownerID, err := c.cfg.Resolve(ctx)

		c.mu.Lock()
		if c.stopped {
			c.mu.Unlock()
			return
		}
		if err != nil {
			c.phase = PhaseError
			c.err = err
			snap := c.snapshotLocked()
			c.mu.Unlock()
			c.emit(snap)
			return
		}
		if ownerID == "" {
			c.mu.Unlock()
			if c.cfg.OnUnauthenticated != nil {
				c.cfg.OnUnauthenticated()
			}
			return
		}
		c.ownerID = ownerID
		snap := c.beginFetchLocked()
		c.mu.Unlock()
		c.emit(snap)
	}()
}

// SetSearchInput records a raw keystroke. The input value updates immediately
// but does not trigger a fetch; after the debounce window with no further
// keystrokes it is promoted to the committed search term.
func (c *Controller) SetSearchInput(input string) {
	c.mu.Lock()
	c.searchInput = input
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.cfg.Debounce, func() { c.commitSearch(input) })
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.emit(snap)
}

// commitSearch promotes a quiescent input value to the committed search term.
func (c *Controller) commitSearch(input string) {
	c.mu.Lock()
	if c.stopped || input != c.searchInput {
		// a newer keystroke rescheduled the timer
		c.mu.Unlock()
		return
	}
	next := c.query.WithSearch(input)
	if next == c.query {
		c.mu.Unlock()
		return
	}
	c.query = next
	c.navigateLocked()
	if c.ownerID == "" {
		// identity still resolving; the first fetch picks up the new state
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.emit(snap)
		return
	}
	snap := c.beginFetchLocked()
	c.mu.Unlock()
	c.emit(snap)
}

// SetPage navigates to another page. Page size and search are untouched.
func (c *Controller) SetPage(page int) {
	c.applyQuery(c.Snapshot().Query.WithPage(page))
}

// SetLimit changes the page size, which resets page to 1.
func (c *Controller) SetLimit(limit int) {
	c.applyQuery(c.Snapshot().Query.WithLimit(limit))
}

// Invalidate marks the current data stale and re-fetches, e.g. after a
// create, update or delete settles.
func (c *Controller) Invalidate() {
	c.mu.Lock()
	if c.stopped || c.ownerID == "" {
		c.mu.Unlock()
		return
	}
	snap := c.beginFetchLocked()
	c.mu.Unlock()
	c.emit(snap)
}

// Retry recovers from the Error phase. When the fetch failed it re-issues the
// fetch; when identity resolution itself failed the controller re-enters
// Resolving and resolution runs again.
func (c *Controller) Retry() {
	c.mu.Lock()
	if c.stopped || c.phase != PhaseError {
		c.mu.Unlock()
		return
	}
	c.err = nil
	if c.ownerID == "" {
		c.phase = PhaseResolving
		ctx := c.ctx
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.emit(snap)
		c.resolve(ctx)
		return
	}
	snap := c.beginFetchLocked()
	c.mu.Unlock()
	c.emit(snap)
}

// Stop detaches the controller when the view is navigated away from. Any
// in-flight fetch result is discarded rather than applied to a dead view.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) applyQuery(next Query) {
	c.mu.Lock()
	if c.stopped || next == c.query {
		c.mu.Unlock()
		return
	}
	c.query = next
	c.navigateLocked()
	if c.ownerID == "" {
		// identity still resolving; the first fetch picks up the new state
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.emit(snap)
		return
	}
	snap := c.beginFetchLocked()
	c.mu.Unlock()
	c.emit(snap)
}

// beginFetchLocked issues a fetch for the current query under a fresh
// generation. A response whose generation is no longer the latest is
// discarded, so a stale in-flight result never overwrites fresher state.
func (c *Controller) beginFetchLocked() Snapshot {
	c.gen++
	gen := c.gen
	ctx := c.ctx
	ownerID := c.ownerID
	query := c.query
	c.phase = PhaseLoading

	go func() {
		items, total, err := c.cfg.Fetch(ctx, ownerID, query)

		c.mu.Lock()
		if gen != c.gen {
			c.mu.Unlock()
			return
		}
		if err != nil {
			c.phase = PhaseError
			c.err = err
		} else {
			c.phase = PhaseReady
			c.err = nil
			c.items = items
			c.total = total
		}
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.emit(snap)
	}()

	return c.snapshotLocked()
}

func (c *Controller) navigateLocked() {
	if c.cfg.OnNavigate != nil {
		values := c.query.Values()
		go c.cfg.OnNavigate(values)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	c.seq++
	return Snapshot{
		Phase:       c.phase,
		Query:       c.query,
		SearchInput: c.searchInput,
		Items:       c.items,
		Total:       c.total,
		Err:         c.err,
		seq:         c.seq,
	}
}

// emit delivers a snapshot to the observer. Snapshots carry a sequence number
// assigned under the state mutex; a snapshot older than one already delivered
// is dropped, so an observer never sees transitions out of order even when the
// emitting goroutines interleave.
func (c *Controller) emit(snap Snapshot) {
	if c.cfg.OnChange == nil {
		return
	}
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	if snap.seq < c.lastEmit {
		return
	}
	c.lastEmit = snap.seq
	c.cfg.OnChange(snap)
}
