package searchbox

import (
	"context"
	"strings"
	"sync"
	"time"

	"memory-map-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// suggest call fires.
const DefaultDebounce = 300 * time.Millisecond

type State int

const (
	StateIdle State = iota
	StateTyping
	StateSuggesting
	StateResultsShown
	StateRetrieving
)

// Controller is the search box state machine. All exported methods are
// safe for concurrent use; Sink events are emitted outside the lock.
type Controller struct {
	suggester Suggester
	sink      Sink
	logger    logger.ILogger
	debouncer *Debouncer

	// newSession mints a fresh session token. Replaceable in tests.
	newSession func() string

	mu           sync.Mutex
	state        State
	query        string
	session      string
	candidates   []Candidate
	panelVisible bool

	// seq tags each fired suggest request; responses carrying a stale
	// sequence number are discarded so a slow reply never clobbers
	// fresher results.
	seq uint64
}

func NewController(suggester Suggester, sink Sink, log logger.ILogger) *Controller {
	return NewControllerWithDebounce(suggester, sink, log, DefaultDebounce)
}

func NewControllerWithDebounce(suggester Suggester, sink Sink, log logger.ILogger, debounce time.Duration) *Controller {
	return &Controller{
		suggester:  suggester,
		sink:       sink,
		logger:     log,
		debouncer:  NewDebouncer(debounce),
		newSession: func() string { return uuid.NewString() },
		state:      StateIdle,
		session:    uuid.NewString(),
	}
}

// Input records a keystroke. The displayed query updates synchronously;
// the suggest call is re-armed behind the debounce quiet period.
func (c *Controller) Input(ctx context.Context, text string) {
	c.mu.Lock()
	c.query = text

	if strings.TrimSpace(text) == "" {
		c.debouncer.Cancel()
		c.candidates = nil
		c.panelVisible = false
		c.state = StateIdle
		c.mu.Unlock()
		return
	}

	c.state = StateTyping
	c.mu.Unlock()

	c.debouncer.Trigger(func() {
		c.fireSuggest(ctx)
	})
}

// AcceptKey handles the accept gesture (Enter). With results visible it
// selects the top-ranked candidate; otherwise it bypasses the debounce
// timer and issues the suggest call right away.
func (c *Controller) AcceptKey(ctx context.Context) {
	c.mu.Lock()
	if c.panelVisible && len(c.candidates) > 0 {
		c.mu.Unlock()
		c.Select(ctx, 0)
		return
	}
	empty := strings.TrimSpace(c.query) == ""
	c.mu.Unlock()

	if empty {
		return
	}
	if !c.debouncer.FireNow() {
		c.fireSuggest(ctx)
	}
}

// Select resolves the candidate at index via retrieve. On success the
// query text is replaced with the resolved display name, the session
// token rotates, and the location events are emitted to the sink.
func (c *Controller) Select(ctx context.Context, index int) {
	c.mu.Lock()
	if !c.panelVisible || index < 0 || index >= len(c.candidates) {
		c.mu.Unlock()
		return
	}
	candidate := c.candidates[index]
	session := c.session
	c.state = StateRetrieving
	c.debouncer.Cancel()
	c.mu.Unlock()

	place, err := c.suggester.Retrieve(ctx, candidate.ID, session)

	c.mu.Lock()
	c.candidates = nil
	c.panelVisible = false
	c.state = StateIdle
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("searchbox", "retrieve failed", map[string]interface{}{
			"candidate_id": candidate.ID,
			"error":        err.Error(),
		})
		return
	}
	c.query = place.DisplayName
	// Rotation happens only here: the session grouped one suggest
	// sequence and exactly one completed retrieve.
	c.session = c.newSession()
	c.mu.Unlock()

	if c.sink != nil {
		c.sink.LocationSelected(place.Longitude, place.Latitude)
		c.sink.TemporaryMarkerPlaced(place.Longitude, place.Latitude)
	}
}

// ClickOutside hides the results panel without touching the query text
// or the session.
func (c *Controller) ClickOutside() {
	c.mu.Lock()
	c.panelVisible = false
	c.state = StateIdle
	c.mu.Unlock()
}

func (c *Controller) fireSuggest(ctx context.Context) {
	c.mu.Lock()
	query := strings.TrimSpace(c.query)
	if query == "" {
		c.candidates = nil
		c.panelVisible = false
		c.state = StateIdle
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	session := c.session
	c.state = StateSuggesting
	c.mu.Unlock()

	candidates, err := c.suggester.Suggest(ctx, query, session)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// A newer request fired while this one was in flight.
		return
	}
	if err != nil {
		c.logger.Warn("searchbox", "suggest failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		c.candidates = nil
		c.panelVisible = false
		c.state = StateIdle
		return
	}
	if len(candidates) == 0 {
		c.candidates = nil
		c.panelVisible = false
		c.state = StateIdle
		return
	}
	c.candidates = candidates
	c.panelVisible = true
	c.state = StateResultsShown
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Controller) SessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Controller) PanelVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panelVisible
}

func (c *Controller) Candidates() []Candidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Candidate, len(c.candidates))
	copy(out, c.candidates)
	return out
}
