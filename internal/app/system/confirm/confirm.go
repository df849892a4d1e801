// Package confirm coordinates the modal confirmation dialog.
//
// Each browser session owns one Coordinator with a single request slot.
// Show opens the dialog and returns a Pending that resolves when the user
// answers; Resolve answers it. Opening a new request while one is pending
// rejects the older one with ErrSuperseded, so no caller waits forever.
package confirm

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSuperseded is returned to a pending request replaced by a newer Show.
	ErrSuperseded = errors.New("confirmation superseded by a newer request")
	// ErrNoPending is returned by Resolve when no request is open.
	ErrNoPending = errors.New("no confirmation pending")
	// ErrStale is returned by Resolve when the id is not the open request.
	ErrStale = errors.New("confirmation id does not match the open request")
	// ErrClosed is returned to a pending request when its coordinator is discarded.
	ErrClosed = errors.New("confirmation coordinator closed")
)

// Kind selects between a two-button confirmation and a one-button alert.
type Kind string

const (
	KindConfirm Kind = "confirm"
	KindAlert   Kind = "alert"
)

// Default labels used when a Request leaves them empty.
const (
	DefaultTitle        = "Confirm Action"
	DefaultMessage      = "Are you sure you want to proceed?"
	DefaultConfirmLabel = "Confirm"
	DefaultCancelLabel  = "Cancel"
)

// Request describes one dialog.
type Request struct {
	ID           string
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	Kind         Kind

	// Action names the handler run when the dialog is answered.
	Action    string
	Payload   map[string]string
	ReturnURL string
}

func (r Request) withDefaults() Request {
	if r.Title == "" {
		r.Title = DefaultTitle
	}
	if r.Message == "" {
		r.Message = DefaultMessage
	}
	if r.ConfirmLabel == "" {
		r.ConfirmLabel = DefaultConfirmLabel
	}
	if r.CancelLabel == "" {
		r.CancelLabel = DefaultCancelLabel
	}
	if r.Kind == "" {
		r.Kind = KindConfirm
	}
	r.Payload = maps.Clone(r.Payload)
	return r
}

// IsAlert reports whether the dialog has only an acknowledge button.
func (r Request) IsAlert() bool { return r.Kind == KindAlert }

// State is the observable dialog state.
type State struct {
	Open    bool
	Request Request
}

// Pending is the outcome of one Show.
type Pending struct {
	ID string

	done     chan struct{}
	accepted bool
	err      error
}

// Wait blocks until the request is answered, superseded, or ctx ends.
func (p *Pending) Wait(ctx context.Context) (bool, error) {
	select {
	case <-p.done:
		return p.accepted, p.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Done is closed once the request is settled.
func (p *Pending) Done() <-chan struct{} { return p.done }

func (p *Pending) settle(accepted bool, err error) {
	p.accepted = accepted
	p.err = err
	close(p.done)
}

// Coordinator owns the single dialog slot of one session.
type Coordinator struct {
	mu       sync.Mutex
	pending  *Pending
	req      Request
	subs     map[int]func(State)
	nextSub  int
	lastUsed time.Time
	now      func() time.Time
}

// NewCoordinator returns a closed coordinator.
func NewCoordinator() *Coordinator {
	c := &Coordinator{subs: map[int]func(State){}, now: time.Now}
	c.lastUsed = c.now()
	return c
}

// Show opens the dialog for req. A request already open is rejected with
// ErrSuperseded.
func (c *Coordinator) Show(req Request) *Pending {
	req = req.withDefaults()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	p := &Pending{ID: req.ID, done: make(chan struct{})}

	c.mu.Lock()
	prev := c.pending
	c.pending = p
	c.req = req
	c.lastUsed = c.now()
	st := State{Open: true, Request: req}
	subs := c.snapshot()
	c.mu.Unlock()

	if prev != nil {
		prev.settle(false, ErrSuperseded)
	}
	notify(subs, st)
	return p
}

// Resolve answers the open request with id. Escape and click-outside are a
// Resolve with accepted=false. The answered Request is returned so the caller
// can run its Action.
func (c *Coordinator) Resolve(id string, accepted bool) (Request, error) {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return Request{}, ErrNoPending
	}
	if id != c.pending.ID {
		c.mu.Unlock()
		return Request{}, ErrStale
	}
	p, req := c.pending, c.req
	c.pending = nil
	c.req = Request{}
	c.lastUsed = c.now()
	subs := c.snapshot()
	c.mu.Unlock()

	p.settle(accepted, nil)
	notify(subs, State{})
	return req, nil
}

// State returns the current dialog state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return State{}
	}
	return State{Open: true, Request: c.req}
}

// Subscribe registers fn for state changes and returns its removal func.
func (c *Coordinator) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Close rejects any open request with ErrClosed.
func (c *Coordinator) Close() {
	c.mu.Lock()
	p := c.pending
	c.pending = nil
	c.req = Request{}
	c.mu.Unlock()
	if p != nil {
		p.settle(false, ErrClosed)
	}
}

// IdleSince reports when the coordinator was last shown or resolved.
func (c *Coordinator) IdleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed
}

func (c *Coordinator) touch() {
	c.mu.Lock()
	c.lastUsed = c.now()
	c.mu.Unlock()
}

func (c *Coordinator) snapshot() []func(State) {
	out := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}
