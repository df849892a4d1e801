// Package events provides a small bubbling event tree for view components.
//
// Components (grid, pager, action buttons, form builder) each own a Target.
// A Target can be attached to a parent so that bubbling events travel from
// the component up to the page container that owns it. A Target marked as a
// boundary stops events that are not Composed, mirroring how a component's
// internal events stay private unless they are explicitly published.
package events

import "sync"

// Standard event names used across components.
const (
	PageChange      = "page-change"
	SelectionChange = "selection-change"
	CardSelect      = "card-select"
	Action          = "action"
	FormChange      = "form-change"
	FormSubmit      = "form-submit"
	LanguageChange  = "language-change"
	Error           = "error"
)

// Event is a named notification with an arbitrary payload.
type Event struct {
	Name     string
	Detail   any
	Bubbles  bool
	Composed bool

	// Target is the Target the event was first dispatched on.
	Target *Target
	// Current is the Target whose listeners are being invoked.
	Current *Target

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles an event.
type Listener func(*Event)

type entry struct {
	id int
	fn Listener
}

// Target is a node in the event tree.
type Target struct {
	mu        sync.RWMutex
	parent    *Target
	boundary  bool
	listeners map[string][]entry
	nextID    int
}

// NewTarget returns a detached Target.
func NewTarget() *Target {
	return &Target{listeners: make(map[string][]entry)}
}

// NewBoundary returns a Target that only lets composed events escape to its parent.
func NewBoundary() *Target {
	t := NewTarget()
	t.boundary = true
	return t
}

// AttachTo sets t's parent. Passing nil detaches it.
func (t *Target) AttachTo(parent *Target) {
	t.mu.Lock()
	t.parent = parent
	t.mu.Unlock()
}

// Parent returns the current parent, or nil.
func (t *Target) Parent() *Target {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.parent
}

// AddListener registers fn for events named name and returns a func that removes it.
func (t *Target) AddListener(name string, fn Listener) (remove func()) {
	t.mu.Lock()
	if t.listeners == nil {
		t.listeners = make(map[string][]entry)
	}
	t.nextID++
	id := t.nextID
	t.listeners[name] = append(t.listeners[name], entry{id: id, fn: fn})
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		list := t.listeners[name]
		for i, e := range list {
			if e.id == id {
				t.listeners[name] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to t's listeners and, when ev.Bubbles is set, to each
// ancestor in turn. A boundary Target does not pass non-composed events on.
func (t *Target) Dispatch(ev Event) {
	ev.Target = t
	for cur := t; cur != nil; {
		ev.Current = cur
		for _, fn := range cur.snapshot(ev.Name) {
			fn(&ev)
		}
		if !ev.Bubbles || ev.stopped {
			return
		}
		if cur.boundary && !ev.Composed {
			return
		}
		cur = cur.Parent()
	}
}

func (t *Target) snapshot(name string) []Listener {
	t.mu.RLock()
	defer t.mu.RUnlock()
	list := t.listeners[name]
	out := make([]Listener, len(list))
	for i, e := range list {
		out[i] = e.fn
	}
	return out
}
