package session

import (
	"github.com/Paintersrp/astromark/internal/tui/editor"
	"github.com/Paintersrp/astromark/internal/tui/home"
	"github.com/Paintersrp/astromark/internal/tui/message"
)

// State is what a tab shows. The set of implementations is closed: a
// *LandingState or a *DocumentState.
type State interface {
	title() string
}

type LandingState struct {
	*home.Landing
}

type DocumentState struct {
	*editor.Document
}

func (s *LandingState) title() string  { return "Home" }
func (s *DocumentState) title() string { return s.Title() }

// CanBeSilentlyOverwritten reports whether opening something new may replace
// s in place. Only the landing view can be discarded without asking.
func CanBeSilentlyOverwritten(s State) bool {
	switch s.(type) {
	case *LandingState:
		return true
	case *DocumentState:
		return false
	}
	return false
}

// Registry maps tab ids to their state and tracks presentation order and the
// active tab. Once a tab has been added there is always an active tab.
type Registry struct {
	next   message.TabID
	active message.TabID
	tabs   map[message.TabID]State
	order  []message.TabID
}

func NewRegistry() *Registry {
	return &Registry{tabs: make(map[message.TabID]State)}
}

// Add mints an id for s, appends it to the tab bar and activates it.
func (r *Registry) Add(s State) message.TabID {
	r.next++
	id := r.next
	r.tabs[id] = s
	r.order = append(r.order, id)
	r.active = id
	return id
}

// Activate makes id the active tab. Unknown ids are ignored.
func (r *Registry) Activate(id message.TabID) bool {
	if _, ok := r.tabs[id]; !ok {
		return false
	}
	r.active = id
	return true
}

// Remove closes id. The last remaining tab is never removed. Closing the
// active tab activates the second tab when it was first, otherwise the first.
func (r *Registry) Remove(id message.TabID) bool {
	pos := r.Position(id)
	if pos < 0 || len(r.order) <= 1 {
		return false
	}

	if id == r.active {
		if pos == 0 {
			r.active = r.order[1]
		} else {
			r.active = r.order[0]
		}
	}

	delete(r.tabs, id)
	r.order = append(r.order[:pos:pos], r.order[pos+1:]...)
	return true
}

// Replace swaps the state of a live tab in place.
func (r *Registry) Replace(id message.TabID, s State) bool {
	if _, ok := r.tabs[id]; !ok {
		return false
	}
	r.tabs[id] = s
	return true
}

func (r *Registry) Get(id message.TabID) (State, bool) {
	s, ok := r.tabs[id]
	return s, ok
}

// Active returns the active tab, or false when the registry is empty.
func (r *Registry) Active() (message.TabID, State, bool) {
	s, ok := r.tabs[r.active]
	if !ok {
		return 0, nil, false
	}
	return r.active, s, true
}

func (r *Registry) ActiveID() message.TabID {
	return r.active
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Order returns the tab ids in presentation order.
func (r *Registry) Order() []message.TabID {
	return append([]message.TabID(nil), r.order...)
}

// Position is the index of id in presentation order, or -1.
func (r *Registry) Position(id message.TabID) int {
	for i, tab := range r.order {
		if tab == id {
			return i
		}
	}
	return -1
}

// Cycle activates the tab delta positions away from the active one, wrapping
// around at either end.
func (r *Registry) Cycle(delta int) message.TabID {
	n := len(r.order)
	if n == 0 {
		return 0
	}
	pos := r.Position(r.active)
	next := ((pos+delta)%n + n) % n
	r.active = r.order[next]
	return r.active
}

// Each calls fn for every tab in presentation order.
func (r *Registry) Each(fn func(message.TabID, State)) {
	for _, id := range r.order {
		fn(id, r.tabs[id])
	}
}
