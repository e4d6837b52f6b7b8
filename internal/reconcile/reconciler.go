// Package reconcile implements the optimistic-update protocol a client runs
// against the realtime fan-out: render a provisional record immediately,
// issue the durable write, then reconcile with the server's authoritative
// echo or roll back on failure.
package reconcile

import (
	"sync"

	"github.com/google/uuid"
)

// State is the lifecycle of one user action. Confirmed and RolledBack are
// terminal; a new action always starts a fresh instance keyed by its
// temporary id.
type State int

const (
	StateIdle State = iota
	StatePending
	StateConfirmed
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "optimistic-pending"
	case StateConfirmed:
		return "confirmed"
	case StateRolledBack:
		return "rolled-back"
	default:
		return "idle"
	}
}

// Sink receives the view mutations the reconciler decides on. The UI binds
// its rendering here.
type Sink interface {
	// Render shows a provisional record under its temporary id.
	Render(tempID string, record interface{})
	// Replace swaps a provisional record for the authoritative one.
	Replace(tempID, realID string, record interface{})
	// Remove rolls a provisional record back.
	Remove(tempID string)
	// Insert shows an authoritative record that has no local provisional
	// counterpart (an event from another client).
	Insert(realID string, record interface{})
}

// Matcher reports whether an incoming echo is the authoritative form of a
// locally pending record, so self-originated echoes are recognized instead of
// rendered twice.
type Matcher func(pending, echo interface{}) bool

type entry struct {
	state  State
	record interface{}
}

// Reconciler tracks every in-flight optimistic action. Safe for concurrent
// use: the write callback and the echo stream race by design.
type Reconciler struct {
	mu        sync.Mutex
	entries   map[string]*entry  // temp id -> action
	confirmed map[string]string  // real id -> temp id, for echo dedupe
	matches   Matcher
	sink      Sink
}

// New creates a reconciler delivering view mutations to sink. The matcher may
// be nil, in which case echoes never match pending records.
func New(sink Sink, matches Matcher) *Reconciler {
	return &Reconciler{
		entries:   make(map[string]*entry),
		confirmed: make(map[string]string),
		matches:   matches,
		sink:      sink,
	}
}

// Begin starts a new action: the provisional record is rendered immediately
// under a generated temporary id and the action enters optimistic-pending.
func (r *Reconciler) Begin(record interface{}) string {
	tempID := uuid.NewString()

	r.mu.Lock()
	r.entries[tempID] = &entry{state: StatePending, record: record}
	r.mu.Unlock()

	r.sink.Render(tempID, record)
	return tempID
}

// Confirm resolves a pending action with the authoritative record returned by
// the write. If the broadcaster's echo already resolved it, Confirm is a
// no-op: the view was reconciled when the echo arrived.
func (r *Reconciler) Confirm(tempID, realID string, record interface{}) {
	r.mu.Lock()
	e, ok := r.entries[tempID]
	if !ok || e.state != StatePending {
		r.mu.Unlock()
		return
	}
	e.state = StateConfirmed
	e.record = record
	r.confirmed[realID] = tempID
	r.mu.Unlock()

	r.sink.Replace(tempID, realID, record)
}

// Fail rolls a pending action back: the provisional record is removed and the
// action reaches its terminal rolled-back state.
func (r *Reconciler) Fail(tempID string) {
	r.mu.Lock()
	e, ok := r.entries[tempID]
	if !ok || e.state != StatePending {
		r.mu.Unlock()
		return
	}
	e.state = StateRolledBack
	e.record = nil
	r.mu.Unlock()

	r.sink.Remove(tempID)
}

// HandleEcho processes a record arriving through the fan-out broadcaster.
// Echoes of already-confirmed actions are suppressed; an echo matching a
// pending action confirms it (the echo beat the write callback); everything
// else is a foreign event and is inserted.
func (r *Reconciler) HandleEcho(realID string, record interface{}) {
	r.mu.Lock()
	if _, done := r.confirmed[realID]; done {
		r.mu.Unlock()
		return
	}

	for tempID, e := range r.entries {
		if e.state != StatePending {
			continue
		}
		if r.matches != nil && r.matches(e.record, record) {
			e.state = StateConfirmed
			e.record = record
			r.confirmed[realID] = tempID
			r.mu.Unlock()
			r.sink.Replace(tempID, realID, record)
			return
		}
	}
	r.mu.Unlock()

	r.sink.Insert(realID, record)
}

// StateOf reports the current state of an action.
func (r *Reconciler) StateOf(tempID string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[tempID]; ok {
		return e.state
	}
	return StateIdle
}
