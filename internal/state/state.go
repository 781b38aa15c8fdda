package state

import (
	"image"
	"sync"
)

type Phase int

const (
	IDLE Phase = iota
	LOADING
	RESULT
	ERROR
)

func (p Phase) String() string {
	switch p {
	case IDLE:
		return "idle"
	case LOADING:
		return "loading"
	case RESULT:
		return "result"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

// State is a tagged union: Result is only set in RESULT, Err only in ERROR.
// Prompt and Steps describe the request that produced LOADING/RESULT/ERROR.
type State struct {
	Phase Phase

	Prompt string
	Steps  int

	result *image.RGBA
	err    string

	// Generation identifies the request that owns the current phase.
	Generation uint64
	// Version increases on every transition.
	Version uint64
}

// Result returns the surface when the phase is RESULT.
func (s State) Result() (*image.RGBA, bool) {
	if s.Phase != RESULT {
		return nil, false
	}
	return s.result, true
}

// Error returns the message when the phase is ERROR.
func (s State) Error() (string, bool) {
	if s.Phase != ERROR {
		return "", false
	}
	return s.err, true
}

type Listener func(State)

type Store struct {
	mu         sync.RWMutex
	state      State
	generation uint64
	listeners  []Listener

	notifyMu  sync.Mutex
	delivered uint64 // highest Version handed to listeners
}

func NewStore() *Store {
	return &Store{state: State{Phase: IDLE}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

// Listen registers fn to be called with the new state after each transition.
// Listeners run on the goroutine that made the transition and must not
// trigger transitions themselves. Versions reach listeners in increasing
// order; a transition already overtaken by a newer one is not delivered.
func (store *Store) Listen(fn Listener) {
	store.mu.Lock()
	store.listeners = append(store.listeners, fn)
	store.mu.Unlock()
}

// Begin moves to LOADING for a new request and returns its generation.
// Any older generation still pending is superseded.
func (store *Store) Begin(prompt string, steps int) uint64 {
	store.mu.Lock()
	store.generation++
	gen := store.generation
	store.set(State{Phase: LOADING, Prompt: prompt, Steps: steps, Generation: gen})
	return gen
}

// Fail moves straight to ERROR for a new request, superseding anything
// pending.
func (store *Store) Fail(prompt string, steps int, message string) uint64 {
	store.mu.Lock()
	store.generation++
	gen := store.generation
	store.set(State{Phase: ERROR, Prompt: prompt, Steps: steps, err: message, Generation: gen})
	return gen
}

// Complete moves generation gen to RESULT. It reports false, and changes
// nothing, when gen is no longer current or not loading.
func (store *Store) Complete(gen uint64, result *image.RGBA) bool {
	store.mu.Lock()
	if !store.owns(gen) {
		store.mu.Unlock()
		return false
	}
	prev := store.state
	store.set(State{Phase: RESULT, Prompt: prev.Prompt, Steps: prev.Steps, result: result, Generation: gen})
	return true
}

// CompleteWithError moves generation gen to ERROR. Same ownership rules as
// Complete.
func (store *Store) CompleteWithError(gen uint64, message string) bool {
	store.mu.Lock()
	if !store.owns(gen) {
		store.mu.Unlock()
		return false
	}
	prev := store.state
	store.set(State{Phase: ERROR, Prompt: prev.Prompt, Steps: prev.Steps, err: message, Generation: gen})
	return true
}

// Reset returns to IDLE, clears any payload and supersedes pending work.
func (store *Store) Reset() {
	store.mu.Lock()
	store.generation++
	store.set(State{Phase: IDLE, Generation: store.generation})
}

func (store *Store) owns(gen uint64) bool {
	return store.generation == gen && store.state.Phase == LOADING
}

// set must be called with mu held; it releases mu before notifying.
func (store *Store) set(next State) {
	next.Version = store.state.Version + 1
	store.state = next
	listeners := append([]Listener(nil), store.listeners...)
	store.mu.Unlock()

	store.notifyMu.Lock()
	defer store.notifyMu.Unlock()
	if next.Version <= store.delivered {
		return
	}
	store.delivered = next.Version
	for _, fn := range listeners {
		fn(next)
	}
}
