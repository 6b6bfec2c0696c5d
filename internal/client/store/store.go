package store

import "sync"

// Store owns the root State. Dispatch calls are applied one at a time.
type Store struct {
	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int

	// notifyMu orders subscriber calls the same way dispatches are applied.
	notifyMu sync.Mutex
}

// New returns a Store starting from initial.
func New(initial State) *Store {
	return &Store{state: initial, subs: make(map[int]func(State))}
}

// State returns a snapshot. Callers must treat its slices as read-only.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and returns the resulting state. Subscribers run
// synchronously before Dispatch returns, in dispatch order. They may call
// State but must not call Dispatch or Subscribe.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers fn to be called after every dispatch. The returned
// function removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
