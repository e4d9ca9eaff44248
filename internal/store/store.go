package store

import (
	"sync"

	"github.com/rs/zerolog"
)

// Store is the single writer of AppState. Every change goes through
// Dispatch or Update, serialized by one mutex.
type Store struct {
	mu    sync.Mutex
	state AppState
	subs  []chan struct{}
	log   zerolog.Logger
}

type Option func(*Store)

func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

func New(initial AppState, opts ...Option) *Store {
	s := &Store{state: initial.Clone(), log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot the caller may keep or modify.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies actions in order and notifies subscribers once.
func (s *Store) Dispatch(actions ...Action) {
	s.Update(func(AppState) []Action { return actions })
}

// Update lets fn derive actions from the current state without another
// writer slipping in between the read and the dispatch.
func (s *Store) Update(fn func(AppState) []Action) {
	s.mu.Lock()
	actions := fn(s.state.Clone())
	for _, a := range actions {
		s.log.Debug().Str("action", a.Kind()).Msg("dispatch")
		s.state = Reduce(s.state, a)
	}
	subs := s.subs
	s.mu.Unlock()

	if len(actions) == 0 {
		return
	}
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe returns a channel that receives after each dispatch.
// Notifications coalesce: a slow reader sees one signal for many changes.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}
