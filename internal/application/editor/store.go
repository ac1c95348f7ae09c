package editor

import (
	"sync"

	model "noders-content-service/internal/domain/models"
)

// Store holds the last published State. Every change goes through Dispatch.
type Store struct {
	mu     sync.Mutex
	state  State
	nextID int
	subs   map[int]func(State)
}

func NewStore(postID string) *Store {
	return &Store{
		state: State{PostID: postID, Blocks: []model.Block{}},
		subs:  make(map[int]func(State)),
	}
}

// Dispatch reduces action against the current state, publishes the result
// and returns it. Subscribers run after the lock is released.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	published := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(published.clone())
	}
	return published
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn for every published state and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
