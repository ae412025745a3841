package memory

import (
	"context"
	"sync"

	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"
)

type Store struct {
	mu     sync.RWMutex
	state  map[string]progression.ProgressionState
	events map[string][]ports.TransitionEvent
}

func NewStore() *Store {
	return &Store{
		state:  make(map[string]progression.ProgressionState),
		events: make(map[string][]ports.TransitionEvent),
	}
}

func (s *Store) SeedState(state progression.ProgressionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[state.Key()] = state
}

type txKeyType struct{}

var txKey = txKeyType{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey).(bool)
	return v
}

// read runs fn under the read lock unless the caller already holds the
// transaction lock.
func (s *Store) read(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

type snapshot struct {
	state  map[string]progression.ProgressionState
	events map[string][]ports.TransitionEvent
}

func (s *Store) snapshot() snapshot {
	out := snapshot{
		state:  make(map[string]progression.ProgressionState, len(s.state)),
		events: make(map[string][]ports.TransitionEvent, len(s.events)),
	}
	for k, v := range s.state {
		out.state[k] = v
	}
	for k, v := range s.events {
		out.events[k] = append([]ports.TransitionEvent(nil), v...)
	}
	return out
}

func (s *Store) restore(snap snapshot) {
	s.state = snap.state
	s.events = snap.events
}
