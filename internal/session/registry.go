// Package session tracks one quiz.Store per authoring session. Sessions are
// process-scoped: created on demand, discarded on end or shutdown, never
// persisted.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/quiz"
)

type Registry struct {
	mu       sync.RWMutex
	stores   map[string]*quiz.Store
	newStore func() *quiz.Store
}

func NewRegistry(newStore func() *quiz.Store) *Registry {
	return &Registry{
		stores:   map[string]*quiz.Store{},
		newStore: newStore,
	}
}

// Create builds a fresh store, initializes its quiz, and registers it under a
// new session id. The returned channel reports the channel-catalog bootstrap
// outcome.
func (r *Registry) Create(ctx context.Context) (string, *quiz.Store, <-chan error, error) {
	st := r.newStore()
	boot, err := st.InitializeQuiz(ctx)
	if err != nil {
		return "", nil, nil, err
	}
	id := uuid.NewString()
	r.mu.Lock()
	r.stores[id] = st
	r.mu.Unlock()
	return id, st, boot, nil
}

func (r *Registry) Get(id string) (*quiz.Store, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.stores[id]
	return st, ok
}

// End discards a session. Returns false when the id was unknown.
func (r *Registry) End(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[id]; !ok {
		return false
	}
	delete(r.stores, id)
	return true
}
