package assistant

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrSessionNotFound = errors.New("assistant: session not found")

// Repository stores chat sessions.
type Repository interface {
	Save(ctx context.Context, s *ChatSession) error
	SessionByID(ctx context.Context, id string) (*ChatSession, error)
	SessionsByUser(ctx context.Context, userID string) ([]*ChatSession, error)
	Delete(ctx context.Context, id string) error
}

// MemoryRepository is an in-memory Repository for development and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*ChatSession
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]*ChatSession)}
}

func (m *MemoryRepository) Save(_ context.Context, s *ChatSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	cp.Messages = append([]ChatMessage(nil), s.Messages...)
	m.sessions[cp.ID] = &cp
	return nil
}

func (m *MemoryRepository) SessionByID(_ context.Context, id string) (*ChatSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	cp.Messages = append([]ChatMessage(nil), s.Messages...)
	return &cp, nil
}

// SessionsByUser returns the user's sessions, most recently updated first.
func (m *MemoryRepository) SessionsByUser(_ context.Context, userID string) ([]*ChatSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ChatSession, 0)
	for _, s := range m.sessions {
		if s.UserID != userID {
			continue
		}
		cp := *s
		cp.Messages = append([]ChatMessage(nil), s.Messages...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *MemoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}
