package social

import (
	"context"
	"errors"
	"sync"
)

var ErrPostNotFound = errors.New("social: post not found")

// Repository stores feed posts.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	List(ctx context.Context) ([]*Post, error)
	Like(ctx context.Context, id string) (*Post, error)
}

// MemoryRepository is an in-memory Repository for development and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]*Post
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{posts: make(map[string]*Post)}
}

func (m *MemoryRepository) Create(_ context.Context, p *Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *p
	m.posts[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	return nil
}

// List returns every post, newest first.
func (m *MemoryRepository) List(_ context.Context) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Post, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		cp := *m.posts[m.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepository) Like(_ context.Context, id string) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	p.Likes++
	cp := *p
	return &cp, nil
}
