package social

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trunorth/platform/internal/middleware"
)

const maxPostLength = 1000

var ErrInvalidPost = errors.New("social: invalid post")

// Service handles the community feed.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreatePost publishes a new feed entry for the actor.
func (s *Service) CreatePost(ctx context.Context, actor middleware.Actor, content string) (*Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidPost)
	}
	if len(content) > maxPostLength {
		return nil, fmt.Errorf("%w: content exceeds %d characters", ErrInvalidPost, maxPostLength)
	}

	p := &Post{
		ID:         uuid.NewString(),
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Feed returns all posts, newest first.
func (s *Service) Feed(ctx context.Context) ([]*Post, error) {
	return s.repo.List(ctx)
}

// Like increments a post's like counter.
func (s *Service) Like(ctx context.Context, id string) (*Post, error) {
	return s.repo.Like(ctx, id)
}
