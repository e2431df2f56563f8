package social

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/trunorth/platform/internal/middleware"
)

var author = middleware.Actor{ID: "user-1", Name: "Chidi"}

func TestCreatePostValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.CreatePost(ctx, author, "   "); !errors.Is(err, ErrInvalidPost) {
		t.Fatalf("expected ErrInvalidPost for blank content, got %v", err)
	}
	if _, err := svc.CreatePost(ctx, author, strings.Repeat("a", maxPostLength+1)); !errors.Is(err, ErrInvalidPost) {
		t.Fatalf("expected ErrInvalidPost for oversized content, got %v", err)
	}
}

func TestFeedNewestFirst(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.CreatePost(ctx, author, "first"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreatePost(ctx, author, "second"); err != nil {
		t.Fatalf("create: %v", err)
	}

	feed, err := svc.Feed(ctx)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(feed))
	}
	if feed[0].Content != "second" || feed[1].Content != "first" {
		t.Fatalf("expected newest first, got %q then %q", feed[0].Content, feed[1].Content)
	}
	if feed[0].AuthorName != "Chidi" {
		t.Fatalf("expected author name on post, got %q", feed[0].AuthorName)
	}
}

func TestLikeIncrementsCounter(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, author, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Like(ctx, p.ID); err != nil {
			t.Fatalf("like: %v", err)
		}
	}

	feed, _ := svc.Feed(ctx)
	if feed[0].Likes != 3 {
		t.Fatalf("expected 3 likes, got %d", feed[0].Likes)
	}

	if _, err := svc.Like(ctx, "missing"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
