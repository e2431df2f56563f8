package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trunorth/platform/internal/config"
	"github.com/trunorth/platform/internal/identity"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:       "test-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	claims := newClaims("user-1", "a@example.com", "Alice", identity.RoleUser, time.Minute)

	token, err := Sign(claims, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := Verify(token, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Subject != "user-1" || got.Email != "a@example.com" || got.Role != identity.RoleUser {
		t.Fatalf("unexpected claims: %+v", got)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := Sign(newClaims("user-1", "", "", identity.RoleUser, time.Minute), []byte("secret-a"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Verify(token, []byte("secret-b")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	token, err := Sign(newClaims("user-1", "", "", identity.RoleUser, -time.Minute), []byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Verify(token, []byte("secret")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := Verify("not-a-token", []byte("secret")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssueAndRefresh(t *testing.T) {
	ctx := context.Background()
	repo := identity.NewMemoryRepository()
	ids := identity.NewService(repo)
	svc := NewService(testConfig(), repo)

	user, err := ids.Register(ctx, identity.Credentials{Email: "a@example.com", Password: "supersecret", Name: "Alice"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.ExpiresIn != int64(15*60) {
		t.Fatalf("expected expires_in 900, got %d", pair.ExpiresIn)
	}

	claims, err := Verify(pair.AccessToken, []byte("test-secret"))
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("expected subject %s, got %s", user.ID, claims.Subject)
	}

	rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.AccessToken == "" {
		t.Fatal("expected rotated access token")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	repo := identity.NewMemoryRepository()
	ids := identity.NewService(repo)
	svc := NewService(testConfig(), repo)

	user, err := ids.Register(ctx, identity.Credentials{Email: "a@example.com", Password: "supersecret", Name: "Alice"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Access tokens are signed with a different secret and must not refresh.
	if _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
