package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/auth"
	"github.com/trunorth/platform/internal/config"
)

func bearerToken(c *fiber.Ctx) (string, bool) {
	authz := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(authz[len("Bearer "):]), true
}

func storeClaims(c *fiber.Ctx, claims auth.Claims) {
	c.Locals(auth.LocalUserID, claims.Subject)
	c.Locals(auth.LocalUserName, claims.Name)
	c.Locals(auth.LocalUserRole, claims.Role)
}

// RequireAuth validates the bearer token and stores the caller identity in
// request locals. Missing or invalid tokens are rejected with 401.
func RequireAuth(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, ok := bearerToken(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		}
		claims, err := auth.Verify(tokenStr, []byte(cfg.JWTSecret))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid or expired token")
		}
		storeClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth stores the caller identity when a valid token is present and
// otherwise lets the request through anonymously. There is no fallback
// identity: downstream handlers see an empty user id for anonymous callers.
func OptionalAuth(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenStr, ok := bearerToken(c); ok {
			if claims, err := auth.Verify(tokenStr, []byte(cfg.JWTSecret)); err == nil {
				storeClaims(c, claims)
			}
		}
		return c.Next()
	}
}

// RequireRole rejects authenticated callers whose role is not in the allowed set.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals(auth.LocalUserID).(string)
		if uid == "" {
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		}
		role, _ := c.Locals(auth.LocalUserRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(http.StatusForbidden, "insufficient permissions")
	}
}
