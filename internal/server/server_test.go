package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/config"
	"github.com/trunorth/platform/internal/logging"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{
		AppName:         "trunorth-test",
		AppEnv:          "test",
		Port:            "0",
		Currency:        "NGN",
		JWTSecret:       "test-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		IdempotencyTTL:  time.Minute,
		LoginRateLimit:  100,
	}
	srv, err := New(cfg, nil, nil, logging.Discard())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode %s %s response %q: %v", method, path, raw, err)
		}
	}
	return resp, decoded
}

func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": "supersecret",
		"name":     "Test User",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	tokens, ok := body["tokens"].(map[string]any)
	if !ok {
		t.Fatalf("register response missing tokens: %v", body)
	}
	token, _ := tokens["access_token"].(string)
	if token == "" {
		t.Fatal("register response missing access token")
	}
	return token
}

func TestErrorsUseJSONEnvelope(t *testing.T) {
	app := testServer(t).App()

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/wallet", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Fatalf("expected error envelope, got %v", body)
	}
}

func TestInvalidTokenRejected(t *testing.T) {
	app := testServer(t).App()

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/wallet", "not-a-real-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (%v)", resp.StatusCode, body)
	}
}

func TestMeReturnsAuthenticatedProfile(t *testing.T) {
	app := testServer(t).App()
	token := registerUser(t, app, "chidi@example.com")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/auth/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", resp.StatusCode, body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("response missing user: %v", body)
	}
	if email, _ := user["email"].(string); email != "chidi@example.com" {
		t.Fatalf("expected registered email, got %q", email)
	}
}

func TestWalletFlowOverHTTP(t *testing.T) {
	app := testServer(t).App()
	alice := registerUser(t, app, "alice@example.com")
	_, bobBody := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "bob@example.com",
		"password": "supersecret",
		"name":     "Bob",
	})
	bobUser := bobBody["user"].(map[string]any)
	bobID := bobUser["id"].(string)
	bobToken := bobBody["tokens"].(map[string]any)["access_token"].(string)

	// first access creates an empty wallet
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/wallet", alice, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get wallet: expected 200, got %d (%v)", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/wallet/deposit", alice, fiber.Map{
		"amount":        5000,
		"paymentMethod": "card",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deposit: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["newBalance"].(float64) != 5000 {
		t.Fatalf("expected balance 5000, got %v", body["newBalance"])
	}

	// recipient wallet must exist before a transfer
	if resp, _ := doJSON(t, app, fiber.MethodGet, "/api/wallet", bobToken, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("create bob wallet: %d", resp.StatusCode)
	}

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/wallet/transfer", alice, fiber.Map{
		"recipientId": bobID,
		"amount":      2000,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("transfer: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["newBalance"].(float64) != 3000 {
		t.Fatalf("expected balance 3000, got %v", body["newBalance"])
	}

	// overdraft comes back as a 400 with the error envelope
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/wallet/withdraw", alice, fiber.Map{
		"amount":      999_999,
		"bankAccount": "GTBank",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("withdraw: expected 400, got %d (%v)", resp.StatusCode, body)
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Fatalf("expected error envelope, got %v", body)
	}
}

func TestPublicEndpointsNeedNoToken(t *testing.T) {
	app := testServer(t).App()

	for _, path := range []string{
		"/api/shop/products",
		"/api/events/",
		"/api/donations/campaigns",
		"/api/emergency/hotlines",
		"/api/emergency/alerts",
		"/api/social/posts",
		"/api/ai/quick-answers",
	} {
		resp, body := doJSON(t, app, fiber.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d (%v)", path, resp.StatusCode, body)
		}
	}
}

func TestAnonymousChat(t *testing.T) {
	app := testServer(t).App()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/ai/chat", "", fiber.Map{"message": "hello"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["sessionId"].(string) == "" {
		t.Fatalf("expected session id, got %v", body)
	}
}

func TestRoleGateOnAdminRoutes(t *testing.T) {
	app := testServer(t).App()
	user := registerUser(t, app, "user@example.com")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/emergency/alerts", user, fiber.Map{
		"type":    "info",
		"title":   "t",
		"message": "m",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d (%v)", resp.StatusCode, body)
	}
}
