package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"milaan/internal/config"
	"milaan/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestApp returns a server wired without Redis and without read latency.
// Middleware other than auth is skipped so tests exercise the handlers, not
// the rate limits.
func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	srv := NewServer(&config.Config{
		Port:           "0",
		Env:            "test",
		JWTSecret:      "test-secret",
		AllowedOrigins: "*",
		SessionTTLMin:  120,
	})
	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// login authenticates against the seeded demo identities.
func login(t *testing.T, app *fiber.App, email string) authResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": "anything",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	auth := decode[authResponse](t, resp)
	require.NotEmpty(t, auth.Token)
	require.NotNil(t, auth.User)
	return auth
}
