package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(Identity(c))
	})
	return app
}

func TestJWTProtected(t *testing.T) {
	app := protectedApp()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: 401,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc123",
			wantStatus: 401,
		},
		{
			name:       "garbage token",
			header:     "Bearer not-a-token",
			wantStatus: 401,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, "other-secret", jwt.MapClaims{"email": "user@example.com"}),
			wantStatus: 401,
		},
		{
			name:       "expired token",
			header:     "Bearer " + signToken(t, testSecret, jwt.MapClaims{"email": "user@example.com", "exp": time.Now().Add(-time.Hour).Unix()}),
			wantStatus: 401,
		},
		{
			name:       "no identity claim",
			header:     "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "not-an-email"}),
			wantStatus: 401,
		},
		{
			name:       "valid token",
			header:     "Bearer " + signToken(t, testSecret, jwt.MapClaims{"email": "user@example.com"}),
			wantStatus: 200,
		},
		{
			name:       "identity from sub claim",
			header:     "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "sub@example.com"}),
			wantStatus: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestIdentityNormalized(t *testing.T) {
	app := protectedApp()

	token := signToken(t, testSecret, jwt.MapClaims{"email": "  User@Example.COM  "})
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", string(body))
}
