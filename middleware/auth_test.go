package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"qc-laptop/models"
	"qc-laptop/services"
	"qc-laptop/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(tokens TokenValidator) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthMiddleware(tokens), func(ctx *fiber.Ctx) error {
		actor, _ := ActorFrom(ctx)
		return ctx.SendString(string(actor.Role) + ":" + actor.Name)
	})
	app.Delete("/leader-only", AuthMiddleware(tokens), RequireRole(types.RoleLeader), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func tokenFor(t *testing.T, m *services.TokenManager, role types.Role) string {
	t.Helper()
	token, _, err := m.Generate(&models.User{ID: 42, Username: "budi", FullName: "Budi", Role: role})
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	tokens := services.NewTokenManager("secret", time.Hour)
	app := newTestApp(tokens)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", fiber.StatusUnauthorized},
		{"valid token", "Bearer " + tokenFor(t, tokens, types.RoleStaff), fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuthMiddlewareRejectsForeignSecret(t *testing.T) {
	app := newTestApp(services.NewTokenManager("secret", time.Hour))
	other := services.NewTokenManager("other-secret", time.Hour)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, other, types.RoleLeader))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	tokens := services.NewTokenManager("secret", time.Hour)
	app := newTestApp(tokens)

	for role, status := range map[types.Role]int{
		types.RoleLeader: fiber.StatusNoContent,
		types.RoleStaff:  fiber.StatusForbidden,
	} {
		req := httptest.NewRequest("DELETE", "/leader-only", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, role))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, role)
	}
}
