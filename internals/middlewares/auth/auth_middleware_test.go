package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/constants"
	helper "skb_backend/internals/helpers"
)

const secret = "test-secret"

func token(t *testing.T, id uuid.UUID, role string, ttl time.Duration) string {
	t.Helper()
	raw, _, err := helper.IssueToken(secret, id, role, "tester", ttl, time.Now())
	require.NoError(t, err)
	return raw
}

func newApp(opts AuthJWTOpts) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	whoami := func(c *fiber.Ctx) error {
		return c.SendString(CurrentRole(c) + ":" + CurrentUserID(c).String())
	}
	app.Get("/admin", AuthJWT(opts), RequireAdmin("the admin panel"), whoami)
	app.Get("/super", AuthJWT(opts), RequireSuperAdmin("admin management"), whoami)
	app.Get("/public", OptionalAuth(opts), whoami)
	return app
}

func call(t *testing.T, app *fiber.App, path, raw string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if raw != "" {
		req.Header.Set("Authorization", "Bearer "+raw)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuthJWTAndRoles(t *testing.T) {
	app := newApp(AuthJWTOpts{Secret: secret})
	adminID := uuid.New()

	status, _ := call(t, app, "/admin", "")
	assert.Equal(t, 401, status)

	status, _ = call(t, app, "/admin", "not-a-jwt")
	assert.Equal(t, 401, status)

	status, _ = call(t, app, "/admin", token(t, adminID, constants.RoleAdmin, -time.Minute))
	assert.Equal(t, 401, status, "expired")

	status, _ = call(t, app, "/admin", token(t, adminID, "member", time.Hour))
	assert.Equal(t, 403, status)

	status, body := call(t, app, "/admin", token(t, adminID, constants.RoleAdmin, time.Hour))
	assert.Equal(t, 200, status)
	assert.Equal(t, "admin:"+adminID.String(), body)

	status, _ = call(t, app, "/super", token(t, adminID, constants.RoleAdmin, time.Hour))
	assert.Equal(t, 403, status)

	status, _ = call(t, app, "/super", token(t, adminID, constants.RoleSuperAdmin, time.Hour))
	assert.Equal(t, 200, status)
}

func TestAuthJWT_RevokedAndDisabled(t *testing.T) {
	id := uuid.New()
	raw := token(t, id, constants.RoleAdmin, time.Hour)

	revoked := newApp(AuthJWTOpts{
		Secret:           secret,
		BlacklistChecker: func(ctx context.Context, tok string) (bool, error) { return tok == raw, nil },
	})
	status, body := call(t, revoked, "/admin", raw)
	assert.Equal(t, 401, status)
	assert.Contains(t, body, "token revoked")

	disabled := newApp(AuthJWTOpts{
		Secret:        secret,
		ActiveChecker: func(ctx context.Context, uid uuid.UUID) (bool, error) { return uid != id, nil },
	})
	status, body = call(t, disabled, "/admin", raw)
	assert.Equal(t, 401, status)
	assert.Contains(t, body, "account is disabled")
}

func TestOptionalAuth(t *testing.T) {
	app := newApp(AuthJWTOpts{Secret: secret})
	id := uuid.New()

	_, body := call(t, app, "/public", "")
	assert.Equal(t, "anonymous:"+uuid.Nil.String(), body)

	_, body = call(t, app, "/public", "garbage")
	assert.Equal(t, "anonymous:"+uuid.Nil.String(), body)

	_, body = call(t, app, "/public", token(t, id, constants.RoleSuperAdmin, time.Hour))
	assert.Equal(t, "super-admin:"+id.String(), body)

	_, body = call(t, app, "/public", token(t, id, "student", time.Hour))
	assert.Equal(t, "member:"+id.String(), body)
}
