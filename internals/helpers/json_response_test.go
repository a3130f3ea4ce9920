package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/helpers/apperror"
)

func TestErrorHandlerMapsKinds(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	errs := map[string]error{
		"/validation": apperror.Validation(map[string][]string{"name": {"is required"}}),
		"/missing":    apperror.NotFound("member not found"),
		"/full":       apperror.TournamentFull("tournament is full"),
		"/deadline":   apperror.DeadlinePassed("registration deadline has passed"),
		"/forbidden":  apperror.Forbidden("nope"),
		"/fiber":      fiber.NewError(fiber.StatusBadRequest, "id is not a valid id"),
		"/boom":       errors.New("db exploded"),
	}
	for path, err := range errs {
		err := err
		app.Get(path, func(c *fiber.Ctx) error { return err })
	}

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/validation", 422, "VALIDATION_ERROR"},
		{"/missing", 404, "NOT_FOUND"},
		{"/full", 409, "TOURNAMENT_FULL"},
		{"/deadline", 409, "DEADLINE_PASSED"},
		{"/forbidden", 403, "FORBIDDEN"},
		{"/fiber", 400, "BAD_REQUEST"},
		{"/boom", 500, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		body, _ := io.ReadAll(resp.Body)
		var out ErrorResponse
		require.NoError(t, json.Unmarshal(body, &out))
		assert.False(t, out.Success)
		assert.Equal(t, tc.code, out.ErrorCode, tc.path)
		if tc.path == "/validation" {
			assert.Equal(t, []string{"is required"}, out.Errors["name"])
		}
		if tc.path == "/boom" {
			assert.Equal(t, "internal server error", out.Message)
		}
	}
}

func TestJsonListError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return JsonListError(c, errors.New("timeout")) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, []any{}, out["data"])
	assert.Equal(t, "failed to load list", out["message"])
}
