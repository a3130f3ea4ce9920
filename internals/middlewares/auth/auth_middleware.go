package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
)

// ActiveChecker reports whether the admin behind a token may still act.
type ActiveChecker func(ctx context.Context, id uuid.UUID) (bool, error)

// BlacklistChecker reports whether a raw token was revoked.
type BlacklistChecker func(ctx context.Context, raw string) (bool, error)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool
	BlacklistChecker    BlacklistChecker
	ActiveChecker       ActiveChecker
}

// AuthJWT requires a valid access token and stores its claims in Locals.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)

	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c, o.AllowCookieFallback)
		if raw == "" {
			return apperror.Unauthorized("missing access token")
		}
		if o.BlacklistChecker != nil {
			revoked, err := o.BlacklistChecker(c.UserContext(), raw)
			if err != nil {
				return apperror.Internal(err)
			}
			if revoked {
				return apperror.Unauthorized("token revoked")
			}
		}
		claims, err := helper.ParseToken(secret, raw)
		if err != nil {
			logrus.WithField("path", c.Path()).WithError(err).Debug("token rejected")
			return apperror.Unauthorized("invalid or expired token")
		}
		if o.ActiveChecker != nil {
			id, _ := uuid.Parse(claims.ID)
			active, err := o.ActiveChecker(c.UserContext(), id)
			if err != nil {
				return apperror.Internal(err)
			}
			if !active {
				return apperror.Unauthorized("account is disabled")
			}
		}
		storeClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth classifies the caller without rejecting anonymous requests.
// A bad token is treated as anonymous.
func OptionalAuth(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)

	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c, o.AllowCookieFallback)
		if raw == "" {
			return c.Next()
		}
		if claims, err := helper.ParseToken(secret, raw); err == nil {
			storeClaims(c, claims)
		}
		return c.Next()
	}
}
