package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"skb_backend/internals/constants"
	"skb_backend/internals/helpers/apperror"
)

// OnlyRoles lets the request through when the caller holds one of roles.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	if customMessage == "" {
		customMessage = "you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		role := CurrentRole(c)
		if role == constants.RoleAnonymous {
			return apperror.Unauthorized("missing role information")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		logrus.WithFields(logrus.Fields{"role": role, "path": c.Path()}).Debug("role rejected")
		return apperror.Forbidden(customMessage)
	}
}

func RequireAdmin(feature string) fiber.Handler {
	return OnlyRoles(constants.RoleErrorAdmin(feature), constants.AdminRoles...)
}

func RequireSuperAdmin(feature string) fiber.Handler {
	return OnlyRoles(constants.RoleErrorSuperAdmin(feature), constants.SuperAdminRoles...)
}
