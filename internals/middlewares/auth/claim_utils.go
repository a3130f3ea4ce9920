package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"skb_backend/internals/constants"
	helper "skb_backend/internals/helpers"
)

const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
	LocUserName = "user_name"
)

func storeClaims(c *fiber.Ctx, claims *helper.Claims) {
	c.Locals(LocUserID, claims.ID)
	c.Locals(LocUserRole, claims.Role)
	c.Locals(LocUserName, claims.UserName)
}

// CurrentUserID returns uuid.Nil for anonymous callers.
func CurrentUserID(c *fiber.Ctx) uuid.UUID {
	s, _ := c.Locals(LocUserID).(string)
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// CurrentRole classifies the caller: anonymous, member, admin or super-admin.
func CurrentRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocUserRole).(string)
	switch role {
	case "":
		return constants.RoleAnonymous
	case constants.RoleAdmin, constants.RoleSuperAdmin:
		return role
	default:
		return constants.RoleMember
	}
}

func IsAdmin(c *fiber.Ctx) bool {
	return constants.IsAdminRole(CurrentRole(c))
}
