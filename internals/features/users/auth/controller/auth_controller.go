package controller

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/users/auth/dto"
	"skb_backend/internals/features/users/auth/service"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/middlewares/auth"
)

type AuthController struct {
	svc *service.Service
}

func NewAuthController(svc *service.Service) *AuthController {
	return &AuthController{svc: svc}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := ac.svc.Login(c.UserContext(), req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "login successful", resp)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c, true)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing access token")
	}
	if err := ac.svc.Logout(c.UserContext(), raw); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "logged out", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	resp, err := ac.svc.Me(c.UserContext(), auth.CurrentUserID(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", resp)
}

// POST /api/auth/admins (super-admin)
func (ac *AuthController) CreateAdmin(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := ac.svc.CreateAdmin(c.UserContext(), req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "admin created", resp)
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ac.svc.ChangePassword(c.UserContext(), auth.CurrentUserID(c), req); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "password changed", nil)
}
