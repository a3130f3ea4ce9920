package controller

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/payments/service"
	helper "skb_backend/internals/helpers"
)

type WebhookController struct {
	svc *service.WebhookService
}

func NewWebhookController(svc *service.WebhookService) *WebhookController {
	return &WebhookController{svc: svc}
}

// POST /api/payments/notification
func (ctl *WebhookController) Notification(c *fiber.Ctx) error {
	var n service.Notification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.svc.Handle(c.UserContext(), n); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "notification processed", nil)
}
