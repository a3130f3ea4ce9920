package route

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/payments/controller"
)

func PaymentRoutes(app fiber.Router, ctl *controller.WebhookController) {
	g := app.Group("/api/payments")
	g.Post("/notification", ctl.Notification)
}
