package route

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/dashboard/controller"
)

func DashboardAdminRoutes(admin fiber.Router, dc *controller.DashboardController) {
	admin.Get("/dashboard", dc.Stats)
}
