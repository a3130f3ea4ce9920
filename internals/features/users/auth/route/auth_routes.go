package route

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/users/auth/controller"
	"skb_backend/internals/middlewares"
	"skb_backend/internals/middlewares/auth"
)

// AuthRoutes mounts /api/auth. requireAuth validates the admin token.
func AuthRoutes(app *fiber.App, ctl *controller.AuthController, requireAuth fiber.Handler) {
	g := app.Group("/api/auth")

	g.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	g.Post("/logout", requireAuth, ctl.Logout)
	g.Get("/me", requireAuth, auth.RequireAdmin("the admin panel"), ctl.Me)
	g.Post("/change-password", requireAuth, auth.RequireAdmin("the admin panel"), ctl.ChangePassword)
	g.Post("/admins", requireAuth, auth.RequireSuperAdmin("admin management"), ctl.CreateAdmin)
}
