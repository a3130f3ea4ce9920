package route

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/members/controller"
	"skb_backend/internals/middlewares"
)

func MemberPublicRoutes(public fiber.Router, mc *controller.MemberController) {
	g := public.Group("/members")
	g.Get("/", mc.List)
	g.Get("/:id", mc.Get)
	g.Post("/", middlewares.RegisterRateLimiter(), mc.Create)
}

func MemberAdminRoutes(admin fiber.Router, mc *controller.MemberController) {
	g := admin.Group("/members")
	g.Get("/", mc.List)
	g.Get("/:id", mc.Get)
	g.Post("/", mc.Create)
	g.Patch("/:id", mc.Update)
	g.Put("/:id", mc.Update)
	g.Delete("/:id", mc.Delete)
}
