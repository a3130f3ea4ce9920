package route

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/notices/controller"
	"skb_backend/internals/middlewares"
)

func NoticePublicRoutes(public fiber.Router, nc *controller.NoticeController) {
	g := public.Group("/notices")
	g.Get("/", nc.List)
	g.Get("/:id", nc.Get)
	g.Post("/:id/register", middlewares.RegisterRateLimiter(), nc.Register)
	g.Delete("/:id/register", middlewares.RegisterRateLimiter(), nc.Cancel)
}

func NoticeAdminRoutes(admin fiber.Router, nc *controller.NoticeController) {
	g := admin.Group("/notices")
	g.Get("/", nc.List)
	g.Get("/:id", nc.Get)
	g.Post("/", nc.Create)
	g.Patch("/:id", nc.Update)
	g.Put("/:id", nc.Update)
	g.Delete("/:id", nc.Delete)
	g.Get("/:id/registrations", nc.Registrations)
}
