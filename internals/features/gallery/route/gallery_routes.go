package route

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/gallery/controller"
)

func GalleryPublicRoutes(public fiber.Router, gc *controller.GalleryController) {
	g := public.Group("/gallery")
	g.Get("/", gc.List)
	g.Get("/:id", gc.Get)
}

func GalleryAdminRoutes(admin fiber.Router, gc *controller.GalleryController) {
	g := admin.Group("/gallery")
	g.Get("/", gc.List)
	g.Get("/:id", gc.Get)
	g.Post("/", gc.Create)
	g.Post("/upload", gc.Upload)
	g.Patch("/:id", gc.Update)
	g.Put("/:id", gc.Update)
	g.Delete("/:id", gc.Delete)
}
