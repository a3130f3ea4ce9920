package route

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/pages/controller"
)

func PagePublicRoutes(public fiber.Router, pc *controller.PageController) {
	public.Get("/about", pc.About)
	public.Get("/home-slider", pc.Slider)
}

func PageAdminRoutes(admin fiber.Router, pc *controller.PageController) {
	admin.Get("/about", pc.About)
	admin.Put("/about", pc.UpdateAbout)
	admin.Post("/about", pc.UpdateAbout)
	admin.Get("/home-slider", pc.Slider)
	admin.Put("/home-slider", pc.UpdateSlider)
}
