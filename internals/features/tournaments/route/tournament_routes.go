package route

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/tournaments/controller"
	"skb_backend/internals/middlewares"
)

func TournamentPublicRoutes(public fiber.Router, tc *controller.TournamentController) {
	g := public.Group("/tournaments")
	g.Get("/", tc.List)
	g.Get("/:id", tc.Get)
	g.Post("/:id/register", middlewares.RegisterRateLimiter(), tc.Register())
	g.Post("/:id/cancel", middlewares.RegisterRateLimiter(), tc.Cancel)
}

func TournamentAdminRoutes(admin fiber.Router, tc *controller.TournamentController, pc *controller.ParticipantController) {
	g := admin.Group("/tournaments")
	g.Get("/", tc.List)
	g.Get("/:id", tc.Get)
	g.Post("/", tc.Create)
	g.Patch("/:id", tc.Update)
	g.Put("/:id", tc.Update)
	g.Delete("/:id", tc.Delete)
	g.Get("/:id/participants", pc.List)
	g.Post("/:id/participants", tc.AddParticipant())

	p := admin.Group("/participants")
	p.Get("/:id", pc.Get)
	p.Patch("/:id", pc.Update)
	p.Post("/:id/cancel", pc.Cancel)
	p.Delete("/:id", pc.Delete)
}
