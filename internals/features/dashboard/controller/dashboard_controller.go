package controller

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/dashboard/service"
	helper "skb_backend/internals/helpers"
)

type DashboardController struct {
	svc *service.Service
}

func NewDashboardController(svc *service.Service) *DashboardController {
	return &DashboardController{svc: svc}
}

// GET /api/a/dashboard
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	stats, err := dc.svc.Stats(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", stats)
}
