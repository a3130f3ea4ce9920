package controller

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/tournaments/dto"
	"skb_backend/internals/features/tournaments/service"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/middlewares/auth"
)

type TournamentController struct {
	svc *service.Service
}

func NewTournamentController(svc *service.Service) *TournamentController {
	return &TournamentController{svc: svc}
}

// GET /tournaments?search=&status=&organizer=&page=&per_page=
func (tc *TournamentController) List(c *fiber.Ctx) error {
	q := dto.ListTournamentQuery{
		Search:    c.Query("search"),
		Status:    helper.QueryEnum(c, "status"),
		Organizer: c.Query("organizer"),
	}
	paging := helper.ResolvePaging(c, service.DefaultPerPage)
	items, pg, err := tc.svc.List(c.UserContext(), q, paging, auth.IsAdmin(c))
	if err != nil {
		return helper.JsonListError(c, err)
	}
	return helper.JsonList(c, "ok", items, pg)
}

// GET /tournaments/:id
func (tc *TournamentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	resp, err := tc.svc.Get(c.UserContext(), id, auth.IsAdmin(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", resp)
}

// POST /api/a/tournaments
func (tc *TournamentController) Create(c *fiber.Ctx) error {
	var req dto.CreateTournamentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := tc.svc.Create(c.UserContext(), req, auth.CurrentUserID(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "tournament created", resp)
}

// PATCH /api/a/tournaments/:id
func (tc *TournamentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTournamentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := tc.svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "tournament updated", resp)
}

// DELETE /api/a/tournaments/:id
func (tc *TournamentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := tc.svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "tournament deleted", fiber.Map{"id": id})
}

// POST /api/public/tournaments/:id/register
// POST /api/a/tournaments/:id/participants (admin add, skips open/deadline)
func (tc *TournamentController) register(asAdmin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := helper.ParseUUIDParam(c, "id")
		if err != nil {
			return err
		}
		var req dto.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
		resp, err := tc.svc.Register(c.UserContext(), id, req, asAdmin)
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		return helper.JsonCreated(c, "registration successful", resp)
	}
}

func (tc *TournamentController) Register() fiber.Handler      { return tc.register(false) }
func (tc *TournamentController) AddParticipant() fiber.Handler { return tc.register(true) }

// POST /api/public/tournaments/:id/cancel
func (tc *TournamentController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := tc.svc.Cancel(c.UserContext(), id, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "registration cancelled", resp)
}
