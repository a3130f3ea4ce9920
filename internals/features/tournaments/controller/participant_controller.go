package controller

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/tournaments/dto"
	"skb_backend/internals/features/tournaments/service"
	helper "skb_backend/internals/helpers"
)

type ParticipantController struct {
	svc *service.Service
}

func NewParticipantController(svc *service.Service) *ParticipantController {
	return &ParticipantController{svc: svc}
}

// GET /api/a/tournaments/:id/participants?search=&status=&skill_level=
func (pc *ParticipantController) List(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	q := dto.ListParticipantQuery{
		Search:     c.Query("search"),
		Status:     helper.QueryEnum(c, "status"),
		SkillLevel: helper.QueryEnum(c, "skill_level"),
	}
	paging := helper.ResolvePaging(c, service.DefaultParticipantPerPage)
	items, pg, err := pc.svc.ListParticipants(c.UserContext(), id, q, paging)
	if err != nil {
		return helper.JsonListError(c, err)
	}
	return helper.JsonList(c, "ok", items, pg)
}

// GET /api/a/participants/:id
func (pc *ParticipantController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	resp, err := pc.svc.GetParticipant(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", resp)
}

// PATCH /api/a/participants/:id
func (pc *ParticipantController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateParticipantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := pc.svc.UpdateParticipant(c.UserContext(), id, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "participant updated", resp)
}

// POST /api/a/participants/:id/cancel
func (pc *ParticipantController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	resp, err := pc.svc.CancelParticipant(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "registration cancelled", resp)
}

// DELETE /api/a/participants/:id
func (pc *ParticipantController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := pc.svc.DeleteParticipant(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "participant deleted", fiber.Map{"id": id})
}
