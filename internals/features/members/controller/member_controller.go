package controller

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/members/dto"
	"skb_backend/internals/features/members/service"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/middlewares/auth"
)

type MemberController struct {
	svc *service.Service
}

func NewMemberController(svc *service.Service) *MemberController {
	return &MemberController{svc: svc}
}

// GET /members?search=&belt=&is_active=&page=&per_page=
func (mc *MemberController) List(c *fiber.Ctx) error {
	q := dto.ListMemberQuery{
		Search:   c.Query("search"),
		Belt:     helper.QueryEnum(c, "belt"),
		IsActive: helper.QueryBool(c, "is_active"),
	}
	paging := helper.ResolvePaging(c, service.DefaultPerPage)
	items, pg, err := mc.svc.List(c.UserContext(), q, paging, auth.IsAdmin(c))
	if err != nil {
		return helper.JsonListError(c, err)
	}
	return helper.JsonList(c, "ok", items, pg)
}

// GET /members/:id
func (mc *MemberController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	resp, err := mc.svc.Get(c.UserContext(), id, auth.IsAdmin(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", resp)
}

// POST /api/public/members (self-registration) and /api/a/members
func (mc *MemberController) Create(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := mc.svc.Create(c.UserContext(), req, auth.IsAdmin(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "member registered successfully", resp)
}

// PATCH /api/a/members/:id
func (mc *MemberController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := mc.svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "member updated", resp)
}

// DELETE /api/a/members/:id
func (mc *MemberController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := mc.svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "member deleted", fiber.Map{"id": id})
}
