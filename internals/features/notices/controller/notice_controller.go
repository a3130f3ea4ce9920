package controller

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/notices/dto"
	"skb_backend/internals/features/notices/service"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/helpers/media"
	"skb_backend/internals/middlewares/auth"
)

type NoticeController struct {
	svc *service.Service
}

func NewNoticeController(svc *service.Service) *NoticeController {
	return &NoticeController{svc: svc}
}

// GET /notices?search=&category=&priority=&is_active=&page=&per_page=
func (nc *NoticeController) List(c *fiber.Ctx) error {
	q := dto.ListNoticeQuery{
		Search:   c.Query("search"),
		Category: helper.QueryEnum(c, "category"),
		Priority: helper.QueryEnum(c, "priority"),
		IsActive: helper.QueryBool(c, "is_active"),
	}
	paging := helper.ResolvePaging(c, service.DefaultPerPage)
	items, pg, err := nc.svc.List(c.UserContext(), q, paging, auth.IsAdmin(c))
	if err != nil {
		return helper.JsonListError(c, err)
	}
	return helper.JsonList(c, "ok", items, pg)
}

// GET /notices/:id
func (nc *NoticeController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	resp, err := nc.svc.Get(c.UserContext(), id, auth.IsAdmin(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", resp)
}

// POST /api/a/notices (JSON, or multipart with up to 5 "attachments")
func (nc *NoticeController) Create(c *fiber.Ctx) error {
	var req dto.CreateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	uploads, err := readAttachments(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	resp, err := nc.svc.Create(c.UserContext(), req, uploads, auth.CurrentUserID(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "notice created", resp)
}

func readAttachments(c *fiber.Ctx) ([]service.Upload, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid multipart form")
	}
	files := form.File["attachments"]
	if len(files) > media.MaxAttachments {
		return nil, apperror.Field("attachments", fmt.Sprintf("at most %d files are allowed", media.MaxAttachments))
	}
	out := make([]service.Upload, 0, len(files))
	for _, fh := range files {
		data, err := media.ReadUpload(fh, media.MaxAttachmentBytes)
		if err != nil {
			return nil, apperror.Field("attachments", err.Error())
		}
		out = append(out, service.Upload{Filename: fh.Filename, Data: data})
	}
	return out, nil
}

// PATCH /api/a/notices/:id
func (nc *NoticeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := nc.svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "notice updated", resp)
}

// DELETE /api/a/notices/:id
func (nc *NoticeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := nc.svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "notice deleted", fiber.Map{"id": id})
}

// POST /api/public/notices/:id/register
func (nc *NoticeController) Register(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := nc.svc.Register(c.UserContext(), id, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "successfully registered for tournament", resp)
}

// DELETE /api/public/notices/:id/register  {skb_id} or ?skb_id=
func (nc *NoticeController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CancelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}
	if req.SkbID == "" {
		req.SkbID = c.Query("skb_id")
	}
	resp, err := nc.svc.Cancel(c.UserContext(), id, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "registration cancelled successfully", resp)
}

// GET /api/a/notices/:id/registrations?search=&status=
func (nc *NoticeController) Registrations(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	q := dto.ListRegistrationQuery{
		Search: c.Query("search"),
		Status: helper.QueryEnum(c, "status"),
	}
	paging := helper.ResolvePaging(c, service.DefaultRegistrationPerPage)
	items, pg, err := nc.svc.ListRegistrations(c.UserContext(), id, q, paging)
	if err != nil {
		return helper.JsonListError(c, err)
	}
	return helper.JsonList(c, "ok", items, pg)
}
