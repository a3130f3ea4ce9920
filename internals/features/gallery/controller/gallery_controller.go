package controller

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/gallery/dto"
	"skb_backend/internals/features/gallery/service"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/helpers/media"
	"skb_backend/internals/middlewares/auth"
)

type GalleryController struct {
	svc *service.Service
}

func NewGalleryController(svc *service.Service) *GalleryController {
	return &GalleryController{svc: svc}
}

// GET /gallery?search=&category=&is_active=&page=&per_page=
func (gc *GalleryController) List(c *fiber.Ctx) error {
	q := dto.ListGalleryQuery{
		Search:   c.Query("search"),
		Category: helper.QueryEnum(c, "category"),
		IsActive: helper.QueryBool(c, "is_active"),
	}
	paging := helper.ResolvePaging(c, service.DefaultPerPage)
	items, pg, err := gc.svc.List(c.UserContext(), q, paging, auth.IsAdmin(c))
	if err != nil {
		return helper.JsonListError(c, err)
	}
	return helper.JsonList(c, "ok", items, pg)
}

func (gc *GalleryController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	img, err := gc.svc.Get(c.UserContext(), id, auth.IsAdmin(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", img)
}

// POST /api/a/gallery (JSON with image_url)
func (gc *GalleryController) Create(c *fiber.Ctx) error {
	var req dto.CreateGalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	img, err := gc.svc.Create(c.UserContext(), req, auth.CurrentUserID(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "gallery image created", img)
}

// POST /api/a/gallery/upload (multipart: image + fields)
func (gc *GalleryController) Upload(c *fiber.Ctx) error {
	var req dto.CreateGalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonAppError(c, apperror.Field("image", "is required"))
	}
	data, err := media.ReadUpload(fh, media.MaxImageBytes)
	if err != nil {
		return helper.JsonAppError(c, apperror.Field("image", err.Error()))
	}
	img, err := gc.svc.Upload(c.UserContext(), req, fh.Filename, data, auth.CurrentUserID(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "gallery image uploaded", img)
}

func (gc *GalleryController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateGalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	img, err := gc.svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "gallery image updated", img)
}

func (gc *GalleryController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := gc.svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "gallery image deleted", fiber.Map{"id": id})
}
