package controller

import (
	"github.com/gofiber/fiber/v2"

	"skb_backend/internals/features/pages/dto"
	"skb_backend/internals/features/pages/service"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/helpers/media"
	"skb_backend/internals/middlewares/auth"
)

type PageController struct {
	svc *service.Service
}

func NewPageController(svc *service.Service) *PageController {
	return &PageController{svc: svc}
}

// GET /about
func (pc *PageController) About(c *fiber.Ctx) error {
	page, err := pc.svc.About(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", page)
}

// PUT /api/a/about (multipart: title, description, remove_banner, banner_image)
func (pc *PageController) UpdateAbout(c *fiber.Ctx) error {
	var req dto.UpdateAboutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	var banner *service.Banner
	if fh, err := c.FormFile("banner_image"); err == nil {
		data, err := media.ReadUpload(fh, media.MaxImageBytes)
		if err != nil {
			return helper.JsonAppError(c, apperror.Field("banner_image", err.Error()))
		}
		banner = &service.Banner{Filename: fh.Filename, Data: data}
	}

	page, err := pc.svc.UpdateAbout(c.UserContext(), req, banner, auth.CurrentUserID(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "about page updated", page)
}

// GET /home-slider
func (pc *PageController) Slider(c *fiber.Ctx) error {
	slider, err := pc.svc.Slider(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", slider)
}

// PUT /api/a/home-slider
func (pc *PageController) UpdateSlider(c *fiber.Ctx) error {
	var req dto.UpdateSliderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	slider, err := pc.svc.UpdateSlider(c.UserContext(), req, auth.CurrentUserID(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "home slider updated", slider)
}
