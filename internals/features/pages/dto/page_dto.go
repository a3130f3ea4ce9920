package dto

import (
	"strings"

	"skb_backend/internals/features/pages/model"
)

// UpdateAboutRequest arrives as multipart (optional "banner_image" file) or JSON.
type UpdateAboutRequest struct {
	Title        string `json:"title" form:"title" validate:"required,min=1,max=200"`
	Description  string `json:"description" form:"description" validate:"required,min=1,max=5000"`
	RemoveBanner bool   `json:"remove_banner" form:"remove_banner"`
}

func (r *UpdateAboutRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

type SlideRequest struct {
	ImageURL string `json:"image_url" validate:"required,max=2048"`
	AltText  string `json:"alt_text" validate:"required,min=1,max=200"`
}

type UpdateSliderRequest struct {
	Title    string         `json:"title" validate:"required,min=1,max=200"`
	Subtitle string         `json:"subtitle" validate:"required,min=1,max=500"`
	Slides   []SlideRequest `json:"slides" validate:"max=10,dive"`
	IsActive *bool          `json:"is_active"`
}

func (r *UpdateSliderRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Subtitle = strings.TrimSpace(r.Subtitle)
	for i := range r.Slides {
		r.Slides[i].ImageURL = strings.TrimSpace(r.Slides[i].ImageURL)
		r.Slides[i].AltText = strings.TrimSpace(r.Slides[i].AltText)
	}
}

// Slides numbers the slides by their position in the request.
func (r UpdateSliderRequest) ToSlides() []model.Slide {
	out := make([]model.Slide, 0, len(r.Slides))
	for i, s := range r.Slides {
		out = append(out, model.Slide{ImageURL: s.ImageURL, AltText: s.AltText, Order: i})
	}
	return out
}
