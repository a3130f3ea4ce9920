package dto

import (
	"strings"

	"github.com/google/uuid"

	"skb_backend/internals/features/gallery/model"
)

// CreateGalleryRequest is used both for JSON creates (image_url given) and
// for the multipart upload, where image_url is filled after storing.
type CreateGalleryRequest struct {
	Title       string  `json:"title" form:"title" validate:"required,min=1,max=100"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=500"`
	ImageURL    string  `json:"image_url" form:"-" validate:"required,max=2048"`
	AltText     string  `json:"alt_text" form:"alt_text" validate:"required,min=1,max=200"`
	Category    string  `json:"category" form:"category" validate:"omitempty,enum=gallery_category"`
	IsActive    *bool   `json:"is_active" form:"is_active"`
}

func (r *CreateGalleryRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = trimPtr(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.AltText = strings.TrimSpace(r.AltText)
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	if r.Category == "" {
		r.Category = model.DefaultCategory
	}
}

func (r CreateGalleryRequest) ToModel(uploadedBy uuid.UUID) *model.GalleryImage {
	img := &model.GalleryImage{
		ID:          uuid.New(),
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		AltText:     r.AltText,
		Category:    r.Category,
		IsActive:    true,
	}
	if r.IsActive != nil {
		img.IsActive = *r.IsActive
	}
	if uploadedBy != uuid.Nil {
		img.UploadedBy = &uploadedBy
	}
	return img
}

type UpdateGalleryRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ImageURL    *string `json:"image_url" validate:"omitempty,min=1,max=2048"`
	AltText     *string `json:"alt_text" validate:"omitempty,min=1,max=200"`
	Category    *string `json:"category" validate:"omitempty,enum=gallery_category"`
	IsActive    *bool   `json:"is_active"`
}

// Normalize trims required text before validation.
func (r *UpdateGalleryRequest) Normalize() {
	r.Title = trimKeep(r.Title)
	r.ImageURL = trimKeep(r.ImageURL)
	r.AltText = trimKeep(r.AltText)
	if r.Category != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Category))
		r.Category = &v
	}
}

// ApplyToModel reports whether the image itself was replaced.
func (r UpdateGalleryRequest) ApplyToModel(img *model.GalleryImage) bool {
	replaced := false
	if r.Title != nil {
		img.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		img.Description = trimPtr(r.Description)
	}
	if r.ImageURL != nil {
		if u := strings.TrimSpace(*r.ImageURL); u != img.ImageURL {
			img.ImageURL = u
			img.ThumbnailURL = nil
			replaced = true
		}
	}
	if r.AltText != nil {
		img.AltText = strings.TrimSpace(*r.AltText)
	}
	if r.Category != nil {
		img.Category = strings.ToLower(strings.TrimSpace(*r.Category))
	}
	if r.IsActive != nil {
		img.IsActive = *r.IsActive
	}
	return replaced
}

type ListGalleryQuery struct {
	Search   string
	Category string
	IsActive *bool
}

func trimKeep(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
