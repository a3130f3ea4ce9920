package model

import (
	"time"

	"github.com/google/uuid"
)

const DefaultCategory = "general"

type GalleryImage struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string     `gorm:"type:varchar(100);not null" json:"title"`
	Description  *string    `gorm:"type:varchar(500)" json:"description,omitempty"`
	ImageURL     string     `gorm:"type:text;not null" json:"image_url"`
	ThumbnailURL *string    `gorm:"type:text" json:"thumbnail_url,omitempty"`
	AltText      string     `gorm:"type:varchar(200);not null" json:"alt_text"`
	Category     string     `gorm:"type:varchar(20);not null;default:general" json:"category"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	UploadedBy   *uuid.UUID `gorm:"type:uuid" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	UploadedByName string `gorm:"->;-:migration;column:uploaded_by_name" json:"uploaded_by_name,omitempty"`
}

func (GalleryImage) TableName() string {
	return "gallery_images"
}
