package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AboutPage is a singleton row (singleton = TRUE is unique).
type AboutPage struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Singleton      bool       `gorm:"not null;default:true" json:"-"`
	Title          string     `gorm:"type:varchar(200);not null" json:"title"`
	Description    string     `gorm:"type:varchar(5000);not null" json:"description"`
	BannerImageURL *string    `gorm:"type:text" json:"banner_image_url"`
	LastUpdatedBy  *uuid.UUID `gorm:"type:uuid" json:"last_updated_by,omitempty"`
	LastUpdatedAt  time.Time  `gorm:"not null" json:"last_updated_at"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`

	LastUpdatedByName string `gorm:"->;-:migration;column:last_updated_by_name" json:"last_updated_by_name,omitempty"`
}

func (AboutPage) TableName() string {
	return "about_pages"
}

type Slide struct {
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text"`
	Order    int    `json:"order"`
}

type HomeSlider struct {
	ID            uuid.UUID                  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Singleton     bool                       `gorm:"not null;default:true" json:"-"`
	Title         string                     `gorm:"type:varchar(200);not null" json:"title"`
	Subtitle      string                     `gorm:"type:varchar(500);not null" json:"subtitle"`
	Slides        datatypes.JSONSlice[Slide] `gorm:"type:jsonb;not null" json:"slides"`
	IsActive      bool                       `gorm:"not null;default:true" json:"is_active"`
	LastUpdatedBy *uuid.UUID                 `gorm:"type:uuid" json:"last_updated_by,omitempty"`
	CreatedAt     time.Time                  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                  `gorm:"autoUpdateTime" json:"updated_at"`

	LastUpdatedByName string `gorm:"->;-:migration;column:last_updated_by_name" json:"last_updated_by_name,omitempty"`
}

func (HomeSlider) TableName() string {
	return "home_sliders"
}

// DefaultAbout is served until an admin saves the page.
func DefaultAbout() AboutPage {
	return AboutPage{
		Title:       "About Shotokan Karate Bangladesh",
		Description: "Welcome to Shotokan Karate Bangladesh, where tradition meets excellence. Our organization is dedicated to preserving and teaching the authentic art of Shotokan Karate.",
	}
}

func DefaultSlider() HomeSlider {
	return HomeSlider{
		Title:    "Shotokan Karate Bangladesh",
		Subtitle: "Empowering minds and bodies through the ancient art of Shotokan Karate. Join our community of dedicated practitioners.",
		Slides: []Slide{
			{ImageURL: "https://images.pexels.com/photos/7045693/pexels-photo-7045693.jpeg", AltText: "Championship Training", Order: 0},
			{ImageURL: "https://images.pexels.com/photos/7045694/pexels-photo-7045694.jpeg", AltText: "Belt Grading Ceremony", Order: 1},
			{ImageURL: "https://images.pexels.com/photos/7045695/pexels-photo-7045695.jpeg", AltText: "National Tournament", Order: 2},
		},
		IsActive: true,
	}
}
