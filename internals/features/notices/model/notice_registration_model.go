package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RegistrationRegistered = "registered"
	RegistrationConfirmed  = "confirmed"
	RegistrationCancelled  = "cancelled"
)

// Registration is a member's entry into a tournament-category notice.
type Registration struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NoticeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"notice_id"`
	Name         string    `gorm:"type:varchar(50);not null" json:"name"`
	SkbID        string    `gorm:"type:varchar(20);not null" json:"skb_id"`
	Status       string    `gorm:"type:varchar(12);not null;default:registered" json:"status"`
	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Registration) TableName() string {
	return "notice_registrations"
}

func (r *Registration) IsActive() bool {
	return r.Status != RegistrationCancelled
}
