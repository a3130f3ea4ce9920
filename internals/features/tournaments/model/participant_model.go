package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ParticipantRegistered = "registered"
	ParticipantConfirmed  = "confirmed"
	ParticipantCancelled  = "cancelled"
	ParticipantCompleted  = "completed"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"

	DefaultSkillLevel = "Beginner"
)

type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

type Participant struct {
	ID                  uuid.UUID                           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TournamentID        uuid.UUID                           `gorm:"type:uuid;not null;index" json:"tournament_id"`
	Name                string                              `gorm:"type:varchar(50);not null" json:"name"`
	Email               string                              `gorm:"type:varchar(255);not null" json:"email"`
	SkbID               *string                             `gorm:"type:varchar(20)" json:"skb_id,omitempty"`
	Phone               *string                             `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Age                 *int                                `json:"age,omitempty"`
	SkillLevel          string                              `gorm:"type:varchar(20);not null;default:Beginner" json:"skill_level"`
	EmergencyContact    datatypes.JSONType[EmergencyContact] `gorm:"type:jsonb;not null" json:"emergency_contact"`
	MedicalInfo         *string                             `gorm:"type:varchar(500)" json:"medical_info,omitempty"`
	SpecialRequirements *string                             `gorm:"type:varchar(300)" json:"special_requirements,omitempty"`
	Status              string                              `gorm:"type:varchar(12);not null;default:registered" json:"status"`
	PaymentStatus       string                              `gorm:"type:varchar(10);not null;default:pending" json:"payment_status"`
	PaymentOrderID      *string                             `gorm:"type:varchar(64)" json:"payment_order_id,omitempty"`
	RegisteredAt        time.Time                           `gorm:"not null" json:"registered_at"`
	UpdatedAt           time.Time                           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Participant) TableName() string {
	return "participants"
}

// IsActive: every status except cancelled holds a seat.
func (p *Participant) IsActive() bool {
	return p.Status != ParticipantCancelled
}
