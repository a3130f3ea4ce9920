package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	CategoryNotice     = "notice"
	CategoryEvent      = "event"
	CategoryTournament = "tournament"

	DefaultPriority = "medium"
)

// Attachment is one uploaded file kept inline on the notice row.
type Attachment struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	URL          string `json:"url"`
	Mimetype     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

type Notice struct {
	ID                   uuid.UUID                     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title                string                        `gorm:"type:varchar(200);not null" json:"title"`
	Content              string                        `gorm:"type:text;not null" json:"content"`
	Category             string                        `gorm:"type:varchar(20);not null" json:"category"`
	Priority             string                        `gorm:"type:varchar(10);not null;default:medium" json:"priority"`
	Date                 time.Time                     `gorm:"not null" json:"date"`
	EndDate              *time.Time                    `json:"end_date,omitempty"`
	Location             *string                       `gorm:"type:varchar(200)" json:"location,omitempty"`
	Organizer            *string                       `gorm:"type:varchar(100)" json:"organizer,omitempty"`
	ContactInfo          *string                       `gorm:"type:varchar(300)" json:"contact_info,omitempty"`
	TargetAudience       pq.StringArray                `gorm:"type:text[];not null;default:'{}'" json:"target_audience"`
	Rules                *string                       `gorm:"type:varchar(2000)" json:"rules,omitempty"`
	PrizeStructure       *string                       `gorm:"type:varchar(1000)" json:"prize_structure,omitempty"`
	RegistrationDeadline *time.Time                    `json:"registration_deadline,omitempty"`
	MaxParticipants      *int                          `json:"max_participants,omitempty"`
	CurrentParticipants  int                           `gorm:"not null;default:0" json:"current_participants"`
	Attachments          datatypes.JSONSlice[Attachment] `gorm:"type:jsonb;not null" json:"attachments"`
	IsActive             bool                          `gorm:"not null;default:true" json:"is_active"`
	CreatedBy            *uuid.UUID                    `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt            time.Time                     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time                     `gorm:"autoUpdateTime" json:"updated_at"`

	CreatedByName string `gorm:"->;-:migration;column:created_by_name" json:"-"`
}

func (Notice) TableName() string {
	return "notices"
}

func (n *Notice) IsTournament() bool {
	return n.Category == CategoryTournament
}

// AcceptsRegistrations only looks at category and visibility; deadline and
// capacity are checked by the registration gate.
func (n *Notice) AcceptsRegistrations() bool {
	return n.IsTournament() && n.IsActive
}

// Capacity is 0 when unlimited.
func (n *Notice) Capacity() int {
	if n.MaxParticipants == nil {
		return 0
	}
	return *n.MaxParticipants
}

// SpotsLeft is nil for notices without a capacity.
func (n *Notice) SpotsLeft() *int {
	if n.MaxParticipants == nil {
		return nil
	}
	left := *n.MaxParticipants - n.CurrentParticipants
	if left < 0 {
		left = 0
	}
	return &left
}
