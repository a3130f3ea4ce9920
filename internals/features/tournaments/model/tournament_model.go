package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	StatusUpcoming           = "upcoming"
	StatusRegistrationOpen   = "registration_open"
	StatusRegistrationClosed = "registration_closed"
	StatusOngoing            = "ongoing"
	StatusCompleted          = "completed"
	StatusCancelled          = "cancelled"

	DefaultFormat = "Swiss"
)

type Tournament struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                 string         `gorm:"type:varchar(200);not null" json:"name"`
	Description          string         `gorm:"type:varchar(2000);not null" json:"description"`
	StartDate            time.Time      `gorm:"not null" json:"start_date"`
	EndDate              time.Time      `gorm:"not null" json:"end_date"`
	RegistrationDeadline time.Time      `gorm:"not null" json:"registration_deadline"`
	Location             string         `gorm:"type:varchar(200);not null" json:"location"`
	Organizer            string         `gorm:"type:varchar(100);not null" json:"organizer"`
	ContactInfo          *string        `gorm:"type:varchar(300)" json:"contact_info,omitempty"`
	MaxParticipants      int            `gorm:"not null" json:"max_participants"`
	CurrentParticipants  int            `gorm:"not null;default:0" json:"current_participants"`
	EntryFee             int64          `gorm:"not null;default:0" json:"entry_fee"`
	PrizeStructure       *string        `gorm:"type:varchar(1000)" json:"prize_structure,omitempty"`
	Rules                *string        `gorm:"type:varchar(2000)" json:"rules,omitempty"`
	Format               string         `gorm:"type:varchar(20);not null;default:Swiss" json:"format"`
	TimeControl          *string        `gorm:"type:varchar(100)" json:"time_control,omitempty"`
	SkillLevels          pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"skill_levels"`
	AgeGroups            pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"age_groups"`
	Status               string         `gorm:"type:varchar(24);not null;default:upcoming" json:"status"`
	IsActive             bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedBy            *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// filled by list/detail queries joining admin_users
	CreatedByName string `gorm:"->;-:migration;column:created_by_name" json:"-"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

// AcceptsRegistrations is false for closed, running, finished or hidden tournaments.
func (t *Tournament) AcceptsRegistrations() bool {
	if !t.IsActive {
		return false
	}
	return t.Status == StatusUpcoming || t.Status == StatusRegistrationOpen
}

func (t *Tournament) SpotsLeft() int {
	if left := t.MaxParticipants - t.CurrentParticipants; left > 0 {
		return left
	}
	return 0
}
