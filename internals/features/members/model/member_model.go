package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type Member struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SkbID              *string   `gorm:"type:varchar(20)" json:"skb_id,omitempty"`
	Name               string    `gorm:"type:varchar(100);not null" json:"name"`
	FatherName         string    `gorm:"type:varchar(100);not null" json:"father_name"`
	MotherName         string    `gorm:"type:varchar(100);not null" json:"mother_name"`
	PresentAddress     string    `gorm:"type:varchar(500);not null" json:"present_address"`
	PermanentAddress   string    `gorm:"type:varchar(500);not null" json:"permanent_address"`
	Mobile             string    `gorm:"type:varchar(15);not null" json:"mobile"`
	DateOfBirth        time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Email              string    `gorm:"type:varchar(255);not null" json:"email"`
	Gender             string    `gorm:"type:varchar(10);not null" json:"gender"`
	PassportNo         *string   `gorm:"type:varchar(20)" json:"passport_no,omitempty"`
	BloodGroup         string    `gorm:"type:varchar(3);not null" json:"blood_group"`
	NID                *string   `gorm:"column:nid;type:varchar(20)" json:"nid,omitempty"`
	Religion           string    `gorm:"type:varchar(50);not null" json:"religion"`
	Profession         string    `gorm:"type:varchar(100);not null" json:"profession"`
	BirthCertificateNo *string   `gorm:"type:varchar(50)" json:"birth_certificate_no,omitempty"`
	Nationality        string    `gorm:"type:varchar(50);not null;default:Bangladeshi" json:"nationality"`
	Photo              *string   `gorm:"type:text" json:"photo,omitempty"`
	Belt               string    `gorm:"type:varchar(30);not null;default:White" json:"belt"`
	JoinDate           time.Time `gorm:"type:date;not null" json:"join_date"`
	Achievements       *string   `gorm:"type:varchar(500)" json:"achievements,omitempty"`
	IsActive           bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}
