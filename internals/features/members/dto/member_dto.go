package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"skb_backend/internals/constants"
	"skb_backend/internals/features/members/model"
)

const DateLayout = "2006-01-02"

/* =========================================================
   CREATE
========================================================= */

type CreateMemberRequest struct {
	SkbID              *string `json:"skb_id" validate:"omitempty,min=3,max=20,skbid"`
	Name               string  `json:"name" validate:"required,max=100"`
	FatherName         string  `json:"father_name" validate:"required,max=100"`
	MotherName         string  `json:"mother_name" validate:"required,max=100"`
	PresentAddress     string  `json:"present_address" validate:"required,max=500"`
	PermanentAddress   string  `json:"permanent_address" validate:"required,max=500"`
	Mobile             string  `json:"mobile" validate:"required,mobile"`
	DateOfBirth        string  `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Email              string  `json:"email" validate:"required,email,max=255"`
	Gender             string  `json:"gender" validate:"required,enum=gender"`
	PassportNo         *string `json:"passport_no" validate:"omitempty,max=20"`
	BloodGroup         string  `json:"blood_group" validate:"required,enum=blood_group"`
	NID                *string `json:"nid" validate:"omitempty,max=20"`
	Religion           string  `json:"religion" validate:"required,max=50"`
	Profession         string  `json:"profession" validate:"required,max=100"`
	BirthCertificateNo *string `json:"birth_certificate_no" validate:"omitempty,max=50"`
	Nationality        string  `json:"nationality" validate:"omitempty,max=50"`
	Photo              *string `json:"photo" validate:"omitempty,url"`
	Belt               string  `json:"belt" validate:"omitempty,enum=belt"`
	JoinDate           *string `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
	Achievements       *string `json:"achievements" validate:"omitempty,max=500"`
	IsActive           *bool   `json:"is_active"`
}

func (r *CreateMemberRequest) Normalize() {
	r.SkbID = upperPtr(r.SkbID)
	r.Name = strings.TrimSpace(r.Name)
	r.FatherName = strings.TrimSpace(r.FatherName)
	r.MotherName = strings.TrimSpace(r.MotherName)
	r.PresentAddress = strings.TrimSpace(r.PresentAddress)
	r.PermanentAddress = strings.TrimSpace(r.PermanentAddress)
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PassportNo = trimPtr(r.PassportNo)
	r.NID = trimPtr(r.NID)
	r.Religion = strings.TrimSpace(r.Religion)
	r.Profession = strings.TrimSpace(r.Profession)
	r.BirthCertificateNo = trimPtr(r.BirthCertificateNo)
	r.Nationality = strings.TrimSpace(r.Nationality)
	r.Photo = trimPtr(r.Photo)
	r.JoinDate = trimPtr(r.JoinDate)
	r.Achievements = trimPtr(r.Achievements)
	if r.Nationality == "" {
		r.Nationality = constants.DefaultNationality
	}
	if r.Belt == "" {
		r.Belt = constants.DefaultBelt
	}
}

// Restrict drops the fields only an admin may set on a self-registration.
func (r *CreateMemberRequest) Restrict() {
	r.SkbID = nil
	r.Belt = constants.DefaultBelt
	r.JoinDate = nil
	r.Achievements = nil
	r.IsActive = nil
}

// ToModel expects a validated request; dates are already known to parse.
func (r CreateMemberRequest) ToModel(now time.Time) *model.Member {
	dob, _ := time.Parse(DateLayout, r.DateOfBirth)
	join := now.UTC().Truncate(24 * time.Hour)
	if r.JoinDate != nil {
		join, _ = time.Parse(DateLayout, *r.JoinDate)
	}
	m := &model.Member{
		ID:                 uuid.New(),
		SkbID:              r.SkbID,
		Name:               r.Name,
		FatherName:         r.FatherName,
		MotherName:         r.MotherName,
		PresentAddress:     r.PresentAddress,
		PermanentAddress:   r.PermanentAddress,
		Mobile:             r.Mobile,
		DateOfBirth:        dob,
		Email:              r.Email,
		Gender:             r.Gender,
		PassportNo:         r.PassportNo,
		BloodGroup:         r.BloodGroup,
		NID:                r.NID,
		Religion:           r.Religion,
		Profession:         r.Profession,
		BirthCertificateNo: r.BirthCertificateNo,
		Nationality:        r.Nationality,
		Photo:              r.Photo,
		Belt:               r.Belt,
		JoinDate:           join,
		Achievements:       r.Achievements,
		IsActive:           true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

/* =========================================================
   UPDATE (partial)
========================================================= */

type UpdateMemberRequest struct {
	SkbID              *string `json:"skb_id" validate:"omitempty,min=3,max=20,skbid"`
	Name               *string `json:"name" validate:"omitempty,min=1,max=100"`
	FatherName         *string `json:"father_name" validate:"omitempty,min=1,max=100"`
	MotherName         *string `json:"mother_name" validate:"omitempty,min=1,max=100"`
	PresentAddress     *string `json:"present_address" validate:"omitempty,min=1,max=500"`
	PermanentAddress   *string `json:"permanent_address" validate:"omitempty,min=1,max=500"`
	Mobile             *string `json:"mobile" validate:"omitempty,mobile"`
	DateOfBirth        *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Email              *string `json:"email" validate:"omitempty,email,max=255"`
	Gender             *string `json:"gender" validate:"omitempty,enum=gender"`
	PassportNo         *string `json:"passport_no" validate:"omitempty,max=20"`
	BloodGroup         *string `json:"blood_group" validate:"omitempty,enum=blood_group"`
	NID                *string `json:"nid" validate:"omitempty,max=20"`
	Religion           *string `json:"religion" validate:"omitempty,min=1,max=50"`
	Profession         *string `json:"profession" validate:"omitempty,min=1,max=100"`
	BirthCertificateNo *string `json:"birth_certificate_no" validate:"omitempty,max=50"`
	Nationality        *string `json:"nationality" validate:"omitempty,min=1,max=50"`
	Photo              *string `json:"photo" validate:"omitempty,url"`
	Belt               *string `json:"belt" validate:"omitempty,enum=belt"`
	JoinDate           *string `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
	Achievements       *string `json:"achievements" validate:"omitempty,max=500"`
	IsActive           *bool   `json:"is_active"`
}

func (r *UpdateMemberRequest) Normalize() {
	r.SkbID = upperPtr(r.SkbID)
	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &e
	}
}

func (r UpdateMemberRequest) ApplyToModel(m *model.Member) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setOpt := func(dst **string, src *string) {
		if src != nil {
			*dst = trimPtr(src)
		}
	}
	if r.SkbID != nil {
		m.SkbID = r.SkbID
	}
	setStr(&m.Name, r.Name)
	setStr(&m.FatherName, r.FatherName)
	setStr(&m.MotherName, r.MotherName)
	setStr(&m.PresentAddress, r.PresentAddress)
	setStr(&m.PermanentAddress, r.PermanentAddress)
	setStr(&m.Mobile, r.Mobile)
	setStr(&m.Email, r.Email)
	setStr(&m.Gender, r.Gender)
	setStr(&m.BloodGroup, r.BloodGroup)
	setStr(&m.Religion, r.Religion)
	setStr(&m.Profession, r.Profession)
	setStr(&m.Nationality, r.Nationality)
	setStr(&m.Belt, r.Belt)
	setOpt(&m.PassportNo, r.PassportNo)
	setOpt(&m.NID, r.NID)
	setOpt(&m.BirthCertificateNo, r.BirthCertificateNo)
	setOpt(&m.Photo, r.Photo)
	setOpt(&m.Achievements, r.Achievements)
	if r.DateOfBirth != nil {
		if t, err := time.Parse(DateLayout, strings.TrimSpace(*r.DateOfBirth)); err == nil {
			m.DateOfBirth = t
		}
	}
	if r.JoinDate != nil {
		if t, err := time.Parse(DateLayout, strings.TrimSpace(*r.JoinDate)); err == nil {
			m.JoinDate = t
		}
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}

/* =========================================================
   QUERY / RESPONSE
========================================================= */

type ListMemberQuery struct {
	Search   string
	Belt     string
	IsActive *bool
}

// MemberResponse is the admin view.
type MemberResponse struct {
	model.Member
	DateOfBirth string `json:"date_of_birth"`
	JoinDate    string `json:"join_date"`
}

func NewMemberResponse(m *model.Member) MemberResponse {
	return MemberResponse{
		Member:      *m,
		DateOfBirth: m.DateOfBirth.Format(DateLayout),
		JoinDate:    m.JoinDate.Format(DateLayout),
	}
}

// PublicMemberResponse leaves out contact and identity documents.
type PublicMemberResponse struct {
	ID           uuid.UUID `json:"id"`
	SkbID        *string   `json:"skb_id,omitempty"`
	Name         string    `json:"name"`
	Gender       string    `json:"gender"`
	Belt         string    `json:"belt"`
	JoinDate     string    `json:"join_date"`
	Photo        *string   `json:"photo,omitempty"`
	Achievements *string   `json:"achievements,omitempty"`
	IsActive     bool      `json:"is_active"`
}

func NewPublicMemberResponse(m *model.Member) PublicMemberResponse {
	return PublicMemberResponse{
		ID:           m.ID,
		SkbID:        m.SkbID,
		Name:         m.Name,
		Gender:       m.Gender,
		Belt:         m.Belt,
		JoinDate:     m.JoinDate.Format(DateLayout),
		Photo:        m.Photo,
		Achievements: m.Achievements,
		IsActive:     m.IsActive,
	}
}

// ToResponses picks the projection for the caller.
func ToResponses(items []model.Member, admin bool) any {
	if admin {
		out := make([]MemberResponse, 0, len(items))
		for i := range items {
			out = append(out, NewMemberResponse(&items[i]))
		}
		return out
	}
	out := make([]PublicMemberResponse, 0, len(items))
	for i := range items {
		out = append(out, NewPublicMemberResponse(&items[i]))
	}
	return out
}

func ToResponse(m *model.Member, admin bool) any {
	if admin {
		return NewMemberResponse(m)
	}
	return NewPublicMemberResponse(m)
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

func upperPtr(s *string) *string {
	s = trimPtr(s)
	if s == nil {
		return nil
	}
	v := strings.ToUpper(*s)
	return &v
}
