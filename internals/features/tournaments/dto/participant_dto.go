package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"skb_backend/internals/features/tournaments/model"
)

type EmergencyContactRequest struct {
	Name         string `json:"name" validate:"omitempty,max=100"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
	Relationship string `json:"relationship" validate:"omitempty,max=50"`
}

/* =========================================================
   REGISTER (public / admin)
========================================================= */

type RegisterRequest struct {
	Name                string                  `json:"name" validate:"required,min=2,max=50,person_name"`
	Email               string                  `json:"email" validate:"required,email,max=255"`
	SkbID               *string                 `json:"skb_id" validate:"omitempty,min=3,max=20,skbid"`
	Phone               *string                 `json:"phone" validate:"omitempty,max=20"`
	Age                 *int                    `json:"age" validate:"omitempty,gte=5,lte=120"`
	SkillLevel          string                  `json:"skill_level" validate:"omitempty,enum=participant_skill"`
	EmergencyContact    EmergencyContactRequest `json:"emergency_contact"`
	MedicalInfo         *string                 `json:"medical_info" validate:"omitempty,max=500"`
	SpecialRequirements *string                 `json:"special_requirements" validate:"omitempty,max=300"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.Join(strings.Fields(r.Name), " ")
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.SkbID = trimPtr(r.SkbID)
	r.Phone = trimPtr(r.Phone)
	r.MedicalInfo = trimPtr(r.MedicalInfo)
	r.SpecialRequirements = trimPtr(r.SpecialRequirements)
	r.EmergencyContact.Name = strings.TrimSpace(r.EmergencyContact.Name)
	r.EmergencyContact.Phone = strings.TrimSpace(r.EmergencyContact.Phone)
	r.EmergencyContact.Relationship = strings.TrimSpace(r.EmergencyContact.Relationship)
	if r.SkillLevel == "" {
		r.SkillLevel = model.DefaultSkillLevel
	}
}

func (r RegisterRequest) ToModel(tournamentID uuid.UUID, now time.Time) *model.Participant {
	return &model.Participant{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		Name:         r.Name,
		Email:        r.Email,
		SkbID:        r.SkbID,
		Phone:        r.Phone,
		Age:          r.Age,
		SkillLevel:   r.SkillLevel,
		EmergencyContact: datatypes.NewJSONType(model.EmergencyContact{
			Name:         r.EmergencyContact.Name,
			Phone:        r.EmergencyContact.Phone,
			Relationship: r.EmergencyContact.Relationship,
		}),
		MedicalInfo:         r.MedicalInfo,
		SpecialRequirements: r.SpecialRequirements,
		Status:              model.ParticipantRegistered,
		PaymentStatus:       model.PaymentPending,
		RegisteredAt:        now.UTC(),
	}
}

/* =========================================================
   CANCEL (self-service)
========================================================= */

type CancelRequest struct {
	Email string  `json:"email" validate:"omitempty,email,max=255"`
	SkbID *string `json:"skb_id" validate:"omitempty,min=3,max=20,skbid"`
}

func (r *CancelRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.SkbID = trimPtr(r.SkbID)
}

/* =========================================================
   ADMIN UPDATE
========================================================= */

type UpdateParticipantRequest struct {
	Name                *string                  `json:"name" validate:"omitempty,min=2,max=50,person_name"`
	Phone               *string                  `json:"phone" validate:"omitempty,max=20"`
	Age                 *int                     `json:"age" validate:"omitempty,gte=5,lte=120"`
	SkillLevel          *string                  `json:"skill_level" validate:"omitempty,enum=participant_skill"`
	EmergencyContact    *EmergencyContactRequest `json:"emergency_contact"`
	MedicalInfo         *string                  `json:"medical_info" validate:"omitempty,max=500"`
	SpecialRequirements *string                  `json:"special_requirements" validate:"omitempty,max=300"`
	Status              *string                  `json:"status" validate:"omitempty,enum=participant_status"`
	PaymentStatus       *string                  `json:"payment_status" validate:"omitempty,enum=payment_status"`
}

func (r *UpdateParticipantRequest) Normalize() {
	if r.Name != nil {
		v := strings.Join(strings.Fields(*r.Name), " ")
		r.Name = &v
	}
}

func (r *UpdateParticipantRequest) ApplyToModel(p *model.Participant) {
	if r.Name != nil {
		p.Name = strings.Join(strings.Fields(*r.Name), " ")
	}
	if r.Phone != nil {
		p.Phone = trimPtr(r.Phone)
	}
	if r.Age != nil {
		p.Age = r.Age
	}
	if r.SkillLevel != nil {
		p.SkillLevel = *r.SkillLevel
	}
	if r.EmergencyContact != nil {
		p.EmergencyContact = datatypes.NewJSONType(model.EmergencyContact{
			Name:         strings.TrimSpace(r.EmergencyContact.Name),
			Phone:        strings.TrimSpace(r.EmergencyContact.Phone),
			Relationship: strings.TrimSpace(r.EmergencyContact.Relationship),
		})
	}
	if r.MedicalInfo != nil {
		p.MedicalInfo = trimPtr(r.MedicalInfo)
	}
	if r.SpecialRequirements != nil {
		p.SpecialRequirements = trimPtr(r.SpecialRequirements)
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	if r.PaymentStatus != nil {
		p.PaymentStatus = *r.PaymentStatus
	}
}

type ListParticipantQuery struct {
	Search     string
	Status     string
	SkillLevel string
}

/* =========================================================
   RESPONSE
========================================================= */

type ParticipantResponse struct {
	ID                  uuid.UUID              `json:"id"`
	TournamentID        uuid.UUID              `json:"tournament_id"`
	Name                string                 `json:"name"`
	Email               string                 `json:"email"`
	SkbID               *string                `json:"skb_id,omitempty"`
	Phone               *string                `json:"phone,omitempty"`
	Age                 *int                   `json:"age,omitempty"`
	SkillLevel          string                 `json:"skill_level"`
	EmergencyContact    model.EmergencyContact `json:"emergency_contact"`
	MedicalInfo         *string                `json:"medical_info,omitempty"`
	SpecialRequirements *string                `json:"special_requirements,omitempty"`
	Status              string                 `json:"status"`
	PaymentStatus       string                 `json:"payment_status"`
	PaymentOrderID      *string                `json:"payment_order_id,omitempty"`
	RegisteredAt        time.Time              `json:"registered_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

func NewParticipantResponse(p *model.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:                  p.ID,
		TournamentID:        p.TournamentID,
		Name:                p.Name,
		Email:               p.Email,
		SkbID:               p.SkbID,
		Phone:               p.Phone,
		Age:                 p.Age,
		SkillLevel:          p.SkillLevel,
		EmergencyContact:    p.EmergencyContact.Data(),
		MedicalInfo:         p.MedicalInfo,
		SpecialRequirements: p.SpecialRequirements,
		Status:              p.Status,
		PaymentStatus:       p.PaymentStatus,
		PaymentOrderID:      p.PaymentOrderID,
		RegisteredAt:        p.RegisteredAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func NewParticipantResponses(items []model.Participant) []ParticipantResponse {
	out := make([]ParticipantResponse, 0, len(items))
	for i := range items {
		out = append(out, NewParticipantResponse(&items[i]))
	}
	return out
}

// RegistrationResponse is returned by the public register endpoint.
type RegistrationResponse struct {
	Participant ParticipantResponse `json:"participant"`
	Tournament  TournamentResponse  `json:"tournament"`
	Payment     *PaymentInfo        `json:"payment,omitempty"`
}

type PaymentInfo struct {
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Token       string `json:"token,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}
