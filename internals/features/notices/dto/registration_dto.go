package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"skb_backend/internals/features/notices/model"
)

type RegisterRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=50,person_name"`
	SkbID string `json:"skb_id" validate:"required,min=3,max=20,skbid"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.Join(strings.Fields(r.Name), " ")
	r.SkbID = strings.ToUpper(strings.TrimSpace(r.SkbID))
}

func (r RegisterRequest) ToModel(noticeID uuid.UUID, now time.Time) *model.Registration {
	return &model.Registration{
		ID:           uuid.New(),
		NoticeID:     noticeID,
		Name:         r.Name,
		SkbID:        r.SkbID,
		Status:       model.RegistrationRegistered,
		RegisteredAt: now,
	}
}

// CancelRequest identifies the seat by SKB id; the body may also arrive as
// ?skb_id= on DELETE.
type CancelRequest struct {
	SkbID string `json:"skb_id" query:"skb_id" validate:"required,min=3,max=20,skbid"`
}

func (r *CancelRequest) Normalize() {
	r.SkbID = strings.ToUpper(strings.TrimSpace(r.SkbID))
}

type ListRegistrationQuery struct {
	Search string
	Status string
}

type RegistrationResponse struct {
	ID           uuid.UUID `json:"id"`
	NoticeID     uuid.UUID `json:"notice_id"`
	Name         string    `json:"name"`
	SkbID        string    `json:"skb_id"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewRegistrationResponse(r *model.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:           r.ID,
		NoticeID:     r.NoticeID,
		Name:         r.Name,
		SkbID:        r.SkbID,
		Status:       r.Status,
		RegisteredAt: r.RegisteredAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func NewRegistrationResponses(items []model.Registration) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(items))
	for i := range items {
		out = append(out, NewRegistrationResponse(&items[i]))
	}
	return out
}

// RegisterResult is returned after a successful notice registration.
type RegisterResult struct {
	Registration RegistrationResponse `json:"registration"`
	Notice       NoticeResponse       `json:"notice"`
}
