package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"skb_backend/internals/features/tournaments/model"
	helper "skb_backend/internals/helpers"
)

/* =========================================================
   CREATE
========================================================= */

type CreateTournamentRequest struct {
	Name                 string    `json:"name" validate:"required,max=200"`
	Description          string    `json:"description" validate:"required,max=2000"`
	StartDate            time.Time `json:"start_date" validate:"required"`
	EndDate              time.Time `json:"end_date" validate:"required"`
	RegistrationDeadline time.Time `json:"registration_deadline" validate:"required"`
	Location             string    `json:"location" validate:"required,max=200"`
	Organizer            string    `json:"organizer" validate:"required,max=100"`
	ContactInfo          *string   `json:"contact_info" validate:"omitempty,max=300"`
	MaxParticipants      int       `json:"max_participants" validate:"required,gte=1"`
	EntryFee             int64     `json:"entry_fee" validate:"gte=0"`
	PrizeStructure       *string   `json:"prize_structure" validate:"omitempty,max=1000"`
	Rules                *string   `json:"rules" validate:"omitempty,max=2000"`
	Format               string    `json:"format" validate:"omitempty,enum=tournament_format"`
	TimeControl          *string   `json:"time_control" validate:"omitempty,max=100"`
	SkillLevels          []string  `json:"skill_levels" validate:"omitempty,unique,dive,enum=tournament_skill_level"`
	AgeGroups            []string  `json:"age_groups" validate:"omitempty,unique,dive,enum=age_group"`
	Status               string    `json:"status" validate:"omitempty,enum=tournament_status"`
	IsActive             *bool     `json:"is_active"`
}

func (r *CreateTournamentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.Organizer = strings.TrimSpace(r.Organizer)
	r.ContactInfo = trimPtr(r.ContactInfo)
	r.PrizeStructure = trimPtr(r.PrizeStructure)
	r.Rules = trimPtr(r.Rules)
	r.TimeControl = trimPtr(r.TimeControl)
	if r.Format == "" {
		r.Format = model.DefaultFormat
	}
	if r.Status == "" {
		r.Status = model.StatusUpcoming
	}
}

func (r CreateTournamentRequest) ToModel(createdBy uuid.UUID) *model.Tournament {
	t := &model.Tournament{
		ID:                   uuid.New(),
		Name:                 r.Name,
		Description:          r.Description,
		StartDate:            r.StartDate.UTC(),
		EndDate:              r.EndDate.UTC(),
		RegistrationDeadline: r.RegistrationDeadline.UTC(),
		Location:             r.Location,
		Organizer:            r.Organizer,
		ContactInfo:          r.ContactInfo,
		MaxParticipants:      r.MaxParticipants,
		EntryFee:             r.EntryFee,
		PrizeStructure:       r.PrizeStructure,
		Rules:                r.Rules,
		Format:               r.Format,
		TimeControl:          r.TimeControl,
		SkillLevels:          pq.StringArray(nonNil(r.SkillLevels)),
		AgeGroups:            pq.StringArray(nonNil(r.AgeGroups)),
		Status:               r.Status,
		IsActive:             true,
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
	if createdBy != uuid.Nil {
		t.CreatedBy = &createdBy
	}
	return t
}

/* =========================================================
   UPDATE (partial)
========================================================= */

type UpdateTournamentRequest struct {
	Name                 *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description          *string    `json:"description" validate:"omitempty,min=1,max=2000"`
	StartDate            *time.Time `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	Location             *string    `json:"location" validate:"omitempty,min=1,max=200"`
	Organizer            *string    `json:"organizer" validate:"omitempty,min=1,max=100"`
	ContactInfo          *string    `json:"contact_info" validate:"omitempty,max=300"`
	MaxParticipants      *int       `json:"max_participants" validate:"omitempty,gte=1"`
	EntryFee             *int64     `json:"entry_fee" validate:"omitempty,gte=0"`
	PrizeStructure       *string    `json:"prize_structure" validate:"omitempty,max=1000"`
	Rules                *string    `json:"rules" validate:"omitempty,max=2000"`
	Format               *string    `json:"format" validate:"omitempty,enum=tournament_format"`
	TimeControl          *string    `json:"time_control" validate:"omitempty,max=100"`
	SkillLevels          []string   `json:"skill_levels" validate:"omitempty,unique,dive,enum=tournament_skill_level"`
	AgeGroups            []string   `json:"age_groups" validate:"omitempty,unique,dive,enum=age_group"`
	Status               *string    `json:"status" validate:"omitempty,enum=tournament_status"`
	IsActive             *bool      `json:"is_active"`
}

// Normalize trims required text in place; a blank value stays present so
// validation rejects it instead of storing "".
func (r *UpdateTournamentRequest) Normalize() {
	r.Name = trimKeep(r.Name)
	r.Description = trimKeep(r.Description)
	r.Location = trimKeep(r.Location)
	r.Organizer = trimKeep(r.Organizer)
}

func (r *UpdateTournamentRequest) ApplyToModel(t *model.Tournament) {
	if r.Name != nil {
		t.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		t.Description = strings.TrimSpace(*r.Description)
	}
	if r.StartDate != nil {
		t.StartDate = r.StartDate.UTC()
	}
	if r.EndDate != nil {
		t.EndDate = r.EndDate.UTC()
	}
	if r.RegistrationDeadline != nil {
		t.RegistrationDeadline = r.RegistrationDeadline.UTC()
	}
	if r.Location != nil {
		t.Location = strings.TrimSpace(*r.Location)
	}
	if r.Organizer != nil {
		t.Organizer = strings.TrimSpace(*r.Organizer)
	}
	if r.ContactInfo != nil {
		t.ContactInfo = trimPtr(r.ContactInfo)
	}
	if r.MaxParticipants != nil {
		t.MaxParticipants = *r.MaxParticipants
	}
	if r.EntryFee != nil {
		t.EntryFee = *r.EntryFee
	}
	if r.PrizeStructure != nil {
		t.PrizeStructure = trimPtr(r.PrizeStructure)
	}
	if r.Rules != nil {
		t.Rules = trimPtr(r.Rules)
	}
	if r.Format != nil {
		t.Format = *r.Format
	}
	if r.TimeControl != nil {
		t.TimeControl = trimPtr(r.TimeControl)
	}
	if r.SkillLevels != nil {
		t.SkillLevels = pq.StringArray(r.SkillLevels)
	}
	if r.AgeGroups != nil {
		t.AgeGroups = pq.StringArray(r.AgeGroups)
	}
	if r.Status != nil {
		t.Status = *r.Status
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
}

// ScheduleErrors checks the cross-field date rules.
func ScheduleErrors(start, end, deadline time.Time) map[string][]string {
	var fe map[string][]string
	if end.Before(start) {
		fe = helper.AddFieldError(fe, "end_date", "must be on or after start_date")
	}
	if !deadline.Before(start) {
		fe = helper.AddFieldError(fe, "registration_deadline", "must be before start_date")
	}
	return fe
}

/* =========================================================
   QUERY
========================================================= */

type ListTournamentQuery struct {
	Search    string `query:"search"`
	Status    string `query:"status"`
	Organizer string `query:"organizer"`
}

/* =========================================================
   RESPONSE
========================================================= */

type TournamentResponse struct {
	ID                     uuid.UUID        `json:"id"`
	Name                   string           `json:"name"`
	Description            string           `json:"description"`
	StartDate              time.Time        `json:"start_date"`
	EndDate                time.Time        `json:"end_date"`
	RegistrationDeadline   time.Time        `json:"registration_deadline"`
	Location               string           `json:"location"`
	Organizer              string           `json:"organizer"`
	ContactInfo            *string          `json:"contact_info,omitempty"`
	MaxParticipants        int              `json:"max_participants"`
	CurrentParticipants    int              `json:"current_participants"`
	ParticipantCount       int              `json:"participant_count"`
	SpotsLeft              int              `json:"spots_left"`
	EntryFee               int64            `json:"entry_fee"`
	PrizeStructure         *string          `json:"prize_structure,omitempty"`
	Rules                  *string          `json:"rules,omitempty"`
	Format                 string           `json:"format"`
	TimeControl            *string          `json:"time_control,omitempty"`
	SkillLevels            []string         `json:"skill_levels"`
	AgeGroups              []string         `json:"age_groups"`
	Status                 string           `json:"status"`
	IsActive               bool             `json:"is_active"`
	AcceptingRegistrations bool             `json:"accepting_registrations"`
	RegistrationCountdown  helper.Countdown `json:"registration_countdown"`
	CreatedBy              *uuid.UUID       `json:"created_by,omitempty"`
	CreatedByName          string           `json:"created_by_name,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

func NewTournamentResponse(t *model.Tournament, now time.Time) TournamentResponse {
	countdown := helper.Remaining(t.RegistrationDeadline, now)
	return TournamentResponse{
		ID:                     t.ID,
		Name:                   t.Name,
		Description:            t.Description,
		StartDate:              t.StartDate,
		EndDate:                t.EndDate,
		RegistrationDeadline:   t.RegistrationDeadline,
		Location:               t.Location,
		Organizer:              t.Organizer,
		ContactInfo:            t.ContactInfo,
		MaxParticipants:        t.MaxParticipants,
		CurrentParticipants:    t.CurrentParticipants,
		ParticipantCount:       t.CurrentParticipants,
		SpotsLeft:              t.SpotsLeft(),
		EntryFee:               t.EntryFee,
		PrizeStructure:         t.PrizeStructure,
		Rules:                  t.Rules,
		Format:                 t.Format,
		TimeControl:            t.TimeControl,
		SkillLevels:            nonNil(t.SkillLevels),
		AgeGroups:              nonNil(t.AgeGroups),
		Status:                 t.Status,
		IsActive:               t.IsActive,
		AcceptingRegistrations: t.AcceptsRegistrations() && !countdown.Expired && t.SpotsLeft() > 0,
		RegistrationCountdown:  countdown,
		CreatedBy:              t.CreatedBy,
		CreatedByName:          t.CreatedByName,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}

func NewTournamentResponses(items []model.Tournament, now time.Time) []TournamentResponse {
	out := make([]TournamentResponse, 0, len(items))
	for i := range items {
		out = append(out, NewTournamentResponse(&items[i], now))
	}
	return out
}

/* =========================================================
   small utils
========================================================= */

func trimKeep(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
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

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
