package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"skb_backend/internals/features/notices/model"
	helper "skb_backend/internals/helpers"
)

/* =========================================================
   CREATE
   Accepted as JSON or multipart (attachments).
========================================================= */

type CreateNoticeRequest struct {
	Title                string   `json:"title" form:"title" validate:"required,min=5,max=200"`
	Content              string   `json:"content" form:"content" validate:"required,min=10,max=5000"`
	Category             string   `json:"category" form:"category" validate:"required,enum=notice_category"`
	Priority             string   `json:"priority" form:"priority" validate:"omitempty,enum=notice_priority"`
	Date                 string   `json:"date" form:"date" validate:"required"`
	EndDate              *string  `json:"end_date" form:"end_date"`
	Location             *string  `json:"location" form:"location" validate:"omitempty,max=200"`
	Organizer            *string  `json:"organizer" form:"organizer" validate:"omitempty,max=100"`
	ContactInfo          *string  `json:"contact_info" form:"contact_info" validate:"omitempty,max=300"`
	TargetAudience       []string `json:"target_audience" form:"target_audience" validate:"omitempty,unique,dive,enum=target_audience"`
	Rules                *string  `json:"rules" form:"rules" validate:"omitempty,max=2000"`
	PrizeStructure       *string  `json:"prize_structure" form:"prize_structure" validate:"omitempty,max=1000"`
	RegistrationDeadline *string  `json:"registration_deadline" form:"registration_deadline"`
	MaxParticipants      *int     `json:"max_participants" form:"max_participants" validate:"omitempty,gte=1"`
	IsActive             *bool    `json:"is_active" form:"is_active"`
}

func (r *CreateNoticeRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	r.Priority = strings.ToLower(strings.TrimSpace(r.Priority))
	if r.Priority == "" {
		r.Priority = model.DefaultPriority
	}
	r.Date = strings.TrimSpace(r.Date)
	r.EndDate = trimPtr(r.EndDate)
	r.Location = trimPtr(r.Location)
	r.Organizer = trimPtr(r.Organizer)
	r.ContactInfo = trimPtr(r.ContactInfo)
	r.Rules = trimPtr(r.Rules)
	r.PrizeStructure = trimPtr(r.PrizeStructure)
	r.RegistrationDeadline = trimPtr(r.RegistrationDeadline)
	r.TargetAudience = compact(r.TargetAudience)
}

// ToModel parses the dates; field errors come back for unparseable ones.
func (r CreateNoticeRequest) ToModel(createdBy uuid.UUID) (*model.Notice, map[string][]string) {
	var fe map[string][]string
	n := &model.Notice{
		ID:              uuid.New(),
		Title:           r.Title,
		Content:         r.Content,
		Category:        r.Category,
		Priority:        r.Priority,
		Location:        r.Location,
		Organizer:       r.Organizer,
		ContactInfo:     r.ContactInfo,
		TargetAudience:  pq.StringArray(nonNil(r.TargetAudience)),
		Rules:           r.Rules,
		PrizeStructure:  r.PrizeStructure,
		MaxParticipants: r.MaxParticipants,
		Attachments:     []model.Attachment{},
		IsActive:        true,
	}
	if r.IsActive != nil {
		n.IsActive = *r.IsActive
	}
	if createdBy != uuid.Nil {
		n.CreatedBy = &createdBy
	}

	if d, err := helper.ParseDateTime(r.Date); err != nil {
		fe = helper.AddFieldError(fe, "date", helper.InvalidDateMessage)
	} else {
		n.Date = d
	}
	n.EndDate, fe = parseOptional(fe, "end_date", r.EndDate)
	n.RegistrationDeadline, fe = parseOptional(fe, "registration_deadline", r.RegistrationDeadline)
	return n, fe
}

/* =========================================================
   UPDATE (partial)
   Empty strings clear optional fields.
========================================================= */

type UpdateNoticeRequest struct {
	Title                *string  `json:"title" validate:"omitempty,min=5,max=200"`
	Content              *string  `json:"content" validate:"omitempty,min=10,max=5000"`
	Category             *string  `json:"category" validate:"omitempty,enum=notice_category"`
	Priority             *string  `json:"priority" validate:"omitempty,enum=notice_priority"`
	Date                 *string  `json:"date"`
	EndDate              *string  `json:"end_date"`
	Location             *string  `json:"location" validate:"omitempty,max=200"`
	Organizer            *string  `json:"organizer" validate:"omitempty,max=100"`
	ContactInfo          *string  `json:"contact_info" validate:"omitempty,max=300"`
	TargetAudience       []string `json:"target_audience" validate:"omitempty,unique,dive,enum=target_audience"`
	Rules                *string  `json:"rules" validate:"omitempty,max=2000"`
	PrizeStructure       *string  `json:"prize_structure" validate:"omitempty,max=1000"`
	RegistrationDeadline *string  `json:"registration_deadline"`
	MaxParticipants      *int     `json:"max_participants" validate:"omitempty,gte=1"`
	IsActive             *bool    `json:"is_active"`
}

// Normalize trims before validation so a blank title or content is rejected
// rather than stored empty.
func (r *UpdateNoticeRequest) Normalize() {
	r.Title = trimKeep(r.Title)
	r.Content = trimKeep(r.Content)
	r.Category = lowerKeep(r.Category)
	r.Priority = lowerKeep(r.Priority)
}

// ApplyToModel mutates n. Moving a notice out of the tournament category
// drops its tournament terms unless the request sets them again.
func (r UpdateNoticeRequest) ApplyToModel(n *model.Notice) map[string][]string {
	var fe map[string][]string

	if r.Category != nil {
		next := strings.ToLower(strings.TrimSpace(*r.Category))
		if next != model.CategoryTournament && n.IsTournament() {
			n.Rules, n.PrizeStructure, n.RegistrationDeadline, n.MaxParticipants = nil, nil, nil, nil
		}
		n.Category = next
	}
	if r.Title != nil {
		n.Title = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil {
		n.Content = strings.TrimSpace(*r.Content)
	}
	if r.Priority != nil {
		n.Priority = strings.ToLower(strings.TrimSpace(*r.Priority))
	}
	if r.Date != nil {
		if d, err := helper.ParseDateTime(*r.Date); err != nil {
			fe = helper.AddFieldError(fe, "date", helper.InvalidDateMessage)
		} else {
			n.Date = d
		}
	}
	if r.EndDate != nil {
		n.EndDate, fe = parseOptional(fe, "end_date", trimPtr(r.EndDate))
	}
	if r.Location != nil {
		n.Location = trimPtr(r.Location)
	}
	if r.Organizer != nil {
		n.Organizer = trimPtr(r.Organizer)
	}
	if r.ContactInfo != nil {
		n.ContactInfo = trimPtr(r.ContactInfo)
	}
	if r.TargetAudience != nil {
		n.TargetAudience = pq.StringArray(compact(r.TargetAudience))
	}
	if r.Rules != nil {
		n.Rules = trimPtr(r.Rules)
	}
	if r.PrizeStructure != nil {
		n.PrizeStructure = trimPtr(r.PrizeStructure)
	}
	if r.RegistrationDeadline != nil {
		n.RegistrationDeadline, fe = parseOptional(fe, "registration_deadline", trimPtr(r.RegistrationDeadline))
	}
	if r.MaxParticipants != nil {
		n.MaxParticipants = r.MaxParticipants
	}
	if r.IsActive != nil {
		n.IsActive = *r.IsActive
	}
	return fe
}

// VariantErrors checks the category-dependent shape of a notice: tournament
// notices must carry a deadline and a capacity, other categories must not
// carry any tournament terms.
func VariantErrors(n *model.Notice) map[string][]string {
	var fe map[string][]string
	if n.EndDate != nil && n.EndDate.Before(n.Date) {
		fe = helper.AddFieldError(fe, "end_date", "must be on or after date")
	}

	if n.IsTournament() {
		if n.RegistrationDeadline == nil {
			fe = helper.AddFieldError(fe, "registration_deadline", "is required for tournaments")
		}
		if n.MaxParticipants == nil {
			fe = helper.AddFieldError(fe, "max_participants", "is required for tournaments")
		} else if *n.MaxParticipants < 1 {
			fe = helper.AddFieldError(fe, "max_participants", "must be greater than or equal to 1")
		}
		return fe
	}

	const onlyTournament = "is only allowed for tournament notices"
	if n.Rules != nil {
		fe = helper.AddFieldError(fe, "rules", onlyTournament)
	}
	if n.PrizeStructure != nil {
		fe = helper.AddFieldError(fe, "prize_structure", onlyTournament)
	}
	if n.RegistrationDeadline != nil {
		fe = helper.AddFieldError(fe, "registration_deadline", onlyTournament)
	}
	if n.MaxParticipants != nil {
		fe = helper.AddFieldError(fe, "max_participants", onlyTournament)
	}
	return fe
}

/* =========================================================
   QUERY
========================================================= */

type ListNoticeQuery struct {
	Search   string
	Category string
	Priority string
	IsActive *bool
}

/* =========================================================
   RESPONSE
========================================================= */

type NoticeResponse struct {
	ID                     uuid.UUID          `json:"id"`
	Title                  string             `json:"title"`
	Content                string             `json:"content"`
	Category               string             `json:"category"`
	Priority               string             `json:"priority"`
	Date                   time.Time          `json:"date"`
	EndDate                *time.Time         `json:"end_date,omitempty"`
	Location               *string            `json:"location,omitempty"`
	Organizer              *string            `json:"organizer,omitempty"`
	ContactInfo            *string            `json:"contact_info,omitempty"`
	TargetAudience         []string           `json:"target_audience"`
	Rules                  *string            `json:"rules,omitempty"`
	PrizeStructure         *string            `json:"prize_structure,omitempty"`
	RegistrationDeadline   *time.Time         `json:"registration_deadline,omitempty"`
	MaxParticipants        *int               `json:"max_participants,omitempty"`
	CurrentParticipants    int                `json:"current_participants"`
	SpotsLeft              *int               `json:"spots_left,omitempty"`
	AcceptingRegistrations bool               `json:"accepting_registrations"`
	RegistrationCountdown  *helper.Countdown  `json:"registration_countdown,omitempty"`
	Attachments            []model.Attachment `json:"attachments"`
	IsActive               bool               `json:"is_active"`
	CreatedBy              *uuid.UUID         `json:"created_by,omitempty"`
	CreatedByName          string             `json:"created_by_name,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

func NewNoticeResponse(n *model.Notice, now time.Time) NoticeResponse {
	resp := NoticeResponse{
		ID:                   n.ID,
		Title:                n.Title,
		Content:              n.Content,
		Category:             n.Category,
		Priority:             n.Priority,
		Date:                 n.Date,
		EndDate:              n.EndDate,
		Location:             n.Location,
		Organizer:            n.Organizer,
		ContactInfo:          n.ContactInfo,
		TargetAudience:       nonNil(n.TargetAudience),
		Rules:                n.Rules,
		PrizeStructure:       n.PrizeStructure,
		RegistrationDeadline: n.RegistrationDeadline,
		MaxParticipants:      n.MaxParticipants,
		CurrentParticipants:  n.CurrentParticipants,
		SpotsLeft:            n.SpotsLeft(),
		Attachments:          []model.Attachment(n.Attachments),
		IsActive:             n.IsActive,
		CreatedBy:            n.CreatedBy,
		CreatedByName:        n.CreatedByName,
		CreatedAt:            n.CreatedAt,
		UpdatedAt:            n.UpdatedAt,
	}
	if resp.Attachments == nil {
		resp.Attachments = []model.Attachment{}
	}

	if n.IsTournament() {
		open := n.AcceptsRegistrations()
		if n.RegistrationDeadline != nil {
			cd := helper.Remaining(*n.RegistrationDeadline, now)
			resp.RegistrationCountdown = &cd
			open = open && !cd.Expired
		}
		if left := n.SpotsLeft(); left != nil && *left == 0 {
			open = false
		}
		resp.AcceptingRegistrations = open
	}
	return resp
}

func NewNoticeResponses(items []model.Notice, now time.Time) []NoticeResponse {
	out := make([]NoticeResponse, 0, len(items))
	for i := range items {
		out = append(out, NewNoticeResponse(&items[i], now))
	}
	return out
}

/* =========================================================
   small utils
========================================================= */

func parseOptional(fe map[string][]string, field string, raw *string) (*time.Time, map[string][]string) {
	if raw == nil {
		return nil, fe
	}
	t, err := helper.ParseDateTime(*raw)
	if err != nil {
		return nil, helper.AddFieldError(fe, field, helper.InvalidDateMessage)
	}
	return &t, fe
}

func trimKeep(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func lowerKeep(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
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

func compact(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
