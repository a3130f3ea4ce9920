package repository

import (
	"strings"

	"gorm.io/gorm"

	"skb_backend/internals/features/tournaments/model"
	helper "skb_backend/internals/helpers"
)

// Filter narrows tournament lists. Empty fields match everything.
type Filter struct {
	Search     string
	Status     string
	Organizer  string
	ActiveOnly bool
}

func (f Filter) Apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := helper.ContainsPattern(s)
		q = q.Where(
			"(LOWER(tournaments.name) LIKE ? ESCAPE '\\' OR LOWER(tournaments.description) LIKE ? ESCAPE '\\' OR LOWER(tournaments.location) LIKE ? ESCAPE '\\')",
			like, like, like)
	}
	if f.Status != "" {
		q = q.Where("tournaments.status = ?", f.Status)
	}
	if o := strings.TrimSpace(f.Organizer); o != "" {
		q = q.Where("LOWER(tournaments.organizer) LIKE ? ESCAPE '\\'", helper.ContainsPattern(o))
	}
	if f.ActiveOnly {
		q = q.Where("tournaments.is_active = TRUE")
	}
	return q
}

// Matches mirrors Apply for in-memory stores.
func (f Filter) Matches(t *model.Tournament) bool {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		if !containsAny(s, t.Name, t.Description, t.Location) {
			return false
		}
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if o := strings.ToLower(strings.TrimSpace(f.Organizer)); o != "" &&
		!strings.Contains(strings.ToLower(t.Organizer), o) {
		return false
	}
	if f.ActiveOnly && !t.IsActive {
		return false
	}
	return true
}

type ParticipantFilter struct {
	Search     string
	Status     string
	SkillLevel string
}

func (f ParticipantFilter) Apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := helper.ContainsPattern(s)
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(skb_id, '')) LIKE ? ESCAPE '\\')",
			like, like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.SkillLevel != "" {
		q = q.Where("skill_level = ?", f.SkillLevel)
	}
	return q
}

func (f ParticipantFilter) Matches(p *model.Participant) bool {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		skb := ""
		if p.SkbID != nil {
			skb = *p.SkbID
		}
		if !containsAny(s, p.Name, p.Email, skb) {
			return false
		}
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.SkillLevel != "" && p.SkillLevel != f.SkillLevel {
		return false
	}
	return true
}

func containsAny(needle string, fields ...string) bool {
	for _, v := range fields {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
