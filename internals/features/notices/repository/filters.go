package repository

import (
	"strings"

	"gorm.io/gorm"

	"skb_backend/internals/features/notices/model"
	helper "skb_backend/internals/helpers"
)

// Filter narrows notice lists. Empty fields match everything.
type Filter struct {
	Search   string
	Category string
	Priority string
	IsActive *bool
}

func (f Filter) Apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := helper.ContainsPattern(s)
		q = q.Where("(LOWER(notices.title) LIKE ? ESCAPE '\\' OR LOWER(notices.content) LIKE ? ESCAPE '\\')", like, like)
	}
	if f.Category != "" {
		q = q.Where("notices.category = ?", f.Category)
	}
	if f.Priority != "" {
		q = q.Where("notices.priority = ?", f.Priority)
	}
	if f.IsActive != nil {
		q = q.Where("notices.is_active = ?", *f.IsActive)
	}
	return q
}

// Matches mirrors Apply for in-memory stores.
func (f Filter) Matches(n *model.Notice) bool {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		if !strings.Contains(strings.ToLower(n.Title), s) && !strings.Contains(strings.ToLower(n.Content), s) {
			return false
		}
	}
	if f.Category != "" && n.Category != f.Category {
		return false
	}
	if f.Priority != "" && n.Priority != f.Priority {
		return false
	}
	if f.IsActive != nil && n.IsActive != *f.IsActive {
		return false
	}
	return true
}

type RegistrationFilter struct {
	Search string
	Status string
}

func (f RegistrationFilter) Apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := helper.ContainsPattern(s)
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(skb_id) LIKE ? ESCAPE '\\')", like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (f RegistrationFilter) Matches(r *model.Registration) bool {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		if !strings.Contains(strings.ToLower(r.Name), s) && !strings.Contains(strings.ToLower(r.SkbID), s) {
			return false
		}
	}
	return f.Status == "" || r.Status == f.Status
}
