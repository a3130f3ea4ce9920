package testutils

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"skb_backend/internals/features/pages/model"
	"skb_backend/internals/features/pages/repository"
)

type PageRepo struct {
	mu     sync.Mutex
	about  *model.AboutPage
	slider *model.HomeSlider
	// FailSave makes both Save methods fail.
	FailSave error
	Reads    int
}

var _ repository.Repository = (*PageRepo)(nil)

func NewPageRepo() *PageRepo { return &PageRepo{} }

func (r *PageRepo) GetAbout(ctx context.Context) (*model.AboutPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++
	if r.about == nil {
		return nil, gorm.ErrRecordNotFound
	}
	p := *r.about
	return &p, nil
}

func (r *PageRepo) SaveAbout(ctx context.Context, p *model.AboutPage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailSave != nil {
		return r.FailSave
	}
	next := *p
	next.Singleton = true
	if r.about != nil {
		next.ID = r.about.ID
		next.CreatedAt = r.about.CreatedAt
	}
	r.about = &next
	return nil
}

func (r *PageRepo) GetSlider(ctx context.Context) (*model.HomeSlider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++
	if r.slider == nil {
		return nil, gorm.ErrRecordNotFound
	}
	s := *r.slider
	s.Slides = append(s.Slides[:0:0], r.slider.Slides...)
	return &s, nil
}

func (r *PageRepo) SaveSlider(ctx context.Context, s *model.HomeSlider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailSave != nil {
		return r.FailSave
	}
	next := *s
	next.Singleton = true
	if r.slider != nil {
		next.ID = r.slider.ID
		next.CreatedAt = r.slider.CreatedAt
	}
	r.slider = &next
	return nil
}
