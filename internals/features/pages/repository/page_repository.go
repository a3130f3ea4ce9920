package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skb_backend/internals/features/pages/model"
)

// Repository reads and upserts the page singletons. Get* return
// gorm.ErrRecordNotFound before the first save.
type Repository interface {
	GetAbout(ctx context.Context) (*model.AboutPage, error)
	SaveAbout(ctx context.Context, p *model.AboutPage) error
	GetSlider(ctx context.Context) (*model.HomeSlider, error)
	SaveSlider(ctx context.Context, s *model.HomeSlider) error
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

var onSingleton = []clause.Column{{Name: "singleton"}}

func (r *gormRepository) GetAbout(ctx context.Context) (*model.AboutPage, error) {
	var p model.AboutPage
	err := r.db.WithContext(ctx).
		Select("about_pages.*, admin_users.username AS last_updated_by_name").
		Joins("LEFT JOIN admin_users ON admin_users.id = about_pages.last_updated_by").
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) SaveAbout(ctx context.Context, p *model.AboutPage) error {
	p.Singleton = true
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: onSingleton,
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "description", "banner_image_url", "last_updated_by", "last_updated_at",
			}),
		}).
		Create(p).Error
}

func (r *gormRepository) GetSlider(ctx context.Context) (*model.HomeSlider, error) {
	var s model.HomeSlider
	err := r.db.WithContext(ctx).
		Select("home_sliders.*, admin_users.username AS last_updated_by_name").
		Joins("LEFT JOIN admin_users ON admin_users.id = home_sliders.last_updated_by").
		Take(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *gormRepository) SaveSlider(ctx context.Context, s *model.HomeSlider) error {
	s.Singleton = true
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: onSingleton,
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "subtitle", "slides", "is_active", "last_updated_by", "updated_at",
			}),
		}).
		Create(s).Error
}
