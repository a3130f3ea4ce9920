package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skb_backend/internals/features/gallery/model"
	helper "skb_backend/internals/helpers"
)

type Repository interface {
	Create(ctx context.Context, img *model.GalleryImage) error
	Update(ctx context.Context, img *model.GalleryImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.GalleryImage, error)
	List(ctx context.Context, f Filter, p helper.Paging) ([]model.GalleryImage, int64, error)
}

type Filter struct {
	Search   string
	Category string
	IsActive *bool
}

func (f Filter) Apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := helper.ContainsPattern(s)
		q = q.Where("(LOWER(gallery_images.title) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(gallery_images.description, '')) LIKE ? ESCAPE '\\')", like, like)
	}
	if f.Category != "" {
		q = q.Where("gallery_images.category = ?", f.Category)
	}
	if f.IsActive != nil {
		q = q.Where("gallery_images.is_active = ?", *f.IsActive)
	}
	return q
}

func (f Filter) Matches(img *model.GalleryImage) bool {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		desc := ""
		if img.Description != nil {
			desc = *img.Description
		}
		if !strings.Contains(strings.ToLower(img.Title), s) && !strings.Contains(strings.ToLower(desc), s) {
			return false
		}
	}
	if f.Category != "" && img.Category != f.Category {
		return false
	}
	return f.IsActive == nil || img.IsActive == *f.IsActive
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

const (
	gallerySelect = "gallery_images.*, admin_users.username AS uploaded_by_name"
	galleryJoin   = "LEFT JOIN admin_users ON admin_users.id = gallery_images.uploaded_by"
)

func (r *gormRepository) Create(ctx context.Context, img *model.GalleryImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *gormRepository) Update(ctx context.Context, img *model.GalleryImage) error {
	res := r.db.WithContext(ctx).Model(img).
		Select("*").
		Omit("id", "uploaded_by", "created_at").
		Updates(img)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.GalleryImage{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GalleryImage, error) {
	var img model.GalleryImage
	err := r.db.WithContext(ctx).
		Select(gallerySelect).
		Joins(galleryJoin).
		Where("gallery_images.id = ?", id).
		Take(&img).Error
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *gormRepository) List(ctx context.Context, f Filter, p helper.Paging) ([]model.GalleryImage, int64, error) {
	var total int64
	if err := f.Apply(r.db.WithContext(ctx).Model(&model.GalleryImage{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]model.GalleryImage, 0, p.Limit)
	err := f.Apply(r.db.WithContext(ctx).Model(&model.GalleryImage{})).
		Select(gallerySelect).
		Joins(galleryJoin).
		Order("gallery_images.created_at DESC, gallery_images.id DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
