package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skb_backend/internals/features/notices/model"
	helper "skb_backend/internals/helpers"
)

// Repository persists notices and their registrations. Missing rows come
// back as gorm.ErrRecordNotFound.
type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	Create(ctx context.Context, n *model.Notice) error
	Update(ctx context.Context, n *model.Notice) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notice, error)
	LockByID(ctx context.Context, id uuid.UUID) (*model.Notice, error)
	List(ctx context.Context, f Filter, p helper.Paging) ([]model.Notice, int64, error)

	// IncrementParticipants adds one seat while the notice has room.
	IncrementParticipants(ctx context.Context, id uuid.UUID) (bool, error)
	DecrementParticipants(ctx context.Context, id uuid.UUID) error

	CreateRegistration(ctx context.Context, r *model.Registration) error
	UpdateRegistration(ctx context.Context, r *model.Registration) error
	FindActiveRegistration(ctx context.Context, noticeID uuid.UUID, skbID string) (*model.Registration, error)
	ListRegistrations(ctx context.Context, noticeID uuid.UUID, f RegistrationFilter, p helper.Paging) ([]model.Registration, int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

const (
	noticeSelect = "notices.*, admin_users.username AS created_by_name"
	noticeJoin   = "LEFT JOIN admin_users ON admin_users.id = notices.created_by"
)

func (r *gormRepository) Create(ctx context.Context, n *model.Notice) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *gormRepository) Update(ctx context.Context, n *model.Notice) error {
	res := r.db.WithContext(ctx).Model(n).
		Select("*").
		Omit("id", "current_participants", "created_by", "created_at").
		Updates(n)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete cascades to notice_registrations.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Notice{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Notice, error) {
	var n model.Notice
	err := r.db.WithContext(ctx).
		Select(noticeSelect).
		Joins(noticeJoin).
		Where("notices.id = ?", id).
		Take(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *gormRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.Notice, error) {
	var n model.Notice
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *gormRepository) List(ctx context.Context, f Filter, p helper.Paging) ([]model.Notice, int64, error) {
	var total int64
	if err := f.Apply(r.db.WithContext(ctx).Model(&model.Notice{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]model.Notice, 0, p.Limit)
	err := f.Apply(r.db.WithContext(ctx).Model(&model.Notice{})).
		Select(noticeSelect).
		Joins(noticeJoin).
		Order("notices.created_at DESC, notices.id DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *gormRepository) IncrementParticipants(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Notice{}).
		Where("id = ? AND (max_participants IS NULL OR current_participants < max_participants)", id).
		UpdateColumn("current_participants", gorm.Expr("current_participants + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *gormRepository) DecrementParticipants(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notice{}).
		Where("id = ?", id).
		UpdateColumn("current_participants", gorm.Expr("GREATEST(current_participants - 1, 0)")).Error
}

/* ====================== REGISTRATIONS ====================== */

func (r *gormRepository) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *gormRepository) UpdateRegistration(ctx context.Context, reg *model.Registration) error {
	res := r.db.WithContext(ctx).Model(reg).
		Select("name", "status", "updated_at").
		Updates(reg)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) FindActiveRegistration(ctx context.Context, noticeID uuid.UUID, skbID string) (*model.Registration, error) {
	var reg model.Registration
	err := r.db.WithContext(ctx).
		Where("notice_id = ? AND skb_id = ? AND status <> ?", noticeID, skbID, model.RegistrationCancelled).
		Take(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *gormRepository) ListRegistrations(ctx context.Context, noticeID uuid.UUID, f RegistrationFilter, p helper.Paging) ([]model.Registration, int64, error) {
	base := func() *gorm.DB {
		return f.Apply(r.db.WithContext(ctx).Model(&model.Registration{}).Where("notice_id = ?", noticeID))
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]model.Registration, 0, p.Limit)
	err := base().
		Order("registered_at DESC, id DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
