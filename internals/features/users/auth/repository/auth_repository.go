package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skb_backend/internals/features/users/auth/model"
)

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error)
	Create(ctx context.Context, u *model.AdminUser) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type BlacklistRepository interface {
	Add(ctx context.Context, tokenHash string, expiredAt time.Time) error
	Contains(ctx context.Context, tokenHash string) (bool, error)
	PurgeExpired(ctx context.Context, before time.Time, batch int) (int64, error)
}

/* ====================== ADMIN USERS ====================== */

type gormAdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &gormAdminRepository{db: db}
}

// FindByUsername also accepts the e-mail address.
func (r *gormAdminRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	ident := strings.ToLower(strings.TrimSpace(username))
	var u model.AdminUser
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = ? OR LOWER(email) = ?", ident, ident).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *gormAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error) {
	var u model.AdminUser
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *gormAdminRepository) Create(ctx context.Context, u *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *gormAdminRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (r *gormAdminRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res := r.db.WithContext(ctx).Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

/* ====================== TOKEN BLACKLIST ====================== */

type gormBlacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) BlacklistRepository {
	return &gormBlacklistRepository{db: db}
}

func (r *gormBlacklistRepository) Add(ctx context.Context, tokenHash string, expiredAt time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.TokenBlacklist{TokenHash: tokenHash, ExpiredAt: expiredAt}).Error
}

func (r *gormBlacklistRepository) Contains(ctx context.Context, tokenHash string) (bool, error) {
	var row model.TokenBlacklist
	err := r.db.WithContext(ctx).Select("id").Where("token_hash = ?", tokenHash).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *gormBlacklistRepository) PurgeExpired(ctx context.Context, before time.Time, batch int) (int64, error) {
	sub := r.db.Model(&model.TokenBlacklist{}).Select("id").Where("expired_at < ?", before).Limit(batch)
	res := r.db.WithContext(ctx).Where("id IN (?)", sub).Delete(&model.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
