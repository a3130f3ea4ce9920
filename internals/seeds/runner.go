package seeds

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"skb_backend/internals/constants"
	authModel "skb_backend/internals/features/users/auth/model"
	authService "skb_backend/internals/features/users/auth/service"
)

type Options struct {
	FakeMembers int
	FakerSeed   uint64
	// Admin is created as super-admin when no admin with that username exists.
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// EnsureAdmin returns the id of the named admin, creating it when missing.
func EnsureAdmin(ctx context.Context, db *gorm.DB, username, email, password, role string) (uuid.UUID, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return uuid.Nil, errors.New("admin username is required")
	}
	var existing authModel.AdminUser
	err := db.WithContext(ctx).Where("LOWER(username) = LOWER(?)", username).Take(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}
	if len(password) < 8 {
		return uuid.Nil, errors.New("admin password must be at least 8 characters")
	}
	hash, err := authService.HashPassword(password)
	if err != nil {
		return uuid.Nil, err
	}
	u := authModel.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		return uuid.Nil, fmt.Errorf("create admin: %w", err)
	}
	logrus.WithFields(logrus.Fields{"username": username, "role": role}).Info("admin created")
	return u.ID, nil
}

// RunAll seeds every sample dataset. Safe to run repeatedly.
func RunAll(ctx context.Context, db *gorm.DB, opt Options) error {
	adminID := uuid.Nil
	if opt.AdminUsername != "" {
		id, err := EnsureAdmin(ctx, db, opt.AdminUsername, opt.AdminEmail, opt.AdminPassword, constants.RoleSuperAdmin)
		if err != nil {
			return err
		}
		adminID = id
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"members", func() error { return SeedMembers(ctx, db, opt.FakeMembers, opt.FakerSeed) }},
		{"notices", func() error { return SeedNotices(ctx, db, adminID) }},
		{"gallery", func() error { return SeedGallery(ctx, db, adminID) }},
		{"tournaments", func() error { return SeedTournaments(ctx, db, adminID) }},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			return fmt.Errorf("seed %s: %w", s.name, err)
		}
	}
	return nil
}
