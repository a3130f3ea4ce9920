package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"skb_backend/internals/configs"
	"skb_backend/internals/constants"
	"skb_backend/internals/features/users/auth/dto"
	"skb_backend/internals/features/users/auth/model"
	"skb_backend/internals/features/users/auth/repository"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
)

const accessTTLDefault = 24 * time.Hour

var errBadCredentials = apperror.Unauthorized("invalid username or password")

type Service struct {
	admins    repository.AdminRepository
	blacklist repository.BlacklistRepository
	secret    string
	ttl       time.Duration
	now       func() time.Time
}

func New(admins repository.AdminRepository, blacklist repository.BlacklistRepository, cfg configs.JWTConfig) *Service {
	ttl := cfg.Expiration
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return &Service{
		admins:    admins,
		blacklist: blacklist,
		secret:    cfg.Secret,
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func tokenHash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ========================== LOGIN ==========================
func (s *Service) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}

	user, err := s.admins.FindByUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("account is disabled")
	}

	now := s.now()
	token, exp, err := helper.IssueToken(s.secret, user.ID, user.Role, user.Username, s.ttl, now)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := s.admins.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logrus.WithError(err).WithField("admin_id", user.ID).Warn("failed to record last login")
	}
	user.LastLoginAt = &now

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        dto.NewAdminResponse(user),
	}, nil
}

// ========================== LOGOUT ==========================
func (s *Service) Logout(ctx context.Context, raw string) error {
	claims, err := helper.ParseToken(s.secret, raw)
	if err != nil {
		return apperror.Unauthorized("invalid or expired token")
	}
	exp := s.now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	if err := s.blacklist.Add(ctx, tokenHash(raw), exp); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *Service) IsRevoked(ctx context.Context, raw string) (bool, error) {
	return s.blacklist.Contains(ctx, tokenHash(raw))
}

func (s *Service) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	u, err := s.admins.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsActive, nil
}

// ========================== ME ==========================
func (s *Service) Me(ctx context.Context, id uuid.UUID) (*dto.AdminResponse, error) {
	u, err := s.admins.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("admin not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	resp := dto.NewAdminResponse(u)
	return &resp, nil
}

// ========================== ADMINS ==========================
func (s *Service) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}
	if !constants.InEnum(constants.AdminUserRoles, req.Role) {
		return nil, apperror.Field("role", "must be admin or super-admin")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u := &model.AdminUser{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.admins.Create(ctx, u); err != nil {
		return nil, apperror.FromDB(err, "username or email already in use")
	}
	resp := dto.NewAdminResponse(u)
	return &resp, nil
}

// ========================== CHANGE PASSWORD ==========================
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, req dto.ChangePasswordRequest) error {
	if fe := helper.ValidateStruct(req); fe != nil {
		return apperror.Validation(fe)
	}
	u, err := s.admins.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("admin not found")
	}
	if err != nil {
		return apperror.Internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return apperror.Field("current_password", "is incorrect")
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := s.admins.UpdatePassword(ctx, id, hash); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
