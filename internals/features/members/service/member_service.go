package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"skb_backend/internals/constants"
	"skb_backend/internals/features/members/dto"
	"skb_backend/internals/features/members/repository"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
)

const (
	DefaultPerPage = 10

	skbIDPrefix   = "SKB"
	skbIDAttempts = 5
	duplicateMsg  = "member with this SKB ID already exists"
)

var errMemberNotFound = apperror.NotFound("member not found")

type Service struct {
	repo repository.Repository
	now  func() time.Time
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func dbErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errMemberNotFound
	}
	return apperror.FromDB(err, duplicateMsg)
}

// List returns admin or public projections. Public callers only ever see
// active members, so asking for inactive ones yields an empty page.
func (s *Service) List(ctx context.Context, q dto.ListMemberQuery, p helper.Paging, admin bool) (any, helper.Pagination, error) {
	if q.Belt != "" && !constants.InEnum(constants.Belts, q.Belt) {
		return nil, helper.Pagination{}, apperror.Field("belt", "must be one of: "+strings.Join(constants.Belts, ", "))
	}
	f := repository.Filter{Search: q.Search, Belt: q.Belt, IsActive: q.IsActive}
	if !admin {
		if q.IsActive != nil && !*q.IsActive {
			return dto.ToResponses(nil, false), helper.BuildPagination(0, p), nil
		}
		active := true
		f.IsActive = &active
	}
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, helper.Pagination{}, apperror.Internal(err)
	}
	return dto.ToResponses(items, admin), helper.BuildPagination(total, p), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID, admin bool) (any, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbErr(err)
	}
	if !m.IsActive && !admin {
		return nil, errMemberNotFound
	}
	return dto.ToResponse(m, admin), nil
}

// Create registers a member. Self-registrations cannot choose their SKB id,
// belt or status.
func (s *Service) Create(ctx context.Context, req dto.CreateMemberRequest, admin bool) (*dto.MemberResponse, error) {
	req.Normalize()
	if !admin {
		req.Restrict()
	}
	fe := helper.ValidateStruct(req)
	if fe == nil {
		fe = s.dateErrors(&req.DateOfBirth, req.JoinDate)
	}
	if fe != nil {
		return nil, apperror.Validation(fe)
	}

	m := req.ToModel(s.now())
	if m.SkbID == nil {
		id, err := s.nextSkbID(ctx)
		if err != nil {
			return nil, err
		}
		m.SkbID = &id
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, dbErr(err)
	}
	logrus.WithFields(logrus.Fields{"member_id": m.ID, "skb_id": *m.SkbID, "by_admin": admin}).Info("member registered")
	resp := dto.NewMemberResponse(m)
	return &resp, nil
}

// nextSkbID skips sequence values already claimed by hand-assigned ids.
func (s *Service) nextSkbID(ctx context.Context) (string, error) {
	for i := 0; i < skbIDAttempts; i++ {
		n, err := s.repo.NextSkbSequence(ctx)
		if err != nil {
			return "", apperror.Internal(err)
		}
		id := FormatSkbID(n)
		taken, err := s.repo.SkbIDTaken(ctx, id)
		if err != nil {
			return "", apperror.Internal(err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", apperror.Internal(fmt.Errorf("no free SKB id after %d attempts", skbIDAttempts))
}

func FormatSkbID(n int64) string {
	return fmt.Sprintf("%s%04d", skbIDPrefix, n)
}

func (s *Service) dateErrors(dob, join *string) map[string][]string {
	var fe map[string][]string
	today := s.now()
	if dob != nil {
		if d, err := time.Parse(dto.DateLayout, *dob); err == nil && !d.Before(today) {
			fe = helper.AddFieldError(fe, "date_of_birth", "must be in the past")
		}
	}
	if join != nil {
		if d, err := time.Parse(dto.DateLayout, *join); err == nil && d.After(today) {
			fe = helper.AddFieldError(fe, "join_date", "cannot be in the future")
		}
	}
	return fe
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	req.Normalize()
	fe := helper.ValidateStruct(req)
	if fe == nil {
		fe = s.dateErrors(req.DateOfBirth, req.JoinDate)
	}
	if fe != nil {
		return nil, apperror.Validation(fe)
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbErr(err)
	}
	req.ApplyToModel(m)
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, dbErr(err)
	}
	resp := dto.NewMemberResponse(m)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return dbErr(err)
	}
	logrus.WithField("member_id", id).Info("member deleted")
	return nil
}
