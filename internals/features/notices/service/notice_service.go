package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"skb_backend/internals/constants"
	"skb_backend/internals/features/notices/dto"
	"skb_backend/internals/features/notices/model"
	"skb_backend/internals/features/notices/repository"
	"skb_backend/internals/features/registration"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/helpers/media"
	"skb_backend/internals/metrics"
)

const (
	resourceNotice   = "notice"
	attachmentFolder = "notices"

	DefaultPerPage             = 10
	DefaultRegistrationPerPage = 20
)

var errNoticeNotFound = apperror.NotFound("notice not found")

// Upload is a file already read from the request.
type Upload struct {
	Filename string
	Data     []byte
}

type Service struct {
	repo    repository.Repository
	store   media.Storage
	metrics metrics.Recorder
	now     func() time.Time
}

func New(repo repository.Repository, store media.Storage, rec metrics.Recorder) *Service {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{
		repo:    repo,
		store:   store,
		metrics: rec,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func dbErr(err error, notFound *apperror.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperror.FromDB(err, "")
}

/* =========================================================
   NOTICES
========================================================= */

func (s *Service) List(ctx context.Context, q dto.ListNoticeQuery, p helper.Paging, admin bool) ([]dto.NoticeResponse, helper.Pagination, error) {
	var fe map[string][]string
	if q.Category != "" && !constants.InEnum(constants.NoticeCategories, q.Category) {
		fe = helper.AddFieldError(fe, "category", "must be one of: "+strings.Join(constants.NoticeCategories, ", "))
	}
	if q.Priority != "" && !constants.InEnum(constants.NoticePriorities, q.Priority) {
		fe = helper.AddFieldError(fe, "priority", "must be one of: "+strings.Join(constants.NoticePriorities, ", "))
	}
	if fe != nil {
		return nil, helper.Pagination{}, apperror.Validation(fe)
	}

	f := repository.Filter{Search: q.Search, Category: q.Category, Priority: q.Priority, IsActive: q.IsActive}
	if !admin {
		active := true
		f.IsActive = &active
	}
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, helper.Pagination{}, apperror.Internal(err)
	}
	return dto.NewNoticeResponses(items, s.now()), helper.BuildPagination(total, p), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID, admin bool) (*dto.NoticeResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbErr(err, errNoticeNotFound)
	}
	if !n.IsActive && !admin {
		return nil, errNoticeNotFound
	}
	resp := dto.NewNoticeResponse(n, s.now())
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateNoticeRequest, uploads []Upload, createdBy uuid.UUID) (*dto.NoticeResponse, error) {
	req.Normalize()
	fe := helper.ValidateStruct(req)
	n, dateErrs := req.ToModel(createdBy)
	fe = helper.MergeFieldErrors(fe, dateErrs)
	if _, bad := fe["category"]; !bad {
		fe = helper.MergeFieldErrors(fe, dto.VariantErrors(n))
	}
	mimes, uploadErrs := checkUploads(uploads)
	fe = helper.MergeFieldErrors(fe, uploadErrs)
	if fe != nil {
		return nil, apperror.Validation(fe)
	}

	stored, err := s.storeAttachments(ctx, uploads, mimes)
	if err != nil {
		return nil, err
	}
	n.Attachments = stored

	if err := s.repo.Create(ctx, n); err != nil {
		s.discard(ctx, stored)
		return nil, apperror.FromDB(err, "notice already exists")
	}
	logrus.WithFields(logrus.Fields{
		"notice_id":   n.ID,
		"category":    n.Category,
		"attachments": len(stored),
	}).Info("notice created")
	return s.Get(ctx, n.ID, true)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateNoticeRequest) (*dto.NoticeResponse, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}

	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		n, err := tx.LockByID(ctx, id)
		if err != nil {
			return dbErr(err, errNoticeNotFound)
		}
		fe := req.ApplyToModel(n)
		fe = helper.MergeFieldErrors(fe, dto.VariantErrors(n))
		if n.CurrentParticipants > 0 {
			if !n.IsTournament() {
				fe = helper.AddFieldError(fe, "category", "cannot change while registrations are active")
			} else if n.MaxParticipants != nil && *n.MaxParticipants < n.CurrentParticipants {
				fe = helper.AddFieldError(fe, "max_participants", "cannot be lower than the current participant count")
			}
		}
		if fe != nil {
			return apperror.Validation(fe)
		}
		if err := tx.Update(ctx, n); err != nil {
			return dbErr(err, errNoticeNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id, true)
}

// Delete removes the notice, its registrations and its stored files.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dbErr(err, errNoticeNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return dbErr(err, errNoticeNotFound)
	}
	s.discard(ctx, n.Attachments)
	logrus.WithField("notice_id", id).Info("notice deleted")
	return nil
}

/* =========================================================
   ATTACHMENTS
========================================================= */

func checkUploads(uploads []Upload) ([]string, map[string][]string) {
	var fe map[string][]string
	if len(uploads) > media.MaxAttachments {
		return nil, helper.AddFieldError(fe, "attachments", fmt.Sprintf("at most %d files are allowed", media.MaxAttachments))
	}
	mimes := make([]string, len(uploads))
	for i, u := range uploads {
		if int64(len(u.Data)) > media.MaxAttachmentBytes {
			fe = helper.AddFieldError(fe, "attachments", fmt.Sprintf("%s exceeds %d MB", u.Filename, media.MaxAttachmentBytes>>20))
			continue
		}
		mime, err := media.AttachmentType(u.Filename, u.Data)
		if err != nil {
			fe = helper.AddFieldError(fe, "attachments", err.Error())
			continue
		}
		mimes[i] = mime
	}
	return mimes, fe
}

func (s *Service) storeAttachments(ctx context.Context, uploads []Upload, mimes []string) ([]model.Attachment, error) {
	out := make([]model.Attachment, 0, len(uploads))
	if len(uploads) == 0 {
		return out, nil
	}
	if s.store == nil {
		return nil, apperror.Internal(errors.New("file storage is not configured"))
	}
	for i, u := range uploads {
		url, err := s.store.Put(ctx, attachmentFolder, u.Filename, u.Data)
		if err != nil {
			s.discard(ctx, out)
			return nil, apperror.Internal(fmt.Errorf("store attachment %s: %w", u.Filename, err))
		}
		out = append(out, model.Attachment{
			Filename:     path.Base(url),
			OriginalName: u.Filename,
			URL:          url,
			Mimetype:     mimes[i],
			Size:         int64(len(u.Data)),
		})
	}
	return out, nil
}

func (s *Service) discard(ctx context.Context, files []model.Attachment) {
	for _, f := range files {
		media.DeleteQuietly(ctx, s.store, f.URL)
	}
}

/* =========================================================
   REGISTRATION
========================================================= */

// Register enters a member into a tournament notice. Same locking and
// ordered checks as tournament registration.
func (s *Service) Register(ctx context.Context, id uuid.UUID, req dto.RegisterRequest) (*dto.RegisterResult, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}

	now := s.now()
	var (
		n   *model.Notice
		reg *model.Registration
	)
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		var err error
		if n, err = tx.LockByID(ctx, id); err != nil {
			return dbErr(err, errNoticeNotFound)
		}
		if !n.IsTournament() {
			return apperror.RegistrationClosed("this notice does not accept registrations")
		}

		w := registration.Window{
			Open:     n.AcceptsRegistrations(),
			Deadline: n.RegistrationDeadline,
			Max:      n.Capacity(),
			Current:  n.CurrentParticipants,
		}
		dup := func(ctx context.Context) (bool, error) {
			_, err := tx.FindActiveRegistration(ctx, n.ID, req.SkbID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return err == nil, err
		}
		if err := registration.Admit(ctx, w, now, dup); err != nil {
			return err
		}

		reg = req.ToModel(n.ID, now)
		if err := tx.CreateRegistration(ctx, reg); err != nil {
			if err = apperror.FromDB(err, ""); apperror.Is(err, apperror.KindDuplicateKey) {
				return apperror.DuplicateRegistration("already registered for this tournament")
			}
			return err
		}
		ok, err := tx.IncrementParticipants(ctx, n.ID)
		if err != nil {
			return apperror.Internal(err)
		}
		if !ok {
			return apperror.TournamentFull("tournament is full")
		}
		n.CurrentParticipants++
		return nil
	})
	s.metrics.Registration(resourceNotice, registration.Outcome(err))
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"notice_id":       n.ID,
		"registration_id": reg.ID,
		"skb_id":          reg.SkbID,
	}).Info("notice registration accepted")
	return &dto.RegisterResult{
		Registration: dto.NewRegistrationResponse(reg),
		Notice:       dto.NewNoticeResponse(n, now),
	}, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req dto.CancelRequest) (*dto.RegistrationResponse, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}

	var reg *model.Registration
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if _, err := tx.LockByID(ctx, id); err != nil {
			return dbErr(err, errNoticeNotFound)
		}
		var err error
		if reg, err = tx.FindActiveRegistration(ctx, id, req.SkbID); err != nil {
			return dbErr(err, apperror.NotFound("no active registration found"))
		}
		reg.Status = model.RegistrationCancelled
		reg.UpdatedAt = s.now()
		if err := tx.UpdateRegistration(ctx, reg); err != nil {
			return dbErr(err, apperror.NotFound("no active registration found"))
		}
		if err := tx.DecrementParticipants(ctx, id); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.Cancellation(resourceNotice)
	logrus.WithFields(logrus.Fields{"notice_id": id, "registration_id": reg.ID}).Info("notice registration cancelled")

	resp := dto.NewRegistrationResponse(reg)
	return &resp, nil
}

func (s *Service) ListRegistrations(ctx context.Context, id uuid.UUID, q dto.ListRegistrationQuery, p helper.Paging) ([]dto.RegistrationResponse, helper.Pagination, error) {
	if q.Status != "" && !constants.InEnum(constants.RegistrationStatuses, q.Status) {
		return nil, helper.Pagination{}, apperror.Field("status", "must be one of: "+strings.Join(constants.RegistrationStatuses, ", "))
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, helper.Pagination{}, dbErr(err, errNoticeNotFound)
	}
	items, total, err := s.repo.ListRegistrations(ctx, id, repository.RegistrationFilter{Search: q.Search, Status: q.Status}, p)
	if err != nil {
		return nil, helper.Pagination{}, apperror.Internal(err)
	}
	return dto.NewRegistrationResponses(items), helper.BuildPagination(total, p), nil
}
