package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"skb_backend/internals/constants"
	paymentsvc "skb_backend/internals/features/payments/service"
	"skb_backend/internals/features/registration"
	"skb_backend/internals/features/tournaments/dto"
	"skb_backend/internals/features/tournaments/model"
	"skb_backend/internals/features/tournaments/repository"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/metrics"
)

const (
	resourceTournament = "tournament"
	orderPrefix        = "SKB-TRN"

	DefaultPerPage            = 10
	DefaultParticipantPerPage = 20
)

var (
	errTournamentNotFound  = apperror.NotFound("tournament not found")
	errParticipantNotFound = apperror.NotFound("participant not found")

	errNoActiveRegistration = apperror.NotFound("no active registration found")
)

type Service struct {
	repo     repository.Repository
	payments paymentsvc.Gateway
	metrics  metrics.Recorder
	now      func() time.Time
}

func New(repo repository.Repository, payments paymentsvc.Gateway, rec metrics.Recorder) *Service {
	if payments == nil {
		payments = paymentsvc.Disabled{}
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{
		repo:     repo,
		payments: payments,
		metrics:  rec,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source.
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
   TOURNAMENTS
========================================================= */

func (s *Service) List(ctx context.Context, q dto.ListTournamentQuery, p helper.Paging, admin bool) ([]dto.TournamentResponse, helper.Pagination, error) {
	if q.Status != "" && !constants.InEnum(constants.TournamentStatuses, q.Status) {
		return nil, helper.Pagination{}, apperror.Field("status", "must be one of: "+strings.Join(constants.TournamentStatuses, ", "))
	}
	f := repository.Filter{
		Search:     q.Search,
		Status:     q.Status,
		Organizer:  q.Organizer,
		ActiveOnly: !admin,
	}
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, helper.Pagination{}, apperror.Internal(err)
	}
	return dto.NewTournamentResponses(items, s.now()), helper.BuildPagination(total, p), nil
}

// Get hides inactive tournaments from non-admin callers.
func (s *Service) Get(ctx context.Context, id uuid.UUID, admin bool) (*dto.TournamentResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbErr(err, errTournamentNotFound)
	}
	if !t.IsActive && !admin {
		return nil, errTournamentNotFound
	}
	resp := dto.NewTournamentResponse(t, s.now())
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateTournamentRequest, createdBy uuid.UUID) (*dto.TournamentResponse, error) {
	req.Normalize()
	fe := helper.ValidateStruct(req)
	if fe == nil {
		fe = dto.ScheduleErrors(req.StartDate, req.EndDate, req.RegistrationDeadline)
	}
	if fe != nil {
		return nil, apperror.Validation(fe)
	}

	t := req.ToModel(createdBy)
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperror.FromDB(err, "tournament already exists")
	}
	logrus.WithFields(logrus.Fields{"tournament_id": t.ID, "created_by": createdBy}).Info("tournament created")
	return s.Get(ctx, t.ID, true)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTournamentRequest) (*dto.TournamentResponse, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}

	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		t, err := tx.LockByID(ctx, id)
		if err != nil {
			return dbErr(err, errTournamentNotFound)
		}
		req.ApplyToModel(t)

		fe := dto.ScheduleErrors(t.StartDate, t.EndDate, t.RegistrationDeadline)
		if t.MaxParticipants < t.CurrentParticipants {
			fe = helper.AddFieldError(fe, "max_participants", "cannot be lower than the current participant count")
		}
		if fe != nil {
			return apperror.Validation(fe)
		}
		if err := tx.Update(ctx, t); err != nil {
			return dbErr(err, errTournamentNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id, true)
}

// Delete refuses while any participant still holds a seat.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if _, err := tx.LockByID(ctx, id); err != nil {
			return dbErr(err, errTournamentNotFound)
		}
		active, err := tx.CountActiveParticipants(ctx, id)
		if err != nil {
			return apperror.Internal(err)
		}
		if active > 0 {
			return apperror.Field("participants", "tournament still has active participants")
		}
		if err := tx.Delete(ctx, id); err != nil {
			return dbErr(err, errTournamentNotFound)
		}
		logrus.WithField("tournament_id", id).Info("tournament deleted")
		return nil
	})
}

/* =========================================================
   REGISTRATION
========================================================= */

// Register admits one participant. The tournament row stays locked from the
// checks until the counter is incremented, so concurrent callers cannot
// over-admit. Admins skip the open/deadline checks but not capacity.
func (s *Service) Register(ctx context.Context, id uuid.UUID, req dto.RegisterRequest, asAdmin bool) (*dto.RegistrationResponse, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}

	now := s.now()
	var (
		t *model.Tournament
		p *model.Participant
	)
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		var err error
		if t, err = tx.LockByID(ctx, id); err != nil {
			return dbErr(err, errTournamentNotFound)
		}

		w := registration.Window{
			Open:     t.AcceptsRegistrations(),
			Deadline: &t.RegistrationDeadline,
			Max:      t.MaxParticipants,
			Current:  t.CurrentParticipants,
		}
		if asAdmin {
			w.Open, w.Deadline = true, nil
		}
		dup := func(ctx context.Context) (bool, error) {
			_, err := tx.FindActiveParticipant(ctx, t.ID, req.Email, req.SkbID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return err == nil, err
		}
		if err := registration.Admit(ctx, w, now, dup); err != nil {
			return err
		}

		p = req.ToModel(t.ID, now)
		switch {
		case t.EntryFee == 0:
			p.PaymentStatus = model.PaymentPaid
		case s.payments.Enabled():
			orderID := paymentsvc.NewOrderID(orderPrefix, now, p.ID.String()[:8])
			p.PaymentOrderID = &orderID
		}
		if err := tx.CreateParticipant(ctx, p); err != nil {
			if err = apperror.FromDB(err, ""); apperror.Is(err, apperror.KindDuplicateKey) {
				return apperror.DuplicateRegistration("already registered for this tournament")
			}
			return err
		}

		ok, err := tx.IncrementParticipants(ctx, t.ID)
		if err != nil {
			return apperror.Internal(err)
		}
		if !ok {
			return apperror.TournamentFull("tournament is full")
		}
		t.CurrentParticipants++
		return nil
	})
	s.metrics.Registration(resourceTournament, registration.Outcome(err))
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"tournament_id":  t.ID,
		"participant_id": p.ID,
		"by_admin":       asAdmin,
	}).Info("tournament registration accepted")

	resp := &dto.RegistrationResponse{
		Participant: dto.NewParticipantResponse(p),
		Tournament:  dto.NewTournamentResponse(t, now),
	}
	if p.PaymentOrderID != nil {
		resp.Payment = s.charge(ctx, t, p)
	}
	return resp, nil
}

// charge failures leave the registration pending; the admin can mark it paid.
func (s *Service) charge(ctx context.Context, t *model.Tournament, p *model.Participant) *dto.PaymentInfo {
	info := &dto.PaymentInfo{OrderID: *p.PaymentOrderID, Amount: t.EntryFee}
	req := paymentsvc.ChargeRequest{
		OrderID:  *p.PaymentOrderID,
		Amount:   t.EntryFee,
		ItemID:   t.ID.String(),
		ItemName: t.Name,
		Name:     p.Name,
		Email:    p.Email,
	}
	if p.Phone != nil {
		req.Phone = *p.Phone
	}
	ch, err := s.payments.Charge(ctx, req)
	if err != nil {
		logrus.WithError(err).WithField("order_id", info.OrderID).Warn("entry fee charge failed")
		return info
	}
	info.Token = ch.Token
	info.RedirectURL = ch.RedirectURL
	return info
}

// Cancel is the self-service path: the registrant identifies the seat by
// e-mail or SKB id.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req dto.CancelRequest) (*dto.ParticipantResponse, error) {
	req.Normalize()
	fe := helper.ValidateStruct(req)
	if req.Email == "" && req.SkbID == nil {
		fe = helper.AddFieldError(fe, "email", "email or skb_id is required")
	}
	if fe != nil {
		return nil, apperror.Validation(fe)
	}

	var p *model.Participant
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if _, err := tx.LockByID(ctx, id); err != nil {
			return dbErr(err, errTournamentNotFound)
		}
		var err error
		if p, err = tx.FindActiveParticipant(ctx, id, req.Email, req.SkbID); err != nil {
			return dbErr(err, errNoActiveRegistration)
		}
		if !ownsRegistration(p, req.Email, req.SkbID) {
			return errNoActiveRegistration
		}
		return s.release(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewParticipantResponse(p)
	return &resp, nil
}

// CancelParticipant cancels by participant id (admin).
func (s *Service) CancelParticipant(ctx context.Context, participantID uuid.UUID) (*dto.ParticipantResponse, error) {
	var p *model.Participant
	err := s.withParticipantLocked(ctx, participantID, func(tx repository.Repository, locked *model.Participant) error {
		if !locked.IsActive() {
			return errNoActiveRegistration
		}
		p = locked
		return s.release(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewParticipantResponse(p)
	return &resp, nil
}

// ownsRegistration requires every identifier the caller gave to belong to p,
// so an email and an SKB id from two different registrants match nothing.
func ownsRegistration(p *model.Participant, email string, skbID *string) bool {
	if email != "" && !strings.EqualFold(p.Email, email) {
		return false
	}
	if skbID != nil && (p.SkbID == nil || *p.SkbID != *skbID) {
		return false
	}
	return true
}

func (s *Service) release(ctx context.Context, tx repository.Repository, p *model.Participant) error {
	p.Status = model.ParticipantCancelled
	if err := tx.UpdateParticipant(ctx, p); err != nil {
		return dbErr(err, errParticipantNotFound)
	}
	if err := tx.DecrementParticipants(ctx, p.TournamentID); err != nil {
		return apperror.Internal(err)
	}
	s.metrics.Cancellation(resourceTournament)
	logrus.WithFields(logrus.Fields{
		"tournament_id":  p.TournamentID,
		"participant_id": p.ID,
	}).Info("tournament registration cancelled")
	return nil
}

// withParticipantLocked locks the tournament before the participant, the
// same order Register uses.
func (s *Service) withParticipantLocked(ctx context.Context, participantID uuid.UUID, fn func(tx repository.Repository, p *model.Participant) error) error {
	current, err := s.repo.FindParticipant(ctx, participantID)
	if err != nil {
		return dbErr(err, errParticipantNotFound)
	}
	return s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if _, err := tx.LockByID(ctx, current.TournamentID); err != nil {
			return dbErr(err, errTournamentNotFound)
		}
		p, err := tx.LockParticipant(ctx, participantID)
		if err != nil {
			return dbErr(err, errParticipantNotFound)
		}
		return fn(tx, p)
	})
}

/* =========================================================
   PARTICIPANTS (admin)
========================================================= */

func (s *Service) ListParticipants(ctx context.Context, tournamentID uuid.UUID, q dto.ListParticipantQuery, p helper.Paging) ([]dto.ParticipantResponse, helper.Pagination, error) {
	var fe map[string][]string
	if q.Status != "" && !constants.InEnum(constants.ParticipantStatuses, q.Status) {
		fe = helper.AddFieldError(fe, "status", "must be one of: "+strings.Join(constants.ParticipantStatuses, ", "))
	}
	if q.SkillLevel != "" && !constants.InEnum(constants.ParticipantSkillLevels, q.SkillLevel) {
		fe = helper.AddFieldError(fe, "skill_level", "must be one of: "+strings.Join(constants.ParticipantSkillLevels, ", "))
	}
	if fe != nil {
		return nil, helper.Pagination{}, apperror.Validation(fe)
	}
	if _, err := s.repo.FindByID(ctx, tournamentID); err != nil {
		return nil, helper.Pagination{}, dbErr(err, errTournamentNotFound)
	}

	f := repository.ParticipantFilter{Search: q.Search, Status: q.Status, SkillLevel: q.SkillLevel}
	items, total, err := s.repo.ListParticipants(ctx, tournamentID, f, p)
	if err != nil {
		return nil, helper.Pagination{}, apperror.Internal(err)
	}
	return dto.NewParticipantResponses(items), helper.BuildPagination(total, p), nil
}

func (s *Service) GetParticipant(ctx context.Context, id uuid.UUID) (*dto.ParticipantResponse, error) {
	p, err := s.repo.FindParticipant(ctx, id)
	if err != nil {
		return nil, dbErr(err, errParticipantNotFound)
	}
	resp := dto.NewParticipantResponse(p)
	return &resp, nil
}

// UpdateParticipant keeps the counter in step when the status crosses the
// cancelled boundary.
func (s *Service) UpdateParticipant(ctx context.Context, id uuid.UUID, req dto.UpdateParticipantRequest) (*dto.ParticipantResponse, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}

	var out *model.Participant
	err := s.withParticipantLocked(ctx, id, func(tx repository.Repository, p *model.Participant) error {
		wasActive := p.IsActive()
		req.ApplyToModel(p)
		nowActive := p.IsActive()

		switch {
		case wasActive && !nowActive:
			if err := tx.DecrementParticipants(ctx, p.TournamentID); err != nil {
				return apperror.Internal(err)
			}
			s.metrics.Cancellation(resourceTournament)
		case !wasActive && nowActive:
			if err := s.reinstate(ctx, tx, p); err != nil {
				return err
			}
		}

		if err := tx.UpdateParticipant(ctx, p); err != nil {
			if err = dbErr(err, errParticipantNotFound); apperror.Is(err, apperror.KindDuplicateKey) {
				return apperror.DuplicateRegistration("registrant already holds an active registration")
			}
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewParticipantResponse(out)
	return &resp, nil
}

// reinstate re-runs capacity and duplicate checks for a cancelled seat.
func (s *Service) reinstate(ctx context.Context, tx repository.Repository, p *model.Participant) error {
	t, err := tx.FindByID(ctx, p.TournamentID)
	if err != nil {
		return dbErr(err, errTournamentNotFound)
	}
	w := registration.Window{Open: true, Max: t.MaxParticipants, Current: t.CurrentParticipants}
	dup := func(ctx context.Context) (bool, error) {
		other, err := tx.FindActiveParticipant(ctx, p.TournamentID, p.Email, p.SkbID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return other.ID != p.ID, nil
	}
	if err := registration.Admit(ctx, w, s.now(), dup); err != nil {
		return err
	}
	ok, err := tx.IncrementParticipants(ctx, p.TournamentID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.TournamentFull("tournament is full")
	}
	return nil
}

func (s *Service) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	return s.withParticipantLocked(ctx, id, func(tx repository.Repository, p *model.Participant) error {
		if err := tx.DeleteParticipant(ctx, id); err != nil {
			return dbErr(err, errParticipantNotFound)
		}
		if p.IsActive() {
			if err := tx.DecrementParticipants(ctx, p.TournamentID); err != nil {
				return apperror.Internal(err)
			}
		}
		logrus.WithField("participant_id", id).Info("participant deleted")
		return nil
	})
}

// MarkPayment applies a gateway notification; it satisfies
// paymentsvc.StatusUpdater.
func (s *Service) MarkPayment(ctx context.Context, orderID, status string) error {
	if !constants.InEnum(constants.PaymentStatuses, status) {
		return apperror.Field("payment_status", "unknown payment status")
	}
	p, err := s.repo.FindParticipantByOrderID(ctx, orderID)
	if err != nil {
		return dbErr(err, apperror.NotFound("order not found"))
	}
	if p.PaymentStatus == status {
		return nil
	}
	p.PaymentStatus = status
	if err := s.repo.UpdateParticipant(ctx, p); err != nil {
		return dbErr(err, errParticipantNotFound)
	}
	return nil
}
