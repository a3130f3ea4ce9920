package testutils

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skb_backend/internals/features/tournaments/model"
	"skb_backend/internals/features/tournaments/repository"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
)

type tournamentState struct {
	tournaments  map[uuid.UUID]model.Tournament
	participants map[uuid.UUID]model.Participant
}

// TournamentRepo implements repository.Repository in memory.
type TournamentRepo struct {
	lock txLock
	st   *tournamentState
}

var _ repository.Repository = (*TournamentRepo)(nil)

func NewTournamentRepo() *TournamentRepo {
	return &TournamentRepo{
		lock: newTxLock(),
		st: &tournamentState{
			tournaments:  map[uuid.UUID]model.Tournament{},
			participants: map[uuid.UUID]model.Participant{},
		},
	}
}

func (r *TournamentRepo) Transaction(ctx context.Context, fn func(tx repository.Repository) error) error {
	if r.lock.inTx {
		return fn(r)
	}
	r.lock.mu.Lock()
	defer r.lock.mu.Unlock()

	saved := tournamentState{
		tournaments:  cloneMap(r.st.tournaments),
		participants: cloneMap(r.st.participants),
	}
	tx := &TournamentRepo{lock: txLock{mu: r.lock.mu, inTx: true}, st: r.st}
	if err := fn(tx); err != nil {
		*r.st = saved
		return err
	}
	return nil
}

// Seed stores t as is, counter included.
func (r *TournamentRepo) Seed(t model.Tournament) {
	defer r.lock.hold()()
	r.st.tournaments[t.ID] = t
}

// ActiveCount counts non-cancelled participants of a tournament.
func (r *TournamentRepo) ActiveCount(id uuid.UUID) int {
	defer r.lock.hold()()
	n := 0
	for _, p := range r.st.participants {
		if p.TournamentID == id && p.IsActive() {
			n++
		}
	}
	return n
}

func (r *TournamentRepo) Create(ctx context.Context, t *model.Tournament) error {
	defer r.lock.hold()()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.st.tournaments[t.ID] = *t
	return nil
}

func (r *TournamentRepo) Update(ctx context.Context, t *model.Tournament) error {
	defer r.lock.hold()()
	cur, ok := r.st.tournaments[t.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	next := *t
	next.CurrentParticipants = cur.CurrentParticipants
	next.CreatedBy = cur.CreatedBy
	next.CreatedAt = cur.CreatedAt
	r.st.tournaments[t.ID] = next
	return nil
}

func (r *TournamentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.lock.hold()()
	if _, ok := r.st.tournaments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.st.tournaments, id)
	for pid, p := range r.st.participants {
		if p.TournamentID == id {
			delete(r.st.participants, pid)
		}
	}
	return nil
}

func (r *TournamentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tournament, error) {
	defer r.lock.hold()()
	t, ok := r.st.tournaments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (r *TournamentRepo) LockByID(ctx context.Context, id uuid.UUID) (*model.Tournament, error) {
	return r.FindByID(ctx, id)
}

func (r *TournamentRepo) List(ctx context.Context, f repository.Filter, p helper.Paging) ([]model.Tournament, int64, error) {
	defer r.lock.hold()()
	var out []model.Tournament
	for _, t := range r.st.tournaments {
		if f.Matches(&t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return helper.Window(out, p), int64(len(out)), nil
}

func (r *TournamentRepo) IncrementParticipants(ctx context.Context, id uuid.UUID) (bool, error) {
	defer r.lock.hold()()
	t, ok := r.st.tournaments[id]
	if !ok || t.CurrentParticipants >= t.MaxParticipants {
		return false, nil
	}
	t.CurrentParticipants++
	r.st.tournaments[id] = t
	return true, nil
}

func (r *TournamentRepo) DecrementParticipants(ctx context.Context, id uuid.UUID) error {
	defer r.lock.hold()()
	t, ok := r.st.tournaments[id]
	if !ok {
		return nil
	}
	if t.CurrentParticipants > 0 {
		t.CurrentParticipants--
	}
	r.st.tournaments[id] = t
	return nil
}

func (r *TournamentRepo) CountActiveParticipants(ctx context.Context, id uuid.UUID) (int64, error) {
	defer r.lock.hold()()
	var n int64
	for _, p := range r.st.participants {
		if p.TournamentID == id && p.IsActive() {
			n++
		}
	}
	return n, nil
}

// conflicts mimics the partial unique indexes on participants.
func (r *TournamentRepo) conflicts(p *model.Participant) bool {
	if !p.IsActive() {
		return false
	}
	for _, o := range r.st.participants {
		if o.ID == p.ID || o.TournamentID != p.TournamentID || !o.IsActive() {
			continue
		}
		if strings.EqualFold(o.Email, p.Email) {
			return true
		}
		if o.SkbID != nil && p.SkbID != nil && *o.SkbID == *p.SkbID {
			return true
		}
	}
	return false
}

func (r *TournamentRepo) CreateParticipant(ctx context.Context, p *model.Participant) error {
	defer r.lock.hold()()
	if _, ok := r.st.tournaments[p.TournamentID]; !ok {
		return apperror.Field("tournament_id", "referenced record does not exist")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if r.conflicts(p) {
		return apperror.DuplicateKey("record already exists")
	}
	r.st.participants[p.ID] = *p
	return nil
}

func (r *TournamentRepo) UpdateParticipant(ctx context.Context, p *model.Participant) error {
	defer r.lock.hold()()
	cur, ok := r.st.participants[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	next := *p
	next.TournamentID = cur.TournamentID
	next.Email = cur.Email
	next.SkbID = cur.SkbID
	next.RegisteredAt = cur.RegisteredAt
	if r.conflicts(&next) {
		return apperror.DuplicateKey("record already exists")
	}
	r.st.participants[p.ID] = next
	return nil
}

func (r *TournamentRepo) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	defer r.lock.hold()()
	if _, ok := r.st.participants[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.st.participants, id)
	return nil
}

func (r *TournamentRepo) FindParticipant(ctx context.Context, id uuid.UUID) (*model.Participant, error) {
	defer r.lock.hold()()
	p, ok := r.st.participants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *TournamentRepo) LockParticipant(ctx context.Context, id uuid.UUID) (*model.Participant, error) {
	return r.FindParticipant(ctx, id)
}

func (r *TournamentRepo) FindActiveParticipant(ctx context.Context, tournamentID uuid.UUID, email string, skbID *string) (*model.Participant, error) {
	defer r.lock.hold()()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, p := range r.st.participants {
		if p.TournamentID != tournamentID || !p.IsActive() {
			continue
		}
		if email != "" && strings.EqualFold(p.Email, email) {
			return &p, nil
		}
		if skbID != nil && p.SkbID != nil && *p.SkbID == *skbID {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *TournamentRepo) FindParticipantByOrderID(ctx context.Context, orderID string) (*model.Participant, error) {
	defer r.lock.hold()()
	for _, p := range r.st.participants {
		if p.PaymentOrderID != nil && *p.PaymentOrderID == orderID {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *TournamentRepo) ListParticipants(ctx context.Context, tournamentID uuid.UUID, f repository.ParticipantFilter, p helper.Paging) ([]model.Participant, int64, error) {
	defer r.lock.hold()()
	var out []model.Participant
	for _, x := range r.st.participants {
		if x.TournamentID == tournamentID && f.Matches(&x) {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegisteredAt.After(out[j].RegisteredAt)
	})
	return helper.Window(out, p), int64(len(out)), nil
}
