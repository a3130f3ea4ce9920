package testutils

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skb_backend/internals/features/notices/model"
	"skb_backend/internals/features/notices/repository"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
)

type noticeState struct {
	notices       map[uuid.UUID]model.Notice
	registrations map[uuid.UUID]model.Registration
}

// NoticeRepo implements the notices repository in memory.
type NoticeRepo struct {
	lock txLock
	st   *noticeState
}

var _ repository.Repository = (*NoticeRepo)(nil)

func NewNoticeRepo() *NoticeRepo {
	return &NoticeRepo{
		lock: newTxLock(),
		st: &noticeState{
			notices:       map[uuid.UUID]model.Notice{},
			registrations: map[uuid.UUID]model.Registration{},
		},
	}
}

func (r *NoticeRepo) Transaction(ctx context.Context, fn func(tx repository.Repository) error) error {
	if r.lock.inTx {
		return fn(r)
	}
	r.lock.mu.Lock()
	defer r.lock.mu.Unlock()

	saved := noticeState{
		notices:       cloneMap(r.st.notices),
		registrations: cloneMap(r.st.registrations),
	}
	tx := &NoticeRepo{lock: txLock{mu: r.lock.mu, inTx: true}, st: r.st}
	if err := fn(tx); err != nil {
		*r.st = saved
		return err
	}
	return nil
}

func (r *NoticeRepo) Seed(n model.Notice) {
	defer r.lock.hold()()
	r.st.notices[n.ID] = n
}

func (r *NoticeRepo) ActiveCount(id uuid.UUID) int {
	defer r.lock.hold()()
	c := 0
	for _, reg := range r.st.registrations {
		if reg.NoticeID == id && reg.IsActive() {
			c++
		}
	}
	return c
}

func (r *NoticeRepo) Create(ctx context.Context, n *model.Notice) error {
	defer r.lock.hold()()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.st.notices[n.ID] = *n
	return nil
}

func (r *NoticeRepo) Update(ctx context.Context, n *model.Notice) error {
	defer r.lock.hold()()
	cur, ok := r.st.notices[n.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	next := *n
	next.CurrentParticipants = cur.CurrentParticipants
	next.CreatedBy = cur.CreatedBy
	next.CreatedAt = cur.CreatedAt
	r.st.notices[n.ID] = next
	return nil
}

func (r *NoticeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.lock.hold()()
	if _, ok := r.st.notices[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.st.notices, id)
	for rid, reg := range r.st.registrations {
		if reg.NoticeID == id {
			delete(r.st.registrations, rid)
		}
	}
	return nil
}

func (r *NoticeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Notice, error) {
	defer r.lock.hold()()
	n, ok := r.st.notices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &n, nil
}

func (r *NoticeRepo) LockByID(ctx context.Context, id uuid.UUID) (*model.Notice, error) {
	return r.FindByID(ctx, id)
}

func (r *NoticeRepo) List(ctx context.Context, f repository.Filter, p helper.Paging) ([]model.Notice, int64, error) {
	defer r.lock.hold()()
	var out []model.Notice
	for _, n := range r.st.notices {
		if f.Matches(&n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return helper.Window(out, p), int64(len(out)), nil
}

func (r *NoticeRepo) IncrementParticipants(ctx context.Context, id uuid.UUID) (bool, error) {
	defer r.lock.hold()()
	n, ok := r.st.notices[id]
	if !ok {
		return false, nil
	}
	if n.MaxParticipants != nil && n.CurrentParticipants >= *n.MaxParticipants {
		return false, nil
	}
	n.CurrentParticipants++
	r.st.notices[id] = n
	return true, nil
}

func (r *NoticeRepo) DecrementParticipants(ctx context.Context, id uuid.UUID) error {
	defer r.lock.hold()()
	n, ok := r.st.notices[id]
	if !ok {
		return nil
	}
	if n.CurrentParticipants > 0 {
		n.CurrentParticipants--
	}
	r.st.notices[id] = n
	return nil
}

func (r *NoticeRepo) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	defer r.lock.hold()()
	if _, ok := r.st.notices[reg.NoticeID]; !ok {
		return apperror.Field("notice_id", "referenced record does not exist")
	}
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	for _, o := range r.st.registrations {
		if o.NoticeID == reg.NoticeID && o.SkbID == reg.SkbID && o.IsActive() {
			return apperror.DuplicateKey("record already exists")
		}
	}
	r.st.registrations[reg.ID] = *reg
	return nil
}

func (r *NoticeRepo) UpdateRegistration(ctx context.Context, reg *model.Registration) error {
	defer r.lock.hold()()
	cur, ok := r.st.registrations[reg.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cur.Name = reg.Name
	cur.Status = reg.Status
	cur.UpdatedAt = reg.UpdatedAt
	r.st.registrations[reg.ID] = cur
	return nil
}

func (r *NoticeRepo) FindActiveRegistration(ctx context.Context, noticeID uuid.UUID, skbID string) (*model.Registration, error) {
	defer r.lock.hold()()
	for _, reg := range r.st.registrations {
		if reg.NoticeID == noticeID && reg.SkbID == skbID && reg.IsActive() {
			return &reg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *NoticeRepo) ListRegistrations(ctx context.Context, noticeID uuid.UUID, f repository.RegistrationFilter, p helper.Paging) ([]model.Registration, int64, error) {
	defer r.lock.hold()()
	var out []model.Registration
	for _, reg := range r.st.registrations {
		if reg.NoticeID == noticeID && f.Matches(&reg) {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegisteredAt.After(out[j].RegisteredAt)
	})
	return helper.Window(out, p), int64(len(out)), nil
}
