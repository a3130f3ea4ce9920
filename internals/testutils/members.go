package testutils

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skb_backend/internals/features/members/model"
	"skb_backend/internals/features/members/repository"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
)

type MemberRepo struct {
	lock    txLock
	members map[uuid.UUID]model.Member
	seq     int64
}

var _ repository.Repository = (*MemberRepo)(nil)

func NewMemberRepo(seed ...model.Member) *MemberRepo {
	r := &MemberRepo{lock: newTxLock(), members: map[uuid.UUID]model.Member{}}
	for _, m := range seed {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		r.members[m.ID] = m
	}
	return r
}

// SetSequence positions member_skb_seq; the next draw returns n+1.
func (r *MemberRepo) SetSequence(n int64) {
	defer r.lock.hold()()
	r.seq = n
}

func (r *MemberRepo) skbTaken(skb *string, except uuid.UUID) bool {
	if skb == nil {
		return false
	}
	for _, m := range r.members {
		if m.ID != except && m.SkbID != nil && *m.SkbID == *skb {
			return true
		}
	}
	return false
}

func (r *MemberRepo) Create(ctx context.Context, m *model.Member) error {
	defer r.lock.hold()()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if r.skbTaken(m.SkbID, m.ID) {
		return apperror.DuplicateKey("member with this SKB ID already exists")
	}
	r.members[m.ID] = *m
	return nil
}

func (r *MemberRepo) Update(ctx context.Context, m *model.Member) error {
	defer r.lock.hold()()
	if _, ok := r.members[m.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if r.skbTaken(m.SkbID, m.ID) {
		return apperror.DuplicateKey("member with this SKB ID already exists")
	}
	r.members[m.ID] = *m
	return nil
}

func (r *MemberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.lock.hold()()
	if _, ok := r.members[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *MemberRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	defer r.lock.hold()()
	m, ok := r.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *MemberRepo) List(ctx context.Context, f repository.Filter, p helper.Paging) ([]model.Member, int64, error) {
	defer r.lock.hold()()
	var out []model.Member
	for _, m := range r.members {
		if f.Matches(&m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return helper.Window(out, p), int64(len(out)), nil
}

func (r *MemberRepo) NextSkbSequence(ctx context.Context) (int64, error) {
	defer r.lock.hold()()
	r.seq++
	return r.seq, nil
}

func (r *MemberRepo) SkbIDTaken(ctx context.Context, skbID string) (bool, error) {
	defer r.lock.hold()()
	return r.skbTaken(&skbID, uuid.Nil), nil
}
