package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skb_backend/internals/features/tournaments/model"
	helper "skb_backend/internals/helpers"
)

// Repository is the persistence port of the tournaments feature. Methods
// return gorm.ErrRecordNotFound when a row is missing.
type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	Create(ctx context.Context, t *model.Tournament) error
	Update(ctx context.Context, t *model.Tournament) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tournament, error)
	// LockByID takes a row lock until the surrounding transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*model.Tournament, error)
	List(ctx context.Context, f Filter, p helper.Paging) ([]model.Tournament, int64, error)

	// IncrementParticipants adds one seat only while current < max.
	IncrementParticipants(ctx context.Context, id uuid.UUID) (bool, error)
	DecrementParticipants(ctx context.Context, id uuid.UUID) error
	CountActiveParticipants(ctx context.Context, id uuid.UUID) (int64, error)

	CreateParticipant(ctx context.Context, p *model.Participant) error
	UpdateParticipant(ctx context.Context, p *model.Participant) error
	DeleteParticipant(ctx context.Context, id uuid.UUID) error
	FindParticipant(ctx context.Context, id uuid.UUID) (*model.Participant, error)
	LockParticipant(ctx context.Context, id uuid.UUID) (*model.Participant, error)
	// FindActiveParticipant matches by e-mail (case-insensitive) or SKB id.
	FindActiveParticipant(ctx context.Context, tournamentID uuid.UUID, email string, skbID *string) (*model.Participant, error)
	FindParticipantByOrderID(ctx context.Context, orderID string) (*model.Participant, error)
	ListParticipants(ctx context.Context, tournamentID uuid.UUID, f ParticipantFilter, p helper.Paging) ([]model.Participant, int64, error)
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

/* ====================== TOURNAMENTS ====================== */

const tournamentSelect = "tournaments.*, admin_users.username AS created_by_name"
const tournamentJoin = "LEFT JOIN admin_users ON admin_users.id = tournaments.created_by"

func (r *gormRepository) Create(ctx context.Context, t *model.Tournament) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update never touches the counter or the creator.
func (r *gormRepository) Update(ctx context.Context, t *model.Tournament) error {
	res := r.db.WithContext(ctx).Model(t).
		Select("*").
		Omit("id", "current_participants", "created_by", "created_at").
		Updates(t)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Tournament{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tournament, error) {
	var t model.Tournament
	err := r.db.WithContext(ctx).
		Select(tournamentSelect).
		Joins(tournamentJoin).
		Where("tournaments.id = ?", id).
		Take(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.Tournament, error) {
	var t model.Tournament
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) List(ctx context.Context, f Filter, p helper.Paging) ([]model.Tournament, int64, error) {
	var total int64
	if err := f.Apply(r.db.WithContext(ctx).Model(&model.Tournament{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]model.Tournament, 0, p.Limit)
	err := f.Apply(r.db.WithContext(ctx).Model(&model.Tournament{})).
		Select(tournamentSelect).
		Joins(tournamentJoin).
		Order("tournaments.start_date ASC, tournaments.id ASC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *gormRepository) IncrementParticipants(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Tournament{}).
		Where("id = ? AND current_participants < max_participants", id).
		UpdateColumn("current_participants", gorm.Expr("current_participants + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *gormRepository) DecrementParticipants(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Tournament{}).
		Where("id = ?", id).
		UpdateColumn("current_participants", gorm.Expr("GREATEST(current_participants - 1, 0)")).Error
}

func (r *gormRepository) CountActiveParticipants(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Participant{}).
		Where("tournament_id = ? AND status <> ?", id, model.ParticipantCancelled).
		Count(&n).Error
	return n, err
}

/* ====================== PARTICIPANTS ====================== */

func (r *gormRepository) CreateParticipant(ctx context.Context, p *model.Participant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// UpdateParticipant keeps the identity columns (email, skb_id) untouched.
func (r *gormRepository) UpdateParticipant(ctx context.Context, p *model.Participant) error {
	res := r.db.WithContext(ctx).Model(p).
		Select("*").
		Omit("id", "tournament_id", "email", "skb_id", "registered_at").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Participant{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) FindParticipant(ctx context.Context, id uuid.UUID) (*model.Participant, error) {
	var p model.Participant
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) LockParticipant(ctx context.Context, id uuid.UUID) (*model.Participant, error) {
	var p model.Participant
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) FindActiveParticipant(ctx context.Context, tournamentID uuid.UUID, email string, skbID *string) (*model.Participant, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	q := r.db.WithContext(ctx).
		Where("tournament_id = ? AND status <> ?", tournamentID, model.ParticipantCancelled)

	switch {
	case email != "" && skbID != nil:
		q = q.Where("(LOWER(email) = ? OR skb_id = ?)", email, *skbID)
	case email != "":
		q = q.Where("LOWER(email) = ?", email)
	case skbID != nil:
		q = q.Where("skb_id = ?", *skbID)
	default:
		return nil, gorm.ErrRecordNotFound
	}

	var p model.Participant
	if err := q.Order("registered_at DESC").Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) FindParticipantByOrderID(ctx context.Context, orderID string) (*model.Participant, error) {
	var p model.Participant
	if err := r.db.WithContext(ctx).Where("payment_order_id = ?", orderID).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) ListParticipants(ctx context.Context, tournamentID uuid.UUID, f ParticipantFilter, p helper.Paging) ([]model.Participant, int64, error) {
	base := func() *gorm.DB {
		return f.Apply(r.db.WithContext(ctx).Model(&model.Participant{}).
			Where("tournament_id = ?", tournamentID))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]model.Participant, 0, p.Limit)
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
