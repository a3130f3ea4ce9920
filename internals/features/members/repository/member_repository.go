package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skb_backend/internals/features/members/model"
	helper "skb_backend/internals/helpers"
)

type Repository interface {
	Create(ctx context.Context, m *model.Member) error
	Update(ctx context.Context, m *model.Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	List(ctx context.Context, f Filter, p helper.Paging) ([]model.Member, int64, error)
	// NextSkbSequence draws from member_skb_seq.
	NextSkbSequence(ctx context.Context) (int64, error)
	SkbIDTaken(ctx context.Context, skbID string) (bool, error)
}

// Filter: search over name/email/skb_id, exact belt, optional active flag.
type Filter struct {
	Search   string
	Belt     string
	IsActive *bool
}

func (f Filter) Apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := helper.ContainsPattern(s)
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(skb_id, '')) LIKE ? ESCAPE '\\')", like, like, like)
	}
	if f.Belt != "" {
		q = q.Where("belt = ?", f.Belt)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func (f Filter) Matches(m *model.Member) bool {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		skb := ""
		if m.SkbID != nil {
			skb = *m.SkbID
		}
		hit := false
		for _, v := range []string{m.Name, m.Email, skb} {
			if strings.Contains(strings.ToLower(v), s) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.Belt != "" && m.Belt != f.Belt {
		return false
	}
	if f.IsActive != nil && m.IsActive != *f.IsActive {
		return false
	}
	return true
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, m *model.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) Update(ctx context.Context, m *model.Member) error {
	res := r.db.WithContext(ctx).Model(m).
		Select("*").
		Omit("id", "created_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Member{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	var m model.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) List(ctx context.Context, f Filter, p helper.Paging) ([]model.Member, int64, error) {
	var total int64
	if err := f.Apply(r.db.WithContext(ctx).Model(&model.Member{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]model.Member, 0, p.Limit)
	err := f.Apply(r.db.WithContext(ctx).Model(&model.Member{})).
		Order("created_at DESC, id DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *gormRepository) NextSkbSequence(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('member_skb_seq')").Scan(&n).Error
	return n, err
}

func (r *gormRepository) SkbIDTaken(ctx context.Context, skbID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Member{}).Where("skb_id = ?", skbID).Count(&n).Error
	return n > 0, err
}
