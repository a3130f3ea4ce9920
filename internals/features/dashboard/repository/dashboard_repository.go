package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skb_backend/internals/features/dashboard/model"
)

type Repository interface {
	Counts(ctx context.Context, since time.Time) (model.Counts, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Counts runs one round trip; participant recency is by registered_at.
func (r *gormRepository) Counts(ctx context.Context, since time.Time) (model.Counts, error) {
	var row struct {
		Members            int64
		Notices            int64
		Events             int64
		TournamentNotices  int64
		Tournaments        int64
		GalleryImages      int64
		RecentParticipants int64
	}
	err := r.db.WithContext(ctx).Raw(`
SELECT
  (SELECT COUNT(*) FROM members)                                        AS members,
  (SELECT COUNT(*) FROM notices WHERE category = 'notice')              AS notices,
  (SELECT COUNT(*) FROM notices WHERE category = 'event')               AS events,
  (SELECT COUNT(*) FROM notices WHERE category = 'tournament')          AS tournament_notices,
  (SELECT COUNT(*) FROM tournaments)                                    AS tournaments,
  (SELECT COUNT(*) FROM gallery_images)                                 AS gallery_images,
  (SELECT COUNT(*) FROM participants WHERE registered_at >= ?)          AS recent_participants
`, since).Scan(&row).Error
	if err != nil {
		return model.Counts{}, err
	}
	return model.Counts(row), nil
}
