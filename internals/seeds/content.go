package seeds

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	galleryDTO "skb_backend/internals/features/gallery/dto"
	galleryModel "skb_backend/internals/features/gallery/model"
	noticeDTO "skb_backend/internals/features/notices/dto"
	noticeModel "skb_backend/internals/features/notices/model"
	tournamentDTO "skb_backend/internals/features/tournaments/dto"
	tournamentModel "skb_backend/internals/features/tournaments/model"
	helper "skb_backend/internals/helpers"
)

type noticeSeed struct {
	noticeDTO.CreateNoticeRequest
	CreatedAt time.Time `json:"created_at"`
}

type gallerySeed struct {
	galleryDTO.CreateGalleryRequest
	CreatedAt time.Time `json:"created_at"`
}

// SampleNotices returns the bundled notices. Counters start at zero so they
// match the (empty) registration table.
func SampleNotices(createdBy uuid.UUID) ([]noticeModel.Notice, error) {
	var rows []noticeSeed
	if err := readJSON("notices.json", &rows); err != nil {
		return nil, fmt.Errorf("read notices: %w", err)
	}
	out := make([]noticeModel.Notice, 0, len(rows))
	for i := range rows {
		req := rows[i].CreateNoticeRequest
		req.Normalize()
		fe := helper.ValidateStruct(req)
		n, dateErrs := req.ToModel(createdBy)
		fe = helper.MergeFieldErrors(fe, dateErrs)
		if fe == nil {
			fe = noticeDTO.VariantErrors(n)
		}
		if fe != nil {
			return nil, fmt.Errorf("sample notice %d invalid: %v", i, fe)
		}
		n.CreatedAt = rows[i].CreatedAt
		n.UpdatedAt = rows[i].CreatedAt
		out = append(out, *n)
	}
	return out, nil
}

func SampleGallery(uploadedBy uuid.UUID) ([]galleryModel.GalleryImage, error) {
	var rows []gallerySeed
	if err := readJSON("gallery.json", &rows); err != nil {
		return nil, fmt.Errorf("read gallery: %w", err)
	}
	out := make([]galleryModel.GalleryImage, 0, len(rows))
	for i := range rows {
		req := rows[i].CreateGalleryRequest
		req.Normalize()
		if fe := helper.ValidateStruct(req); fe != nil {
			return nil, fmt.Errorf("sample image %d invalid: %v", i, fe)
		}
		img := req.ToModel(uploadedBy)
		img.CreatedAt = rows[i].CreatedAt
		img.UpdatedAt = rows[i].CreatedAt
		out = append(out, *img)
	}
	return out, nil
}

func SampleTournaments(createdBy uuid.UUID) ([]tournamentModel.Tournament, error) {
	var reqs []tournamentDTO.CreateTournamentRequest
	if err := readJSON("tournaments.json", &reqs); err != nil {
		return nil, fmt.Errorf("read tournaments: %w", err)
	}
	out := make([]tournamentModel.Tournament, 0, len(reqs))
	for i := range reqs {
		req := reqs[i]
		req.Normalize()
		fe := helper.MergeFieldErrors(helper.ValidateStruct(req),
			tournamentDTO.ScheduleErrors(req.StartDate, req.EndDate, req.RegistrationDeadline))
		if fe != nil {
			return nil, fmt.Errorf("sample tournament %d invalid: %v", i, fe)
		}
		out = append(out, *req.ToModel(createdBy))
	}
	return out, nil
}

// insertMissing creates rows whose key column value is not present yet.
func insertMissing[T any](ctx context.Context, db *gorm.DB, label, column string, rows []T, key func(*T) string) error {
	inserted := 0
	for i := range rows {
		var n int64
		if err := db.WithContext(ctx).Model(new(T)).Where(column+" = ?", key(&rows[i])).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := db.WithContext(ctx).Create(&rows[i]).Error; err != nil {
			return fmt.Errorf("insert %s %q: %w", label, key(&rows[i]), err)
		}
		inserted++
	}
	logrus.WithFields(logrus.Fields{"inserted": inserted, "total": len(rows)}).Infof("%s seeded", label)
	return nil
}

func SeedNotices(ctx context.Context, db *gorm.DB, createdBy uuid.UUID) error {
	rows, err := SampleNotices(createdBy)
	if err != nil {
		return err
	}
	return insertMissing(ctx, db, "notices", "title", rows, func(n *noticeModel.Notice) string { return n.Title })
}

func SeedGallery(ctx context.Context, db *gorm.DB, uploadedBy uuid.UUID) error {
	rows, err := SampleGallery(uploadedBy)
	if err != nil {
		return err
	}
	return insertMissing(ctx, db, "gallery images", "image_url", rows, func(g *galleryModel.GalleryImage) string { return g.ImageURL })
}

func SeedTournaments(ctx context.Context, db *gorm.DB, createdBy uuid.UUID) error {
	rows, err := SampleTournaments(createdBy)
	if err != nil {
		return err
	}
	return insertMissing(ctx, db, "tournaments", "name", rows, func(t *tournamentModel.Tournament) string { return t.Name })
}
