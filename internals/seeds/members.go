package seeds

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"skb_backend/internals/constants"
	"skb_backend/internals/features/members/dto"
	"skb_backend/internals/features/members/model"
	helper "skb_backend/internals/helpers"
)

//go:embed data/*.json
var dataFS embed.FS

func readJSON(name string, dst any) error {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// SampleMembers is the five-member sample dataset, validated and ready to insert.
// CreatedAt follows the join date so newest-first ordering is stable.
func SampleMembers() ([]model.Member, error) {
	var reqs []dto.CreateMemberRequest
	if err := readJSON("members.json", &reqs); err != nil {
		return nil, fmt.Errorf("read members: %w", err)
	}
	out := make([]model.Member, 0, len(reqs))
	for i := range reqs {
		req := reqs[i]
		req.Normalize()
		if fe := helper.ValidateStruct(req); fe != nil {
			return nil, fmt.Errorf("sample member %d invalid: %v", i, fe)
		}
		m := req.ToModel(time.Now())
		m.CreatedAt = m.JoinDate
		m.UpdatedAt = m.JoinDate
		out = append(out, *m)
	}
	return out, nil
}

// FakeMembers generates n valid members with gofakeit. SKB ids start after
// the sample range.
func FakeMembers(f *gofakeit.Faker, n int, firstSeq int64) []model.Member {
	out := make([]model.Member, 0, n)
	for i := 0; i < n; i++ {
		skb := fmt.Sprintf("SKB%04d", firstSeq+int64(i))
		join := f.DateRange(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), time.Now().UTC()).Truncate(24 * time.Hour)
		m := model.Member{
			SkbID:            &skb,
			Name:             f.FirstName() + " " + f.LastName(),
			FatherName:       f.FirstName() + " " + f.LastName(),
			MotherName:       f.FirstName() + " " + f.LastName(),
			PresentAddress:   f.Street() + ", " + f.City(),
			PermanentAddress: f.Street() + ", " + f.City(),
			Mobile:           "01" + f.Numerify("#########"),
			DateOfBirth:      f.DateRange(time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)).Truncate(24 * time.Hour),
			Email:            strings.ToLower(f.Email()),
			Gender:           f.RandomString(constants.Genders),
			BloodGroup:       f.RandomString(constants.BloodGroups),
			Religion:         f.RandomString([]string{"Islam", "Hinduism", "Buddhism", "Christianity"}),
			Profession:       f.JobTitle(),
			Nationality:      constants.DefaultNationality,
			Belt:             f.RandomString(constants.Belts),
			JoinDate:         join,
			IsActive:         f.Number(0, 9) > 0,
			CreatedAt:        join,
			UpdatedAt:        join,
		}
		out = append(out, m)
	}
	return out
}

// SeedMembers inserts the sample dataset plus fake members and moves
// member_skb_seq past the highest SKBnnnn id.
func SeedMembers(ctx context.Context, db *gorm.DB, fake int, seed uint64) error {
	members, err := SampleMembers()
	if err != nil {
		return err
	}
	if fake > 0 {
		members = append(members, FakeMembers(gofakeit.New(seed), fake, int64(len(members)+1))...)
	}

	inserted := 0
	for i := range members {
		m := &members[i]
		var n int64
		if err := db.WithContext(ctx).Model(&model.Member{}).Where("skb_id = ?", *m.SkbID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			logrus.WithField("skb_id", *m.SkbID).Debug("member exists, skipped")
			continue
		}
		if err := db.WithContext(ctx).Create(m).Error; err != nil {
			return fmt.Errorf("insert member %s: %w", *m.SkbID, err)
		}
		inserted++
	}

	err = db.WithContext(ctx).Exec(`
		SELECT setval('member_skb_seq', GREATEST(
			(SELECT COALESCE(MAX(CAST(SUBSTRING(skb_id FROM 4) AS BIGINT)), 0)
			   FROM members WHERE skb_id ~ '^SKB[0-9]+$'), 1))`).Error
	if err != nil {
		return fmt.Errorf("advance member_skb_seq: %w", err)
	}
	logrus.WithField("inserted", inserted).Info("members seeded")
	return nil
}
