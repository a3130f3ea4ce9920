//go:build integration

package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/features/tournaments/model"
	"skb_backend/internals/features/tournaments/repository"
	"skb_backend/internals/features/tournaments/service"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/testutils"
)

func TestPostgres_ConcurrentRegistrationsRespectCapacity(t *testing.T) {
	ctx := context.Background()
	db := testutils.StartPostgres(t)
	repo := repository.New(db)
	svc := service.New(repo, nil, nil).WithClock(func() time.Time { return now })

	tr := model.Tournament{
		ID:                   uuid.New(),
		Name:                 "Concurrency Cup",
		Description:          "capacity under load",
		StartDate:            now.Add(14 * 24 * time.Hour),
		EndDate:              now.Add(15 * 24 * time.Hour),
		RegistrationDeadline: now.Add(7 * 24 * time.Hour),
		Location:             "Dhaka",
		Organizer:            "SKB",
		MaxParticipants:      5,
		Format:               model.DefaultFormat,
		SkillLevels:          pq.StringArray{},
		AgeGroups:            pq.StringArray{},
		Status:               model.StatusRegistrationOpen,
		IsActive:             true,
	}
	require.NoError(t, repo.Create(ctx, &tr))

	const callers = 25
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		full int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := registrant("Player "+string(rune('a'+i)), fmt.Sprintf("player%d@example.com", i))
			_, err := svc.Register(ctx, tr.ID, req, false)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case apperror.Is(err, apperror.KindTournamentFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, callers-5, full)

	var counter, rows int64
	require.NoError(t, db.Raw(`SELECT current_participants FROM tournaments WHERE id = ?`, tr.ID).Scan(&counter).Error)
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM participants WHERE tournament_id = ? AND status <> 'cancelled'`, tr.ID).Scan(&rows).Error)
	assert.Equal(t, int64(5), counter)
	assert.Equal(t, int64(5), rows)

	// the CHECK constraint backs the conditional increment
	err := db.Exec(`UPDATE tournaments SET current_participants = max_participants + 1 WHERE id = ?`, tr.ID).Error
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(apperror.FromDB(err, "")))
}

func TestPostgres_DuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	db := testutils.StartPostgres(t)
	repo := repository.New(db)
	svc := service.New(repo, nil, nil).WithClock(func() time.Time { return now })

	tr := model.Tournament{
		ID:                   uuid.New(),
		Name:                 "Duplicate Cup",
		Description:          "duplicate checks",
		StartDate:            now.Add(14 * 24 * time.Hour),
		EndDate:              now.Add(15 * 24 * time.Hour),
		RegistrationDeadline: now.Add(7 * 24 * time.Hour),
		Location:             "Dhaka",
		Organizer:            "SKB",
		MaxParticipants:      3,
		Format:               model.DefaultFormat,
		SkillLevels:          pq.StringArray{},
		AgeGroups:            pq.StringArray{},
		Status:               model.StatusRegistrationOpen,
		IsActive:             true,
	}
	require.NoError(t, repo.Create(ctx, &tr))

	_, err := svc.Register(ctx, tr.ID, registrant("Rashida Akter", "rashida@example.com"), false)
	require.NoError(t, err)
	_, err = svc.Register(ctx, tr.ID, registrant("Rashida Akter", "RASHIDA@example.com"), false)
	assert.True(t, apperror.Is(err, apperror.KindDuplicateRegistration))
}

func TestPostgres_SearchWildcardsMatchLiterally(t *testing.T) {
	ctx := context.Background()
	db := testutils.StartPostgres(t)
	repo := repository.New(db)

	for _, name := range []string{"100% Kumite Open", "Kata_Masters Cup", "Dhaka Spring Cup"} {
		tr := model.Tournament{
			ID:                   uuid.New(),
			Name:                 name,
			Description:          "search fixture",
			StartDate:            now.Add(14 * 24 * time.Hour),
			EndDate:              now.Add(15 * 24 * time.Hour),
			RegistrationDeadline: now.Add(7 * 24 * time.Hour),
			Location:             "Dhaka",
			Organizer:            "SKB",
			MaxParticipants:      8,
			Format:               model.DefaultFormat,
			SkillLevels:          pq.StringArray{},
			AgeGroups:            pq.StringArray{},
			Status:               model.StatusUpcoming,
			IsActive:             true,
		}
		require.NoError(t, repo.Create(ctx, &tr))
	}

	cases := map[string]string{"%": "100% Kumite Open", "_": "Kata_Masters Cup"}
	for search, want := range cases {
		items, total, err := repo.List(ctx, repository.Filter{Search: search}, helper.NewPaging(1, 10, 10))
		require.NoError(t, err)
		require.EqualValues(t, 1, total, "search %q", search)
		assert.Equal(t, want, items[0].Name)
	}
}
