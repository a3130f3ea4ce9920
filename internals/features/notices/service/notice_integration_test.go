//go:build integration

package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/features/notices/dto"
	"skb_backend/internals/features/notices/repository"
	"skb_backend/internals/features/notices/service"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/testutils"
)

func TestPostgres_NoticeRegistrationLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutils.StartPostgres(t)
	svc := service.New(repository.New(db), testutils.NewMemoryStorage(), nil).
		WithClock(func() time.Time { return now })

	created, err := svc.Create(ctx, dto.CreateNoticeRequest{
		Title:                "Inter-Dojo Friendship Tournament",
		Content:              "Friendly tournament for all partner dojos.",
		Category:             "tournament",
		Date:                 now.Add(10 * 24 * time.Hour).Format(time.RFC3339),
		RegistrationDeadline: ptr(now.Add(5 * 24 * time.Hour).Format(time.RFC3339)),
		MaxParticipants:      ptr(3),
	}, nil, uuid.Nil)
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		full int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Register(ctx, created.ID, member("Karate Player", fmt.Sprintf("SKB%03d", i)))
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
	assert.Equal(t, 3, ok)
	assert.Equal(t, 9, full)

	var winner string
	require.NoError(t, db.Raw(`SELECT skb_id FROM notice_registrations WHERE notice_id = ? LIMIT 1`, created.ID).Scan(&winner).Error)
	_, err = svc.Cancel(ctx, created.ID, dto.CancelRequest{SkbID: winner})
	require.NoError(t, err)
	_, err = svc.Register(ctx, created.ID, member("Late Entry", "SKB900"))
	require.NoError(t, err)

	var counter int
	require.NoError(t, db.Raw(`SELECT current_participants FROM notices WHERE id = ?`, created.ID).Scan(&counter).Error)
	assert.Equal(t, 3, counter)

	require.NoError(t, svc.Delete(ctx, created.ID))
	var left int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM notice_registrations WHERE notice_id = ?`, created.ID).Scan(&left).Error)
	assert.Zero(t, left)
}
