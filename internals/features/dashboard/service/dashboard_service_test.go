package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/cache"
	"skb_backend/internals/features/dashboard/model"
	"skb_backend/internals/features/dashboard/service"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/testutils"
)

type fakeCounts struct {
	counts model.Counts
	err    error
	calls  int
	since  time.Time
}

func (f *fakeCounts) Counts(ctx context.Context, since time.Time) (model.Counts, error) {
	f.calls++
	f.since = since
	return f.counts, f.err
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeCounts{counts: model.Counts{
		Members: 5, Notices: 4, Events: 2, TournamentNotices: 1, Tournaments: 3, GalleryImages: 9, RecentParticipants: 7,
	}}
	c := testutils.NewMemoryCache()
	svc := service.New(repo, c).WithClock(func() time.Time { return now })

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalMembers)
	assert.Equal(t, int64(4), stats.TotalNotices)
	assert.Equal(t, int64(2), stats.TotalEvents)
	assert.Equal(t, int64(4), stats.TotalTournaments)
	assert.Equal(t, int64(9), stats.TotalGalleryImages)
	assert.Equal(t, int64(7), stats.RecentRegistrations)
	assert.Equal(t, now.Add(-30*24*time.Hour), repo.since)

	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	cache.Invalidate(ctx, c, cache.KeyDashboard)
	repo.err = errors.New("boom")
	_, err = svc.Stats(ctx)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}
