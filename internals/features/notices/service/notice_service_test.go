package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/features/notices/dto"
	"skb_backend/internals/features/notices/model"
	"skb_backend/internals/features/notices/service"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/testutils"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func seedTournamentNotice(repo *testutils.NoticeRepo, mutate func(n *model.Notice)) model.Notice {
	deadline := now.Add(72 * time.Hour)
	n := model.Notice{
		ID:                   uuid.New(),
		Title:                "Inter-Dojo Kata Championship",
		Content:              "Kata championship open to all dojos.",
		Category:             model.CategoryTournament,
		Priority:             model.DefaultPriority,
		Date:                 now.Add(7 * 24 * time.Hour),
		TargetAudience:       pq.StringArray{"All Members"},
		RegistrationDeadline: &deadline,
		MaxParticipants:      ptr(3),
		IsActive:             true,
		CreatedAt:            now,
	}
	if mutate != nil {
		mutate(&n)
	}
	repo.Seed(n)
	return n
}

func newService(repo *testutils.NoticeRepo, store *testutils.MemoryStorage) *service.Service {
	return service.New(repo, store, nil).WithClock(func() time.Time { return now })
}

func member(name, skb string) dto.RegisterRequest {
	return dto.RegisterRequest{Name: name, SkbID: skb}
}

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ae *apperror.Error
	require.True(t, errors.As(err, &ae), "want *apperror.Error, got %v", err)
	require.Equal(t, apperror.KindValidation, ae.Kind)
	return ae.Fields
}

func TestCreate_TaggedVariantByCategory(t *testing.T) {
	ctx := context.Background()
	svc := newService(testutils.NewNoticeRepo(), testutils.NewMemoryStorage())

	base := dto.CreateNoticeRequest{
		Title:   "Summer Grading",
		Content: "Belt grading for all kyu grades.",
		Date:    "2025-07-01",
	}

	t.Run("tournament without terms", func(t *testing.T) {
		req := base
		req.Category = "tournament"
		_, err := svc.Create(ctx, req, nil, uuid.Nil)
		fe := fieldsOf(t, err)
		assert.Contains(t, fe, "registration_deadline")
		assert.Contains(t, fe, "max_participants")
	})

	t.Run("event carrying tournament terms", func(t *testing.T) {
		req := base
		req.Category = "event"
		req.Rules = ptr("WKF rules")
		req.MaxParticipants = ptr(20)
		_, err := svc.Create(ctx, req, nil, uuid.Nil)
		fe := fieldsOf(t, err)
		assert.Equal(t, []string{"is only allowed for tournament notices"}, fe["rules"])
		assert.Contains(t, fe, "max_participants")
		assert.NotContains(t, fe, "registration_deadline")
	})

	t.Run("end before start", func(t *testing.T) {
		req := base
		req.Category = "notice"
		req.EndDate = ptr("2025-06-30")
		_, err := svc.Create(ctx, req, nil, uuid.Nil)
		assert.Contains(t, fieldsOf(t, err), "end_date")
	})

	t.Run("unparseable date", func(t *testing.T) {
		req := base
		req.Category = "notice"
		req.Date = "next tuesday"
		_, err := svc.Create(ctx, req, nil, uuid.Nil)
		assert.Equal(t, []string{helper.InvalidDateMessage}, fieldsOf(t, err)["date"])
	})

	t.Run("valid tournament", func(t *testing.T) {
		req := base
		req.Category = "tournament"
		req.RegistrationDeadline = ptr("2025-06-20T18:00:00Z")
		req.MaxParticipants = ptr(16)
		req.TargetAudience = []string{"Advanced", "Youth"}
		resp, err := svc.Create(ctx, req, nil, uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, "medium", resp.Priority)
		assert.Equal(t, 0, resp.CurrentParticipants)
		assert.Equal(t, 16, *resp.SpotsLeft)
		assert.True(t, resp.AcceptingRegistrations)
		require.NotNil(t, resp.RegistrationCountdown)
		assert.Equal(t, 19, resp.RegistrationCountdown.Days)
		assert.Equal(t, 8, resp.RegistrationCountdown.Hours)
	})
}

func TestCreate_StoresAttachments(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMemoryStorage()
	svc := newService(testutils.NewNoticeRepo(), store)

	req := dto.CreateNoticeRequest{
		Title:    "Training Schedule Update",
		Content:  "New weekday schedule attached.",
		Category: "notice",
		Date:     "2025-06-05",
	}
	uploads := []service.Upload{
		{Filename: "schedule.pdf", Data: []byte("%PDF-1.4 schedule")},
		{Filename: "notes.txt", Data: []byte("bring your gi")},
	}
	resp, err := svc.Create(ctx, req, uploads, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, resp.Attachments, 2)
	assert.Equal(t, "schedule.pdf", resp.Attachments[0].OriginalName)
	assert.Equal(t, "application/pdf", resp.Attachments[0].Mimetype)
	assert.Equal(t, int64(len("bring your gi")), resp.Attachments[1].Size)
	assert.Equal(t, 2, store.Count("notices"))
	assert.False(t, resp.AcceptingRegistrations)
	assert.Nil(t, resp.RegistrationCountdown)

	require.NoError(t, svc.Delete(ctx, resp.ID))
	assert.Equal(t, 0, store.Count("notices"))
}

func TestCreate_RejectsBadAttachments(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMemoryStorage()
	svc := newService(testutils.NewNoticeRepo(), store)
	req := dto.CreateNoticeRequest{
		Title:    "Training Schedule Update",
		Content:  "New weekday schedule attached.",
		Category: "notice",
		Date:     "2025-06-05",
	}

	_, err := svc.Create(ctx, req, []service.Upload{{Filename: "run.exe", Data: []byte("MZ")}}, uuid.Nil)
	assert.Contains(t, fieldsOf(t, err), "attachments")

	six := make([]service.Upload, 6)
	for i := range six {
		six[i] = service.Upload{Filename: "a.txt", Data: []byte("x")}
	}
	_, err = svc.Create(ctx, req, six, uuid.Nil)
	assert.Contains(t, fieldsOf(t, err), "attachments")
	assert.Equal(t, 0, store.Count("notices"))
}

func TestRegister_OrderedChecks(t *testing.T) {
	ctx := context.Background()

	t.Run("plain notice", func(t *testing.T) {
		repo := testutils.NewNoticeRepo()
		n := seedTournamentNotice(repo, func(n *model.Notice) {
			n.Category = model.CategoryNotice
			n.RegistrationDeadline, n.MaxParticipants = nil, nil
		})
		_, err := newService(repo, nil).Register(ctx, n.ID, member("Rahim Uddin", "SKB0001"))
		assert.True(t, apperror.Is(err, apperror.KindRegistrationClosed), "got %v", err)
	})

	t.Run("inactive beats deadline", func(t *testing.T) {
		repo := testutils.NewNoticeRepo()
		n := seedTournamentNotice(repo, func(n *model.Notice) {
			n.IsActive = false
			past := now.Add(-time.Hour)
			n.RegistrationDeadline = &past
		})
		_, err := newService(repo, nil).Register(ctx, n.ID, member("Rahim Uddin", "SKB0001"))
		assert.True(t, apperror.Is(err, apperror.KindRegistrationClosed), "got %v", err)
	})

	t.Run("deadline beats capacity", func(t *testing.T) {
		repo := testutils.NewNoticeRepo()
		n := seedTournamentNotice(repo, func(n *model.Notice) {
			past := now.Add(-time.Second)
			n.RegistrationDeadline = &past
			n.CurrentParticipants = 3
		})
		_, err := newService(repo, nil).Register(ctx, n.ID, member("Rahim Uddin", "SKB0001"))
		assert.True(t, apperror.Is(err, apperror.KindDeadlinePassed), "got %v", err)
	})

	t.Run("unknown notice", func(t *testing.T) {
		_, err := newService(testutils.NewNoticeRepo(), nil).Register(ctx, uuid.New(), member("Rahim Uddin", "SKB0001"))
		assert.True(t, apperror.Is(err, apperror.KindNotFound), "got %v", err)
	})
}

func TestRegister_DuplicateAndCapacity(t *testing.T) {
	ctx := context.Background()
	repo := testutils.NewNoticeRepo()
	svc := newService(repo, nil)
	n := seedTournamentNotice(repo, nil)

	res, err := svc.Register(ctx, n.ID, member("  Rahim   Uddin ", "skb0001"))
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", res.Registration.Name)
	assert.Equal(t, "SKB0001", res.Registration.SkbID)
	assert.Equal(t, 1, res.Notice.CurrentParticipants)

	_, err = svc.Register(ctx, n.ID, member("Someone Else", "SKB0001"))
	assert.True(t, apperror.Is(err, apperror.KindDuplicateRegistration), "got %v", err)

	_, err = svc.Register(ctx, n.ID, member("Karim Hasan", "SKB0002"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, n.ID, member("Nasir Ahmed", "SKB0003"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, n.ID, member("Jamal Khan", "SKB0004"))
	assert.True(t, apperror.Is(err, apperror.KindTournamentFull), "got %v", err)

	_, err = svc.Cancel(ctx, n.ID, dto.CancelRequest{SkbID: "skb0002"})
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, n.ID, dto.CancelRequest{SkbID: "SKB0002"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound), "got %v", err)

	_, err = svc.Register(ctx, n.ID, member("Jamal Khan", "SKB0004"))
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentParticipants)
	assert.Equal(t, 3, repo.ActiveCount(n.ID))
}

func TestRegister_ValidationFields(t *testing.T) {
	repo := testutils.NewNoticeRepo()
	n := seedTournamentNotice(repo, nil)
	_, err := newService(repo, nil).Register(context.Background(), n.ID, member("R2", "S!"))
	fe := fieldsOf(t, err)
	assert.Contains(t, fe, "name")
	assert.Contains(t, fe, "skb_id")
	assert.Equal(t, 0, repo.ActiveCount(n.ID))
}

func TestRegister_ConcurrentCallersNeverOverfill(t *testing.T) {
	ctx := context.Background()
	repo := testutils.NewNoticeRepo()
	svc := newService(repo, nil)
	n := seedTournamentNotice(repo, func(n *model.Notice) { n.MaxParticipants = ptr(4) })

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		full int
	)
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Register(ctx, n.ID, member("Member Name", "SKB"+string(rune('A'+i))+"00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case apperror.Is(err, apperror.KindTournamentFull):
				full++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, ok)
	assert.Equal(t, 11, full)
	got, err := repo.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentParticipants)
}

func TestUpdate_GuardsTournamentTerms(t *testing.T) {
	ctx := context.Background()
	repo := testutils.NewNoticeRepo()
	svc := newService(repo, nil)
	n := seedTournamentNotice(repo, nil)

	_, err := svc.Register(ctx, n.ID, member("Rahim Uddin", "SKB0001"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, n.ID, member("Karim Hasan", "SKB0002"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, n.ID, dto.UpdateNoticeRequest{MaxParticipants: ptr(1)})
	assert.Contains(t, fieldsOf(t, err), "max_participants")

	_, err = svc.Update(ctx, n.ID, dto.UpdateNoticeRequest{Category: ptr("event")})
	assert.Contains(t, fieldsOf(t, err), "category")

	resp, err := svc.Update(ctx, n.ID, dto.UpdateNoticeRequest{Title: ptr("Inter-Dojo Kata Cup"), MaxParticipants: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, "Inter-Dojo Kata Cup", resp.Title)
	assert.Equal(t, 2, resp.CurrentParticipants)
	assert.False(t, resp.AcceptingRegistrations)
}

func TestUpdate_CategoryChangeDropsTerms(t *testing.T) {
	ctx := context.Background()
	repo := testutils.NewNoticeRepo()
	n := seedTournamentNotice(repo, func(n *model.Notice) { n.Rules = ptr("WKF") })

	resp, err := newService(repo, nil).Update(ctx, n.ID, dto.UpdateNoticeRequest{Category: ptr("event")})
	require.NoError(t, err)
	assert.Equal(t, "event", resp.Category)
	assert.Nil(t, resp.Rules)
	assert.Nil(t, resp.MaxParticipants)
	assert.Nil(t, resp.RegistrationDeadline)
}

func TestList_FiltersAndVisibility(t *testing.T) {
	ctx := context.Background()
	repo := testutils.NewNoticeRepo()
	svc := newService(repo, nil)

	seedTournamentNotice(repo, nil)
	seedTournamentNotice(repo, func(n *model.Notice) {
		n.Title, n.Category, n.Priority = "Dojo closed for Eid", model.CategoryNotice, "high"
		n.RegistrationDeadline, n.MaxParticipants = nil, nil
		n.CreatedAt = now.Add(time.Hour)
	})
	seedTournamentNotice(repo, func(n *model.Notice) {
		n.Title, n.Category = "Hidden draft", model.CategoryEvent
		n.RegistrationDeadline, n.MaxParticipants = nil, nil
		n.IsActive = false
	})

	items, pg, err := svc.List(ctx, dto.ListNoticeQuery{}, helper.NewPaging(1, 0, service.DefaultPerPage), false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pg.Total)
	assert.Equal(t, "Dojo closed for Eid", items[0].Title)

	items, _, err = svc.List(ctx, dto.ListNoticeQuery{Priority: "high", Search: "EID"}, helper.NewPaging(1, 10, 10), true)
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, pg, err = svc.List(ctx, dto.ListNoticeQuery{}, helper.NewPaging(1, 10, 10), true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pg.Total)

	_, _, err = svc.List(ctx, dto.ListNoticeQuery{Category: "party"}, helper.NewPaging(1, 10, 10), true)
	assert.Contains(t, fieldsOf(t, err), "category")
}

func TestListRegistrations(t *testing.T) {
	ctx := context.Background()
	repo := testutils.NewNoticeRepo()
	n := seedTournamentNotice(repo, nil)

	clock := now
	svc := service.New(repo, nil, nil).WithClock(func() time.Time { return clock })
	for i, name := range []string{"Rahim Uddin", "Karim Hasan"} {
		clock = now.Add(time.Duration(i) * time.Minute)
		_, err := svc.Register(ctx, n.ID, member(name, []string{"SKB0001", "SKB0002"}[i]))
		require.NoError(t, err)
	}
	_, err := svc.Cancel(ctx, n.ID, dto.CancelRequest{SkbID: "SKB0001"})
	require.NoError(t, err)

	items, pg, err := svc.ListRegistrations(ctx, n.ID, dto.ListRegistrationQuery{}, helper.NewPaging(1, 0, service.DefaultRegistrationPerPage))
	require.NoError(t, err)
	assert.Equal(t, int64(2), pg.Total)
	assert.Equal(t, "Karim Hasan", items[0].Name)

	items, _, err = svc.ListRegistrations(ctx, n.ID, dto.ListRegistrationQuery{Status: "cancelled"}, helper.NewPaging(1, 0, 20))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "SKB0001", items[0].SkbID)

	_, _, err = svc.ListRegistrations(ctx, uuid.New(), dto.ListRegistrationQuery{}, helper.NewPaging(1, 0, 20))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUpdate_BlankTitleRejected(t *testing.T) {
	ctx := context.Background()
	repo := testutils.NewNoticeRepo()
	svc := newService(repo, nil)
	n := seedTournamentNotice(repo, nil)

	_, err := svc.Update(ctx, n.ID, dto.UpdateNoticeRequest{Title: ptr("     ")})
	assert.Contains(t, fieldsOf(t, err), "title")

	_, err = svc.Update(ctx, n.ID, dto.UpdateNoticeRequest{Title: ptr("  Kata  ")})
	assert.Contains(t, fieldsOf(t, err), "title")

	stored, err := repo.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inter-Dojo Kata Championship", stored.Title)

	resp, err := svc.Update(ctx, n.ID, dto.UpdateNoticeRequest{Title: ptr("  Kata Cup 2025 "), Category: ptr(" Tournament ")})
	require.NoError(t, err)
	assert.Equal(t, "Kata Cup 2025", resp.Title)
	assert.Equal(t, "tournament", resp.Category)
}
