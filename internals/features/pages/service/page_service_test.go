package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/cache"
	"skb_backend/internals/features/pages/dto"
	"skb_backend/internals/features/pages/model"
	"skb_backend/internals/features/pages/service"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/helpers/media"
	"skb_backend/internals/testutils"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(y), B: uint8(x), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newService() (*service.Service, *testutils.PageRepo, *testutils.MemoryCache, *testutils.MemoryStorage) {
	repo := testutils.NewPageRepo()
	c := testutils.NewMemoryCache()
	store := testutils.NewMemoryStorage()
	svc := service.New(repo, c, store, media.WebPOptions{MaxW: 64, MaxH: 64, Quality: 80}).
		WithClock(func() time.Time { return now })
	return svc, repo, c, store
}

func TestAbout_DefaultsUntilSaved(t *testing.T) {
	ctx := context.Background()
	svc, repo, c, _ := newService()

	page, err := svc.About(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAbout().Title, page.Title)
	assert.Nil(t, page.BannerImageURL)

	_, err = svc.About(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Reads, "second read is served from cache")
	assert.Equal(t, 1, c.Hits)
}

func TestUpdateAbout(t *testing.T) {
	ctx := context.Background()
	admin := uuid.New()

	t.Run("validation", func(t *testing.T) {
		svc, _, _, _ := newService()
		_, err := svc.UpdateAbout(ctx, dto.UpdateAboutRequest{Title: "  ", Description: ""}, &service.Banner{Filename: "x.txt", Data: []byte("plain text")}, admin)
		var ae *apperror.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, apperror.KindValidation, ae.Kind)
		assert.Contains(t, ae.Fields, "title")
		assert.Contains(t, ae.Fields, "description")
		assert.Contains(t, ae.Fields, "banner_image")
	})

	t.Run("banner replace and remove", func(t *testing.T) {
		svc, _, c, store := newService()
		_, _ = svc.About(ctx)
		require.True(t, c.Has(cache.KeyAboutPage))

		page, err := svc.UpdateAbout(ctx, dto.UpdateAboutRequest{Title: "About SKB", Description: "Dojo history"},
			&service.Banner{Filename: "banner.png", Data: pngBytes(t, 128, 96)}, admin)
		require.NoError(t, err)
		require.NotNil(t, page.BannerImageURL)
		assert.Equal(t, "About SKB", page.Title)
		assert.Equal(t, now, page.LastUpdatedAt)
		assert.Equal(t, &admin, page.LastUpdatedBy)
		assert.Equal(t, 1, store.Count("about"))
		first := *page.BannerImageURL

		page, err = svc.UpdateAbout(ctx, dto.UpdateAboutRequest{Title: "About SKB", Description: "Dojo history"},
			&service.Banner{Filename: "banner2.png", Data: pngBytes(t, 32, 32)}, admin)
		require.NoError(t, err)
		assert.NotEqual(t, first, *page.BannerImageURL)
		assert.Equal(t, 1, store.Count("about"), "old banner removed")

		page, err = svc.UpdateAbout(ctx, dto.UpdateAboutRequest{Title: "About SKB", Description: "Updated", RemoveBanner: true}, nil, admin)
		require.NoError(t, err)
		assert.Nil(t, page.BannerImageURL)
		assert.Equal(t, "Updated", page.Description)
		assert.Equal(t, 0, store.Count("about"))
	})

	t.Run("text only keeps banner", func(t *testing.T) {
		svc, _, _, store := newService()
		page, err := svc.UpdateAbout(ctx, dto.UpdateAboutRequest{Title: "A", Description: "B"},
			&service.Banner{Filename: "b.png", Data: pngBytes(t, 16, 16)}, admin)
		require.NoError(t, err)
		url := *page.BannerImageURL

		page, err = svc.UpdateAbout(ctx, dto.UpdateAboutRequest{Title: "A2", Description: "B2"}, nil, admin)
		require.NoError(t, err)
		assert.Equal(t, url, *page.BannerImageURL)
		assert.Equal(t, 1, store.Count("about"))
	})

	t.Run("save failure discards new banner", func(t *testing.T) {
		svc, repo, _, store := newService()
		repo.FailSave = errors.New("db down")
		_, err := svc.UpdateAbout(ctx, dto.UpdateAboutRequest{Title: "A", Description: "B"},
			&service.Banner{Filename: "b.png", Data: pngBytes(t, 16, 16)}, admin)
		require.Error(t, err)
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
		assert.Equal(t, 0, store.Count("about"))
	})
}

func TestSlider(t *testing.T) {
	ctx := context.Background()
	svc, _, c, _ := newService()

	def, err := svc.Slider(ctx)
	require.NoError(t, err)
	assert.Len(t, def.Slides, 3)
	assert.True(t, def.IsActive)
	require.True(t, c.Has(cache.KeyHomeSlider))

	off := false
	req := dto.UpdateSliderRequest{
		Title:    " Welcome ",
		Subtitle: "Train with us",
		Slides: []dto.SlideRequest{
			{ImageURL: "https://cdn.example.com/1.jpg", AltText: "first"},
			{ImageURL: "https://cdn.example.com/2.jpg", AltText: "second"},
		},
		IsActive: &off,
	}
	got, err := svc.UpdateSlider(ctx, req, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "Welcome", got.Title)
	assert.False(t, got.IsActive)
	require.Len(t, got.Slides, 2)
	assert.Equal(t, 1, got.Slides[1].Order)
	assert.Equal(t, "second", got.Slides[1].AltText)

	tooMany := make([]dto.SlideRequest, 11)
	for i := range tooMany {
		tooMany[i] = dto.SlideRequest{ImageURL: "https://cdn.example.com/x.jpg", AltText: "x"}
	}
	_, err = svc.UpdateSlider(ctx, dto.UpdateSliderRequest{Title: "t", Subtitle: "s", Slides: tooMany}, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.UpdateSlider(ctx, dto.UpdateSliderRequest{Title: "t", Subtitle: "s", Slides: []dto.SlideRequest{{AltText: "no url"}}}, uuid.New())
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.NotEmpty(t, ae.Fields)
}
