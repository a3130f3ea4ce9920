package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/features/gallery/dto"
	"skb_backend/internals/features/gallery/model"
	"skb_backend/internals/features/gallery/service"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/helpers/media"
	"skb_backend/internals/testutils"
)

func ptr[T any](v T) *T { return &v }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleImages() []model.GalleryImage {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return []model.GalleryImage{
		{ID: uuid.New(), Title: "Kata Training", Description: ptr("Morning kata practice"), ImageURL: "https://cdn.example.com/a.jpg", AltText: "kata", Category: "training", IsActive: true, CreatedAt: base},
		{ID: uuid.New(), Title: "National Championship", ImageURL: "https://cdn.example.com/b.jpg", AltText: "podium", Category: "tournament", IsActive: true, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), Title: "Black Belt Grading", Description: ptr("Dan grading ceremony"), ImageURL: "https://cdn.example.com/c.jpg", AltText: "grading", Category: "grading", IsActive: false, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestList_SearchFiltersVisibility(t *testing.T) {
	ctx := context.Background()
	svc := service.New(testutils.NewGalleryRepo(sampleImages()...), nil, media.WebPOptions{})

	items, pg, err := svc.List(ctx, dto.ListGalleryQuery{}, helper.NewPaging(1, 0, service.DefaultPerPage), false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pg.Total)
	assert.Equal(t, 12, pg.PerPage)
	assert.Equal(t, "National Championship", items[0].Title)

	items, _, err = svc.List(ctx, dto.ListGalleryQuery{Search: "CEREMONY"}, helper.NewPaging(1, 0, 12), true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Black Belt Grading", items[0].Title)

	items, _, err = svc.List(ctx, dto.ListGalleryQuery{Category: "training"}, helper.NewPaging(1, 0, 12), false)
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, _, err = svc.List(ctx, dto.ListGalleryQuery{Category: "selfies"}, helper.NewPaging(1, 0, 12), true)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestGet_HidesInactiveFromPublic(t *testing.T) {
	imgs := sampleImages()
	svc := service.New(testutils.NewGalleryRepo(imgs...), nil, media.WebPOptions{})

	_, err := svc.Get(context.Background(), imgs[2].ID, false)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	got, err := svc.Get(context.Background(), imgs[2].ID, true)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestCreate_ValidatesAndDefaults(t *testing.T) {
	ctx := context.Background()
	svc := service.New(testutils.NewGalleryRepo(), nil, media.WebPOptions{})

	_, err := svc.Create(ctx, dto.CreateGalleryRequest{Title: strings.Repeat("x", 101)}, uuid.Nil)
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "title")
	assert.Contains(t, ae.Fields, "image_url")
	assert.Contains(t, ae.Fields, "alt_text")

	admin := uuid.New()
	img, err := svc.Create(ctx, dto.CreateGalleryRequest{
		Title:    " Dojo Opening ",
		ImageURL: "https://cdn.example.com/opening.jpg",
		AltText:  "ribbon cutting",
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Dojo Opening", img.Title)
	assert.Equal(t, model.DefaultCategory, img.Category)
	assert.True(t, img.IsActive)
	assert.Equal(t, admin, *img.UploadedBy)
}

func TestUpload_ConvertsAndStoresThumbnail(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMemoryStorage()
	svc := service.New(testutils.NewGalleryRepo(), store, media.WebPOptions{MaxW: 64, MaxH: 64, Quality: 80, ThumbW: 16, ThumbH: 16})

	req := dto.CreateGalleryRequest{Title: "Summer Camp", AltText: "group photo", Category: "event"}
	img, err := svc.Upload(ctx, req, "camp photo.png", pngBytes(t, 128, 96), uuid.Nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(img.ImageURL, "/uploads/gallery/"))
	assert.True(t, strings.HasSuffix(img.ImageURL, ".webp"))
	require.NotNil(t, img.ThumbnailURL)
	assert.Contains(t, *img.ThumbnailURL, "/gallery/thumbs/")
	assert.Len(t, store.Files, 2)

	decoded, err := media.ConvertToWebP(store.Files[img.ImageURL], "x.webp", media.WebPOptions{Quality: 80})
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Width)
	assert.Equal(t, 48, decoded.Height)

	require.NoError(t, svc.Delete(ctx, img.ID))
	assert.Empty(t, store.Files)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	store := testutils.NewMemoryStorage()
	svc := service.New(testutils.NewGalleryRepo(), store, media.WebPOptions{})

	req := dto.CreateGalleryRequest{Title: "Notes", AltText: "notes"}
	_, err := svc.Upload(context.Background(), req, "notes.png", []byte("plain text, not a picture"), uuid.Nil)
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "image")
	assert.Empty(t, store.Files)
}

func TestUpdate_ReplacingImageDropsStoredFiles(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMemoryStorage()
	svc := service.New(testutils.NewGalleryRepo(), store, media.WebPOptions{MaxW: 32, MaxH: 32, Quality: 80})

	img, err := svc.Upload(ctx, dto.CreateGalleryRequest{Title: "Old", AltText: "old"}, "old.png", pngBytes(t, 20, 20), uuid.Nil)
	require.NoError(t, err)
	require.Len(t, store.Files, 2)

	updated, err := svc.Update(ctx, img.ID, dto.UpdateGalleryRequest{AltText: ptr("new alt")})
	require.NoError(t, err)
	assert.Equal(t, "new alt", updated.AltText)
	assert.Len(t, store.Files, 2)

	updated, err = svc.Update(ctx, img.ID, dto.UpdateGalleryRequest{ImageURL: ptr("https://cdn.example.com/new.jpg")})
	require.NoError(t, err)
	assert.Nil(t, updated.ThumbnailURL)
	assert.Empty(t, store.Files)
}

func TestUpdate_BlankTitleRejected(t *testing.T) {
	ctx := context.Background()
	seed := sampleImages()
	repo := testutils.NewGalleryRepo(seed...)
	svc := service.New(repo, nil, media.WebPOptions{})
	target := seed[0]

	_, err := svc.Update(ctx, target.ID, dto.UpdateGalleryRequest{Title: ptr("   ")})
	assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)

	stored, err := repo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kata Training", stored.Title)

	updated, err := svc.Update(ctx, target.ID, dto.UpdateGalleryRequest{Title: ptr(" Kata Seminar "), Category: ptr(" Training ")})
	require.NoError(t, err)
	assert.Equal(t, "Kata Seminar", updated.Title)
	assert.Equal(t, "training", updated.Category)
}
