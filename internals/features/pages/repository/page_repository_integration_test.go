//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skb_backend/internals/features/pages/model"
	"skb_backend/internals/features/pages/repository"
	"skb_backend/internals/testutils"
)

func TestPostgres_SingletonUpsert(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(testutils.StartPostgres(t))

	_, err := repo.GetAbout(ctx)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	first := &model.AboutPage{Title: "About", Description: "v1", LastUpdatedAt: time.Now().UTC()}
	require.NoError(t, repo.SaveAbout(ctx, first))
	second := &model.AboutPage{Title: "About SKB", Description: "v2", LastUpdatedAt: time.Now().UTC()}
	require.NoError(t, repo.SaveAbout(ctx, second))

	got, err := repo.GetAbout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "About SKB", got.Title)
	assert.Equal(t, "v2", got.Description)

	slider := model.DefaultSlider()
	require.NoError(t, repo.SaveSlider(ctx, &slider))
	next := model.DefaultSlider()
	next.Slides = next.Slides[:1]
	next.Title = "Welcome"
	require.NoError(t, repo.SaveSlider(ctx, &next))

	s, err := repo.GetSlider(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", s.Title)
	assert.Len(t, s.Slides, 1)
}
