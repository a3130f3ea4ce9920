package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"skb_backend/internals/cache"
	"skb_backend/internals/features/pages/dto"
	"skb_backend/internals/features/pages/model"
	"skb_backend/internals/features/pages/repository"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/helpers/media"
)

const bannerFolder = "about"

// Banner is an uploaded banner image read from the request.
type Banner struct {
	Filename string
	Data     []byte
}

type Service struct {
	repo  repository.Repository
	cache cache.Cache
	store media.Storage
	opts  media.WebPOptions
	now   func() time.Time
}

func New(repo repository.Repository, c cache.Cache, store media.Storage, opts media.WebPOptions) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{
		repo:  repo,
		cache: c,
		store: store,
		opts:  opts,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

/* =========================================================
   ABOUT
========================================================= */

// About returns the saved page, or the default content before the first save.
func (s *Service) About(ctx context.Context) (*model.AboutPage, error) {
	page, err := cache.Remember(ctx, s.cache, cache.KeyAboutPage, func(ctx context.Context) (model.AboutPage, error) {
		p, err := s.repo.GetAbout(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DefaultAbout(), nil
		}
		if err != nil {
			return model.AboutPage{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &page, nil
}

// UpdateAbout upserts the page. A new banner replaces and deletes the old
// one; RemoveBanner clears it.
func (s *Service) UpdateAbout(ctx context.Context, req dto.UpdateAboutRequest, banner *Banner, by uuid.UUID) (*model.AboutPage, error) {
	req.Normalize()
	fe := helper.ValidateStruct(req)
	if banner != nil {
		switch {
		case int64(len(banner.Data)) > media.MaxImageBytes:
			fe = helper.AddFieldError(fe, "banner_image", fmt.Sprintf("must be at most %d MB", media.MaxImageBytes>>20))
		case !media.IsImage(banner.Data):
			fe = helper.AddFieldError(fe, "banner_image", "must be an image")
		}
	}
	if fe != nil {
		return nil, apperror.Validation(fe)
	}

	current, err := s.repo.GetAbout(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal(err)
	}
	var oldBanner *string
	if current != nil {
		oldBanner = current.BannerImageURL
	}

	page := &model.AboutPage{
		Title:          req.Title,
		Description:    req.Description,
		BannerImageURL: oldBanner,
		LastUpdatedAt:  s.now(),
	}
	if by != uuid.Nil {
		page.LastUpdatedBy = &by
	}
	if req.RemoveBanner {
		page.BannerImageURL = nil
	}

	var newBanner string
	if banner != nil {
		if newBanner, err = s.storeBanner(ctx, banner); err != nil {
			return nil, err
		}
		page.BannerImageURL = &newBanner
	}

	if err := s.repo.SaveAbout(ctx, page); err != nil {
		media.DeleteQuietly(ctx, s.store, newBanner)
		return nil, apperror.FromDB(err, "")
	}
	if oldBanner != nil && (page.BannerImageURL == nil || *page.BannerImageURL != *oldBanner) {
		media.DeleteQuietly(ctx, s.store, *oldBanner)
	}
	cache.Invalidate(ctx, s.cache, cache.KeyAboutPage)

	logrus.WithFields(logrus.Fields{"updated_by": by, "banner": page.BannerImageURL != nil}).Info("about page updated")
	return s.About(ctx)
}

func (s *Service) storeBanner(ctx context.Context, b *Banner) (string, error) {
	if s.store == nil {
		return "", apperror.Internal(errors.New("file storage is not configured"))
	}
	conv, err := media.ConvertToWebP(b.Data, b.Filename, s.opts)
	if err != nil {
		return "", apperror.Field("banner_image", "could not be processed: "+err.Error())
	}
	name := strings.TrimSuffix(path.Base(b.Filename), path.Ext(b.Filename)) + ".webp"
	url, err := s.store.Put(ctx, bannerFolder, name, conv.Image)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("store banner: %w", err))
	}
	return url, nil
}

/* =========================================================
   HOME SLIDER
========================================================= */

func (s *Service) Slider(ctx context.Context) (*model.HomeSlider, error) {
	slider, err := cache.Remember(ctx, s.cache, cache.KeyHomeSlider, func(ctx context.Context) (model.HomeSlider, error) {
		v, err := s.repo.GetSlider(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DefaultSlider(), nil
		}
		if err != nil {
			return model.HomeSlider{}, err
		}
		return *v, nil
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &slider, nil
}

func (s *Service) UpdateSlider(ctx context.Context, req dto.UpdateSliderRequest, by uuid.UUID) (*model.HomeSlider, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}
	slider := &model.HomeSlider{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Slides:    req.ToSlides(),
		IsActive:  true,
		UpdatedAt: s.now(),
	}
	if req.IsActive != nil {
		slider.IsActive = *req.IsActive
	}
	if by != uuid.Nil {
		slider.LastUpdatedBy = &by
	}
	if err := s.repo.SaveSlider(ctx, slider); err != nil {
		return nil, apperror.FromDB(err, "")
	}
	cache.Invalidate(ctx, s.cache, cache.KeyHomeSlider)

	logrus.WithFields(logrus.Fields{"updated_by": by, "slides": len(slider.Slides)}).Info("home slider updated")
	return s.Slider(ctx)
}
