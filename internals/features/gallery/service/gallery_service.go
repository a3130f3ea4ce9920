package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"skb_backend/internals/constants"
	"skb_backend/internals/features/gallery/dto"
	"skb_backend/internals/features/gallery/model"
	"skb_backend/internals/features/gallery/repository"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/helpers/media"
)

const (
	DefaultPerPage = 12

	imageFolder = "gallery"
	thumbSize   = 400
)

var errImageNotFound = apperror.NotFound("gallery image not found")

type Service struct {
	repo  repository.Repository
	store media.Storage
	opts  media.WebPOptions
}

// New sets up the service; opts controls the WebP re-encode of uploads.
func New(repo repository.Repository, store media.Storage, opts media.WebPOptions) *Service {
	if opts.ThumbW <= 0 || opts.ThumbH <= 0 {
		opts.ThumbW, opts.ThumbH = thumbSize, thumbSize
	}
	return &Service{repo: repo, store: store, opts: opts}
}

func dbErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errImageNotFound
	}
	return apperror.FromDB(err, "")
}

func (s *Service) List(ctx context.Context, q dto.ListGalleryQuery, p helper.Paging, admin bool) ([]model.GalleryImage, helper.Pagination, error) {
	if q.Category != "" && !constants.InEnum(constants.GalleryCategories, q.Category) {
		return nil, helper.Pagination{}, apperror.Field("category", "must be one of: "+strings.Join(constants.GalleryCategories, ", "))
	}
	f := repository.Filter{Search: q.Search, Category: q.Category, IsActive: q.IsActive}
	if !admin {
		active := true
		f.IsActive = &active
	}
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, helper.Pagination{}, apperror.Internal(err)
	}
	return items, helper.BuildPagination(total, p), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID, admin bool) (*model.GalleryImage, error) {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbErr(err)
	}
	if !img.IsActive && !admin {
		return nil, errImageNotFound
	}
	return img, nil
}

// Create registers an image that is already hosted somewhere.
func (s *Service) Create(ctx context.Context, req dto.CreateGalleryRequest, uploadedBy uuid.UUID) (*model.GalleryImage, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}
	img := req.ToModel(uploadedBy)
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, apperror.FromDB(err, "")
	}
	logrus.WithField("image_id", img.ID).Info("gallery image created")
	return s.Get(ctx, img.ID, true)
}

// Upload re-encodes the file to WebP with a thumbnail, stores both and
// creates the gallery row.
func (s *Service) Upload(ctx context.Context, req dto.CreateGalleryRequest, filename string, data []byte, uploadedBy uuid.UUID) (*model.GalleryImage, error) {
	req.ImageURL = "pending"
	req.Normalize()
	fe := helper.ValidateStruct(req)
	if len(data) == 0 {
		fe = helper.AddFieldError(fe, "image", "is required")
	} else if !media.IsImage(data) {
		fe = helper.AddFieldError(fe, "image", "must be a JPEG, PNG or WebP image")
	}
	if fe != nil {
		return nil, apperror.Validation(fe)
	}
	if s.store == nil {
		return nil, apperror.Internal(errors.New("file storage is not configured"))
	}

	conv, err := media.ConvertToWebP(data, filename, s.opts)
	if err != nil {
		return nil, apperror.Field("image", "could not be processed: "+err.Error())
	}
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	imageURL, err := s.store.Put(ctx, imageFolder, base+".webp", conv.Image)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("store image: %w", err))
	}
	img := req.ToModel(uploadedBy)
	img.ImageURL = imageURL

	if len(conv.Thumbnail) > 0 {
		thumbURL, err := s.store.Put(ctx, imageFolder+"/thumbs", base+".webp", conv.Thumbnail)
		if err != nil {
			media.DeleteQuietly(ctx, s.store, imageURL)
			return nil, apperror.Internal(fmt.Errorf("store thumbnail: %w", err))
		}
		img.ThumbnailURL = &thumbURL
	}

	if err := s.repo.Create(ctx, img); err != nil {
		s.discard(ctx, img)
		return nil, apperror.FromDB(err, "")
	}
	logrus.WithFields(logrus.Fields{
		"image_id": img.ID,
		"width":    conv.Width,
		"height":   conv.Height,
		"bytes":    len(conv.Image),
	}).Info("gallery image uploaded")
	return s.Get(ctx, img.ID, true)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateGalleryRequest) (*model.GalleryImage, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return nil, apperror.Validation(fe)
	}
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbErr(err)
	}
	old := *img
	if replaced := req.ApplyToModel(img); !replaced {
		old = model.GalleryImage{}
	}
	if err := s.repo.Update(ctx, img); err != nil {
		return nil, dbErr(err)
	}
	s.discard(ctx, &old)
	return s.Get(ctx, id, true)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dbErr(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return dbErr(err)
	}
	s.discard(ctx, img)
	logrus.WithField("image_id", id).Info("gallery image deleted")
	return nil
}

// discard removes stored files; URLs outside the store are ignored by it.
func (s *Service) discard(ctx context.Context, img *model.GalleryImage) {
	media.DeleteQuietly(ctx, s.store, img.ImageURL)
	if img.ThumbnailURL != nil {
		media.DeleteQuietly(ctx, s.store, *img.ThumbnailURL)
	}
}
