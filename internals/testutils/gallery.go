package testutils

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skb_backend/internals/features/gallery/model"
	"skb_backend/internals/features/gallery/repository"
	helper "skb_backend/internals/helpers"
)

type GalleryRepo struct {
	mu     sync.Mutex
	images map[uuid.UUID]model.GalleryImage
}

var _ repository.Repository = (*GalleryRepo)(nil)

func NewGalleryRepo(seed ...model.GalleryImage) *GalleryRepo {
	r := &GalleryRepo{images: map[uuid.UUID]model.GalleryImage{}}
	for _, img := range seed {
		r.images[img.ID] = img
	}
	return r
}

func (r *GalleryRepo) Create(ctx context.Context, img *model.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	r.images[img.ID] = *img
	return nil
}

func (r *GalleryRepo) Update(ctx context.Context, img *model.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.images[img.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	next := *img
	next.UploadedBy = cur.UploadedBy
	next.CreatedAt = cur.CreatedAt
	r.images[img.ID] = next
	return nil
}

func (r *GalleryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.images[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.images, id)
	return nil
}

func (r *GalleryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &img, nil
}

func (r *GalleryRepo) List(ctx context.Context, f repository.Filter, p helper.Paging) ([]model.GalleryImage, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.GalleryImage
	for _, img := range r.images {
		if f.Matches(&img) {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return helper.Window(out, p), int64(len(out)), nil
}
