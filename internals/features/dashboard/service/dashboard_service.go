package service

import (
	"context"
	"time"

	"skb_backend/internals/cache"
	"skb_backend/internals/features/dashboard/model"
	"skb_backend/internals/features/dashboard/repository"
	"skb_backend/internals/helpers/apperror"
)

const RecentWindow = 30 * 24 * time.Hour

type Service struct {
	repo  repository.Repository
	cache cache.Cache
	now   func() time.Time
}

func New(repo repository.Repository, c cache.Cache) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{repo: repo, cache: c, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Stats counts tournament entities and tournament notices together.
func (s *Service) Stats(ctx context.Context) (*model.Stats, error) {
	stats, err := cache.Remember(ctx, s.cache, cache.KeyDashboard, func(ctx context.Context) (model.Stats, error) {
		now := s.now()
		c, err := s.repo.Counts(ctx, now.Add(-RecentWindow))
		if err != nil {
			return model.Stats{}, err
		}
		return model.Stats{
			TotalMembers:        c.Members,
			TotalNotices:        c.Notices,
			TotalEvents:         c.Events,
			TotalTournaments:    c.Tournaments + c.TournamentNotices,
			TotalGalleryImages:  c.GalleryImages,
			RecentRegistrations: c.RecentParticipants,
			GeneratedAt:         now,
		}, nil
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &stats, nil
}
