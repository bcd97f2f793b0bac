package dashboard

import (
	"context"
	"math"

	"gym24/internal/apperrors"

	"golang.org/x/sync/errgroup"
)

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	var (
		stats   Stats
		userIDs []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.repo.Count(gctx, "profiles")
		return
	})
	g.Go(func() (err error) {
		stats.TotalClasses, err = s.repo.Count(gctx, "classes")
		return
	})
	g.Go(func() (err error) {
		stats.TotalReviews, err = s.repo.Count(gctx, "reviews")
		return
	})
	g.Go(func() (err error) {
		stats.TotalBookings, err = s.repo.Count(gctx, "bookings")
		return
	})
	g.Go(func() (err error) {
		stats.AverageRating, err = s.repo.AverageRating(gctx)
		return
	})
	g.Go(func() (err error) {
		userIDs, err = s.repo.BookingUserIDs(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to fetch dashboard data", err)
	}

	if stats.TotalUsers > 0 && len(userIDs) > 0 {
		engaged, err := s.repo.CountProfiles(ctx, userIDs)
		if err != nil {
			return nil, apperrors.NewRemoteStoreError("failed to fetch dashboard data", err)
		}
		stats.EngagementRate = EngagementRate(engaged, stats.TotalUsers)
	}

	return &stats, nil
}

// EngagementRate is the share of members with at least one booking, as a
// percentage rounded to one decimal. Zero members gives zero.
func EngagementRate(engaged, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(engaged)/float64(total)*1000) / 10
}
