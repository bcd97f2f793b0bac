package class

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gym24/internal/apperrors"
	"gym24/internal/audit"

	"github.com/doug-martin/goqu/v9"
	"golang.org/x/sync/errgroup"
)

const table = "classes"

type Service interface {
	ListWithOccupancy(ctx context.Context) ([]ClassView, error)
	Get(ctx context.Context, id int64) (*ClassDetail, error)
	Create(ctx context.Context, adminID string, req CreateClassRequest) (*Class, error)
	Update(ctx context.Context, adminID string, id int64, fields map[string]interface{}) (*Class, error)
	Delete(ctx context.Context, adminID string, id int64) error
}

type service struct {
	repo        Repository
	audit       audit.Recorder
	concurrency int
}

func NewService(repo Repository, recorder audit.Recorder, concurrency int) Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &service{
		repo:        repo,
		audit:       recorder,
		concurrency: concurrency,
	}
}

// ListWithOccupancy fetches every class and then, per class, its booking
// count and review stats. The per-class queries run concurrently, bounded by
// the configured limit.
func (s *service) ListWithOccupancy(ctx context.Context) ([]ClassView, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to list classes", err)
	}

	views := make([]ClassView, len(classes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range classes {
		i := i
		g.Go(func() error {
			view, err := s.project(gctx, classes[i])
			if err != nil {
				return err
			}
			views[i] = view
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to load class occupancy", err)
	}

	return views, nil
}

func (s *service) project(ctx context.Context, c Class) (ClassView, error) {
	count, err := s.repo.CountBookings(ctx, c.ID)
	if err != nil {
		return ClassView{}, err
	}

	stats, err := s.repo.ReviewStats(ctx, c.ID)
	if err != nil {
		return ClassView{}, err
	}

	remaining, full := Occupancy(c.MaxCapacity, count)
	return ClassView{
		Class:           c,
		CurrentBookings: count,
		Remaining:       remaining,
		IsFull:          full,
		AverageRating:   math.Round(stats.Average*10) / 10,
		ReviewCount:     stats.Count,
	}, nil
}

func (s *service) Get(ctx context.Context, id int64) (*ClassDetail, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrClassNotFound) {
		return nil, apperrors.NewNotFoundError("class not found")
	}
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to load class", err)
	}

	view, err := s.project(ctx, *c)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to load class occupancy", err)
	}

	reviews, err := s.repo.ListApprovedReviews(ctx, id)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to load reviews", err)
	}

	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range reviews {
		if r.Rating >= 1 && r.Rating <= 5 {
			distribution[r.Rating]++
		}
	}

	return &ClassDetail{
		ClassView:          view,
		Reviews:            reviews,
		RatingDistribution: distribution,
	}, nil
}

func (s *service) Create(ctx context.Context, adminID string, req CreateClassRequest) (*Class, error) {
	if req.Name == "" || req.Schedule == nil || req.Schedule.IsZero() {
		return nil, apperrors.NewValidationError("name", "Missing required fields: name and schedule")
	}

	created, err := s.repo.Create(ctx, req.toClass())
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to create class", err)
	}

	s.audit.Record(ctx, audit.NewEntry(adminID, audit.ActionCreate, table, created.ID, created))
	return created, nil
}

func (s *service) Update(ctx context.Context, adminID string, id int64, fields map[string]interface{}) (*Class, error) {
	record, err := updateRecord(fields)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, record)
	if errors.Is(err, ErrClassNotFound) {
		return nil, apperrors.NewNotFoundError("class not found")
	}
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to update class", err)
	}

	s.audit.Record(ctx, audit.NewEntry(adminID, audit.ActionUpdate, table, id, fields))
	return updated, nil
}

func (s *service) Delete(ctx context.Context, adminID string, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NewRemoteStoreError("failed to delete class", err)
	}

	s.audit.Record(ctx, audit.NewEntry(adminID, audit.ActionDelete, table, id, nil))
	return nil
}

// updateRecord keeps only whitelisted, well-typed fields. Unknown keys are
// ignored; a payload with nothing usable is rejected.
func updateRecord(fields map[string]interface{}) (goqu.Record, error) {
	record := goqu.Record{}

	for key, value := range fields {
		switch key {
		case "name", "description", "trainer_name", "category":
			str, ok := value.(string)
			if !ok {
				return nil, apperrors.NewValidationError(key, fmt.Sprintf("%s must be a string", key))
			}
			if key == "name" && str == "" {
				return nil, apperrors.NewValidationError(key, "name cannot be empty")
			}
			record[key] = str

		case "schedule":
			str, _ := value.(string)
			t, err := time.Parse(time.RFC3339, str)
			if err != nil {
				return nil, apperrors.NewValidationError(key, "schedule must be an RFC3339 timestamp")
			}
			record[key] = t

		case "duration_minutes", "max_capacity":
			n, ok := value.(float64)
			if !ok || n <= 0 || n != math.Trunc(n) {
				return nil, apperrors.NewValidationError(key, fmt.Sprintf("%s must be a positive integer", key))
			}
			record[key] = int(n)
		}
	}

	if len(record) == 0 {
		return nil, apperrors.NewValidationError("", "No valid fields to update")
	}

	return record, nil
}
