package review

import (
	"context"
	"errors"

	"gym24/internal/apperrors"
	"gym24/internal/audit"
	"gym24/internal/class"
)

type Service interface {
	// Submit creates the member's review of a class, or updates it when one
	// already exists. The bool reports whether a row was created.
	Submit(ctx context.Context, userID string, classID int64, rating int, comment string) (*Review, bool, error)
	ListMine(ctx context.Context, userID string) ([]Review, error)
	DeleteMine(ctx context.Context, userID string, id int64) error
	ListAll(ctx context.Context) ([]AdminReview, error)
	Delete(ctx context.Context, adminID string, id int64) error
}

type service struct {
	repo    Repository
	classes class.Repository
	audit   audit.Recorder
}

func NewService(repo Repository, classes class.Repository, recorder audit.Recorder) Service {
	return &service{
		repo:    repo,
		classes: classes,
		audit:   recorder,
	}
}

func (s *service) Submit(ctx context.Context, userID string, classID int64, rating int, comment string) (*Review, bool, error) {
	if userID == "" {
		return nil, false, apperrors.NewAuthenticationError("must be logged in")
	}
	if rating < 1 || rating > 5 {
		return nil, false, apperrors.NewValidationError("rating", "rating must be between 1 and 5")
	}

	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, class.ErrClassNotFound) {
			return nil, false, apperrors.NewNotFoundError("class not found")
		}
		return nil, false, apperrors.NewRemoteStoreError("failed to load class", err)
	}

	existing, err := s.repo.FindByUserAndClass(ctx, userID, classID)
	switch {
	case errors.Is(err, ErrReviewNotFound):
		created, err := s.repo.Create(ctx, userID, classID, rating, comment)
		if err != nil {
			return nil, false, apperrors.NewRemoteStoreError("failed to create review", err)
		}
		return created, true, nil
	case err != nil:
		return nil, false, apperrors.NewRemoteStoreError("failed to load review", err)
	}

	updated, err := s.repo.Update(ctx, existing.ID, rating, comment)
	if err != nil {
		return nil, false, apperrors.NewRemoteStoreError("failed to update review", err)
	}
	return updated, false, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]Review, error) {
	if userID == "" {
		return nil, apperrors.NewAuthenticationError("must be logged in")
	}
	reviews, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to list reviews", err)
	}
	return reviews, nil
}

func (s *service) DeleteMine(ctx context.Context, userID string, id int64) error {
	if userID == "" {
		return apperrors.NewAuthenticationError("must be logged in")
	}
	removed, err := s.repo.DeleteForUser(ctx, userID, id)
	if err != nil {
		return apperrors.NewRemoteStoreError("failed to delete review", err)
	}
	if removed == 0 {
		return apperrors.NewNotFoundError("review not found")
	}
	return nil
}

func (s *service) ListAll(ctx context.Context) ([]AdminReview, error) {
	reviews, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to list reviews", err)
	}
	return reviews, nil
}

func (s *service) Delete(ctx context.Context, adminID string, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NewRemoteStoreError("failed to delete review", err)
	}
	s.audit.Record(ctx, audit.NewEntry(adminID, audit.ActionDelete, "reviews", id, nil))
	return nil
}
