package notification

import (
	"context"
	"time"

	"gym24/internal/apperrors"
	"gym24/internal/logger"
	"gym24/internal/metrics"
)

type Service interface {
	Insert(ctx context.Context, n Notification) error
	ListForRecipient(ctx context.Context, recipientID string) ([]Notification, error)
	MarkRead(ctx context.Context, recipientID string, id int64) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	// Cleanup removes notifications older than the retention window and
	// returns how many there were.
	Cleanup(ctx context.Context) (int64, error)
}

// DefaultRetention applies when a non-positive retention is configured.
const DefaultRetention = 24 * time.Hour

type service struct {
	repo      Repository
	retention time.Duration
	now       func() time.Time
}

func NewService(repo Repository, retention time.Duration) Service {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &service{
		repo:      repo,
		retention: retention,
		now:       time.Now,
	}
}

func (s *service) cutoff() time.Time {
	return s.now().Add(-s.retention)
}

func (s *service) Insert(ctx context.Context, n Notification) error {
	if _, err := s.repo.Insert(ctx, n); err != nil {
		return apperrors.NewRemoteStoreError("failed to insert notification", err)
	}
	return nil
}

func (s *service) ListForRecipient(ctx context.Context, recipientID string) ([]Notification, error) {
	if recipientID == "" {
		return nil, apperrors.NewAuthenticationError("must be logged in")
	}
	notifications, err := s.repo.ListForRecipient(ctx, recipientID, s.cutoff(), DefaultLimit)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to list notifications", err)
	}
	return notifications, nil
}

func (s *service) MarkRead(ctx context.Context, recipientID string, id int64) error {
	updated, err := s.repo.MarkRead(ctx, recipientID, id)
	if err != nil {
		return apperrors.NewRemoteStoreError("failed to mark notification read", err)
	}
	if updated == 0 {
		return apperrors.NewNotFoundError("notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return 0, apperrors.NewRemoteStoreError("failed to mark notifications read", err)
	}
	return updated, nil
}

func (s *service) Cleanup(ctx context.Context) (int64, error) {
	cutoff := s.cutoff()

	count, err := s.repo.CountOlderThan(ctx, cutoff)
	if err != nil {
		return 0, apperrors.NewRemoteStoreError("failed to count notifications", err)
	}
	if count == 0 {
		return 0, nil
	}

	if _, err := s.repo.DeleteOlderThan(ctx, cutoff); err != nil {
		return 0, apperrors.NewRemoteStoreError("failed to delete notifications", err)
	}

	metrics.RecordNotificationsCleaned(count)
	logger.Info("notifications cleaned up", "deleted", count, "cutoff", cutoff)
	return count, nil
}
