package notification

import (
	"context"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, n Notification) (*Notification, error)
	ListForRecipient(ctx context.Context, recipientID string, since time.Time, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, recipientID string, id int64) (int64, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
