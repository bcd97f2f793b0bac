package contact

import (
	"context"
	"errors"
)

var ErrRequestNotFound = errors.New("contact request not found")

type Repository interface {
	Create(ctx context.Context, userID, subject, message string) (*Request, error)
	GetByID(ctx context.Context, id int64) (*Request, error)
	ListForUser(ctx context.Context, userID string) ([]Request, error)
	// ListByStatus returns every request when status is empty.
	ListByStatus(ctx context.Context, status string) ([]Request, error)
	// Accept moves a pending request to accepted and reports the rows
	// changed; zero means it was no longer pending.
	Accept(ctx context.Context, id int64) (int64, error)
	// Delete removes the request's messages and then the request, in one
	// transaction. A missing request is not an error.
	Delete(ctx context.Context, id int64) error
	ListMessages(ctx context.Context, requestID int64) ([]ChatMessage, error)
	InsertMessage(ctx context.Context, requestID int64, senderID, content string) (*ChatMessage, error)
}
