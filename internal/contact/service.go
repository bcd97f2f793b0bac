package contact

import (
	"context"
	"errors"
	"strings"

	"gym24/internal/apperrors"
	"gym24/internal/audit"
	"gym24/internal/metrics"
	"gym24/internal/notification"
	"gym24/internal/realtime"
)

type Service interface {
	CreateRequest(ctx context.Context, userID string, req CreateRequestRequest) (*Request, error)
	ListMine(ctx context.Context, userID string) ([]Request, error)
	ListByStatus(ctx context.Context, status string) ([]Request, error)
	// GetForViewer returns the request when the sender may see it. Members
	// only see their own; anything else is reported as not found.
	GetForViewer(ctx context.Context, sender Sender, id int64) (*Request, error)

	Accept(ctx context.Context, adminID string, id int64) error
	Decline(ctx context.Context, adminID string, id int64) error
	DeleteChat(ctx context.Context, adminID string, id int64) error

	ListMessages(ctx context.Context, sender Sender, requestID int64) ([]ChatMessage, error)
	PostMessage(ctx context.Context, sender Sender, requestID int64, content string) (*ChatMessage, error)
	Typing(ctx context.Context, sender Sender, requestID int64, isTyping bool) error
}

// Notifier stores the requester-facing notification rows.
type Notifier interface {
	Insert(ctx context.Context, n notification.Notification) error
}

// Mailer is the part of the email service the contact flow needs.
type Mailer interface {
	SendRequestAccepted(ctx context.Context, to, name, subject string) error
	SendRequestDeclined(ctx context.Context, to, name, subject string) error
}

type service struct {
	repo        Repository
	notifier    Notifier
	broadcaster realtime.Broadcaster
	mailer      Mailer
	audit       audit.Recorder
}

func NewService(repo Repository, notifier Notifier, broadcaster realtime.Broadcaster, mailer Mailer, recorder audit.Recorder) Service {
	return &service{
		repo:        repo,
		notifier:    notifier,
		broadcaster: broadcaster,
		mailer:      mailer,
		audit:       recorder,
	}
}

func (s *service) CreateRequest(ctx context.Context, userID string, req CreateRequestRequest) (*Request, error) {
	if userID == "" {
		return nil, apperrors.NewAuthenticationError("must be logged in")
	}
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)
	if subject == "" || message == "" {
		return nil, apperrors.NewValidationError("subject", "Missing required fields: subject and message")
	}

	created, err := s.repo.Create(ctx, userID, subject, message)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to create contact request", err)
	}

	msg := realtime.Message{Event: realtime.EventNewRequest, Payload: map[string]interface{}{
		"requestId": created.ID,
		"userId":    userID,
		"subject":   subject,
	}}
	s.broadcast(ctx, msg, realtime.AdminChannel, realtime.AdminBellChannel)

	return created, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]Request, error) {
	if userID == "" {
		return nil, apperrors.NewAuthenticationError("must be logged in")
	}
	requests, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to list contact requests", err)
	}
	return requests, nil
}

func (s *service) ListByStatus(ctx context.Context, status string) ([]Request, error) {
	if !validStatus(status) {
		return nil, apperrors.NewValidationError("status", "status must be pending or accepted")
	}
	requests, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to list contact requests", err)
	}
	return requests, nil
}

func (s *service) GetForViewer(ctx context.Context, sender Sender, id int64) (*Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrRequestNotFound) {
		return nil, apperrors.NewNotFoundError("contact request not found")
	}
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to load contact request", err)
	}
	if !sender.Admin && req.UserID != sender.ID {
		return nil, apperrors.NewNotFoundError("contact request not found")
	}
	return req, nil
}

func (s *service) Accept(ctx context.Context, adminID string, id int64) error {
	req, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrRequestNotFound) {
		metrics.RecordContactTransition("accept", "not_found")
		return apperrors.NewNotFoundError("contact request not found")
	}
	if err != nil {
		metrics.RecordContactTransition("accept", "error")
		return apperrors.NewRemoteStoreError("failed to load contact request", err)
	}

	updated, err := s.repo.Accept(ctx, id)
	if err != nil {
		metrics.RecordContactTransition("accept", "error")
		return apperrors.NewRemoteStoreError("failed to accept contact request", err)
	}
	if updated == 0 {
		metrics.RecordContactTransition("accept", "conflict")
		return apperrors.NewConflictError("request is no longer pending")
	}
	metrics.RecordContactTransition("accept", "ok")

	apperrors.BestEffort(ctx, "contact_notification", func(ctx context.Context) error {
		return s.notifier.Insert(ctx, notification.New(req.UserID, notification.ActorAdmin,
			notification.TypeRequestAccepted, req.ID, acceptedContent))
	})
	s.broadcast(ctx, realtime.Message{Event: realtime.EventAccepted, Payload: map[string]interface{}{
		"requestId": req.ID,
		"subject":   req.Subject,
	}}, realtime.UserChannel(req.UserID))
	s.audit.Record(ctx, audit.NewEntry(adminID, audit.ActionAccept, "contact_requests", req.ID,
		map[string]interface{}{"status": StatusAccepted}))
	s.mail(ctx, req, true)

	return nil
}

func (s *service) Decline(ctx context.Context, adminID string, id int64) error {
	req, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrRequestNotFound) {
		metrics.RecordContactTransition("decline", "noop")
		return nil
	}
	if err != nil {
		metrics.RecordContactTransition("decline", "error")
		return apperrors.NewRemoteStoreError("failed to load contact request", err)
	}

	// the notification is written first; the request it points at is about to go
	apperrors.BestEffort(ctx, "contact_notification", func(ctx context.Context) error {
		return s.notifier.Insert(ctx, notification.New(req.UserID, notification.ActorAdmin,
			notification.TypeRequestDeclined, req.ID, declinedContent))
	})

	if err := s.repo.Delete(ctx, id); err != nil {
		metrics.RecordContactTransition("decline", "error")
		return apperrors.NewRemoteStoreError("failed to delete contact request", err)
	}
	metrics.RecordContactTransition("decline", "ok")

	s.broadcast(ctx, realtime.Message{Event: realtime.EventDeclined, Payload: map[string]interface{}{
		"requestId": req.ID,
		"subject":   req.Subject,
	}}, realtime.UserChannel(req.UserID))
	s.audit.Record(ctx, audit.NewEntry(adminID, audit.ActionDecline, "contact_requests", req.ID,
		map[string]interface{}{"status": StatusDeclined}))
	s.mail(ctx, req, false)

	return nil
}

func (s *service) DeleteChat(ctx context.Context, adminID string, id int64) error {
	req, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrRequestNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.NewRemoteStoreError("failed to load contact request", err)
	}
	if req.Status != StatusAccepted {
		return apperrors.NewConflictError("only accepted chats can be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NewRemoteStoreError("failed to delete chat", err)
	}
	metrics.RecordContactTransition("delete_chat", "ok")

	s.broadcast(ctx, realtime.Message{Event: realtime.EventChatDeleted, Payload: map[string]interface{}{
		"requestId": req.ID,
	}}, realtime.RequestChannel(req.ID), realtime.UserChannel(req.UserID), realtime.AdminChannel)
	s.audit.Record(ctx, audit.NewEntry(adminID, audit.ActionDelete, "contact_requests", req.ID, nil))

	return nil
}

func (s *service) ListMessages(ctx context.Context, sender Sender, requestID int64) ([]ChatMessage, error) {
	if _, err := s.GetForViewer(ctx, sender, requestID); err != nil {
		return nil, err
	}
	messages, err := s.repo.ListMessages(ctx, requestID)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to list messages", err)
	}
	return messages, nil
}

func (s *service) PostMessage(ctx context.Context, sender Sender, requestID int64, content string) (*ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content", "message content is required")
	}

	req, err := s.GetForViewer(ctx, sender, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusAccepted {
		return nil, apperrors.NewConflictError("chat is not open")
	}

	msg, err := s.repo.InsertMessage(ctx, requestID, sender.ID, content)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to send message", err)
	}

	nudge := realtime.Message{Event: realtime.EventNewMessage, Payload: map[string]interface{}{
		"requestId": requestID,
		"senderId":  sender.ID,
	}}
	if sender.Admin {
		s.broadcast(ctx, nudge, realtime.RequestChannel(requestID), realtime.UserChannel(req.UserID))
	} else {
		s.broadcast(ctx, nudge, realtime.RequestChannel(requestID), realtime.AdminChannel, realtime.AdminBellChannel)
	}

	return msg, nil
}

func (s *service) Typing(ctx context.Context, sender Sender, requestID int64, isTyping bool) error {
	if _, err := s.GetForViewer(ctx, sender, requestID); err != nil {
		return err
	}

	s.broadcast(ctx, realtime.Message{Event: realtime.EventTyping, Payload: map[string]interface{}{
		"requestId": requestID,
		"userId":    sender.ID,
		"isAdmin":   sender.Admin,
		"isTyping":  isTyping,
	}}, realtime.RequestChannel(requestID))
	return nil
}

func (s *service) broadcast(ctx context.Context, msg realtime.Message, channels ...string) {
	if s.broadcaster == nil {
		return
	}
	for _, channel := range channels {
		channel := channel
		apperrors.BestEffort(ctx, "broadcast", func(ctx context.Context) error {
			return s.broadcaster.Send(ctx, channel, msg)
		})
	}
}

func (s *service) mail(ctx context.Context, req *Request, accepted bool) {
	if s.mailer == nil || req.UserEmail == "" || req.UserEmail == "No email" {
		return
	}
	apperrors.BestEffort(ctx, "contact_email", func(ctx context.Context) error {
		if accepted {
			return s.mailer.SendRequestAccepted(ctx, req.UserEmail, req.UserName, req.Subject)
		}
		return s.mailer.SendRequestDeclined(ctx, req.UserEmail, req.UserName, req.Subject)
	})
}
