package notification

import (
	"database/sql"
	"time"
)

const (
	TypeRequestAccepted = "request_accepted"
	TypeRequestDeclined = "request_declined"

	ActorAdmin = "admin"

	// DefaultLimit caps a recipient's listing.
	DefaultLimit = 50
)

type Notification struct {
	ID          int64         `db:"id" json:"id"`
	RecipientID string        `db:"recipient_id" json:"recipient_id"`
	ActorRole   string        `db:"actor_role" json:"actor_role"`
	Type        string        `db:"type" json:"type"`
	RequestID   sql.NullInt64 `db:"request_id" json:"-"`
	Content     string        `db:"content" json:"content"`
	IsRead      bool          `db:"is_read" json:"is_read"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`

	RequestRef *int64 `db:"-" json:"request_id"`
}

// normalize fills the JSON view of nullable columns.
func (n *Notification) normalize() {
	if n.RequestID.Valid {
		id := n.RequestID.Int64
		n.RequestRef = &id
	} else {
		n.RequestRef = nil
	}
}

// New builds an unread notification about a contact request.
func New(recipientID, actorRole, kind string, requestID int64, content string) Notification {
	return Notification{
		RecipientID: recipientID,
		ActorRole:   actorRole,
		Type:        kind,
		RequestID:   sql.NullInt64{Int64: requestID, Valid: requestID > 0},
		Content:     content,
	}
}

type CleanupResponse struct {
	Deleted int64  `json:"deleted" example:"3"`
	Message string `json:"message" example:"Notifications cleaned up successfully"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated" example:"4"`
}
