// Package realtime turns database row changes and ephemeral broadcasts into
// refetch plans for connected viewers.
package realtime

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
	// OpResync is synthesized after the feed reconnects; changes may have
	// been missed and every viewer has to refetch from scratch.
	OpResync Op = "RESYNC"
)

const (
	EntityBookings        = "bookings"
	EntityReviews         = "reviews"
	EntityClasses         = "classes"
	EntityNotifications   = "notifications"
	EntityContactRequests = "contact_requests"
	EntityContactMessages = "contact_messages"
)

// ChangeEvent describes one committed row mutation.
type ChangeEvent struct {
	Entity      string `json:"table"`
	Op          Op     `json:"op"`
	RecordID    string `json:"id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	ClassID     string `json:"class_id,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
	RecipientID string `json:"recipient_id,omitempty"`
}

func Resync() ChangeEvent {
	return ChangeEvent{Op: OpResync}
}

// DecodeChangeEvent parses a row_changes notification payload.
func DecodeChangeEvent(payload string) (ChangeEvent, error) {
	var ev ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return ChangeEvent{}, fmt.Errorf("decode change event: %w", err)
	}
	if ev.Entity == "" || ev.Op == "" {
		return ChangeEvent{}, fmt.Errorf("decode change event: missing table or op in %q", payload)
	}
	return ev, nil
}

// Broadcast event names.
const (
	EventAccepted    = "accepted"
	EventDeclined    = "declined"
	EventChatDeleted = "chat_deleted"
	EventNewMessage  = "new_message"
	EventNewRequest  = "new_request"
	EventTyping      = "typing"
)

// Message is an ephemeral, never persisted broadcast.
type Message struct {
	Event   string                 `json:"event"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

const (
	AdminChannel     = "notify_admin"
	AdminBellChannel = "admin_notifications_bell"
)

func UserChannel(userID string) string {
	return "notify_user_" + userID
}

func RequestChannel(requestID int64) string {
	return "typing_request_" + strconv.FormatInt(requestID, 10)
}
