package contact

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"

	acceptedContent = "Your message request was accepted by the admin."
	declinedContent = "Your message request was declined by the admin."
)

// Request is a member's contact request. UserEmail and UserName are joined
// from the requester's profile.
type Request struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UserEmail string    `db:"user_email" json:"user_email"`
	UserName  string    `db:"user_name" json:"user_name"`
}

type ChatMessage struct {
	ID        int64     `db:"id" json:"id"`
	RequestID int64     `db:"request_id" json:"request_id"`
	SenderID  string    `db:"sender_id" json:"sender_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Sender identifies who is writing in a chat.
type Sender struct {
	ID    string
	Admin bool
}

func Member(id string) Sender { return Sender{ID: id} }
func Admin(id string) Sender  { return Sender{ID: id, Admin: true} }

type CreateRequestRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type PostMessageRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type TypingRequest struct {
	IsTyping bool `json:"is_typing"`
}

func validStatus(status string) bool {
	switch status {
	case "", StatusPending, StatusAccepted:
		return true
	}
	return false
}
