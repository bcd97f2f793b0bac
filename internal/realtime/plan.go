package realtime

import "strconv"

type View string

const (
	ViewClasses       View = "classes"
	ViewDashboard     View = "dashboard"
	ViewNotifications View = "notifications"
	ViewChat          View = "chat"
	ViewAdminRequests View = "admin_requests"
	ViewAdminChat     View = "admin_chat"
)

// Scope identifies what a viewer is looking at.
type Scope struct {
	View      View
	UserID    string
	RequestID int64
}

func (s Scope) requestKey() string {
	return strconv.FormatInt(s.RequestID, 10)
}

// Channels lists the broadcast channels whose nudges concern the scope.
func (s Scope) Channels() []string {
	switch s.View {
	case ViewNotifications:
		if s.UserID != "" {
			return []string{UserChannel(s.UserID)}
		}
	case ViewChat:
		chans := []string{RequestChannel(s.RequestID)}
		if s.UserID != "" {
			chans = append(chans, UserChannel(s.UserID))
		}
		return chans
	case ViewAdminChat:
		return []string{RequestChannel(s.RequestID)}
	case ViewAdminRequests:
		return []string{AdminChannel}
	}
	return nil
}

type Collection string

const (
	CollectionClasses       Collection = "classes"
	CollectionBookings      Collection = "bookings"
	CollectionNotifications Collection = "notifications"
	CollectionMessages      Collection = "messages"
	CollectionRequest       Collection = "request"
	CollectionRequests      Collection = "requests"
)

// RefetchPlan names the full list queries a viewer must rerun.
type RefetchPlan struct {
	Classes       bool
	UserBookings  bool
	Notifications bool
	Messages      bool
	Request       bool
	Requests      bool
}

func (p RefetchPlan) Empty() bool {
	return p == RefetchPlan{}
}

func (p RefetchPlan) Merge(o RefetchPlan) RefetchPlan {
	return RefetchPlan{
		Classes:       p.Classes || o.Classes,
		UserBookings:  p.UserBookings || o.UserBookings,
		Notifications: p.Notifications || o.Notifications,
		Messages:      p.Messages || o.Messages,
		Request:       p.Request || o.Request,
		Requests:      p.Requests || o.Requests,
	}
}

// Collections returns the planned collections in a fixed order.
func (p RefetchPlan) Collections() []Collection {
	var out []Collection
	if p.Classes {
		out = append(out, CollectionClasses)
	}
	if p.UserBookings {
		out = append(out, CollectionBookings)
	}
	if p.Notifications {
		out = append(out, CollectionNotifications)
	}
	if p.Request {
		out = append(out, CollectionRequest)
	}
	if p.Messages {
		out = append(out, CollectionMessages)
	}
	if p.Requests {
		out = append(out, CollectionRequests)
	}
	return out
}

// FullPlan is what a viewer fetches on connect and after a resync.
func FullPlan(s Scope) RefetchPlan {
	switch s.View {
	case ViewClasses:
		return RefetchPlan{Classes: true, UserBookings: s.UserID != ""}
	case ViewDashboard:
		return RefetchPlan{Classes: true, UserBookings: true}
	case ViewNotifications:
		return RefetchPlan{Notifications: true}
	case ViewChat, ViewAdminChat:
		return RefetchPlan{Request: true, Messages: true}
	case ViewAdminRequests:
		return RefetchPlan{Requests: true}
	}
	return RefetchPlan{}
}

// Plan decides which collections a change event invalidates for a scope.
// It never applies deltas: the answer is always "rerun these queries".
func Plan(s Scope, ev ChangeEvent) RefetchPlan {
	if ev.Op == OpResync {
		return FullPlan(s)
	}

	switch s.View {
	case ViewClasses, ViewDashboard:
		var p RefetchPlan
		switch ev.Entity {
		case EntityBookings:
			p.Classes = true
			p.UserBookings = s.UserID != "" && (ev.UserID == "" || ev.UserID == s.UserID)
		case EntityReviews:
			p.Classes = true
		case EntityClasses:
			p.Classes = true
			// booking rows carry the class name
			p.UserBookings = s.View == ViewDashboard
		}
		return p

	case ViewNotifications:
		if ev.Entity == EntityNotifications && (ev.RecipientID == "" || ev.RecipientID == s.UserID) {
			return RefetchPlan{Notifications: true}
		}

	case ViewChat, ViewAdminChat:
		switch ev.Entity {
		case EntityContactMessages:
			if ev.RequestID == s.requestKey() {
				return RefetchPlan{Messages: true}
			}
		case EntityContactRequests:
			if ev.RecordID == s.requestKey() {
				return RefetchPlan{Request: true}
			}
		}

	case ViewAdminRequests:
		if ev.Entity == EntityContactRequests || ev.Entity == EntityContactMessages {
			return RefetchPlan{Requests: true}
		}
	}

	return RefetchPlan{}
}

// NudgePlan maps a broadcast to a refetch plan. Typing indicators carry no
// durable state and are reported through the second return value instead.
func NudgePlan(s Scope, m Message) (RefetchPlan, bool) {
	if m.Event == EventTyping {
		return RefetchPlan{}, s.View == ViewChat || s.View == ViewAdminChat
	}

	switch s.View {
	case ViewNotifications:
		if m.Event == EventAccepted || m.Event == EventDeclined {
			return RefetchPlan{Notifications: true}, false
		}
	case ViewChat, ViewAdminChat:
		switch m.Event {
		case EventNewMessage:
			return RefetchPlan{Messages: true}, false
		case EventAccepted, EventDeclined, EventChatDeleted:
			return RefetchPlan{Request: true, Messages: true}, false
		}
	case ViewAdminRequests:
		switch m.Event {
		case EventNewRequest, EventNewMessage, EventChatDeleted:
			return RefetchPlan{Requests: true}, false
		}
	}

	return RefetchPlan{}, false
}
