// Package stream serves realtime viewer sessions over Server-Sent Events.
package stream

import (
	"context"
	"fmt"

	"gym24/internal/booking"
	"gym24/internal/class"
	"gym24/internal/contact"
	"gym24/internal/notification"
	"gym24/internal/realtime"
)

// Projector answers viewer refetches with the same projections the REST
// endpoints serve.
type Projector struct {
	classes       class.Service
	bookings      booking.Service
	notifications notification.Service
	contacts      contact.Service
}

func NewProjector(classes class.Service, bookings booking.Service, notifications notification.Service, contacts contact.Service) *Projector {
	return &Projector{
		classes:       classes,
		bookings:      bookings,
		notifications: notifications,
		contacts:      contacts,
	}
}

func sender(scope realtime.Scope) contact.Sender {
	if scope.View == realtime.ViewAdminChat || scope.View == realtime.ViewAdminRequests {
		return contact.Admin(scope.UserID)
	}
	return contact.Member(scope.UserID)
}

func (p *Projector) Fetch(ctx context.Context, scope realtime.Scope, c realtime.Collection) (interface{}, error) {
	switch c {
	case realtime.CollectionClasses:
		return p.classes.ListWithOccupancy(ctx)
	case realtime.CollectionBookings:
		return p.bookings.ListUserBookings(ctx, scope.UserID)
	case realtime.CollectionNotifications:
		return p.notifications.ListForRecipient(ctx, scope.UserID)
	case realtime.CollectionRequest:
		return p.contacts.GetForViewer(ctx, sender(scope), scope.RequestID)
	case realtime.CollectionMessages:
		return p.contacts.ListMessages(ctx, sender(scope), scope.RequestID)
	case realtime.CollectionRequests:
		return p.contacts.ListByStatus(ctx, "")
	}
	return nil, fmt.Errorf("unknown collection %q", c)
}
