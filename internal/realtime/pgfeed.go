package realtime

import (
	"context"
	"fmt"
	"time"

	"gym24/internal/logger"
	"gym24/internal/metrics"

	"github.com/lib/pq"
)

const (
	RowChangesChannel = "row_changes"

	feedMinReconnect = 10 * time.Second
	feedMaxReconnect = time.Minute
	feedPingInterval = 90 * time.Second
)

// PGFeed listens for row_changes notifications and publishes them on a Hub.
type PGFeed struct {
	dsn string
	hub *Hub
}

func NewPGFeed(dsn string, hub *Hub) *PGFeed {
	return &PGFeed{dsn: dsn, hub: hub}
}

// Run blocks until ctx is done. The listener reconnects on its own; every
// reconnect is surfaced to subscribers as a RESYNC event.
func (f *PGFeed) Run(ctx context.Context) error {
	listener := pq.NewListener(f.dsn, feedMinReconnect, feedMaxReconnect, f.reportEvent)
	defer listener.Close()

	if err := listener.Listen(RowChangesChannel); err != nil {
		return fmt.Errorf("listen %s: %w", RowChangesChannel, err)
	}
	logger.Info("change feed listening", "channel", RowChangesChannel)

	ticker := time.NewTicker(feedPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("change feed stopped")
			return nil
		case n := <-listener.Notify:
			f.handle(n)
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					logger.WithError(err).Warn("change feed ping failed")
				}
			}()
		}
	}
}

func (f *PGFeed) handle(n *pq.Notification) {
	if n == nil {
		metrics.RecordChangeEvent("*", string(OpResync))
		f.hub.Publish(Resync())
		return
	}

	ev, err := DecodeChangeEvent(n.Extra)
	if err != nil {
		logger.WithError(err).Warn("dropping malformed change event")
		return
	}

	metrics.RecordChangeEvent(ev.Entity, string(ev.Op))
	f.hub.Publish(ev)
}

func (f *PGFeed) reportEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		logger.Debug("change feed connected")
	case pq.ListenerEventDisconnected:
		logger.WithError(err).Warn("change feed disconnected")
	case pq.ListenerEventReconnected:
		logger.Info("change feed reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		logger.WithError(err).Warn("change feed reconnect attempt failed")
	}
}
