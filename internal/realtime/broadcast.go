package realtime

import (
	"context"
	"sync"
)

// Broadcaster carries ephemeral messages on named channels.
type Broadcaster interface {
	Send(ctx context.Context, channel string, msg Message) error
	Subscribe(ctx context.Context, channel string) (<-chan Message, error)
	Close() error
}

// MemoryBroadcaster is a single-process Broadcaster.
type MemoryBroadcaster struct {
	mu       sync.RWMutex
	channels map[string]map[chan Message]struct{}
	closed   bool
}

func NewMemoryBroadcaster() *MemoryBroadcaster {
	return &MemoryBroadcaster{channels: make(map[string]map[chan Message]struct{})}
}

func (b *MemoryBroadcaster) Send(ctx context.Context, channel string, msg Message) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.channels[channel] {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

func (b *MemoryBroadcaster) Subscribe(ctx context.Context, channel string) (<-chan Message, error) {
	ch := make(chan Message, defaultSubscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, nil
	}
	if b.channels[channel] == nil {
		b.channels[channel] = make(map[chan Message]struct{})
	}
	b.channels[channel][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(channel, ch)
	}()

	return ch, nil
}

func (b *MemoryBroadcaster) remove(channel string, ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.channels[channel]
	if !ok {
		return
	}
	if _, ok := subs[ch]; !ok {
		return
	}
	delete(subs, ch)
	close(ch)
	if len(subs) == 0 {
		delete(b.channels, channel)
	}
}

func (b *MemoryBroadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for channel, subs := range b.channels {
		for ch := range subs {
			close(ch)
		}
		delete(b.channels, channel)
	}
	return nil
}
