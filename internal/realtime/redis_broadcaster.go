package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gym24/internal/logger"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster implements Broadcaster over Redis pub/sub so nudges reach
// viewers connected to any instance. One Redis subscription per channel is
// shared by all local subscribers of that channel.
type RedisBroadcaster struct {
	client        *redis.Client
	subscriptions map[string]*redis.PubSub
	subscribers   map[string]map[chan Message]struct{}
	mu            sync.RWMutex
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewRedisBroadcaster(client *redis.Client) *RedisBroadcaster {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisBroadcaster{
		client:        client,
		subscriptions: make(map[string]*redis.PubSub),
		subscribers:   make(map[string]map[chan Message]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (b *RedisBroadcaster) Send(ctx context.Context, channel string, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := b.client.Publish(ctx, channel, string(data)).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}

	return nil
}

// Subscribe joins channel. The first local subscriber of a channel performs
// the Redis SUBSCRIBE handshake without holding the lock, so a slow Redis
// never stalls publishers or other channels.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, channel string) (<-chan Message, error) {
	b.mu.Lock()
	if _, exists := b.subscriptions[channel]; exists {
		msgChan := b.addSubscriberLocked(channel)
		b.mu.Unlock()
		b.watch(ctx, channel, msgChan)
		return msgChan, nil
	}
	b.mu.Unlock()

	pubsub := b.client.Subscribe(b.ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	b.mu.Lock()
	if b.ctx.Err() != nil {
		b.mu.Unlock()
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: broadcaster closed", channel)
	}

	// another caller may have registered the channel while we were waiting
	var extra *redis.PubSub
	if _, exists := b.subscriptions[channel]; exists {
		extra = pubsub
	} else {
		b.subscriptions[channel] = pubsub
		go b.receive(channel, pubsub)
	}
	msgChan := b.addSubscriberLocked(channel)
	b.mu.Unlock()

	if extra != nil {
		_ = extra.Close()
	}
	b.watch(ctx, channel, msgChan)
	return msgChan, nil
}

func (b *RedisBroadcaster) addSubscriberLocked(channel string) chan Message {
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan Message]struct{})
	}
	msgChan := make(chan Message, defaultSubscriberBuffer)
	b.subscribers[channel][msgChan] = struct{}{}
	return msgChan
}

func (b *RedisBroadcaster) watch(ctx context.Context, channel string, msgChan chan Message) {
	go func() {
		<-ctx.Done()
		b.removeSubscriber(channel, msgChan)
	}()
}

func (b *RedisBroadcaster) receive(channel string, pubsub *redis.PubSub) {
	defer b.cleanupChannel(channel, pubsub)

	ch := pubsub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case raw, ok := <-ch:
			if !ok {
				return
			}
			b.dispatch(channel, raw.Payload)
		}
	}
}

// dispatch decodes one published payload and hands it to every local
// subscriber of channel. Full subscribers miss the nudge.
func (b *RedisBroadcaster) dispatch(channel, payload string) {
	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		logger.WithError(err).Warn("dropping malformed broadcast", "channel", channel)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for subscriber := range b.subscribers[channel] {
		select {
		case subscriber <- msg:
		default:
		}
	}
}

func (b *RedisBroadcaster) removeSubscriber(channel string, msgChan chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscribers, exists := b.subscribers[channel]
	if !exists {
		return
	}
	if _, ok := subscribers[msgChan]; !ok {
		return
	}

	delete(subscribers, msgChan)
	close(msgChan)

	if len(subscribers) == 0 {
		delete(b.subscribers, channel)
		if pubsub, ok := b.subscriptions[channel]; ok {
			_ = pubsub.Close()
			delete(b.subscriptions, channel)
		}
	}
}

// cleanupChannel closes every local subscriber of a channel whose Redis
// subscription ended, so viewers notice and resubscribe.
func (b *RedisBroadcaster) cleanupChannel(channel string, pubsub *redis.PubSub) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if current, ok := b.subscriptions[channel]; !ok || current != pubsub {
		return
	}

	for subscriber := range b.subscribers[channel] {
		close(subscriber)
	}
	delete(b.subscribers, channel)
	_ = pubsub.Close()
	delete(b.subscriptions, channel)
}

func (b *RedisBroadcaster) Close() error {
	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	for channel, pubsub := range b.subscriptions {
		for subscriber := range b.subscribers[channel] {
			close(subscriber)
		}
		delete(b.subscribers, channel)
		if err := pubsub.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(b.subscriptions, channel)
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing broadcaster: %v", errs)
	}
	return nil
}
