package realtime

import (
	"context"
	"sync"
	"time"

	"gym24/internal/logger"
	"gym24/internal/metrics"
)

type State int

const (
	StateDisconnected State = iota
	StateSubscribing
	StateLive
)

func (s State) String() string {
	switch s {
	case StateSubscribing:
		return "subscribing"
	case StateLive:
		return "live"
	default:
		return "disconnected"
	}
}

const (
	UpdateStatus = "status"
	UpdateData   = "data"
	UpdateTyping = "typing"
	UpdateError  = "error"
)

// Update is one item pushed to the viewer's client.
type Update struct {
	Kind       string      `json:"kind"`
	Collection Collection  `json:"collection,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

type Status struct {
	Online bool   `json:"online"`
	State  string `json:"state"`
}

// Fetcher reruns the full list query for one collection of a scope.
type Fetcher interface {
	Fetch(ctx context.Context, scope Scope, c Collection) (interface{}, error)
}

type ViewerConfig struct {
	Scope            Scope
	Hub              *Hub
	Broadcaster      Broadcaster
	Fetcher          Fetcher
	PollInterval     time.Duration
	ResubscribeDelay time.Duration
}

// Viewer keeps one client's view consistent by refetching whenever a
// relevant change or nudge arrives. It never patches local state.
type Viewer struct {
	cfg     ViewerConfig
	updates chan Update

	mu    sync.RWMutex
	state State
}

func NewViewer(cfg ViewerConfig) *Viewer {
	if cfg.ResubscribeDelay <= 0 {
		cfg.ResubscribeDelay = time.Second
	}
	return &Viewer{
		cfg:     cfg,
		updates: make(chan Update, 16),
	}
}

func (v *Viewer) Updates() <-chan Update {
	return v.updates
}

func (v *Viewer) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *Viewer) setState(s State) {
	v.mu.Lock()
	v.state = s
	v.mu.Unlock()
}

// Run drives the viewer until ctx is done, then closes Updates.
func (v *Viewer) Run(ctx context.Context) {
	defer close(v.updates)

	view := string(v.cfg.Scope.View)
	metrics.RealtimeViewers.WithLabelValues(view).Inc()
	defer metrics.RealtimeViewers.WithLabelValues(view).Dec()

	for {
		v.session(ctx)
		v.setState(StateDisconnected)
		if ctx.Err() != nil {
			return
		}
		v.emit(ctx, Update{Kind: UpdateStatus, Data: Status{Online: false, State: StateDisconnected.String()}})

		select {
		case <-ctx.Done():
			return
		case <-time.After(v.cfg.ResubscribeDelay):
		}
	}
}

// session runs one subscription until the change stream ends or ctx is done.
func (v *Viewer) session(ctx context.Context) {
	v.setState(StateSubscribing)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := v.cfg.Hub.Subscribe(subCtx)
	nudges := v.subscribeNudges(subCtx)

	v.setState(StateLive)
	v.emit(ctx, Update{Kind: UpdateStatus, Data: Status{Online: true, State: StateLive.String()}})
	v.refetch(ctx, FullPlan(v.cfg.Scope))

	var poll <-chan time.Time
	if v.cfg.PollInterval > 0 {
		ticker := time.NewTicker(v.cfg.PollInterval)
		defer ticker.Stop()
		poll = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			plan := Plan(v.cfg.Scope, ev)
			plan = v.drain(events, plan)
			v.refetch(ctx, plan)

		case msg, ok := <-nudges:
			if !ok {
				// nudges sent while we were not subscribed are lost; a new
				// session refetches everything
				logger.Warn("broadcast subscription ended", "view", v.cfg.Scope.View)
				return
			}
			plan, typing := NudgePlan(v.cfg.Scope, msg)
			if typing {
				v.emit(ctx, Update{Kind: UpdateTyping, Data: msg.Payload})
			}
			v.refetch(ctx, plan)

		case <-poll:
			v.refetch(ctx, FullPlan(v.cfg.Scope))
		}
	}
}

// drain folds already queued events into plan so a burst costs one refetch.
func (v *Viewer) drain(events <-chan ChangeEvent, plan RefetchPlan) RefetchPlan {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return plan
			}
			plan = plan.Merge(Plan(v.cfg.Scope, ev))
		default:
			return plan
		}
	}
}

func (v *Viewer) subscribeNudges(ctx context.Context) <-chan Message {
	channels := v.cfg.Scope.Channels()
	if v.cfg.Broadcaster == nil || len(channels) == 0 {
		return nil
	}

	var subs []<-chan Message
	for _, channel := range channels {
		ch, err := v.cfg.Broadcaster.Subscribe(ctx, channel)
		if err != nil {
			logger.WithError(err).Warn("broadcast subscribe failed", "channel", channel)
			continue
		}
		subs = append(subs, ch)
	}
	if len(subs) == 0 {
		return nil
	}
	return mergeMessages(ctx, subs...)
}

func (v *Viewer) refetch(ctx context.Context, plan RefetchPlan) {
	for _, c := range plan.Collections() {
		data, err := v.cfg.Fetcher.Fetch(ctx, v.cfg.Scope, c)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.WithError(err).Warn("refetch failed", "view", v.cfg.Scope.View, "collection", c)
			v.emit(ctx, Update{Kind: UpdateError, Collection: c, Data: err.Error()})
			continue
		}
		metrics.RecordRefetch(string(c))
		v.emit(ctx, Update{Kind: UpdateData, Collection: c, Data: data})
	}
}

func (v *Viewer) emit(ctx context.Context, u Update) {
	select {
	case v.updates <- u:
	case <-ctx.Done():
	}
}

// mergeMessages fans chans into one channel that closes as soon as any input
// closes or ctx is done.
func mergeMessages(ctx context.Context, chans ...<-chan Message) <-chan Message {
	out := make(chan Message, defaultSubscriberBuffer)
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(len(chans))
	for _, ch := range chans {
		go func(ch <-chan Message) {
			defer wg.Done()
			defer cancel()
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-ch:
					if !ok {
						return
					}
					select {
					case out <- msg:
					case <-ctx.Done():
						return
					}
				}
			}
		}(ch)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
