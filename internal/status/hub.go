// Package status implements the in-process publish/subscribe hub behind the
// status-update push channel. One producer (the webhook endpoint) fans events
// out to any number of long-lived subscribers, persisting the latest status
// per script as a side effect.
package status

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// DefaultSubscriberBuffer is the per-subscriber channel capacity used when
// no buffer size is configured.
const DefaultSubscriberBuffer = 16

// Store persists the latest status per script. SetScriptStatus returns the
// number of rows matched; zero means no row exists for the script (no upsert
// is attempted).
type Store interface {
	SetScriptStatus(ctx context.Context, script, status string) (int64, error)
}

// Relay mirrors published events to an external broker for off-process
// consumers. Relay failures never affect local delivery.
type Relay interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Subscription is one registered consumer. Events published after (and only
// after) Subscribe arrive on C in publish order. The channel is closed by
// Unsubscribe.
type Subscription struct {
	ID string
	C  <-chan Event
	ch chan Event
}

// Hub is the process-wide event bus. Construct one in main and hand it to
// the handlers; there is no package-level instance.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]chan Event
	store  Store
	relay  Relay
	logger *slog.Logger
	buffer int
}

// Option configures a Hub.
type Option func(*Hub)

// WithRelay mirrors every published event to r.
func WithRelay(r Relay) Option {
	return func(h *Hub) { h.relay = r }
}

// WithSubscriberBuffer sets the per-subscriber channel capacity.
func WithSubscriberBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// NewHub creates a hub that persists statuses through store.
func NewHub(store Store, logger *slog.Logger, opts ...Option) *Hub {
	h := &Hub{
		subs:   make(map[string]chan Event),
		store:  store,
		logger: logger,
		buffer: DefaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a new consumer. Callers must Unsubscribe when the
// consumer's connection ends, otherwise the registration lives for the rest
// of the process.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan Event, h.buffer)
	sub := &Subscription{
		ID: uuid.New().String(),
		C:  ch,
		ch: ch,
	}

	h.mu.Lock()
	h.subs[sub.ID] = ch
	h.mu.Unlock()

	h.logger.Debug("Subscriber registered",
		slog.String("subscriber_id", sub.ID),
	)
	return sub
}

// Unsubscribe removes the registration and closes the subscription channel.
// Safe to call once per subscription.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	ch, ok := h.subs[sub.ID]
	if ok {
		delete(h.subs, sub.ID)
		close(ch)
	}
	h.mu.Unlock()

	if ok {
		h.logger.Debug("Subscriber removed",
			slog.String("subscriber_id", sub.ID),
		)
	}
}

// SubscriberCount returns the number of live registrations.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish persists the event's status, then delivers the event to every
// current subscriber. A subscriber whose buffer is full has this event
// dropped; delivery to the others is unaffected. Store failures are logged
// and do not stop the broadcast.
func (h *Hub) Publish(ctx context.Context, ev Event) {
	rows, err := h.store.SetScriptStatus(ctx, ev.Script, ev.Status)
	switch {
	case err != nil:
		h.logger.Error("Failed to persist script status",
			slog.String("script", ev.Script),
			slog.Any("error", err),
		)
	case rows == 0:
		h.logger.Warn("No status row for script, event broadcast only",
			slog.String("script", ev.Script),
		)
	}

	h.mu.RLock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.logger.Warn("Subscriber buffer full, dropping event",
				slog.String("subscriber_id", id),
				slog.String("script", ev.Script),
			)
		}
	}
	h.mu.RUnlock()

	if h.relay != nil {
		body, err := json.Marshal(ev)
		if err != nil {
			h.logger.Error("Failed to encode event for relay",
				slog.Any("error", err),
			)
			return
		}
		if err := h.relay.Publish(ctx, body, "application/json"); err != nil {
			h.logger.Error("Failed to relay event",
				slog.String("script", ev.Script),
				slog.Any("error", err),
			)
		}
	}
}
