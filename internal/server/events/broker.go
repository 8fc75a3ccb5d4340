package events

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/vinoteca/pkg/constants"
)

// Broker distributes events to every registered subscriber.
type Broker struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	events      chan Event
	logger      *zerolog.Logger

	seq       atomic.Uint64
	published atomic.Uint64
	dropped   atomic.Uint64
}

// NewBroker creates a new event broker.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		subscribers: make([]Subscriber, 0),
		events:      make(chan Event, constants.EventBufferSize),
		logger:      logger,
	}
}

// Run delivers published events until ctx is cancelled, then closes all
// subscribers.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for _, sub := range b.subscribers {
				_ = sub.Close()
			}
			b.subscribers = nil
			b.mu.Unlock()
			b.logger.Info().Msg("Event broker shut down")
			return

		case event := <-b.events:
			b.mu.RLock()
			subs := slices.Clone(b.subscribers)
			b.mu.RUnlock()

			for _, sub := range subs {
				if err := sub.Send(event); err != nil {
					b.logger.Warn().
						Err(err).
						Str("event_type", string(event.Type)).
						Msg("Failed to send event to subscriber")
				}
			}

			b.logger.Debug().
				Str("event_type", string(event.Type)).
				Int("subscribers", len(subs)).
				Msg("Event broadcasted")
		}
	}
}

// Publish queues an event for delivery. It never blocks; when the queue is
// full the event is dropped.
func (b *Broker) Publish(eventType EventType, data any) {
	event := Event{
		Seq:       b.seq.Add(1),
		Type:      eventType,
		Timestamp: utc.Now().Time,
		Data:      data,
	}

	select {
	case b.events <- event:
		b.published.Add(1)
	default:
		b.dropped.Add(1)
		b.logger.Warn().
			Str("event_type", string(eventType)).
			Uint64("seq", event.Seq).
			Msg("Event channel full, event dropped")
	}
}

// Subscribe registers a subscriber. It is safe to call before Run.
func (b *Broker) Subscribe(sub Subscriber) {
	b.mu.Lock()
	b.subscribers = append(b.subscribers, sub)
	n := len(b.subscribers)
	b.mu.Unlock()

	b.logger.Debug().Int("total_subscribers", n).Msg("Subscriber registered")
}

// Unsubscribe removes and closes a subscriber.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	i := slices.Index(b.subscribers, sub)
	if i >= 0 {
		b.subscribers = slices.Delete(b.subscribers, i, i+1)
	}
	n := len(b.subscribers)
	b.mu.Unlock()

	if i >= 0 {
		_ = sub.Close()
		b.logger.Debug().Int("total_subscribers", n).Msg("Subscriber unregistered")
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// EventsPublished returns how many events were queued.
func (b *Broker) EventsPublished() uint64 { return b.published.Load() }

// EventsDropped returns how many events were dropped because the queue was full.
func (b *Broker) EventsDropped() uint64 { return b.dropped.Load() }

// QueueDepth returns the number of events waiting for delivery.
func (b *Broker) QueueDepth() int { return len(b.events) }
