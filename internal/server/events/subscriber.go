package events

// Subscriber consumes broker events, usually on behalf of one transport.
type Subscriber interface {
	// Send delivers an event. It must not block for long.
	Send(Event) error

	// Close is called once when the broker stops.
	Close() error
}

// SubscriberFunc adapts a function to Subscriber. Close is a no-op.
type SubscriberFunc func(Event) error

// Send calls f.
func (f SubscriberFunc) Send(event Event) error { return f(event) }

// Close does nothing.
func (f SubscriberFunc) Close() error { return nil }
