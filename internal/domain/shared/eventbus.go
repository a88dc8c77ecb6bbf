package shared

import "context"

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event. Handlers recover from their own
	// failures: an error returned here is logged and counted by the bus
	// but never surfaced to the publishing producer.
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in.
	// An empty slice means the handler receives all events.
	EventTypes() []string
	// Name identifies the handler in logs and metrics
	Name() string
}

// Emission is the join-handle returned by Publish. Dispatch is
// fire-and-forget; callers that need downstream completion (tests,
// graceful shutdown) may wait on it explicitly.
type Emission interface {
	// Wait blocks until every handler spawned for the emission has
	// returned, or the context is done. It returns the first handler
	// error observed, nil if all handlers succeeded.
	Wait(ctx context.Context) error
	// HandlerCount reports how many handler invocations were spawned
	HandlerCount() int
}

// EventPublisher publishes domain events
type EventPublisher interface {
	// Publish dispatches one or more domain events to every handler
	// registered for their types at call time. It does not block on
	// handler completion.
	Publish(ctx context.Context, events ...DomainEvent) Emission
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	// Subscribe registers a handler for specific event types.
	// If no event types are provided, the handler's own EventTypes are used.
	Subscribe(handler EventHandler, eventTypes ...string)
	// Unsubscribe removes a handler from the subscription list
	Unsubscribe(handler EventHandler)
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
}
