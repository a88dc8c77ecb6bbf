package event

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/shared"
)

const meterName = "github.com/nexa-erp/backend/internal/infrastructure/event"

// Bus is the in-process publish/subscribe hub. It owns no durable
// state: events are fire-and-forget messages, not a log. Dispatch
// spawns one goroutine per handler and returns without waiting, so a
// slow handler can never throttle the producer. There is no buffering,
// no retry and no delivery guarantee beyond "registered at call time".
type Bus struct {
	registry *HandlerRegistry
	logger   *zap.Logger

	eventsEmitted   metric.Int64Counter
	handlerFailures metric.Int64Counter
}

// NewBus creates a new in-process event bus
func NewBus(logger *zap.Logger) *Bus {
	meter := otel.Meter(meterName)
	eventsEmitted, _ := meter.Int64Counter("erp.events.emitted",
		metric.WithDescription("Domain events published on the in-process bus"))
	handlerFailures, _ := meter.Int64Counter("erp.events.handler_failures",
		metric.WithDescription("Handler invocations that returned an error or panicked"))

	return &Bus{
		registry:        NewHandlerRegistry(),
		logger:          logger,
		eventsEmitted:   eventsEmitted,
		handlerFailures: handlerFailures,
	}
}

// Publish dispatches events to every handler registered under their
// types. Each handler runs on its own goroutine; Publish returns
// immediately. The returned Emission is a join-handle: callers that
// need downstream completion can Wait on it, but nothing forces them
// to, and handler failures never propagate back to the producer.
func (b *Bus) Publish(ctx context.Context, events ...shared.DomainEvent) shared.Emission {
	em := &emission{}

	// Handlers outlive the producer's request scope
	handlerCtx := context.WithoutCancel(ctx)

	for _, evt := range events {
		handlers := b.registry.GetHandlers(evt.EventType())

		b.logger.Info("event emitted",
			zap.String("event_type", evt.EventType()),
			zap.String("event_id", evt.EventID().String()),
			zap.String("origin", evt.AggregateType()),
			zap.Int("handler_count", len(handlers)),
		)
		b.eventsEmitted.Add(handlerCtx, 1,
			metric.WithAttributes(attribute.String("event_type", evt.EventType())))

		em.spawned += len(handlers)
		for _, handler := range handlers {
			em.wg.Add(1)
			go func(h shared.EventHandler, e shared.DomainEvent) {
				defer em.wg.Done()
				if err := b.dispatchToHandler(handlerCtx, h, e); err != nil {
					b.logger.Error("handler failed to process event",
						zap.String("event_type", e.EventType()),
						zap.String("event_id", e.EventID().String()),
						zap.String("handler", h.Name()),
						zap.Error(err),
					)
					b.handlerFailures.Add(handlerCtx, 1, metric.WithAttributes(
						attribute.String("event_type", e.EventType()),
						attribute.String("handler", h.Name()),
					))
					em.recordError(err)
				}
			}(handler, evt)
		}
	}

	return em
}

// Subscribe registers a handler for specific event types
func (b *Bus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	// If no explicit types are given, use the handler's own
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.String("handler", handler.Name()),
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler
func (b *Bus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed",
		zap.String("handler", handler.Name()),
	)
}

// dispatchToHandler invokes a handler, converting panics into errors so
// one misbehaving subscriber can never take down the process or its
// sibling handlers.
func (b *Bus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %s panicked: %v", handler.Name(), r)
		}
	}()

	return handler.Handle(ctx, evt)
}

// emission implements shared.Emission for one Publish call
type emission struct {
	wg      sync.WaitGroup
	spawned int

	mu       sync.Mutex
	firstErr error
}

// Wait blocks until every spawned handler returned or ctx is done
func (e *emission) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.firstErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HandlerCount reports how many handler invocations were spawned
func (e *emission) HandlerCount() int {
	return e.spawned
}

func (e *emission) recordError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.firstErr == nil {
		e.firstErr = err
	}
}

// Ensure Bus implements EventBus
var _ shared.EventBus = (*Bus)(nil)
