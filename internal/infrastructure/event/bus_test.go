package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/shared"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string, tenantID uuid.UUID) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New(), tenantID),
		Data:            "test data",
	}
}

// testHandler implements EventHandler for testing
type testHandler struct {
	name       string
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
	mu         sync.Mutex
}

func newTestHandler(name string, eventTypes ...string) *testHandler {
	return &testHandler{
		name:       name,
		eventTypes: eventTypes,
		handled:    make([]shared.DomainEvent, 0),
	}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panics {
		panic("boom")
	}
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) Name() string {
	return h.name
}

func (h *testHandler) setError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus(zap.NewNop())

	handler := newTestHandler("test", "TestEvent")
	bus.Subscribe(handler, "TestEvent")

	event := newTestEvent("TestEvent", uuid.New())
	em := bus.Publish(context.Background(), event)

	require.NoError(t, em.Wait(waitCtx(t)))
	assert.Equal(t, 1, em.HandlerCount())
	require.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestBus_Publish_MultipleEvents(t *testing.T) {
	bus := NewBus(zap.NewNop())

	handler := newTestHandler("test", "TestEvent")
	bus.Subscribe(handler, "TestEvent")

	event1 := newTestEvent("TestEvent", uuid.New())
	event2 := newTestEvent("TestEvent", uuid.New())
	em := bus.Publish(context.Background(), event1, event2)

	require.NoError(t, em.Wait(waitCtx(t)))
	assert.Equal(t, 2, em.HandlerCount())
	assert.Len(t, handler.getHandled(), 2)
}

func TestBus_Publish_InvokesEveryRegisteredHandler(t *testing.T) {
	bus := NewBus(zap.NewNop())

	handler1 := newTestHandler("first", "TestEvent")
	handler2 := newTestHandler("second", "TestEvent")
	handler3 := newTestHandler("third", "TestEvent")
	bus.Subscribe(handler1, "TestEvent")
	bus.Subscribe(handler2, "TestEvent")
	bus.Subscribe(handler3, "TestEvent")

	em := bus.Publish(context.Background(), newTestEvent("TestEvent", uuid.New()))

	require.NoError(t, em.Wait(waitCtx(t)))
	assert.Equal(t, 3, em.HandlerCount())
	assert.Len(t, handler1.getHandled(), 1)
	assert.Len(t, handler2.getHandled(), 1)
	assert.Len(t, handler3.getHandled(), 1)
}

func TestBus_Publish_ZeroHandlersIsNoop(t *testing.T) {
	bus := NewBus(zap.NewNop())

	em := bus.Publish(context.Background(), newTestEvent("Unsubscribed", uuid.New()))

	require.NoError(t, em.Wait(waitCtx(t)))
	assert.Equal(t, 0, em.HandlerCount())
}

func TestBus_Publish_WildcardHandler(t *testing.T) {
	bus := NewBus(zap.NewNop())

	wildcard := newTestHandler("wildcard") // no event types
	bus.Subscribe(wildcard)

	em := bus.Publish(context.Background(), newTestEvent("AnyEventType", uuid.New()))

	require.NoError(t, em.Wait(waitCtx(t)))
	assert.Len(t, wildcard.getHandled(), 1)
}

func TestBus_Publish_HandlerErrorDoesNotStopSiblings(t *testing.T) {
	bus := NewBus(zap.NewNop())

	failing := newTestHandler("failing", "TestEvent")
	failing.setError(errors.New("handler error"))
	healthy := newTestHandler("healthy", "TestEvent")
	bus.Subscribe(failing, "TestEvent")
	bus.Subscribe(healthy, "TestEvent")

	em := bus.Publish(context.Background(), newTestEvent("TestEvent", uuid.New()))

	// Both handlers ran; the failure is only visible on the join-handle
	err := em.Wait(waitCtx(t))
	require.Error(t, err)
	assert.Len(t, failing.getHandled(), 1)
	assert.Len(t, healthy.getHandled(), 1)
}

func TestBus_Publish_PanickingHandlerIsContained(t *testing.T) {
	bus := NewBus(zap.NewNop())

	panicking := newTestHandler("panicking", "TestEvent")
	panicking.panics = true
	healthy := newTestHandler("healthy", "TestEvent")
	bus.Subscribe(panicking, "TestEvent")
	bus.Subscribe(healthy, "TestEvent")

	em := bus.Publish(context.Background(), newTestEvent("TestEvent", uuid.New()))

	err := em.Wait(waitCtx(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.Len(t, healthy.getHandled(), 1)
}

func TestBus_Publish_DoesNotBlockOnSlowHandler(t *testing.T) {
	bus := NewBus(zap.NewNop())

	release := make(chan struct{})
	slow := &blockingHandler{release: release}
	bus.Subscribe(slow, "TestEvent")

	start := time.Now()
	em := bus.Publish(context.Background(), newTestEvent("TestEvent", uuid.New()))
	elapsed := time.Since(start)

	assert.Less(t, elapsed, time.Second, "Publish must return before the handler completes")

	close(release)
	require.NoError(t, em.Wait(waitCtx(t)))
}

func TestBus_Publish_SurvivesProducerContextCancel(t *testing.T) {
	bus := NewBus(zap.NewNop())

	handler := &contextProbeHandler{}
	bus.Subscribe(handler, "TestEvent")

	ctx, cancel := context.WithCancel(context.Background())
	em := bus.Publish(ctx, newTestEvent("TestEvent", uuid.New()))
	cancel()

	require.NoError(t, em.Wait(waitCtx(t)))
	assert.NoError(t, handler.observedErr)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(zap.NewNop())

	handler := newTestHandler("test", "TestEvent")
	bus.Subscribe(handler, "TestEvent")

	em := bus.Publish(context.Background(), newTestEvent("TestEvent", uuid.New()))
	require.NoError(t, em.Wait(waitCtx(t)))
	assert.Len(t, handler.getHandled(), 1)

	bus.Unsubscribe(handler)

	em = bus.Publish(context.Background(), newTestEvent("TestEvent", uuid.New()))
	require.NoError(t, em.Wait(waitCtx(t)))
	assert.Len(t, handler.getHandled(), 1) // still 1, not 2
}

// blockingHandler blocks Handle until released
type blockingHandler struct {
	release chan struct{}
}

func (h *blockingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	<-h.release
	return nil
}

func (h *blockingHandler) EventTypes() []string { return []string{"TestEvent"} }
func (h *blockingHandler) Name() string         { return "blocking" }

// contextProbeHandler records whether its context was already canceled
type contextProbeHandler struct {
	observedErr error
}

func (h *contextProbeHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	// Give the producer time to cancel its request context
	time.Sleep(50 * time.Millisecond)
	h.observedErr = ctx.Err()
	return nil
}

func (h *contextProbeHandler) EventTypes() []string { return []string{"TestEvent"} }
func (h *contextProbeHandler) Name() string         { return "context-probe" }
