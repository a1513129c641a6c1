package events

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/orris-inc/subledger/internal/shared/goroutine"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// AllEvents subscribes a handler to every event type.
const AllEvents = "*"

var (
	ErrDispatcherStopped = errors.New("event dispatcher is not running")
	ErrQueueFull         = errors.New("event queue is full")
)

// InMemoryEventDispatcher fans committed events out to subscribed handlers
// on one background goroutine. The events of one PublishAll call form a
// batch: handlers see a batch contiguously and in order, or not at all.
type InMemoryEventDispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
	running  bool

	queue   chan []DomainEvent
	stopCh  chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Uint64
	logger  logger.Interface
}

func NewInMemoryEventDispatcher(bufferSize int, log logger.Interface) *InMemoryEventDispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}

	return &InMemoryEventDispatcher{
		handlers: make(map[string][]EventHandler),
		queue:    make(chan []DomainEvent, bufferSize),
		stopCh:   make(chan struct{}),
		logger:   log,
	}
}

func (d *InMemoryEventDispatcher) Publish(event DomainEvent) error {
	return d.PublishAll([]DomainEvent{event})
}

// PublishAll queues evts as one batch without blocking the caller. A full
// queue drops the whole batch; the events stay in the ledger event log.
func (d *InMemoryEventDispatcher) PublishAll(evts []DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return ErrDispatcherStopped
	}

	batch := append([]DomainEvent(nil), evts...)
	select {
	case d.queue <- batch:
		return nil
	default:
		d.dropped.Add(1)
		return fmt.Errorf("%w: dropped batch of %d starting with %s", ErrQueueFull, len(batch), batch[0].GetEventType())
	}
}

// Dropped is the number of batches lost to a full queue since creation.
func (d *InMemoryEventDispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Subscribe registers handler for eventType, or for every type with AllEvents.
func (d *InMemoryEventDispatcher) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	return nil
}

func (d *InMemoryEventDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("event dispatcher is already running")
	}
	select {
	case <-d.stopCh:
		return fmt.Errorf("event dispatcher cannot be restarted")
	default:
	}

	d.running = true
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run()
	}()
	return nil
}

// Stop rejects new batches, delivers the queued ones and waits for the
// worker to exit.
func (d *InMemoryEventDispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return ErrDispatcherStopped
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()
	return nil
}

func (d *InMemoryEventDispatcher) run() {
	for {
		select {
		case batch := <-d.queue:
			d.deliver(batch)
		case <-d.stopCh:
			for {
				select {
				case batch := <-d.queue:
					d.deliver(batch)
				default:
					return
				}
			}
		}
	}
}

func (d *InMemoryEventDispatcher) deliver(batch []DomainEvent) {
	for _, event := range batch {
		for _, h := range d.handlersFor(event.GetEventType()) {
			goroutine.Run(d.logger, "event-handler", func() {
				if err := h.Handle(event); err != nil {
					d.logger.Errorw("failed to handle event",
						"event_type", event.GetEventType(),
						"event_id", event.GetEventID(),
						"aggregate_id", event.GetAggregateID(),
						"error", err,
					)
				}
			})
		}
	}
}

func (d *InMemoryEventDispatcher) handlersFor(eventType string) []EventHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]EventHandler, 0, len(d.handlers[eventType])+len(d.handlers[AllEvents]))
	for _, h := range d.handlers[eventType] {
		if h.CanHandle(eventType) {
			out = append(out, h)
		}
	}
	for _, h := range d.handlers[AllEvents] {
		if h.CanHandle(eventType) {
			out = append(out, h)
		}
	}
	return out
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc struct {
	eventType string
	fn        func(DomainEvent) error
}

// NewHandlerFunc creates a handler for one event type, or for every
// type when eventType is AllEvents.
func NewHandlerFunc(eventType string, fn func(DomainEvent) error) *HandlerFunc {
	return &HandlerFunc{eventType: eventType, fn: fn}
}

func (h *HandlerFunc) Handle(event DomainEvent) error {
	if h.fn == nil {
		return nil
	}
	return h.fn(event)
}

func (h *HandlerFunc) CanHandle(eventType string) bool {
	return h.eventType == AllEvents || h.eventType == eventType
}
