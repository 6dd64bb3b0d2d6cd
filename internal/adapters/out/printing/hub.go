package printing

import (
	"context"
	"log/slog"
	"sync"

	"refill/internal/core/ports"
)

const hubDispatcher = "gateway"

// DefaultBufferSize is used when NewHub gets a non-positive buffer size.
const DefaultBufferSize = 16

// Hub is the pass-through dispatcher. Each connected print gateway holds a
// Subscription; Dispatch never blocks on a slow one.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint64]chan ports.PrintRequest
	nextID      uint64
	bufferSize  int

	metrics *Metrics
	logger  *slog.Logger
}

func NewHub(bufferSize int, metrics *Metrics, logger *slog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &Hub{
		subscribers: make(map[uint64]chan ports.PrintRequest),
		bufferSize:  bufferSize,
		metrics:     metrics,
		logger:      logger.With("component", "print_gateway_hub"),
	}
}

// Subscription is one connected print gateway.
type Subscription struct {
	hub  *Hub
	id   uint64
	ch   chan ports.PrintRequest
	once sync.Once
}

// Requests yields dispatched jobs until Close is called.
func (s *Subscription) Requests() <-chan ports.PrintRequest {
	return s.ch
}

// Close detaches the gateway and closes its channel. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subscribers, s.id)
		close(s.ch)
		s.hub.mu.Unlock()
	})
}

// Subscribe attaches a print gateway.
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan ports.PrintRequest, h.bufferSize)
	h.subscribers[h.nextID] = ch

	return &Subscription{hub: h, id: h.nextID, ch: ch}
}

// Subscribers returns the number of connected gateways.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Dispatch offers the request to every connected gateway. The job stays
// Dispatched in storage whatever happens here.
func (h *Hub) Dispatch(ctx context.Context, request ports.PrintRequest) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.subscribers) == 0 {
		h.metrics.inc(hubDispatcher, outcomeNoSubscribers)
		h.logger.WarnContext(ctx, "No print gateway connected", "print_job_id", request.PrintJobID.String())
		return
	}

	for id, ch := range h.subscribers {
		select {
		case ch <- request:
			h.metrics.inc(hubDispatcher, outcomeDelivered)
		default:
			h.metrics.inc(hubDispatcher, outcomeDropped)
			h.logger.WarnContext(ctx, "Print gateway buffer full, job dropped",
				"print_job_id", request.PrintJobID.String(),
				"subscriber", id,
			)
		}
	}
}
