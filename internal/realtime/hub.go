package realtime

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/storehub/commerce-service/internal/domain"
)

// Viewer is one connected consumer of catalog pushes. Implementations wrap
// whatever transport actually delivers the payload.
type Viewer interface {
	Send(payload interface{}) error
}

// ListingSource returns the current full product listing pushed to viewers.
type ListingSource func(ctx context.Context) ([]domain.Product, error)

// Hub owns the process-wide viewer set. Viewers are added on connect and
// removed on disconnect, only ever through Register and Unregister; no other
// component touches the set directly.
type Hub struct {
	mu      sync.Mutex
	viewers map[Viewer]struct{}
	source  ListingSource
}

func CreateNewHub(source ListingSource) *Hub {
	return &Hub{
		viewers: make(map[Viewer]struct{}),
		source:  source,
	}
}

// Register adds the viewer and pushes one immediate full-listing snapshot,
// independent of the broadcast stream.
func (h *Hub) Register(ctx context.Context, v Viewer) {
	h.mu.Lock()
	h.viewers[v] = struct{}{}
	h.mu.Unlock()

	products, err := h.source(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Register").Msg("")
		return
	}

	if err := v.Send(products); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Register").Msg("")
	}
}

func (h *Hub) Unregister(v Viewer) {
	h.mu.Lock()
	delete(h.viewers, v)
	h.mu.Unlock()
}

// Broadcast fetches the current listing once and delivers it to every
// connected viewer. Delivery is fire-and-forget: a failing viewer never
// blocks the others and never fails the mutation that triggered the push.
func (h *Hub) Broadcast(ctx context.Context) {
	products, err := h.source(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Broadcast").Msg("")
		return
	}

	h.mu.Lock()
	viewers := make([]Viewer, 0, len(h.viewers))
	for v := range h.viewers {
		viewers = append(viewers, v)
	}
	h.mu.Unlock()

	for _, v := range viewers {
		go func(v Viewer) {
			if err := v.Send(products); err != nil {
				log.Error().Err(err).Str("component", "Broadcast").Msg("")
			}
		}(v)
	}
}
