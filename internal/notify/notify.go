package notify

import (
	"sync"

	"stockroom/pkg/models"
)

type EventKind string

const (
	LocationUpserted EventKind = "location_upserted"
	LocationDeleted  EventKind = "location_deleted"
	CellAssigned     EventKind = "cell_assigned"
	CellRemoved      EventKind = "cell_removed"
)

// Event describes one cache change. Subscribers get it after the local cache
// already reflects it.
type Event struct {
	Kind      EventKind
	StorageID int
	ItemID    *int
	Location  *models.Location
}

type Subscriber interface {
	Notify(event Event)
}

// Hub fans cache-change events out to registered subscribers. Publishing
// never blocks on a subscriber; delivery happens on the publisher's
// goroutine, so subscribers must return quickly.
type Hub struct {
	mu   sync.RWMutex
	subs []Subscriber
}

func NewHub() *Hub {
	return &Hub{}
}

func (h *Hub) Subscribe(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, s)
}

func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs {
		s.Notify(event)
	}
}
