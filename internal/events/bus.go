// Package events carries catalog change notifications from the write
// path to the views that re-render on every change.
package events

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/thekingpuff/kingpuff-api/internal/models"
)

// EventKind identifies which collection changed.
type EventKind string

const (
	CategoriesChanged EventKind = "categories"
	ProductsChanged   EventKind = "products"
)

// CatalogEvent is a typed change notification carrying the freshly
// ordered snapshot of the collection that changed. Exactly one event
// is delivered per mutation per subscriber.
type CatalogEvent struct {
	Kind       EventKind         `json:"kind"`
	Categories []models.Category `json:"categories,omitempty"`
	Products   []models.Product  `json:"products,omitempty"`
}

// Bus is an in-process publish/subscribe hub. Deliveries are
// fire-and-forget: a subscriber that cannot keep up loses events
// instead of blocking the write path.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan CatalogEvent
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan CatalogEvent)}
}

// Subscribe registers a new listener. The returned cancel function
// removes the subscription and closes the channel.
func (b *Bus) Subscribe() (<-chan CatalogEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan CatalogEvent, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish fans the event out to every subscriber without blocking.
func (b *Bus) Publish(ev CatalogEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			log.WithFields(log.Fields{
				"subscriber": id,
				"kind":       ev.Kind,
			}).Warn("Catalog event dropped for slow subscriber")
		}
	}
}

// SubscriberCount returns the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
