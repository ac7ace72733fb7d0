package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thekingpuff/kingpuff-api/internal/models"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()

	first, cancelFirst := bus.Subscribe()
	second, cancelSecond := bus.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	assert.Equal(t, 2, bus.SubscriberCount())

	bus.Publish(CatalogEvent{
		Kind:       CategoriesChanged,
		Categories: []models.Category{{Nombre: "Desechables", Slug: "desechables"}},
	})

	for _, ch := range []<-chan CatalogEvent{first, second} {
		ev := <-ch
		assert.Equal(t, CategoriesChanged, ev.Kind)
		require.Len(t, ev.Categories, 1)
		assert.Equal(t, "Desechables", ev.Categories[0].Nombre)
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe()
	cancel()
	assert.Equal(t, 0, bus.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)

	// Cancelling twice is harmless.
	assert.NotPanics(t, cancel)

	// Publishing with no subscribers is a no-op.
	bus.Publish(CatalogEvent{Kind: ProductsChanged})
}

func TestBusDropsInsteadOfBlocking(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe()
	defer cancel()

	// Nobody drains the channel; once the buffer fills, further
	// publishes must return instead of blocking the write path.
	for i := 0; i < 50; i++ {
		bus.Publish(CatalogEvent{Kind: ProductsChanged})
	}

	delivered := 0
	for {
		select {
		case <-ch:
			delivered++
			continue
		default:
		}
		break
	}
	assert.Equal(t, cap(ch), delivered)
}
