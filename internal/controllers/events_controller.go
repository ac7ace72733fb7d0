package controllers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/thekingpuff/kingpuff-api/internal/events"
	"github.com/thekingpuff/kingpuff-api/internal/models"
	"github.com/thekingpuff/kingpuff-api/internal/services"
)

// EventsController streams catalog change events over SSE so views can
// redraw on every mutation, replacing polling.
type EventsController interface {
	// StreamPublic delivers storefront snapshots (in-stock products only)
	StreamPublic(c *gin.Context)
	// StreamAdmin delivers unfiltered snapshots for the admin panel
	StreamAdmin(c *gin.Context)
}

type eventsController struct {
	bus        *events.Bus
	products   services.ProductService
	categories services.CategoryService
}

// NewEventsController creates a new instance of EventsController
func NewEventsController(bus *events.Bus, products services.ProductService, categories services.CategoryService) *eventsController {
	return &eventsController{bus: bus, products: products, categories: categories}
}

// StreamPublic godoc
// @Summary Storefront catalog change feed
// @Description Server-sent events; every catalog mutation delivers a
// @Description fresh snapshot with out-of-stock products filtered out
// @Tags events
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Router /api/v1/public/events/catalog [get]
func (ec *eventsController) StreamPublic(ctx *gin.Context) {
	ec.stream(ctx, true)
}

// StreamAdmin godoc
// @Summary Admin catalog change feed
// @Description Server-sent events with unfiltered snapshots
// @Tags events
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Security BearerAuth
// @Router /api/v1/protected/admin/events/catalog [get]
func (ec *eventsController) StreamAdmin(ctx *gin.Context) {
	ec.stream(ctx, false)
}

func (ec *eventsController) stream(ctx *gin.Context, publicView bool) {
	ch, cancel := ec.bus.Subscribe()
	defer cancel()

	// Prime the view with the current state before any change arrives.
	if categories, err := ec.categories.GetAll(); err == nil {
		ctx.SSEvent("catalog", events.CatalogEvent{Kind: events.CategoriesChanged, Categories: categories})
	}
	if products, err := ec.products.GetAll("", publicView); err == nil {
		ctx.SSEvent("catalog", events.CatalogEvent{Kind: events.ProductsChanged, Products: products})
	}
	ctx.Writer.Flush()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			if publicView && ev.Kind == events.ProductsChanged {
				ev.Products = filterInStock(ev.Products)
			}
			ctx.SSEvent("catalog", ev)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

func filterInStock(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.EnStock {
			out = append(out, p)
		}
	}
	return out
}
