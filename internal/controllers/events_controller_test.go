package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thekingpuff/kingpuff-api/internal/events"
	"github.com/thekingpuff/kingpuff-api/internal/models"
	"github.com/thekingpuff/kingpuff-api/internal/services"
)

func TestFilterInStock(t *testing.T) {
	products := []models.Product{
		{Nombre: "Puff X", EnStock: true},
		{Nombre: "Puff Mini", EnStock: false},
		{Nombre: "Puff Max", EnStock: true},
	}

	filtered := filterInStock(products)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Puff X", filtered[0].Nombre)
	assert.Equal(t, "Puff Max", filtered[1].Nombre)

	assert.Empty(t, filterInStock(nil))
}

func TestStreamPrimesAndDeliversChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	bus := events.NewBus()
	products := services.NewProductService(db, bus)
	categories := services.NewCategoryService(db, bus)

	_, err := categories.Create("Desechables")
	require.NoError(t, err)
	visible, err := products.Create("Puff X", "cat-1", "")
	require.NoError(t, err)
	hidden, err := products.Create("Puff Mini", "cat-1", "")
	require.NoError(t, err)
	_, err = products.ToggleStock(hidden.ID)
	require.NoError(t, err)

	controller := NewEventsController(bus, products, categories)
	router := gin.New()
	router.GET("/events", controller.StreamPublic)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	cctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(cctx)

	go func() {
		// Wait for the handler to subscribe, push one change, then
		// give the stream time to deliver before hanging up.
		for bus.SubscriberCount() == 0 {
			time.Sleep(time.Millisecond)
		}
		if _, err := products.Create("Puff Nuevo", "cat-1", ""); err != nil {
			panic(err)
		}
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	w := &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool)}
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Contains(t, body, "event:catalog")
	assert.Contains(t, body, `"kind":"categories"`)
	assert.Contains(t, body, "Desechables")
	assert.Contains(t, body, visible.Nombre)
	assert.NotContains(t, body, hidden.Nombre, "the public stream filters out-of-stock products")
	assert.Contains(t, body, "Puff Nuevo", "mutations made while connected are streamed")

	assert.Equal(t, 0, bus.SubscriberCount(), "disconnect releases the subscription")
}

// closeNotifyRecorder provides the http.CloseNotifier method that
// gin's Context.Stream requires but httptest.ResponseRecorder lacks.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }
