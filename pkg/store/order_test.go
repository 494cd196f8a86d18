package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/example/shopadmin/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderBackend is a minimal in-memory stand-in for the order service.
type orderBackend struct {
	mux    *http.ServeMux
	orders map[int64]models.Order
	nextID int64
}

func newOrderBackend() *orderBackend {
	b := &orderBackend{
		orders: make(map[int64]models.Order),
		nextID: 1,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", b.collection)
	mux.HandleFunc("/{id}", b.item)
	mux.HandleFunc("/{id}/status", b.status)
	b.mux = mux
	return b
}

func (b *orderBackend) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list := make([]models.Order, 0, len(b.orders))
		for _, o := range b.orders {
			list = append(list, o)
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var req models.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad payload"})
			return
		}
		// The backend owns the derived fields: price snapshot, total,
		// initial status.
		unitPrice := 10.00
		o := models.Order{
			ID:            b.nextID,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			ProductID:     req.ProductID,
			ProductName:   "Widget",
			ProductPrice:  unitPrice,
			Quantity:      req.Quantity,
			TotalAmount:   float64(req.Quantity) * unitPrice,
			Status:        models.StatusPending,
			CreatedAt:     time.Now().UTC(),
		}
		b.nextID++
		b.orders[o.ID] = o
		writeJSON(w, http.StatusCreated, o)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *orderBackend) item(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r)
	o, ok := b.orders[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "order not found"})
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, o)
	case http.MethodPut:
		var req models.UpdateOrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		o.CustomerName = req.CustomerName
		o.CustomerEmail = req.CustomerEmail
		o.ProductID = req.ProductID
		o.Quantity = req.Quantity
		o.TotalAmount = float64(req.Quantity) * o.ProductPrice
		b.orders[id] = o
		writeJSON(w, http.StatusOK, o)
	case http.MethodDelete:
		delete(b.orders, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *orderBackend) status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := pathInt(r)
	o, ok := b.orders[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "order not found"})
		return
	}
	var req models.UpdateOrderStatusRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	o.Status = req.Status
	now := time.Now().UTC()
	o.UpdatedAt = &now
	b.orders[id] = o
	writeJSON(w, http.StatusOK, o)
}

func pathInt(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newOrderClientForTest(t *testing.T) (*OrderClient, *orderBackend) {
	t.Helper()
	backend := newOrderBackend()
	srv := httptest.NewServer(backend.mux)
	t.Cleanup(srv.Close)
	return NewOrderClient(srv.URL, srv.Client()), backend
}

func TestOrderCreateServerComputesDerivedFields(t *testing.T) {
	client, _ := newOrderClientForTest(t)

	order, err := client.Create(context.Background(), models.CreateOrderRequest{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		ProductID:     1,
		Quantity:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 30.00, order.TotalAmount)
	assert.Equal(t, 10.00, order.ProductPrice)
	assert.NotZero(t, order.ID)
}

func TestOrderListIdempotentWithoutMutation(t *testing.T) {
	client, _ := newOrderClientForTest(t)

	_, err := client.Create(context.Background(), models.CreateOrderRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		ProductID:     1,
		Quantity:      2,
	})
	require.NoError(t, err)

	first, err := client.List(context.Background())
	require.NoError(t, err)
	second, err := client.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOrderUpdateStatusCarriesOnlyTarget(t *testing.T) {
	client, backend := newOrderClientForTest(t)

	created, err := client.Create(context.Background(), models.CreateOrderRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		ProductID:     1,
		Quantity:      1,
	})
	require.NoError(t, err)

	updated, err := client.UpdateStatus(context.Background(), created.ID, models.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, updated.Status)
	assert.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, models.StatusProcessing, backend.orders[created.ID].Status)
}

func TestOrderGetNotFound(t *testing.T) {
	client, _ := newOrderClientForTest(t)

	_, err := client.Get(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "get order", se.Op)
	assert.Equal(t, "order not found", se.Message)
}

func TestOrderDelete(t *testing.T) {
	client, backend := newOrderClientForTest(t)

	created, err := client.Create(context.Background(), models.CreateOrderRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		ProductID:     1,
		Quantity:      1,
	})
	require.NoError(t, err)

	require.NoError(t, client.Delete(context.Background(), created.ID))
	assert.NotContains(t, backend.orders, created.ID)
}

func TestOrderTransportFailure(t *testing.T) {
	client := NewOrderClient("http://127.0.0.1:1", nil)

	_, err := client.List(context.Background())
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Zero(t, se.Status)
	assert.Equal(t, "list orders", se.Op)
}
