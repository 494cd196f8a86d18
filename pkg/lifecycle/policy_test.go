package lifecycle

import (
	"context"
	"testing"

	"github.com/example/shopadmin/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeOrderStore serves one canned order and records which mutations
// reached it.
type fakeOrderStore struct {
	order         models.Order
	updateCalled  bool
	statusCalled  bool
	deleteCalled  bool
	statusApplied models.OrderStatus
}

func (f *fakeOrderStore) Get(_ context.Context, id int64) (*models.Order, error) {
	o := f.order
	return &o, nil
}

func (f *fakeOrderStore) Update(_ context.Context, id int64, req models.UpdateOrderRequest) (*models.Order, error) {
	f.updateCalled = true
	o := f.order
	o.CustomerName = req.CustomerName
	o.CustomerEmail = req.CustomerEmail
	o.ProductID = req.ProductID
	o.Quantity = req.Quantity
	return &o, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id int64, target models.OrderStatus) (*models.Order, error) {
	f.statusCalled = true
	f.statusApplied = target
	o := f.order
	o.Status = target
	return &o, nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id int64) error {
	f.deleteCalled = true
	return nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateOrders(context.Context) error {
	f.calls++
	return nil
}

func newTestPolicy(status models.OrderStatus) (*Policy, *fakeOrderStore, *fakeInvalidator) {
	fs := &fakeOrderStore{order: models.Order{ID: 7, Status: status, Quantity: 3, ProductPrice: 10.00}}
	inv := &fakeInvalidator{}
	return NewPolicy(fs, inv, zap.NewNop()), fs, inv
}

func TestRequestTransitionLegal(t *testing.T) {
	p, fs, inv := newTestPolicy(models.StatusProcessing)

	order, err := p.RequestTransition(context.Background(), 7, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, order.Status)
	assert.True(t, fs.statusCalled)
	assert.Equal(t, models.StatusCancelled, fs.statusApplied)
	assert.Equal(t, 1, inv.calls, "snapshot must be invalidated after a transition")

	// Cancelled is terminal.
	assert.Empty(t, AllowedTransitions(order.Status))
}

func TestRequestTransitionIllegalDoesNotTouchStore(t *testing.T) {
	p, fs, inv := newTestPolicy(models.StatusPending)

	_, err := p.RequestTransition(context.Background(), 7, models.StatusShipped)
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, models.StatusPending, te.From)
	assert.Equal(t, models.StatusShipped, te.To)
	assert.False(t, fs.statusCalled, "illegal transition must not reach the store")
	assert.Zero(t, inv.calls, "illegal transition must not invalidate the snapshot")
}

func TestRequestEditAllowedWhileActive(t *testing.T) {
	p, fs, inv := newTestPolicy(models.StatusPending)

	order, err := p.RequestEdit(context.Background(), 7, models.UpdateOrderRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		ProductID:     2,
		Quantity:      5,
	})
	require.NoError(t, err)
	assert.True(t, fs.updateCalled)
	assert.Equal(t, "Ada", order.CustomerName)
	assert.Equal(t, 1, inv.calls)
}

func TestRequestEditLockedWhenFinished(t *testing.T) {
	for _, s := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled} {
		p, fs, _ := newTestPolicy(s)

		_, err := p.RequestEdit(context.Background(), 7, models.UpdateOrderRequest{})
		var le *EditLockedError
		require.ErrorAs(t, err, &le, "status %s", s)
		assert.Equal(t, s, le.Status)
		assert.False(t, fs.updateCalled)
	}
}

func TestRequestDeleteAllowed(t *testing.T) {
	for _, s := range []models.OrderStatus{models.StatusPending, models.StatusProcessing, models.StatusCancelled} {
		p, fs, inv := newTestPolicy(s)

		require.NoError(t, p.RequestDelete(context.Background(), 7), "status %s", s)
		assert.True(t, fs.deleteCalled)
		assert.Equal(t, 1, inv.calls)
	}
}

func TestRequestDeleteLockedOnceShipped(t *testing.T) {
	for _, s := range []models.OrderStatus{models.StatusShipped, models.StatusCompleted} {
		p, fs, inv := newTestPolicy(s)

		err := p.RequestDelete(context.Background(), 7)
		var le *DeleteLockedError
		require.ErrorAs(t, err, &le, "status %s", s)
		assert.Equal(t, s, le.Status)
		assert.False(t, fs.deleteCalled, "order must remain present")
		assert.Zero(t, inv.calls)
	}
}

func TestPolicyWithoutInvalidator(t *testing.T) {
	fs := &fakeOrderStore{order: models.Order{ID: 7, Status: models.StatusPending}}
	p := NewPolicy(fs, nil, zap.NewNop())

	_, err := p.RequestTransition(context.Background(), 7, models.StatusProcessing)
	require.NoError(t, err)
}
