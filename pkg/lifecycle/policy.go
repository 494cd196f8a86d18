package lifecycle

import (
	"context"
	"fmt"

	"github.com/example/shopadmin/pkg/models"
	"go.uber.org/zap"
)

// OrderStore is the slice of the order store the policy needs.
// pkg/store's order client satisfies it.
type OrderStore interface {
	Get(ctx context.Context, id int64) (*models.Order, error)
	Update(ctx context.Context, id int64, req models.UpdateOrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, target models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}

// Invalidator drops the cached order list snapshot so the next read is
// a full refetch. May be nil, in which case invalidation is skipped.
type Invalidator interface {
	InvalidateOrders(ctx context.Context) error
}

// Policy validates order mutations against the transition table before
// letting them reach the store. Every successful mutation invalidates
// the list snapshot; there is no optimistic local update and no retry.
type Policy struct {
	store  OrderStore
	cache  Invalidator
	logger *zap.Logger
}

func NewPolicy(store OrderStore, cache Invalidator, logger *zap.Logger) *Policy {
	return &Policy{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// RequestTransition moves order id to target after checking the
// transition table against the order's current status. The store call
// carries only the id and target status. An illegal target yields a
// *TransitionError and the store is never contacted for the update.
func (p *Policy) RequestTransition(ctx context.Context, id int64, target models.OrderStatus) (*models.Order, error) {
	order, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}

	if err := ValidateTransition(order.Status, target); err != nil {
		return nil, err
	}

	updated, err := p.store.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, fmt.Errorf("update status of order %d: %w", id, err)
	}

	p.invalidate(ctx)

	p.logger.Info("Order transitioned",
		zap.Int64("order_id", id),
		zap.String("from", order.Status.String()),
		zap.String("to", target.String()))

	return updated, nil
}

// RequestEdit applies field edits to order id, refusing when the
// current status forbids editing.
func (p *Policy) RequestEdit(ctx context.Context, id int64, req models.UpdateOrderRequest) (*models.Order, error) {
	order, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}

	if !CanEdit(order.Status) {
		return nil, &EditLockedError{Status: order.Status}
	}

	updated, err := p.store.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update order %d: %w", id, err)
	}

	p.invalidate(ctx)
	return updated, nil
}

// RequestDelete removes order id, refusing when the current status
// forbids deletion.
func (p *Policy) RequestDelete(ctx context.Context, id int64) error {
	order, err := p.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load order %d: %w", id, err)
	}

	if !CanDelete(order.Status) {
		return &DeleteLockedError{Status: order.Status}
	}

	if err := p.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}

	p.invalidate(ctx)
	return nil
}

func (p *Policy) invalidate(ctx context.Context) {
	if p.cache == nil {
		return
	}
	if err := p.cache.InvalidateOrders(ctx); err != nil {
		// Stale-snapshot window only; the TTL bounds it.
		p.logger.Warn("Failed to invalidate order snapshot", zap.Error(err))
	}
}
