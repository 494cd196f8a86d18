// Package lifecycle owns the order status transition table and the
// edit/delete gates derived from it. The order store enforces the same
// graph server-side; this table exists so the console only ever offers
// and sends legal transitions.
package lifecycle

import (
	"fmt"

	"github.com/example/shopadmin/pkg/models"
)

// transitions maps each status to its legal successors. Completed and
// Cancelled are terminal.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:    {models.StatusProcessing, models.StatusCancelled},
	models.StatusProcessing: {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:    {models.StatusCompleted},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

// AllowedTransitions returns the statuses an order in status s may move
// to. The result is empty for terminal statuses and for unknown input.
func AllowedTransitions(s models.OrderStatus) []models.OrderStatus {
	next, ok := transitions[s]
	if !ok {
		return nil
	}
	out := make([]models.OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether moving from current to target is legal.
func CanTransition(current, target models.OrderStatus) bool {
	for _, s := range transitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// CanEdit reports whether an order's customer, product and quantity
// fields may still be changed. Orders that finished their lifecycle
// are frozen.
func CanEdit(s models.OrderStatus) bool {
	return s != models.StatusCompleted && s != models.StatusCancelled
}

// CanDelete reports whether an order may be removed. Once a shipment is
// in flight or finished the order is history and must be kept.
func CanDelete(s models.OrderStatus) bool {
	return s != models.StatusShipped && s != models.StatusCompleted
}

// TransitionError reports an illegal status transition request.
type TransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal order transition %s -> %s (allowed: %v)", e.From, e.To, AllowedTransitions(e.From))
}

// EditLockedError reports an edit attempt on an order whose status
// forbids edits.
type EditLockedError struct {
	Status models.OrderStatus
}

func (e *EditLockedError) Error() string {
	return fmt.Sprintf("order in status %s cannot be edited", e.Status)
}

// DeleteLockedError reports a delete attempt on an order whose status
// forbids deletion.
type DeleteLockedError struct {
	Status models.OrderStatus
}

func (e *DeleteLockedError) Error() string {
	return fmt.Sprintf("order in status %s cannot be deleted", e.Status)
}

// ValidateTransition returns a *TransitionError when target is not a
// legal successor of current, including when target is not a known
// status at all.
func ValidateTransition(current, target models.OrderStatus) error {
	if !target.Valid() || !CanTransition(current, target) {
		return &TransitionError{From: current, To: target}
	}
	return nil
}
