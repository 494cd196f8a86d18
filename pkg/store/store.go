// Package store holds typed clients for the external shop backends:
// the order store and the product/category store. All entity state is
// owned by those services; the clients here only speak their wire
// contracts and map failures into errors the console can act on.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/example/shopadmin/pkg/models"
)

// OrderStore is the consumed contract of the external order service.
type OrderStore interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	Update(ctx context.Context, id int64, req models.UpdateOrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, target models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}

// ProductStore is the consumed contract of the external product service.
type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryStore is the consumed contract of the external category
// service. Delete unassigns dependent products server-side; it does
// not cascade.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id int64, req models.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

// Error is a non-success response from a backend. Message carries the
// backend's own human-readable reason so constraint refusals (for
// example a category delete rejected over referencing products) reach
// the user verbatim instead of as a generic failure.
type Error struct {
	Op      string // "list orders", "delete category", ...
	Status  int    // HTTP status, 0 for transport failures
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Message)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// IsConflict reports whether err is a backend constraint refusal.
func IsConflict(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Status == http.StatusConflict
}
