package models

import (
	"time"
)

// OrderStatus is the lifecycle status of an order as reported by the
// order store. The store is the authoritative enforcer of the status
// graph; see pkg/lifecycle for the client-side transition table.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Statuses lists every status the order store can report, in lifecycle order.
var Statuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusCompleted,
	StatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// Order is one customer purchase of one product, as served by the order
// store. ProductName and ProductPrice are an as-of-order-time snapshot
// taken when the order was placed; they are not the live product record
// and must never be joined against current product data. TotalAmount is
// computed by the store (quantity x unit price at order time) and is
// read-only here.
type Order struct {
	ID            int64       `json:"id"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	ProductID     int64       `json:"productId"`
	ProductName   string      `json:"productName"`
	ProductPrice  float64     `json:"productPrice"`
	Quantity      int         `json:"quantity"`
	TotalAmount   float64     `json:"totalAmount"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     *time.Time  `json:"updatedAt"`
}

// CreateOrderRequest is the payload for creating an order. The store
// assigns the id, snapshots the product name and price, computes
// totalAmount and sets status to Pending.
type CreateOrderRequest struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	ProductID     int64  `json:"productId" binding:"required,gt=0"`
	Quantity      int    `json:"quantity" binding:"required,gte=1"`
}

// UpdateOrderRequest is the payload for editing an order's customer,
// product and quantity fields. Permitted only while the lifecycle
// policy allows edits.
type UpdateOrderRequest struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	ProductID     int64  `json:"productId" binding:"required,gt=0"`
	Quantity      int    `json:"quantity" binding:"required,gte=1"`
}

// UpdateOrderStatusRequest carries only the target status of a
// transition request.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
