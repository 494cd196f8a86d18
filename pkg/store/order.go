package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/example/shopadmin/pkg/models"
)

// OrderClient talks to the order service over its REST contract.
// Status transitions go through PATCH /{id}/status carrying only the
// target status; the service rejects jumps its own graph forbids.
type OrderClient struct {
	rest *restClient
}

func NewOrderClient(baseURL string, client *http.Client) *OrderClient {
	return &OrderClient{rest: newRESTClient(baseURL, client)}
}

func (c *OrderClient) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.rest.do(ctx, http.MethodGet, "", nil, &orders, "list orders"); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *OrderClient) Get(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := c.rest.do(ctx, http.MethodGet, fmt.Sprintf("/%d", id), nil, &order, "get order"); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.rest.do(ctx, http.MethodPost, "", req, &order, "create order"); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) Update(ctx context.Context, id int64, req models.UpdateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.rest.do(ctx, http.MethodPut, fmt.Sprintf("/%d", id), req, &order, "update order"); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) UpdateStatus(ctx context.Context, id int64, target models.OrderStatus) (*models.Order, error) {
	var order models.Order
	payload := models.UpdateOrderStatusRequest{Status: target}
	if err := c.rest.do(ctx, http.MethodPatch, fmt.Sprintf("/%d/status", id), payload, &order, "update order status"); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) Delete(ctx context.Context, id int64) error {
	return c.rest.do(ctx, http.MethodDelete, fmt.Sprintf("/%d", id), nil, nil, "delete order")
}
