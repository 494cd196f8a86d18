package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/example/shopadmin/pkg/models"
)

// ProductClient talks to the product service over its REST contract.
type ProductClient struct {
	rest *restClient
}

func NewProductClient(baseURL string, client *http.Client) *ProductClient {
	return &ProductClient{rest: newRESTClient(baseURL, client)}
}

func (c *ProductClient) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.rest.do(ctx, http.MethodGet, "", nil, &products, "list products"); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *ProductClient) Get(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.rest.do(ctx, http.MethodGet, fmt.Sprintf("/%d", id), nil, &product, "get product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductClient) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.rest.do(ctx, http.MethodPost, "", req, &product, "create product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductClient) Update(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.rest.do(ctx, http.MethodPut, fmt.Sprintf("/%d", id), req, &product, "update product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductClient) Delete(ctx context.Context, id int64) error {
	return c.rest.do(ctx, http.MethodDelete, fmt.Sprintf("/%d", id), nil, nil, "delete product")
}
