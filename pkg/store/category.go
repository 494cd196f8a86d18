package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/example/shopadmin/pkg/models"
)

// CategoryClient talks to the category endpoints of the product
// service. A delete never fails solely because products reference the
// category; the service nulls their references instead. If the backend
// does refuse for a referential reason, its message is carried through
// in the returned *Error.
type CategoryClient struct {
	rest *restClient
}

func NewCategoryClient(baseURL string, client *http.Client) *CategoryClient {
	return &CategoryClient{rest: newRESTClient(baseURL, client)}
}

func (c *CategoryClient) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.rest.do(ctx, http.MethodGet, "", nil, &categories, "list categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *CategoryClient) Get(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := c.rest.do(ctx, http.MethodGet, fmt.Sprintf("/%d", id), nil, &category, "get category"); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *CategoryClient) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.rest.do(ctx, http.MethodPost, "", req, &category, "create category"); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *CategoryClient) Update(ctx context.Context, id int64, req models.UpdateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.rest.do(ctx, http.MethodPut, fmt.Sprintf("/%d", id), req, &category, "update category"); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *CategoryClient) Delete(ctx context.Context, id int64) error {
	return c.rest.do(ctx, http.MethodDelete, fmt.Sprintf("/%d", id), nil, nil, "delete category")
}
