package store

import (
	"context"
	"net/http"

	"github.com/example/shopadmin/pkg/models"
	"github.com/machinebox/graphql"
)

// Catalog reads (products, categories) can alternatively be served by
// the backend's GraphQL endpoint. Mutations stay on REST either way,
// so a GraphQL-backed store wraps a REST client for writes.

const productsQuery = `
query GetProducts {
	products {
		id
		name
		brand
		price
		description
		stock
		isActive
		categoryId
		categoryName
		createdAt
		updatedAt
	}
}`

const productQuery = `
query GetProduct($id: Int!) {
	product(id: $id) {
		id
		name
		brand
		price
		description
		stock
		isActive
		categoryId
		categoryName
		createdAt
		updatedAt
	}
}`

const categoriesQuery = `
query GetCategories {
	categories {
		id
		name
		description
		isActive
		productCount
		createdAt
	}
}`

const categoryQuery = `
query GetCategory($id: Int!) {
	category(id: $id) {
		id
		name
		description
		isActive
		productCount
		createdAt
	}
}`

// GraphQLProductStore serves product reads over GraphQL and delegates
// mutations to the REST product client.
type GraphQLProductStore struct {
	*ProductClient
	gql *graphql.Client
}

func NewGraphQLProductStore(endpoint string, rest *ProductClient) *GraphQLProductStore {
	return &GraphQLProductStore{
		ProductClient: rest,
		gql:           graphql.NewClient(endpoint),
	}
}

func (s *GraphQLProductStore) List(ctx context.Context) ([]models.Product, error) {
	var resp struct {
		Products []models.Product `json:"products"`
	}
	req := graphql.NewRequest(productsQuery)
	if err := s.gql.Run(ctx, req, &resp); err != nil {
		return nil, &Error{Op: "list products", Message: err.Error()}
	}
	return resp.Products, nil
}

func (s *GraphQLProductStore) Get(ctx context.Context, id int64) (*models.Product, error) {
	var resp struct {
		Product *models.Product `json:"product"`
	}
	req := graphql.NewRequest(productQuery)
	req.Var("id", id)
	if err := s.gql.Run(ctx, req, &resp); err != nil {
		return nil, &Error{Op: "get product", Message: err.Error()}
	}
	if resp.Product == nil {
		return nil, &Error{Op: "get product", Status: http.StatusNotFound, Message: "product not found"}
	}
	return resp.Product, nil
}

// GraphQLCategoryStore serves category reads over GraphQL and
// delegates mutations to the REST category client.
type GraphQLCategoryStore struct {
	*CategoryClient
	gql *graphql.Client
}

func NewGraphQLCategoryStore(endpoint string, rest *CategoryClient) *GraphQLCategoryStore {
	return &GraphQLCategoryStore{
		CategoryClient: rest,
		gql:            graphql.NewClient(endpoint),
	}
}

func (s *GraphQLCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	var resp struct {
		Categories []models.Category `json:"categories"`
	}
	req := graphql.NewRequest(categoriesQuery)
	if err := s.gql.Run(ctx, req, &resp); err != nil {
		return nil, &Error{Op: "list categories", Message: err.Error()}
	}
	return resp.Categories, nil
}

func (s *GraphQLCategoryStore) Get(ctx context.Context, id int64) (*models.Category, error) {
	var resp struct {
		Category *models.Category `json:"category"`
	}
	req := graphql.NewRequest(categoryQuery)
	req.Var("id", id)
	if err := s.gql.Run(ctx, req, &resp); err != nil {
		return nil, &Error{Op: "get category", Message: err.Error()}
	}
	if resp.Category == nil {
		return nil, &Error{Op: "get category", Status: http.StatusNotFound, Message: "category not found"}
	}
	return resp.Category, nil
}
