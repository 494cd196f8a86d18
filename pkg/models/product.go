package models

import (
	"time"
)

// Product as served by the product store. CategoryID is a weak
// reference: orders and products keep historical rows even after the
// referenced row is gone. CategoryName is resolved by the store.
type Product struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Brand        string     `json:"brand"`
	Price        float64    `json:"price"`
	Description  string     `json:"description"`
	Stock        int        `json:"stock"`
	IsActive     bool       `json:"isActive"`
	CategoryID   *int64     `json:"categoryId"`
	CategoryName *string    `json:"categoryName"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Brand       string  `json:"brand" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Description string  `json:"description"`
	Stock       int     `json:"stock" binding:"gte=0"`
	CategoryID  *int64  `json:"categoryId"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Brand       string  `json:"brand" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Description string  `json:"description"`
	Stock       int     `json:"stock" binding:"gte=0"`
	CategoryID  *int64  `json:"categoryId"`
	IsActive    bool    `json:"isActive"`
}
