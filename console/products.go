package console

import (
	"net/http"

	"github.com/example/shopadmin/pkg/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (c *Console) listProducts(ctx *gin.Context) {
	if c.cache != nil {
		if products, ok := c.cache.GetProducts(ctx.Request.Context()); ok {
			ctx.JSON(http.StatusOK, products)
			return
		}
	}

	products, err := c.products.List(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "fetch products", err)
		return
	}

	if c.cache != nil {
		if err := c.cache.CacheProducts(ctx.Request.Context(), products); err != nil {
			c.logger.Warn("Failed to cache product snapshot", zap.Error(err))
		}
	}

	ctx.JSON(http.StatusOK, products)
}

func (c *Console) getProduct(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "fetch product", err)
		return
	}

	product, err := c.products.Get(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, "fetch product", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func (c *Console) createProduct(ctx *gin.Context) {
	var req models.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "create product", err)
		return
	}

	product, err := c.products.Create(ctx.Request.Context(), req)
	if err != nil {
		c.fail(ctx, "create product", err)
		return
	}

	c.invalidateProducts(ctx)
	c.record("create_product", "product", product.ID, bson.M{
		"name":  product.Name,
		"brand": product.Brand,
		"price": product.Price,
	})

	ctx.JSON(http.StatusCreated, product)
}

func (c *Console) updateProduct(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "update product", err)
		return
	}

	var req models.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "update product", err)
		return
	}

	product, err := c.products.Update(ctx.Request.Context(), id, req)
	if err != nil {
		c.fail(ctx, "update product", err)
		return
	}

	c.invalidateProducts(ctx)
	c.record("update_product", "product", product.ID, bson.M{
		"name":  product.Name,
		"brand": product.Brand,
		"price": product.Price,
	})

	ctx.JSON(http.StatusOK, product)
}

func (c *Console) deleteProduct(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "delete product", err)
		return
	}

	if err := c.products.Delete(ctx.Request.Context(), id); err != nil {
		c.fail(ctx, "delete product", err)
		return
	}

	c.invalidateProducts(ctx)
	c.record("delete_product", "product", id, nil)

	ctx.Status(http.StatusNoContent)
}

func (c *Console) invalidateProducts(ctx *gin.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.InvalidateProducts(ctx.Request.Context()); err != nil {
		c.logger.Warn("Failed to invalidate product snapshot", zap.Error(err))
	}
}
