package console

import (
	"net/http"

	"github.com/example/shopadmin/pkg/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (c *Console) listCategories(ctx *gin.Context) {
	if c.cache != nil {
		if categories, ok := c.cache.GetCategories(ctx.Request.Context()); ok {
			ctx.JSON(http.StatusOK, categories)
			return
		}
	}

	categories, err := c.categories.List(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "fetch categories", err)
		return
	}

	if c.cache != nil {
		if err := c.cache.CacheCategories(ctx.Request.Context(), categories); err != nil {
			c.logger.Warn("Failed to cache category snapshot", zap.Error(err))
		}
	}

	ctx.JSON(http.StatusOK, categories)
}

func (c *Console) getCategory(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "fetch category", err)
		return
	}

	category, err := c.categories.Get(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, "fetch category", err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func (c *Console) createCategory(ctx *gin.Context) {
	var req models.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "create category", err)
		return
	}

	category, err := c.categories.Create(ctx.Request.Context(), req)
	if err != nil {
		c.fail(ctx, "create category", err)
		return
	}

	c.invalidateCategories(ctx)
	c.record("create_category", "category", category.ID, bson.M{
		"name": category.Name,
	})

	ctx.JSON(http.StatusCreated, category)
}

func (c *Console) updateCategory(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "update category", err)
		return
	}

	var req models.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "update category", err)
		return
	}

	category, err := c.categories.Update(ctx.Request.Context(), id, req)
	if err != nil {
		c.fail(ctx, "update category", err)
		return
	}

	c.invalidateCategories(ctx)
	c.record("update_category", "category", category.ID, bson.M{
		"name":      category.Name,
		"is_active": category.IsActive,
	})

	ctx.JSON(http.StatusOK, category)
}

// deleteCategory removes the category server-side; the store unassigns
// dependent products rather than cascading, so the product snapshot is
// invalidated too (category references on products just changed).
func (c *Console) deleteCategory(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "delete category", err)
		return
	}

	if err := c.categories.Delete(ctx.Request.Context(), id); err != nil {
		c.fail(ctx, "delete category", err)
		return
	}

	c.invalidateCategories(ctx)
	c.invalidateProducts(ctx)
	c.record("delete_category", "category", id, nil)

	ctx.Status(http.StatusNoContent)
}

func (c *Console) invalidateCategories(ctx *gin.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.InvalidateCategories(ctx.Request.Context()); err != nil {
		c.logger.Warn("Failed to invalidate category snapshot", zap.Error(err))
	}
}
