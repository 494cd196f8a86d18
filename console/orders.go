package console

import (
	"net/http"

	"github.com/example/shopadmin/pkg/lifecycle"
	"github.com/example/shopadmin/pkg/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (c *Console) listOrders(ctx *gin.Context) {
	if c.cache != nil {
		if orders, ok := c.cache.GetOrders(ctx.Request.Context()); ok {
			ctx.JSON(http.StatusOK, orders)
			return
		}
	}

	orders, err := c.orders.List(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "fetch orders", err)
		return
	}

	if c.cache != nil {
		if err := c.cache.CacheOrders(ctx.Request.Context(), orders); err != nil {
			c.logger.Warn("Failed to cache order snapshot", zap.Error(err))
		}
	}

	ctx.JSON(http.StatusOK, orders)
}

func (c *Console) getOrder(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "fetch order", err)
		return
	}

	order, err := c.orders.Get(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, "fetch order", err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// orderTransitions reports the legal next statuses plus the edit and
// delete gates for one order, so the UI only offers moves the policy
// will accept.
func (c *Console) orderTransitions(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "fetch order transitions", err)
		return
	}

	order, err := c.orders.Get(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, "fetch order transitions", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":                 order.ID,
		"status":             order.Status,
		"allowedTransitions": lifecycle.AllowedTransitions(order.Status),
		"canEdit":            lifecycle.CanEdit(order.Status),
		"canDelete":          lifecycle.CanDelete(order.Status),
	})
}

func (c *Console) createOrder(ctx *gin.Context) {
	var req models.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "create order", err)
		return
	}

	order, err := c.orders.Create(ctx.Request.Context(), req)
	if err != nil {
		c.fail(ctx, "create order", err)
		return
	}

	c.invalidateOrders(ctx)
	c.record("create_order", "order", order.ID, bson.M{
		"customer_name": order.CustomerName,
		"product_id":    order.ProductID,
		"quantity":      order.Quantity,
		"total_amount":  order.TotalAmount,
	})

	ctx.JSON(http.StatusCreated, order)
}

func (c *Console) updateOrder(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "update order", err)
		return
	}

	var req models.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "update order", err)
		return
	}

	order, err := c.policy.RequestEdit(ctx.Request.Context(), id, req)
	if err != nil {
		c.fail(ctx, "update order", err)
		return
	}

	c.record("update_order", "order", order.ID, bson.M{
		"customer_name": order.CustomerName,
		"product_id":    order.ProductID,
		"quantity":      order.Quantity,
	})

	ctx.JSON(http.StatusOK, order)
}

func (c *Console) updateOrderStatus(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "update order status", err)
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "update order status", err)
		return
	}

	order, err := c.policy.RequestTransition(ctx.Request.Context(), id, req.Status)
	if err != nil {
		c.fail(ctx, "update order status", err)
		return
	}

	c.record("update_order_status", "order", order.ID, bson.M{
		"status": order.Status,
	})

	ctx.JSON(http.StatusOK, order)
}

func (c *Console) deleteOrder(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		c.badRequest(ctx, "delete order", err)
		return
	}

	if err := c.policy.RequestDelete(ctx.Request.Context(), id); err != nil {
		c.fail(ctx, "delete order", err)
		return
	}

	c.record("delete_order", "order", id, nil)

	ctx.Status(http.StatusNoContent)
}

func (c *Console) invalidateOrders(ctx *gin.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.InvalidateOrders(ctx.Request.Context()); err != nil {
		c.logger.Warn("Failed to invalidate order snapshot", zap.Error(err))
	}
}
