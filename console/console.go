// Package console is the HTTP surface of the shop admin console. It
// owns no entity state: every read and write is proxied to the
// external stores, with the order lifecycle policy applied before any
// order mutation leaves the process.
package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/example/shopadmin/pkg/config"
	"github.com/example/shopadmin/pkg/lifecycle"
	"github.com/example/shopadmin/pkg/notify"
	"github.com/example/shopadmin/pkg/repository"
	"github.com/example/shopadmin/pkg/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// EventSource is the slice of the push channel the console needs.
// *notify.Notifier satisfies it.
type EventSource interface {
	Subscribe(kind string, handler notify.Handler) notify.Subscription
	Unsubscribe(sub notify.Subscription)
}

// AuditStore records and serves the admin action trail.
// *repository.MongoRepository satisfies it.
type AuditStore interface {
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
	GetAuditLogs(ctx context.Context, entity string, entityID int64, limit int64) ([]*repository.AuditLog, error)
}

type Console struct {
	config     *config.Config
	logger     *zap.Logger
	router     *gin.Engine
	orders     store.OrderStore
	products   store.ProductStore
	categories store.CategoryStore
	policy     *lifecycle.Policy
	cache      *repository.SnapshotCache // nil: no snapshot caching
	audit      AuditStore
	events     EventSource
}

// Options carries the collaborators of the console. Cache, Audit and
// Events may be nil; the matching features are then disabled.
type Options struct {
	Orders     store.OrderStore
	Products   store.ProductStore
	Categories store.CategoryStore
	Cache      *repository.SnapshotCache
	Audit      AuditStore
	Events     EventSource
}

func New(cfg *config.Config, logger *zap.Logger, opts Options) *Console {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(logger))

	var invalidator lifecycle.Invalidator
	if opts.Cache != nil {
		invalidator = opts.Cache
	}

	return &Console{
		config:     cfg,
		logger:     logger,
		router:     router,
		orders:     opts.Orders,
		products:   opts.Products,
		categories: opts.Categories,
		policy:     lifecycle.NewPolicy(opts.Orders, invalidator, logger.Named("lifecycle")),
		cache:      opts.Cache,
		audit:      opts.Audit,
		events:     opts.Events,
	}
}

func (c *Console) SetupRoutes() {
	// Health check
	c.router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := c.router.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.GET("", c.listOrders)
			orders.GET("/:id", c.getOrder)
			orders.GET("/:id/transitions", c.orderTransitions)
			orders.POST("", c.createOrder)
			orders.PUT("/:id", c.updateOrder)
			orders.PATCH("/:id/status", c.updateOrderStatus)
			orders.DELETE("/:id", c.deleteOrder)
		}

		products := v1.Group("/products")
		{
			products.GET("", c.listProducts)
			products.GET("/:id", c.getProduct)
			products.POST("", c.createProduct)
			products.PUT("/:id", c.updateProduct)
			products.DELETE("/:id", c.deleteProduct)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", c.listCategories)
			categories.GET("/:id", c.getCategory)
			categories.POST("", c.createCategory)
			categories.PUT("/:id", c.updateCategory)
			categories.DELETE("/:id", c.deleteCategory)
		}

		if c.audit != nil {
			v1.GET("/audit", c.listAuditLogs)
		}
	}

	// Live order-created toasts for connected admin sessions
	if c.events != nil {
		c.router.GET("/events", c.streamEvents)
	}

	// Swagger
	c.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (c *Console) Start() error {
	addr := fmt.Sprintf("%s:%d", c.config.Server.Host, c.config.Server.Port)
	c.logger.Info("Console starting", zap.String("address", addr))
	return c.router.Run(addr)
}

// Handler exposes the router for tests.
func (c *Console) Handler() http.Handler {
	return c.router
}

// fail maps an error onto the three-class taxonomy: bad input never
// reached a backend (the binding layer answers those directly),
// illegal transitions and lifecycle locks are conflicts, and backend
// refusals pass their own status and human-readable reason through.
// The operation name keeps "which call failed" visible to the user.
func (c *Console) fail(ctx *gin.Context, op string, err error) {
	var (
		transitionErr *lifecycle.TransitionError
		editErr       *lifecycle.EditLockedError
		deleteErr     *lifecycle.DeleteLockedError
		storeErr      *store.Error
	)

	switch {
	case errors.As(err, &transitionErr):
		ctx.JSON(http.StatusConflict, gin.H{
			"error":   fmt.Sprintf("Failed to %s: %s", op, transitionErr.Error()),
			"allowed": lifecycle.AllowedTransitions(transitionErr.From),
		})
	case errors.As(err, &editErr), errors.As(err, &deleteErr):
		ctx.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Failed to %s: %s", op, err.Error()),
		})
	case errors.As(err, &storeErr) && storeErr.Status > 0:
		ctx.JSON(storeErr.Status, gin.H{
			"error": fmt.Sprintf("Failed to %s: %s", op, storeErr.Message),
		})
	default:
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error": fmt.Sprintf("Failed to %s: %s", op, err.Error()),
		})
	}

	c.logger.Warn("Request failed",
		zap.String("op", op),
		zap.Int("status", ctx.Writer.Status()),
		zap.Error(err))
}

func (c *Console) badRequest(ctx *gin.Context, op string, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error": fmt.Sprintf("Failed to %s: %s", op, err.Error()),
	})
}

// record writes an audit entry off the request path. Audit loss is
// logged, never surfaced.
func (c *Console) record(action, entity string, entityID int64, data bson.M) {
	if c.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.audit.CreateAuditLog(ctx, &repository.AuditLog{
			Action:   action,
			Entity:   entity,
			EntityID: entityID,
			Data:     data,
		}); err != nil {
			c.logger.Warn("Audit write failed",
				zap.String("action", action),
				zap.Error(err))
		}
	}()
}

func pathID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", ctx.Param("id"))
	}
	return id, nil
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set("request_id", id)
		ctx.Writer.Header().Set("X-Request-ID", id)
		ctx.Next()
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		query := ctx.Request.URL.RawQuery

		ctx.Next()

		logger.Info("HTTP request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("request_id", ctx.GetString("request_id")),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
