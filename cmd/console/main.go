package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/shopadmin/console"
	"github.com/example/shopadmin/pkg/config"
	"github.com/example/shopadmin/pkg/discovery"
	"github.com/example/shopadmin/pkg/notify"
	"github.com/example/shopadmin/pkg/repository"
	"github.com/example/shopadmin/pkg/store"
	"go.uber.org/zap"
)

func main() {
	// Load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting admin console",
		zap.Int("port", cfg.Server.Port),
		zap.String("host", cfg.Server.Host))

	// Setup service discovery
	sd, err := discovery.NewServiceDiscovery(&cfg.Etcd, logger.Named("discovery"))
	if err != nil {
		logger.Warn("Failed to connect to etcd, using configured store URLs", zap.Error(err))
		sd = nil
	}

	ctx := context.Background()
	orderURL := sd.ResolveURL(ctx, "order-service", cfg.Stores.OrderURL)
	productURL := sd.ResolveURL(ctx, "product-service", cfg.Stores.ProductURL)
	categoryURL := sd.ResolveURL(ctx, "category-service", cfg.Stores.CategoryURL)

	// Store clients share one outbound HTTP client
	httpClient := &http.Client{Timeout: 30 * time.Second}

	orders := store.NewOrderClient(orderURL, httpClient)
	productClient := store.NewProductClient(productURL, httpClient)
	categoryClient := store.NewCategoryClient(categoryURL, httpClient)

	var products store.ProductStore = productClient
	var categories store.CategoryStore = categoryClient
	if cfg.Stores.UseGraphQL {
		logger.Info("Catalog reads via GraphQL", zap.String("endpoint", cfg.Stores.GraphQLURL))
		products = store.NewGraphQLProductStore(cfg.Stores.GraphQLURL, productClient)
		categories = store.NewGraphQLCategoryStore(cfg.Stores.GraphQLURL, categoryClient)
	}

	// Snapshot cache
	cache := repository.NewSnapshotCache(&cfg.Redis)
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("Redis connection failed, snapshot caching disabled", zap.Error(err))
		cache = nil
	} else {
		logger.Info("Redis connected successfully")
	}

	// Audit log
	var auditStore console.AuditStore
	audit, err := repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil {
		logger.Warn("MongoDB connection failed, audit logging disabled", zap.Error(err))
		audit = nil
	} else {
		auditStore = audit
	}

	// Push channel
	var events console.EventSource
	notifier, err := notify.NewNotifier(&cfg.Redis, logger.Named("notify"))
	if err != nil {
		logger.Warn("Failed to create notifier, live events disabled", zap.Error(err))
		notifier = nil
	} else if err := notifier.Open(ctx); err != nil {
		logger.Warn("Push channel unavailable, live events disabled", zap.Error(err))
		notifier.Close()
		notifier = nil
	}
	if notifier != nil {
		events = notifier
	}

	// Create console
	con := console.New(cfg, logger, console.Options{
		Orders:     orders,
		Products:   products,
		Categories: categories,
		Cache:      cache,
		Audit:      auditStore,
		Events:     events,
	})
	con.SetupRoutes()

	// Start console in goroutine
	conErr := make(chan error, 1)
	go func() {
		if err := con.Start(); err != nil {
			conErr <- err
		}
	}()

	logger.Info("Console started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-conErr:
		logger.Fatal("Console error", zap.Error(err))
	}

	if notifier != nil {
		if err := notifier.Close(); err != nil {
			logger.Warn("Notifier close failed", zap.Error(err))
		}
	}
	if cache != nil {
		if err := cache.Close(); err != nil {
			logger.Warn("Cache close failed", zap.Error(err))
		}
	}
	if audit != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := audit.Close(closeCtx); err != nil {
			logger.Warn("Audit close failed", zap.Error(err))
		}
		cancel()
	}
	if sd != nil {
		sd.Close()
	}

	logger.Info("Console stopped")
}
