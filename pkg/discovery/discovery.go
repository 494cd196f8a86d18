// Package discovery resolves the external store endpoints from etcd.
// The backends register their base URLs under a shared prefix; the
// console only ever reads. Discovery is optional: callers fall back to
// the statically configured URLs when etcd is absent or empty.
package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/example/shopadmin/pkg/config"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
)

type ServiceDiscovery struct {
	client *clientv3.Client
	config *config.EtcdConfig
	logger *zap.Logger
}

func NewServiceDiscovery(cfg *config.EtcdConfig, logger *zap.Logger) (*ServiceDiscovery, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	return &ServiceDiscovery{
		client: cli,
		config: cfg,
		logger: logger,
	}, nil
}

// Discover returns the base URLs registered for serviceName, newest
// registration last.
func (sd *ServiceDiscovery) Discover(ctx context.Context, serviceName string) ([]string, error) {
	key := fmt.Sprintf("%s%s/", sd.config.Prefix, serviceName)

	resp, err := sd.client.Get(ctx, key, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to discover service: %w", err)
	}

	urls := make([]string, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		urls = append(urls, string(kv.Value))
	}
	return urls, nil
}

// ResolveURL returns a registered base URL for serviceName, or
// fallback when discovery is unavailable or knows nothing. sd may be
// nil.
func (sd *ServiceDiscovery) ResolveURL(ctx context.Context, serviceName, fallback string) string {
	if sd == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	urls, err := sd.Discover(ctx, serviceName)
	if err != nil || len(urls) == 0 {
		sd.logger.Warn("Falling back to configured store URL",
			zap.String("service", serviceName),
			zap.String("url", fallback),
			zap.Error(err))
		return fallback
	}

	sd.logger.Info("Discovered store endpoint",
		zap.String("service", serviceName),
		zap.String("url", urls[0]))
	return urls[0]
}

func (sd *ServiceDiscovery) Close() error {
	return sd.client.Close()
}
