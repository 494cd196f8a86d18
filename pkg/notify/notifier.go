// Package notify is the console's end of the push-notification
// channel. The external push server publishes events on redis pub/sub
// channels named after the event kind; this package owns that
// connection for the whole process and fans events out to subscribed
// handlers. A missed event while disconnected is simply lost.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/shopadmin/pkg/config"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Notifier is the process-wide push channel: acquired once at startup,
// released at shutdown. The raw connection is never handed out;
// consumers register handlers by event kind.
type Notifier struct {
	client *redis.Client
	hub    *Hub
	logger *zap.Logger
	sub    *redis.PubSub
	done   chan struct{}
}

func NewNotifier(cfg *config.RedisConfig, logger *zap.Logger) (*Notifier, error) {
	hub, err := NewHub(logger)
	if err != nil {
		return nil, fmt.Errorf("start dispatch hub: %w", err)
	}
	return &Notifier{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		hub:    hub,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

// Open connects to the push channel and starts delivering events. The
// subscription stays up for the life of the process; go-redis
// reconnects underneath, and anything published while disconnected is
// lost, per the channel's contract.
func (n *Notifier) Open(ctx context.Context) error {
	if err := n.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("push channel unreachable: %w", err)
	}

	n.sub = n.client.Subscribe(ctx, KindOrderCreated)
	if _, err := n.sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to push channel: %w", err)
	}

	go n.read()

	n.logger.Info("Push channel connected",
		zap.String("channel", KindOrderCreated))
	return nil
}

func (n *Notifier) read() {
	defer close(n.done)
	for msg := range n.sub.Channel() {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			// Malformed push payloads are dropped, never fatal.
			n.logger.Warn("Dropping malformed push event",
				zap.String("channel", msg.Channel),
				zap.Error(err))
			continue
		}
		ev.Kind = msg.Channel
		n.hub.Publish(ev)
	}
}

// Subscribe registers handler for events of the given kind.
func (n *Notifier) Subscribe(kind string, handler Handler) Subscription {
	return n.hub.Subscribe(kind, handler)
}

// Unsubscribe removes a previously registered handler.
func (n *Notifier) Unsubscribe(sub Subscription) {
	n.hub.Unsubscribe(sub)
}

// Close releases the channel: stops the reader, drains the dispatcher
// and closes the redis connection.
func (n *Notifier) Close() error {
	if n.sub != nil {
		if err := n.sub.Close(); err != nil {
			n.logger.Warn("Push subscription close failed", zap.Error(err))
		}
		<-n.done
	}
	n.hub.Close()
	return n.client.Close()
}
