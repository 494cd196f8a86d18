package console

import (
	"io"

	"github.com/example/shopadmin/pkg/notify"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// streamEvents pushes ORDER_CREATED events to one admin session over
// server-sent events. Each connection gets its own subscription for
// the life of the request. A session that cannot keep up has events
// dropped rather than buffered without bound; the push channel offers
// no replay anyway.
func (c *Console) streamEvents(ctx *gin.Context) {
	ch := make(chan notify.Event, 16)
	sub := c.events.Subscribe(notify.KindOrderCreated, func(ev notify.Event) {
		select {
		case ch <- ev:
		default:
		}
	})
	defer c.events.Unsubscribe(sub)

	c.logger.Info("Admin session connected to event stream",
		zap.String("request_id", ctx.GetString("request_id")))

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")
	// Complete the handshake now; the first event may be a long way off.
	ctx.Writer.Flush()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case ev := <-ch:
			ctx.SSEvent(ev.Kind, ev)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})

	c.logger.Info("Admin session left event stream",
		zap.String("request_id", ctx.GetString("request_id")))
}
