package console

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

var auditEntities = map[string]bool{
	"order":    true,
	"product":  true,
	"category": true,
}

// listAuditLogs returns the action trail for one entity, newest first.
// Registered only when an audit store is configured.
func (c *Console) listAuditLogs(ctx *gin.Context) {
	entity := ctx.Query("entity")
	if !auditEntities[entity] {
		c.badRequest(ctx, "list audit logs", fmt.Errorf("invalid entity %q", entity))
		return
	}

	id, err := strconv.ParseInt(ctx.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		c.badRequest(ctx, "list audit logs", fmt.Errorf("invalid id %q", ctx.Query("id")))
		return
	}

	limit := int64(defaultAuditLimit)
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			c.badRequest(ctx, "list audit logs", fmt.Errorf("invalid limit %q", raw))
			return
		}
		if limit > maxAuditLimit {
			limit = maxAuditLimit
		}
	}

	logs, err := c.audit.GetAuditLogs(ctx.Request.Context(), entity, id, limit)
	if err != nil {
		c.fail(ctx, "list audit logs", err)
		return
	}

	ctx.JSON(http.StatusOK, logs)
}
