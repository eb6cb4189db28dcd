package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rapid-pay-api/internal/logger"
	ordermodel "rapid-pay-api/internal/model/order"
	"rapid-pay-api/internal/utils"
)

const (
	traceIDKey = "trace_id"
	auditKey   = "audit_entry"
	actorKey   = "audit_actor"

	TraceHeader = "X-Trace-ID"
)

// TraceID returns the request's trace id, or "" outside TraceAudit.
func TraceID(c *gin.Context) string {
	return c.GetString(traceIDKey)
}

// MarkAudit flags the request for an audit row. Later calls overwrite earlier ones.
func MarkAudit(c *gin.Context, action string, orderID uint64, status string) {
	c.Set(auditKey, &ordermodel.AuditLog{Action: action, OrderID: orderID, Status: status})
}

// TraceAudit assigns a trace id and, when a handler called MarkAudit, writes one
// audit row after the response.
func TraceAudit(w *logger.AuditWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Set(traceIDKey, traceID)
		c.Writer.Header().Set(TraceHeader, traceID)
		start := time.Now()

		c.Next()

		v, ok := c.Get(auditKey)
		if !ok {
			return
		}
		entry := *v.(*ordermodel.AuditLog)
		entry.TraceID = traceID
		entry.Actor = c.GetString(actorKey)
		entry.Path = c.Request.Method + " " + c.FullPath()
		entry.IP = utils.GetRealClientIP(c)
		entry.UserAgent = truncate(c.Request.UserAgent(), 255)
		entry.LatencyMs = time.Since(start).Milliseconds()
		if len(c.Errors) > 0 {
			entry.ErrorMsg = truncate(c.Errors.String(), 500)
		} else if c.Writer.Status() >= 400 {
			entry.ErrorMsg = "http " + strconv.Itoa(c.Writer.Status())
		}
		w.Write(entry)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Actor is the token hint set by AdminAuth, or "" on public routes.
func Actor(c *gin.Context) string {
	return c.GetString(actorKey)
}
