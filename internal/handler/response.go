package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rapid-pay-api/internal/middleware"
	"rapid-pay-api/internal/utils"
)

func ok(c *gin.Context, data interface{}) {
	r := utils.Success(data)
	r.TraceID = middleware.TraceID(c)
	c.JSON(http.StatusOK, r)
}

// fail maps err onto the envelope. Server-side failures are attached to the
// gin context so the request and audit logs carry the cause.
func fail(c *gin.Context, err error) {
	status, resp := utils.FromError(err, middleware.TraceID(c))
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		log.Printf("[TraceId]: %s, path=%s, err=%v", resp.TraceID, c.Request.URL.Path, err)
	}
	c.JSON(status, resp)
}
