package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/utils"
)

func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Recover] panic: trace_id=%s, path=%s, err=%v\n%s",
					TraceID(c), c.Request.URL.Path, r, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					utils.ErrorWithTrace(constant.CodeSystemError, TraceID(c)))
			}
		}()
		c.Next()
	}
}
