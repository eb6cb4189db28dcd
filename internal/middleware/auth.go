package middleware

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/utils"
)

const SignatureHeader = "X-Signature"

// AuthHMAC verifies X-Signature = hex(HMAC-SHA256(body, secret)) and restores
// the body for the handler.
func AuthHMAC(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sig := c.GetHeader(SignatureHeader)
		if sig == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.ErrorWithTrace(constant.CodeUnauthorized, TraceID(c)))
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				utils.ErrorWithTrace(constant.CodeInvalidParams, TraceID(c)))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !utils.VerifyBodySign(body, secret, sig) {
			log.Printf("[AuthHMAC] bad signature: ip=%s, path=%s", utils.GetRealClientIP(c), c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.ErrorWithTrace(constant.CodeSignatureError, TraceID(c)))
			return
		}
		c.Next()
	}
}
