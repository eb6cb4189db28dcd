package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIPHeaders are consulted in order before falling back to the socket.
var clientIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For", "X-Client-IP"}

// GetRealClientIP returns the first parseable address found in the proxy
// headers, then gin's ClientIP, then the RemoteAddr host.
func GetRealClientIP(c *gin.Context) string {
	for _, h := range clientIPHeaders {
		if ip := firstIP(c.GetHeader(h)); ip != "" {
			return ip
		}
	}
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip.String()
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return ""
}

// firstIP picks the left-most valid entry of a comma separated chain.
func firstIP(list string) string {
	for _, part := range strings.Split(list, ",") {
		if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
			return ip.String()
		}
	}
	return ""
}
