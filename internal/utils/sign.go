package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignBody returns the hex HMAC-SHA256 of body, the X-Signature the host
// platform sends with order hooks.
func SignBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyBodySign compares in constant time; an empty secret never verifies.
func VerifyBodySign(body []byte, secret, sig string) bool {
	if secret == "" || sig == "" {
		return false
	}
	expected := SignBody(body, secret)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(sig))))
}
