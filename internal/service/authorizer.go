package service

import (
	"crypto/subtle"
	"strings"
)

// TokenAuthorizer maps static bearer tokens to capabilities.
type TokenAuthorizer struct {
	grants map[string]map[string]bool
}

// NewTokenAuthorizer copies tokens. Viper lowercases map keys, so tokens and
// capability names both compare case-insensitively.
func NewTokenAuthorizer(tokens map[string][]string) *TokenAuthorizer {
	a := &TokenAuthorizer{grants: make(map[string]map[string]bool, len(tokens))}
	for tok, caps := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		set := make(map[string]bool, len(caps))
		for _, c := range caps {
			set[strings.ToLower(strings.TrimSpace(c))] = true
		}
		a.grants[tok] = set
	}
	return a
}

func (a *TokenAuthorizer) Can(token, capability string) bool {
	if a == nil || token == "" {
		return false
	}
	token = strings.ToLower(token)
	capability = strings.ToLower(capability)
	for tok, caps := range a.grants {
		if subtle.ConstantTimeCompare([]byte(tok), []byte(token)) == 1 {
			return caps[capability]
		}
	}
	return false
}
