package utils

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// WithinBounds reports whether amount lies in [min, max]; a zero bound is open.
func WithinBounds(amount, min, max decimal.Decimal) bool {
	if min.IsPositive() && amount.LessThan(min) {
		return false
	}
	if max.IsPositive() && amount.GreaterThan(max) {
		return false
	}
	return true
}

// MapToJSON renders v for log lines; marshal failures yield "".
func MapToJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
