package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var senderPhonePattern = regexp.MustCompile(`^01[0-9]{9}$`)

const minTransactionIDLen = 5

// NormalizeField trims surrounding whitespace the way the checkout form is sanitised.
func NormalizeField(s string) string {
	return strings.TrimSpace(s)
}

// IsValidSenderPhone accepts 11 digit local mobile numbers starting with 01.
func IsValidSenderPhone(phone string) bool {
	return senderPhonePattern.MatchString(NormalizeField(phone))
}

// IsValidTransactionID requires at least 5 characters after trimming.
func IsValidTransactionID(trxID string) bool {
	return utf8.RuneCountInString(NormalizeField(trxID)) >= minTransactionIDLen
}
