package dto

import (
	"github.com/shopspring/decimal"

	"rapid-pay-api/internal/constant"
)

const (
	MinAutoExpireHours     = 1
	MaxAutoExpireHours     = 168
	DefaultAutoExpireHours = 24

	DefaultInstructionText = "Please complete your payment using one of the available methods and enter your sender mobile number and transaction ID below."
)

// Settings is the runtime-editable gateway configuration. It is loaded once per
// request or sweep tick and passed down explicitly.
type Settings struct {
	EnabledMethods    []constant.PaymentMethod          `json:"enabledMethods"`
	InstructionText   string                            `json:"instructionText"`
	AdminPhones       map[constant.PaymentMethod]string `json:"adminPhones"`
	Currency          string                            `json:"currency"`
	MinAmount         decimal.Decimal                   `json:"minAmount"`
	MaxAmount         decimal.Decimal                   `json:"maxAmount"`
	AutoExpireEnabled bool                              `json:"autoExpireEnabled"`
	AutoExpireHours   int                               `json:"autoExpireHours"`
}

// DefaultSettings is what a fresh install starts with.
func DefaultSettings(currency string) Settings {
	methods := make([]constant.PaymentMethod, len(constant.AllMethods))
	copy(methods, constant.AllMethods)
	phones := make(map[constant.PaymentMethod]string, len(constant.AllMethods))
	for _, m := range constant.AllMethods {
		phones[m] = ""
	}
	return Settings{
		EnabledMethods:  methods,
		InstructionText: DefaultInstructionText,
		AdminPhones:     phones,
		Currency:        currency,
		MinAmount:       decimal.Zero,
		MaxAmount:       decimal.Zero,
		AutoExpireHours: DefaultAutoExpireHours,
	}
}

// Normalize drops unknown or duplicate methods and clamps the expiry window.
func (s *Settings) Normalize() {
	seen := make(map[constant.PaymentMethod]bool, len(s.EnabledMethods))
	methods := make([]constant.PaymentMethod, 0, len(s.EnabledMethods))
	for _, m := range s.EnabledMethods {
		if !constant.IsValidMethod(string(m)) || seen[m] {
			continue
		}
		seen[m] = true
		methods = append(methods, m)
	}
	s.EnabledMethods = methods
	if s.AdminPhones == nil {
		s.AdminPhones = map[constant.PaymentMethod]string{}
	}
	s.AutoExpireHours = ClampExpireHours(s.AutoExpireHours)
}

func ClampExpireHours(h int) int {
	if h < MinAutoExpireHours {
		return MinAutoExpireHours
	}
	if h > MaxAutoExpireHours {
		return MaxAutoExpireHours
	}
	return h
}

func (s Settings) MethodEnabled(m string) bool {
	for _, e := range s.EnabledMethods {
		if string(e) == m {
			return true
		}
	}
	return false
}

// SaveSettingsReq is the admin settings payload.
type SaveSettingsReq struct {
	EnabledMethods    []string          `json:"enabledMethods" binding:"omitempty,dive,oneof=bkash nagad rocket upay"`
	InstructionText   string            `json:"instructionText" binding:"max=2000"`
	AdminPhones       map[string]string `json:"adminPhones"`
	Currency          string            `json:"currency" binding:"omitempty,len=3"`
	MinAmount         decimal.Decimal   `json:"minAmount"`
	MaxAmount         decimal.Decimal   `json:"maxAmount"`
	AutoExpireEnabled bool              `json:"autoExpireEnabled"`
	AutoExpireHours   int               `json:"autoExpireHours"`
}
