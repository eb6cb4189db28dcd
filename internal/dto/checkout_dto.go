package dto

import "github.com/shopspring/decimal"

// CheckoutReq is the gateway form submission. Fields are validated by the
// checkout service, not by binding tags, so the first failing field can be
// reported in form order.
type CheckoutReq struct {
	OrderID       uint64 `json:"order_id" binding:"required,gt=0"`
	CartID        string `json:"cart_id"`
	PaymentMethod string `json:"rapid_pay_method"`
	SenderPhone   string `json:"rapid_pay_sender_phone"`
	TransactionID string `json:"rapid_pay_transaction_id"`
}

// CheckoutResp carries what the thank-you page shows.
type CheckoutResp struct {
	OrderID       uint64          `json:"orderId"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	MethodLabel   string          `json:"methodLabel"`
	SenderPhone   string          `json:"senderPhone"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Instructions  string          `json:"instructions"`
}

type PaymentMethodVo struct {
	Method     string `json:"method"`
	Label      string `json:"label"`
	AdminPhone string `json:"adminPhone"`
}

type PaymentFieldsResp struct {
	Methods         []PaymentMethodVo `json:"methods"`
	InstructionText string            `json:"instructionText"`
	Currency        string            `json:"currency"`
	MinAmount       decimal.Decimal   `json:"minAmount"`
	MaxAmount       decimal.Decimal   `json:"maxAmount"`
}
