package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListOrderRecordsReq holds the admin list filters. Dates are YYYY-MM-DD and
// cover whole UTC days.
type ListOrderRecordsReq struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending on-hold completed refunded cancelled"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
}

// OrderRecordFilter is the resolved form of ListOrderRecordsReq.
type OrderRecordFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type OrderRecordVo struct {
	ID            uint64          `json:"id"`
	OrderID       uint64          `json:"orderId"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	SenderPhone   string          `json:"senderPhone"`
	TransactionID string          `json:"transactionId"`
	PaymentMethod string          `json:"paymentMethod"`
	MethodLabel   string          `json:"methodLabel"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type OrderRecordListResp struct {
	Items  []OrderRecordVo `json:"items"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type ChangeStatusReq struct {
	Status string `json:"status" binding:"required"`
}

type ChangeStatusResp struct {
	OrderID uint64 `json:"orderId"`
	Status  string `json:"status"`
}

// OrderUpdatedHook is the host platform's notification that an order changed.
type OrderUpdatedHook struct {
	OrderID uint64 `json:"order_id" binding:"required,gt=0"`
}
