package ordermodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is the reporting mirror of a host order paid through the gateway.
// It is rewritten on every sync and never owns order state.
type OrderRecord struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID       uint64          `gorm:"column:order_id;not null;uniqueIndex:uk_order_id" json:"orderId"`
	CustomerName  string          `gorm:"column:customer_name;type:varchar(255);not null" json:"customerName"`
	CustomerPhone string          `gorm:"column:customer_phone;type:varchar(20);not null" json:"customerPhone"`
	SenderPhone   string          `gorm:"column:sender_phone;type:varchar(20);not null" json:"senderPhone"`
	TransactionID string          `gorm:"column:transaction_id;type:varchar(100);not null" json:"transactionId"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(50);not null" json:"paymentMethod"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	Status        string          `gorm:"column:status;type:varchar(20);not null;index:idx_status" json:"status"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null;index:idx_created_at;autoCreateTime:false" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updatedAt"`
}

func (OrderRecord) TableName() string { return "rapid_pay_orders" }
