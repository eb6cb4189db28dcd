package ordermodel

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HostOrder is the commerce platform's order row; the only source of truth
// for status and totals.
type HostOrder struct {
	ID               uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BillingFirstName string          `gorm:"column:billing_first_name;type:varchar(100)" json:"billingFirstName"`
	BillingLastName  string          `gorm:"column:billing_last_name;type:varchar(100)" json:"billingLastName"`
	BillingPhone     string          `gorm:"column:billing_phone;type:varchar(20)" json:"billingPhone"`
	Total            decimal.Decimal `gorm:"column:total;type:decimal(10,2);not null" json:"total"`
	Currency         string          `gorm:"column:currency;type:char(3)" json:"currency"`
	Status           string          `gorm:"column:status;type:varchar(20);not null" json:"status"`
	CreatedAt        time.Time       `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"column:updated_at" json:"updatedAt"`
}

func (HostOrder) TableName() string { return "host_orders" }

// BillingName joins first and last billing names.
func (o *HostOrder) BillingName() string {
	return strings.TrimSpace(o.BillingFirstName + " " + o.BillingLastName)
}

type HostOrderMeta struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   uint64 `gorm:"column:order_id;not null;uniqueIndex:uk_order_meta_key"`
	MetaKey   string `gorm:"column:meta_key;type:varchar(100);not null;uniqueIndex:uk_order_meta_key"`
	MetaValue string `gorm:"column:meta_value;type:text"`
}

func (HostOrderMeta) TableName() string { return "host_order_meta" }

type HostOrderNote struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   uint64    `gorm:"column:order_id;not null;index"`
	Note      string    `gorm:"column:note;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (HostOrderNote) TableName() string { return "host_order_notes" }

type HostOrderItem struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID uint64 `gorm:"column:order_id;not null;index"`
	SKU     string `gorm:"column:sku;type:varchar(64);not null"`
	Qty     int64  `gorm:"column:qty;not null"`
}

func (HostOrderItem) TableName() string { return "host_order_items" }
