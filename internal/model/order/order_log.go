package ordermodel

import "time"

// AuditLog records admin mutations and denied admin requests.
type AuditLog struct {
	ID        uint64    `gorm:"primaryKey"`
	TraceID   string    `gorm:"column:trace_id;type:varchar(64)"`
	Actor     string    `gorm:"column:actor;type:varchar(32)"`
	Action    string    `gorm:"column:action;type:varchar(64)"`
	Path      string    `gorm:"column:path;type:varchar(255)"`
	OrderID   uint64    `gorm:"column:order_id"`
	Status    string    `gorm:"column:status;type:varchar(20)"`
	ErrorMsg  string    `gorm:"column:error_msg;type:varchar(500)"`
	IP        string    `gorm:"column:ip;type:varchar(64)"`
	UserAgent string    `gorm:"column:user_agent;type:varchar(255)"`
	LatencyMs int64     `gorm:"column:latency_ms"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (AuditLog) TableName() string { return "rapid_pay_audit_log" }
