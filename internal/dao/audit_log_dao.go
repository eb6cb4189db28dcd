package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	ordermodel "rapid-pay-api/internal/model/order"
)

type AuditLogDao struct {
	DB *gorm.DB
}

func NewAuditLogDao(db *gorm.DB) *AuditLogDao {
	return &AuditLogDao{DB: db}
}

func (r *AuditLogDao) Insert(ctx context.Context, l *ordermodel.AuditLog) error {
	if err := r.DB.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("insert audit log failed: %w", err)
	}
	return nil
}

func (r *AuditLogDao) ListByOrder(ctx context.Context, orderID uint64) ([]ordermodel.AuditLog, error) {
	var out []ordermodel.AuditLog
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query audit log failed: %w", err)
	}
	return out, nil
}
