package dao

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rapid-pay-api/internal/dal"
	"rapid-pay-api/internal/dto"
	ordermodel "rapid-pay-api/internal/model/order"
)

// upsertColumns are rewritten when a record for the order already exists.
// created_at is deliberately absent.
var upsertColumns = []string{
	"customer_name",
	"customer_phone",
	"sender_phone",
	"transaction_id",
	"payment_method",
	"amount",
	"status",
	"updated_at",
}

type OrderRecordDao struct {
	DB *gorm.DB
}

// NewOrderRecordDao uses dal.MainDB.
func NewOrderRecordDao() *OrderRecordDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &OrderRecordDao{DB: dal.MainDB}
}

func NewOrderRecordDaoWithDB(db *gorm.DB) *OrderRecordDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &OrderRecordDao{DB: db}
}

func (r *OrderRecordDao) checkDB() error {
	if r == nil {
		return errors.New("OrderRecordDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// GetByOrderID returns nil, nil when the order has no record.
func (r *OrderRecordDao) GetByOrderID(ctx context.Context, orderID uint64) (*ordermodel.OrderRecord, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get record failed: %w", err)
	}

	var m ordermodel.OrderRecord
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query record failed: %w", err)
	}
	return &m, nil
}

// Upsert inserts rec or rewrites the existing row for rec.OrderID in one
// statement. Concurrent syncs of the same order resolve last-writer-wins.
func (r *OrderRecordDao) Upsert(ctx context.Context, rec *ordermodel.OrderRecord) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("upsert record failed: %w", err)
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("upsert record %d failed: %w", rec.OrderID, err)
	}
	return nil
}

// List applies the admin filters, newest first, and returns the unpaged total.
func (r *OrderRecordDao) List(ctx context.Context, f dto.OrderRecordFilter) ([]ordermodel.OrderRecord, int64, error) {
	if err := r.checkDB(); err != nil {
		return nil, 0, fmt.Errorf("list records failed: %w", err)
	}

	q := r.DB.WithContext(ctx).Model(&ordermodel.OrderRecord{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", f.To.UTC())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count records failed: %w", err)
	}

	var out []ordermodel.OrderRecord
	if err := q.Order("created_at DESC").Order("id DESC").Limit(f.Limit).Offset(f.Offset).Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("find records failed: %w", err)
	}
	return out, total, nil
}

// ListStaleOnHold returns on-hold records created strictly before cutoff.
func (r *OrderRecordDao) ListStaleOnHold(ctx context.Context, status string, cutoff time.Time) ([]ordermodel.OrderRecord, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list stale records failed: %w", err)
	}

	var out []ordermodel.OrderRecord
	err := r.DB.WithContext(ctx).
		Where("status = ?", status).
		Where("created_at < ?", cutoff.UTC()).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query stale records failed: %w", err)
	}
	return out, nil
}
