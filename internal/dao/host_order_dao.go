package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ordermodel "rapid-pay-api/internal/model/order"
)

// HostOrderDao reads and writes the host platform's order tables. It is the
// shipped OrderSystem adapter.
type HostOrderDao struct {
	DB *gorm.DB
}

func NewHostOrderDao(db *gorm.DB) *HostOrderDao {
	return &HostOrderDao{DB: db}
}

func (r *HostOrderDao) checkDB() error {
	if r == nil {
		return errors.New("HostOrderDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// Get returns nil, nil for an unknown order.
func (r *HostOrderDao) Get(ctx context.Context, orderID uint64) (*ordermodel.HostOrder, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get host order failed: %w", err)
	}
	var m ordermodel.HostOrder
	err := r.DB.WithContext(ctx).Where("id = ?", orderID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query host order failed: %w", err)
	}
	return &m, nil
}

func (r *HostOrderDao) Meta(ctx context.Context, orderID uint64) (map[string]string, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get order meta failed: %w", err)
	}
	var rows []ordermodel.HostOrderMeta
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query order meta failed: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, m := range rows {
		out[m.MetaKey] = m.MetaValue
	}
	return out, nil
}

// AttachMetadata sets each key, replacing earlier values.
func (r *HostOrderDao) AttachMetadata(ctx context.Context, orderID uint64, kv map[string]string) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("attach meta failed: %w", err)
	}
	if len(kv) == 0 {
		return nil
	}
	rows := make([]ordermodel.HostOrderMeta, 0, len(kv))
	for k, v := range kv {
		rows = append(rows, ordermodel.HostOrderMeta{OrderID: orderID, MetaKey: k, MetaValue: v})
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "meta_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"meta_value"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert order meta failed: %w", err)
	}
	return nil
}

// UpdateStatus moves the order to status and records note, atomically.
func (r *HostOrderDao) UpdateStatus(ctx context.Context, orderID uint64, status, note string) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update host status failed: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&ordermodel.HostOrder{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{"status": status, "updated_at": now})
		if res.Error != nil {
			return fmt.Errorf("update host status failed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&ordermodel.HostOrder{}).Where("id = ?", orderID).Count(&n).Error; err != nil {
				return fmt.Errorf("update host status failed: %w", err)
			}
			if n == 0 {
				return fmt.Errorf("update host status: order %d: %w", orderID, gorm.ErrRecordNotFound)
			}
		}
		if note == "" {
			return nil
		}
		if err := tx.Create(&ordermodel.HostOrderNote{OrderID: orderID, Note: note, CreatedAt: now}).Error; err != nil {
			return fmt.Errorf("add status note failed: %w", err)
		}
		return nil
	})
}

func (r *HostOrderDao) AddNote(ctx context.Context, orderID uint64, note string) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("add note failed: %w", err)
	}
	n := ordermodel.HostOrderNote{OrderID: orderID, Note: note, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	if err := r.DB.WithContext(ctx).Create(&n).Error; err != nil {
		return fmt.Errorf("add note failed: %w", err)
	}
	return nil
}

func (r *HostOrderDao) Notes(ctx context.Context, orderID uint64) ([]ordermodel.HostOrderNote, error) {
	if err := r.checkDB(); err != nil {
		return nil, err
	}
	var out []ordermodel.HostOrderNote
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query notes failed: %w", err)
	}
	return out, nil
}

func (r *HostOrderDao) Items(ctx context.Context, orderID uint64) ([]ordermodel.HostOrderItem, error) {
	if err := r.checkDB(); err != nil {
		return nil, err
	}
	var out []ordermodel.HostOrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query items failed: %w", err)
	}
	return out, nil
}
