package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	mainmodel "rapid-pay-api/internal/model/main"
)

type SysConfigDao struct {
	DB *gorm.DB
}

func NewSysConfigDao(db *gorm.DB) *SysConfigDao {
	return &SysConfigDao{DB: db}
}

// GetByKey returns nil, nil when the key has never been saved.
func (r *SysConfigDao) GetByKey(ctx context.Context, key string) (*mainmodel.SysConfig, error) {
	if r == nil || r.DB == nil {
		return nil, errors.New("SysConfigDao DB is nil")
	}
	var m mainmodel.SysConfig
	err := r.DB.WithContext(ctx).Where("config_key = ?", key).Last(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query sys config %s failed: %w", key, err)
	}
	return &m, nil
}

// Save writes value under key, creating the row on first save.
func (r *SysConfigDao) Save(ctx context.Context, key, name, value, by string) error {
	if r == nil || r.DB == nil {
		return errors.New("SysConfigDao DB is nil")
	}
	row := mainmodel.SysConfig{
		ConfigName:  name,
		ConfigKey:   key,
		ConfigValue: value,
		ConfigType:  "Y",
		CreateBy:    by,
		UpdateBy:    by,
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_value", "update_by", "update_time"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save sys config %s failed: %w", key, err)
	}
	return nil
}
