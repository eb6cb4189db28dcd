package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/dto"
	ordermodel "rapid-pay-api/internal/model/order"
	"rapid-pay-api/internal/utils/timeutil"
)

// AnalyticsDao runs aggregate queries straight against the record table.
// A nil range means all time; bounds are inclusive.
type AnalyticsDao struct {
	DB *gorm.DB
}

func NewAnalyticsDao(db *gorm.DB) *AnalyticsDao {
	return &AnalyticsDao{DB: db}
}

func (r *AnalyticsDao) checkDB() error {
	if r == nil || r.DB == nil {
		return errors.New("AnalyticsDao DB is nil")
	}
	return nil
}

func (r *AnalyticsDao) scoped(ctx context.Context, rg *timeutil.Range) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&ordermodel.OrderRecord{})
	if rg != nil {
		q = q.Where("created_at >= ? AND created_at <= ?", rg.Start.UTC(), rg.End.UTC())
	}
	return q
}

// SumCompleted totals completed amounts inside rg.
func (r *AnalyticsDao) SumCompleted(ctx context.Context, rg *timeutil.Range) (decimal.Decimal, error) {
	if err := r.checkDB(); err != nil {
		return decimal.Zero, err
	}
	var out struct{ Total decimal.Decimal }
	err := r.scoped(ctx, rg).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", constant.StatusCompleted).
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum completed failed: %w", err)
	}
	return out.Total.Round(2), nil
}

// CountCreated counts records of any status inside rg.
func (r *AnalyticsDao) CountCreated(ctx context.Context, rg *timeutil.Range) (int64, error) {
	if err := r.checkDB(); err != nil {
		return 0, err
	}
	var n int64
	if err := r.scoped(ctx, rg).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count records failed: %w", err)
	}
	return n, nil
}

func (r *AnalyticsDao) SumCompletedByMethod(ctx context.Context) ([]dto.MethodTotalRow, error) {
	if err := r.checkDB(); err != nil {
		return nil, err
	}
	var rows []dto.MethodTotalRow
	err := r.scoped(ctx, nil).
		Select("payment_method, COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", constant.StatusCompleted).
		Group("payment_method").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sum by method failed: %w", err)
	}
	for i := range rows {
		rows[i].Total = rows[i].Total.Round(2)
	}
	return rows, nil
}

func (r *AnalyticsDao) CountByStatus(ctx context.Context) ([]dto.StatusCountRow, error) {
	if err := r.checkDB(); err != nil {
		return nil, err
	}
	var rows []dto.StatusCountRow
	err := r.scoped(ctx, nil).
		Select("status, COUNT(*) AS cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count by status failed: %w", err)
	}
	return rows, nil
}
