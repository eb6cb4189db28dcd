package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/utils/timeutil"
)

const (
	DashboardSeriesDays = 30
	maxSeriesDays       = 366
)

// AnalyticsStore runs the aggregate queries. A nil range means all time.
type AnalyticsStore interface {
	SumCompleted(ctx context.Context, rg *timeutil.Range) (decimal.Decimal, error)
	CountCreated(ctx context.Context, rg *timeutil.Range) (int64, error)
	SumCompletedByMethod(ctx context.Context) ([]dto.MethodTotalRow, error)
	CountByStatus(ctx context.Context) ([]dto.StatusCountRow, error)
}

// AnalyticsService buckets the record table by UTC calendar windows.
type AnalyticsService struct {
	store AnalyticsStore
	now   func() time.Time
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store, now: timeutil.NowUTC}
}

func (s *AnalyticsService) sum(ctx context.Context, rg timeutil.Range) (decimal.Decimal, error) {
	v, err := s.store.SumCompleted(ctx, &rg)
	if err != nil {
		return decimal.Zero, constant.Wrap(constant.CodeDatabaseError, err)
	}
	return v, nil
}

func (s *AnalyticsService) WindowTotals(ctx context.Context) (dto.WindowTotals, error) {
	var out dto.WindowTotals
	now := s.now()
	var err error

	if out.Today, err = s.sum(ctx, timeutil.DayRange(now)); err != nil {
		return out, err
	}
	if out.Week, err = s.sum(ctx, timeutil.WeekRange(now)); err != nil {
		return out, err
	}
	if out.Month, err = s.sum(ctx, timeutil.MonthRange(now)); err != nil {
		return out, err
	}
	all, err := s.store.SumCompleted(ctx, nil)
	if err != nil {
		return out, constant.Wrap(constant.CodeDatabaseError, err)
	}
	out.AllTime = all
	return out, nil
}

// DailySeries returns days points ending today, oldest first. Each point uses
// the same day window as WindowTotals.Today.
func (s *AnalyticsService) DailySeries(ctx context.Context, days int) ([]dto.SeriesPoint, error) {
	if days < 1 || days > maxSeriesDays {
		return nil, constant.NewFieldError(constant.CodeParamsRangeError, "days")
	}
	today := timeutil.DayStart(s.now())
	out := make([]dto.SeriesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		total, err := s.sum(ctx, timeutil.DayRange(day))
		if err != nil {
			return nil, err
		}
		out = append(out, dto.SeriesPoint{
			Label: timeutil.ChartLabel(day),
			Date:  timeutil.FormatDate(day),
			Total: total,
		})
	}
	return out, nil
}

// CustomRangeTotals covers whole days from..to inclusive. Earnings count
// completed records only; Orders counts every status.
func (s *AnalyticsService) CustomRangeTotals(ctx context.Context, from, to string) (dto.RangeTotals, error) {
	out := dto.RangeTotals{DateFrom: from, DateTo: to}
	start, err := timeutil.ParseDate(from)
	if err != nil {
		return out, constant.NewFieldError(constant.CodeParamsFormatError, "date_from")
	}
	end, err := timeutil.ParseDate(to)
	if err != nil {
		return out, constant.NewFieldError(constant.CodeParamsFormatError, "date_to")
	}
	if end.Before(start) {
		return out, constant.NewFieldError(constant.CodeParamsRangeError, "date_to")
	}

	rg := timeutil.DateSpan(start, end)
	if out.Earnings, err = s.sum(ctx, rg); err != nil {
		return out, err
	}
	if out.Orders, err = s.store.CountCreated(ctx, &rg); err != nil {
		return out, constant.Wrap(constant.CodeDatabaseError, err)
	}
	return out, nil
}

// MethodTotals reports every known method, zero when it has no sales.
func (s *AnalyticsService) MethodTotals(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := s.store.SumCompletedByMethod(ctx)
	if err != nil {
		return nil, constant.Wrap(constant.CodeDatabaseError, err)
	}
	out := make(map[string]decimal.Decimal, len(constant.AllMethods))
	for _, m := range constant.AllMethods {
		out[string(m)] = decimal.Zero
	}
	for _, r := range rows {
		if _, ok := out[r.PaymentMethod]; ok {
			out[r.PaymentMethod] = r.Total
		}
	}
	return out, nil
}

// StatusCounts folds on-hold into pending.
func (s *AnalyticsService) StatusCounts(ctx context.Context) (dto.StatusCounts, error) {
	var out dto.StatusCounts
	rows, err := s.store.CountByStatus(ctx)
	if err != nil {
		return out, constant.Wrap(constant.CodeDatabaseError, err)
	}
	for _, r := range rows {
		out.Total += r.Cnt
		switch r.Status {
		case constant.StatusCompleted:
			out.Completed += r.Cnt
		case constant.StatusPending, constant.StatusOnHold:
			out.Pending += r.Cnt
		case constant.StatusCancelled:
			out.Cancelled += r.Cnt
		case constant.StatusRefunded:
			out.Refunded += r.Cnt
		}
	}
	return out, nil
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (dto.Dashboard, error) {
	var out dto.Dashboard
	var err error
	if out.Totals, err = s.WindowTotals(ctx); err != nil {
		return out, err
	}
	if out.Series, err = s.DailySeries(ctx, DashboardSeriesDays); err != nil {
		return out, err
	}
	if out.MethodTotals, err = s.MethodTotals(ctx); err != nil {
		return out, err
	}
	if out.StatusCounts, err = s.StatusCounts(ctx); err != nil {
		return out, err
	}
	return out, nil
}
