package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/utils/timeutil"
)

type StatusChanger interface {
	ChangeStatus(ctx context.Context, orderID uint64, newStatus, note string) error
}

// ExpirySweeper cancels on-hold records older than the configured window.
type ExpirySweeper struct {
	records RecordStore
	changer StatusChanger
	now     func() time.Time
}

func NewExpirySweeper(records RecordStore, changer StatusChanger) *ExpirySweeper {
	return &ExpirySweeper{records: records, changer: changer, now: timeutil.NowUTC}
}

// Sweep runs one pass against st. One order failing does not stop the rest;
// the report lists what was cancelled and what failed. Re-running is safe
// since cancelled records no longer match.
func (s *ExpirySweeper) Sweep(ctx context.Context, st dto.Settings) (dto.SweepReport, error) {
	report := dto.SweepReport{Cancelled: []uint64{}, Failed: []uint64{}}
	if !st.AutoExpireEnabled {
		report.Skipped = true
		return report, nil
	}

	hours := dto.ClampExpireHours(st.AutoExpireHours)
	report.Cutoff = s.now().Add(-time.Duration(hours) * time.Hour)

	stale, err := s.records.ListStaleOnHold(ctx, constant.StatusOnHold, report.Cutoff)
	if err != nil {
		return report, constant.Wrap(constant.CodeDatabaseError, err)
	}
	report.Candidates = len(stale)

	note := fmt.Sprintf("Order auto-expired after %d hours awaiting payment verification.", hours)
	for _, rec := range stale {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		if err := s.changer.ChangeStatus(ctx, rec.OrderID, constant.StatusCancelled, note); err != nil {
			log.Printf("[Sweeper] cancel order %d failed: %v", rec.OrderID, err)
			report.Failed = append(report.Failed, rec.OrderID)
			continue
		}
		report.Cancelled = append(report.Cancelled, rec.OrderID)
	}
	if report.Candidates > 0 {
		log.Printf("[Sweeper] cutoff=%s candidates=%d cancelled=%d failed=%d",
			timeutil.FormatISO8601(report.Cutoff), report.Candidates, len(report.Cancelled), len(report.Failed))
	}
	return report, nil
}
