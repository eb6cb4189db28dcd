package job

import (
	"context"
	"log"
	"time"

	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/notify"
)

// Sweeper is one expiry pass against a settings snapshot.
type Sweeper interface {
	Sweep(ctx context.Context, st dto.Settings) (dto.SweepReport, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (dto.Settings, error)
}

type Alerter interface {
	SendAsync(content string)
}

// ExpiryJob runs the sweeper on a fixed interval until its context ends.
type ExpiryJob struct {
	sweeper  Sweeper
	settings SettingsLoader
	alerter  Alerter
	interval time.Duration
}

func NewExpiryJob(sweeper Sweeper, settings SettingsLoader, alerter Alerter, interval time.Duration) *ExpiryJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ExpiryJob{sweeper: sweeper, settings: settings, alerter: alerter, interval: interval}
}

// Run sweeps once on start, then on every tick until ctx is cancelled.
func (j *ExpiryJob) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	log.Printf("[ExpiryJob] started, interval=%s", j.interval)
	_, _ = j.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[ExpiryJob] stopped")
			return
		case <-ticker.C:
			_, _ = j.RunOnce(ctx)
		}
	}
}

// RunOnce loads fresh settings and performs one sweep.
func (j *ExpiryJob) RunOnce(ctx context.Context) (dto.SweepReport, error) {
	st, err := j.settings.Load(ctx)
	if err != nil {
		log.Printf("[ExpiryJob] load settings failed: %v", err)
		return dto.SweepReport{}, err
	}
	report, err := j.sweeper.Sweep(ctx, st)
	if err != nil {
		log.Printf("[ExpiryJob] sweep failed: %v", err)
		return report, err
	}
	if report.Skipped {
		return report, nil
	}
	log.Printf("[ExpiryJob] cutoff=%s candidates=%d cancelled=%d failed=%d",
		report.Cutoff.Format(time.RFC3339), report.Candidates, len(report.Cancelled), len(report.Failed))
	if len(report.Failed) > 0 && j.alerter != nil {
		j.alerter.SendAsync(notify.SweepFailureAlert(report))
	}
	return report, nil
}
