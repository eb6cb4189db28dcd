package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rapid-pay-api/internal/dal/daltest"
	"rapid-pay-api/internal/dao"
	ordermodel "rapid-pay-api/internal/model/order"
)

type published struct {
	topic string
	msg   any
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (p *recordingPublisher) Publish(topic string, msg any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{topic: topic, msg: msg})
	return nil
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.msgs))
	for _, m := range p.msgs {
		out = append(out, m.topic)
	}
	return out
}

// failingUpsert wraps a record store and fails every Upsert.
type failingUpsert struct {
	RecordStore
}

func (f failingUpsert) Upsert(ctx context.Context, rec *ordermodel.OrderRecord) error {
	return errors.New("disk full")
}

type fixture struct {
	db        *gorm.DB
	orders    *dao.HostOrderDao
	records   *dao.OrderRecordDao
	pub       *recordingPublisher
	reconcile *ReconcileService
	analytics *AnalyticsService
	now       time.Time
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	db := daltest.OpenDB(t)
	f := &fixture{
		db:      db,
		orders:  dao.NewHostOrderDao(db),
		records: dao.NewOrderRecordDaoWithDB(db),
		pub:     &recordingPublisher{},
		now:     now,
	}
	f.reconcile = NewReconcileService(f.orders, f.records, f.pub)
	f.reconcile.now = f.clock
	f.analytics = NewAnalyticsService(dao.NewAnalyticsDao(db))
	f.analytics.now = f.clock
	return f
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) createOrder(t *testing.T, total, status string) uint64 {
	t.Helper()
	o := ordermodel.HostOrder{
		BillingFirstName: "Karim",
		BillingLastName:  "Ahmed",
		BillingPhone:     "01811111111",
		Total:            decimal.RequireFromString(total),
		Currency:         "BDT",
		Status:           status,
	}
	if err := f.db.Create(&o).Error; err != nil {
		t.Fatalf("create host order: %v", err)
	}
	return o.ID
}

// createGatewayOrder creates a host order that already carries gateway meta.
func (f *fixture) createGatewayOrder(t *testing.T, total, status, method string) uint64 {
	t.Helper()
	id := f.createOrder(t, total, status)
	err := f.orders.AttachMetadata(context.Background(), id, map[string]string{
		"_rapid_pay_method":         method,
		"_rapid_pay_sender_phone":   "01712345678",
		"_rapid_pay_transaction_id": "TRX12345",
	})
	if err != nil {
		t.Fatalf("attach meta: %v", err)
	}
	return id
}

// seedAt mirrors a gateway order whose record was first synced at created.
func (f *fixture) seedAt(t *testing.T, total, status, method string, created time.Time) uint64 {
	t.Helper()
	id := f.createGatewayOrder(t, total, status, method)
	prev := f.now
	f.now = created
	defer func() { f.now = prev }()
	if err := f.reconcile.SyncRecord(context.Background(), id); err != nil {
		t.Fatalf("sync seed %d: %v", id, err)
	}
	return id
}

func (f *fixture) recordCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&ordermodel.OrderRecord{}).Count(&n).Error; err != nil {
		t.Fatalf("count records: %v", err)
	}
	return n
}
