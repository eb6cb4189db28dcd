package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/dal"
	"rapid-pay-api/internal/dto"
	ordermodel "rapid-pay-api/internal/model/order"
)

var fixedNow = time.Date(2024, 1, 17, 10, 30, 0, 0, time.UTC)

func TestSyncRecordUnknownOrder(t *testing.T) {
	f := newFixture(t, fixedNow)
	err := f.reconcile.SyncRecord(context.Background(), 12345)
	if !constant.IsCode(err, constant.CodeOrderNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSyncRecordSkipsNonGatewayOrders(t *testing.T) {
	f := newFixture(t, fixedNow)
	id := f.createOrder(t, "300", constant.StatusPending)

	err := f.reconcile.SyncRecord(context.Background(), id)
	if !constant.IsCode(err, constant.CodeOrderNotGateway) {
		t.Fatalf("expected not-gateway, got %v", err)
	}
	if n := f.recordCount(t); n != 0 {
		t.Fatalf("expected no records, got %d", n)
	}
}

func TestSyncRecordInsertThenUpdateKeepsCreatedAt(t *testing.T) {
	f := newFixture(t, fixedNow)
	ctx := context.Background()
	id := f.createGatewayOrder(t, "500", constant.StatusOnHold, "bkash")

	if err := f.reconcile.SyncRecord(ctx, id); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	rec, _ := f.records.GetByOrderID(ctx, id)
	if rec == nil || !rec.CreatedAt.Equal(fixedNow) || !rec.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected first record: %+v", rec)
	}
	if rec.CustomerName != "Karim Ahmed" || rec.SenderPhone != "01712345678" || rec.PaymentMethod != "bkash" {
		t.Fatalf("denormalized fields wrong: %+v", rec)
	}

	f.now = fixedNow.Add(2 * time.Hour)
	f.db.Model(&ordermodel.HostOrder{}).Where("id = ?", id).Updates(map[string]interface{}{"total": "750", "status": constant.StatusCompleted})
	if err := f.reconcile.SyncRecord(ctx, id); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	rec, _ = f.records.GetByOrderID(ctx, id)
	if !rec.CreatedAt.Equal(fixedNow) {
		t.Fatalf("created_at changed to %v", rec.CreatedAt)
	}
	if !rec.UpdatedAt.Equal(f.now) || rec.Status != constant.StatusCompleted || !rec.Amount.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("record not refreshed: %+v", rec)
	}
	if n := f.recordCount(t); n != 1 {
		t.Fatalf("expected one record, got %d", n)
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t, fixedNow)
	id := f.seedAt(t, "100", constant.StatusOnHold, "nagad", fixedNow)

	err := f.reconcile.ChangeStatus(context.Background(), id, "shipped", DashboardStatusNote)
	if !constant.IsCode(err, constant.CodeOrderStatusInvalid) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	o, _ := f.orders.Get(context.Background(), id)
	if o.Status != constant.StatusOnHold {
		t.Fatalf("host order changed to %s", o.Status)
	}
}

func TestChangeStatusUnknownOrderLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t, fixedNow)
	f.seedAt(t, "100", constant.StatusOnHold, "nagad", fixedNow)

	err := f.reconcile.ChangeStatus(context.Background(), 9999, constant.StatusCancelled, DashboardStatusNote)
	if !constant.IsCode(err, constant.CodeOrderNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if n := f.recordCount(t); n != 1 {
		t.Fatalf("store changed: %d records", n)
	}
	if len(f.pub.topics()) != 0 {
		t.Fatalf("no events expected, got %v", f.pub.topics())
	}
}

func TestChangeStatusSyncsAndPublishes(t *testing.T) {
	f := newFixture(t, fixedNow)
	ctx := context.Background()
	id := f.seedAt(t, "100", constant.StatusOnHold, "rocket", fixedNow.Add(-time.Hour))

	if err := f.reconcile.ChangeStatus(ctx, id, constant.StatusCompleted, DashboardStatusNote); err != nil {
		t.Fatalf("change status: %v", err)
	}
	rec, _ := f.records.GetByOrderID(ctx, id)
	if rec.Status != constant.StatusCompleted {
		t.Fatalf("record status %s", rec.Status)
	}
	notes, _ := f.orders.Notes(ctx, id)
	if len(notes) == 0 || notes[len(notes)-1].Note != DashboardStatusNote {
		t.Fatalf("expected dashboard note, got %+v", notes)
	}

	if len(f.pub.msgs) != 1 || f.pub.msgs[0].topic != dal.RoutingStatusChanged {
		t.Fatalf("expected one status event, got %v", f.pub.topics())
	}
	evt := f.pub.msgs[0].msg.(dto.OrderStatusChangedEvent)
	if evt.OldStatus != constant.StatusOnHold || evt.NewStatus != constant.StatusCompleted || evt.EventID == "" {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestChangeStatusStorageFailureQueuesResync(t *testing.T) {
	f := newFixture(t, fixedNow)
	ctx := context.Background()
	id := f.seedAt(t, "100", constant.StatusOnHold, "upay", fixedNow)

	broken := NewReconcileService(f.orders, failingUpsert{f.records}, f.pub)
	broken.now = f.clock
	err := broken.ChangeStatus(ctx, id, constant.StatusCancelled, DashboardStatusNote)
	if !constant.IsCode(err, constant.CodeDatabaseError) {
		t.Fatalf("expected storage failure, got %v", err)
	}

	o, _ := f.orders.Get(ctx, id)
	if o.Status != constant.StatusCancelled {
		t.Fatalf("host transition should stand, got %s", o.Status)
	}
	rec, _ := f.records.GetByOrderID(ctx, id)
	if rec.Status != constant.StatusOnHold {
		t.Fatalf("record should still be stale, got %s", rec.Status)
	}
	topics := f.pub.topics()
	if len(topics) != 1 || topics[0] != dal.RoutingRecordResync {
		t.Fatalf("expected a resync message, got %v", topics)
	}

	// the resync consumer heals the divergence with a working store
	if err := f.reconcile.SyncRecord(ctx, f.pub.msgs[0].msg.(dto.RecordResyncMessage).OrderID); err != nil {
		t.Fatalf("resync: %v", err)
	}
	rec, _ = f.records.GetByOrderID(ctx, id)
	if rec.Status != constant.StatusCancelled {
		t.Fatalf("record not healed: %s", rec.Status)
	}
}
