package service

import (
	"context"
	"log"
	"time"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/dal"
	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/event"
	"rapid-pay-api/internal/idgen"
	ordermodel "rapid-pay-api/internal/model/order"
	"rapid-pay-api/internal/utils/timeutil"
)

const DashboardStatusNote = "Status updated from Rapid Pay dashboard."

// ReconcileService keeps the record table in step with host orders and is
// the only path through which this service changes an order's status.
type ReconcileService struct {
	orders  OrderSystem
	records RecordStore
	pub     event.Publisher
	now     func() time.Time
}

func NewReconcileService(orders OrderSystem, records RecordStore, pub event.Publisher) *ReconcileService {
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return &ReconcileService{orders: orders, records: records, pub: pub, now: timeutil.NowUTC}
}

// SyncRecord mirrors the host order into the record table. Orders that never
// went through the gateway and have no record yet are skipped with
// CodeOrderNotGateway.
func (s *ReconcileService) SyncRecord(ctx context.Context, orderID uint64) error {
	_, err := s.syncRecord(ctx, orderID)
	return err
}

func (s *ReconcileService) syncRecord(ctx context.Context, orderID uint64) (*ordermodel.OrderRecord, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, constant.Wrap(constant.CodeDatabaseError, err)
	}
	if o == nil {
		return nil, constant.NewError(constant.CodeOrderNotFound)
	}
	meta, err := s.orders.Meta(ctx, orderID)
	if err != nil {
		return nil, constant.Wrap(constant.CodeDatabaseError, err)
	}
	existing, err := s.records.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, constant.Wrap(constant.CodeDatabaseError, err)
	}
	if meta[constant.MetaMethod] == "" && existing == nil {
		return nil, constant.NewError(constant.CodeOrderNotGateway)
	}

	now := s.now()
	rec := &ordermodel.OrderRecord{
		OrderID:       orderID,
		CustomerName:  o.BillingName(),
		CustomerPhone: o.BillingPhone,
		SenderPhone:   meta[constant.MetaSenderPhone],
		TransactionID: meta[constant.MetaTransactionID],
		PaymentMethod: meta[constant.MetaMethod],
		Amount:        o.Total,
		Status:        o.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if existing != nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		if rec.PaymentMethod == "" {
			rec.PaymentMethod = existing.PaymentMethod
			rec.SenderPhone = existing.SenderPhone
			rec.TransactionID = existing.TransactionID
		}
	}
	if err := s.records.Upsert(ctx, rec); err != nil {
		return nil, constant.Wrap(constant.CodeDatabaseError, err)
	}
	return rec, nil
}

// ChangeStatus moves the host order to newStatus and re-syncs its record.
// There is no rollback: when the host transition succeeds and the record write
// fails, the storage error is returned and a resync is queued.
func (s *ReconcileService) ChangeStatus(ctx context.Context, orderID uint64, newStatus, note string) error {
	if !constant.IsValidStatus(newStatus) {
		return constant.NewFieldError(constant.CodeOrderStatusInvalid, "status")
	}
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return constant.Wrap(constant.CodeDatabaseError, err)
	}
	if o == nil {
		return constant.NewError(constant.CodeOrderNotFound)
	}
	oldStatus := o.Status

	if err := s.orders.UpdateStatus(ctx, orderID, newStatus, note); err != nil {
		return constant.Wrap(constant.CodeDatabaseError, err)
	}

	rec, err := s.syncOrQueue(ctx, orderID)
	if err != nil {
		if constant.IsCode(err, constant.CodeOrderNotGateway) {
			return nil
		}
		return err
	}

	event.PublishBestEffort(s.pub, dal.RoutingStatusChanged, dto.OrderStatusChangedEvent{
		EventID:       idgen.EventID(),
		OrderID:       orderID,
		OldStatus:     oldStatus,
		NewStatus:     rec.Status,
		Amount:        rec.Amount,
		PaymentMethod: rec.PaymentMethod,
		OccurredAt:    rec.UpdatedAt,
	})
	return nil
}

// syncOrQueue syncs and, on a storage failure, queues an asynchronous resync
// before returning the error.
func (s *ReconcileService) syncOrQueue(ctx context.Context, orderID uint64) (*ordermodel.OrderRecord, error) {
	rec, err := s.syncRecord(ctx, orderID)
	if err == nil {
		return rec, nil
	}
	if constant.IsCode(err, constant.CodeDatabaseError) {
		log.Printf("[Reconcile] record sync failed for order %d, queueing resync: %v", orderID, err)
		event.PublishBestEffort(s.pub, dal.RoutingRecordResync, dto.RecordResyncMessage{
			EventID:  idgen.EventID(),
			OrderID:  orderID,
			Reason:   err.Error(),
			QueuedAt: s.now(),
		})
	}
	return nil, err
}
