package service

import (
	"context"
	"time"

	"rapid-pay-api/internal/dto"
	ordermodel "rapid-pay-api/internal/model/order"
)

// OrderSystem is the host platform's authoritative order store.
// Get returns nil, nil for an unknown order.
type OrderSystem interface {
	Get(ctx context.Context, orderID uint64) (*ordermodel.HostOrder, error)
	Meta(ctx context.Context, orderID uint64) (map[string]string, error)
	UpdateStatus(ctx context.Context, orderID uint64, status, note string) error
	AttachMetadata(ctx context.Context, orderID uint64, kv map[string]string) error
	AddNote(ctx context.Context, orderID uint64, note string) error
}

// CartSystem is the host's cart and inventory.
type CartSystem interface {
	EmptyCart(ctx context.Context, cartID string) error
	ReduceStock(ctx context.Context, orderID uint64) error
}

// Authorizer answers capability checks for admin callers.
type Authorizer interface {
	Can(token, capability string) bool
}

// RecordStore is the reporting table.
type RecordStore interface {
	GetByOrderID(ctx context.Context, orderID uint64) (*ordermodel.OrderRecord, error)
	Upsert(ctx context.Context, rec *ordermodel.OrderRecord) error
	List(ctx context.Context, f dto.OrderRecordFilter) ([]ordermodel.OrderRecord, int64, error)
	ListStaleOnHold(ctx context.Context, status string, cutoff time.Time) ([]ordermodel.OrderRecord, error)
}

// SettingsLoader returns a fresh settings snapshot.
type SettingsLoader interface {
	Load(ctx context.Context) (dto.Settings, error)
}

// Notifier delivers merchant alerts; delivery is best-effort.
type Notifier interface {
	SendAsync(content string)
}
