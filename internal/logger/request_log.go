package logger

import (
	"context"
	"log"
	"time"

	ordermodel "rapid-pay-api/internal/model/order"
)

// AuditStore persists audit rows.
type AuditStore interface {
	Insert(ctx context.Context, l *ordermodel.AuditLog) error
}

// AuditWriter writes audit rows off the request path. Failures are logged and
// never reach the caller.
type AuditWriter struct {
	store AuditStore
	sync  bool
}

func NewAuditWriter(store AuditStore) *AuditWriter {
	return &AuditWriter{store: store}
}

// NewSyncAuditWriter writes inline; tests use it to observe rows immediately.
func NewSyncAuditWriter(store AuditStore) *AuditWriter {
	return &AuditWriter{store: store, sync: true}
}

func (w *AuditWriter) Write(entry ordermodel.AuditLog) {
	if w == nil || w.store == nil {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	if w.sync {
		w.insert(entry)
		return
	}
	go w.insert(entry)
}

func (w *AuditWriter) insert(entry ordermodel.AuditLog) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[AuditLogger] goroutine panic: trace_id=%s, err=%v", entry.TraceID, r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := w.store.Insert(ctx, &entry); err != nil {
		log.Printf("[AuditLogger] write failed: trace_id=%s, action=%s, err=%v", entry.TraceID, entry.Action, err)
	}
}
