package repo

import (
	"context"

	"boardstore/internal/platform/store"
	"boardstore/internal/services/importer/domain"
)

// Events writes audit rows to the columnar store
type Events struct {
	ch store.Clickhouse
}

// NewEvents constructs the audit sink; a nil backend disables it
func NewEvents(ch store.Clickhouse) *Events { return &Events{ch: ch} }

// Record implements domain.EventsPort
func (e *Events) Record(ctx context.Context, ev domain.ImportEvent) error {
	if e == nil || e.ch == nil {
		return nil
	}
	return e.ch.Insert(ctx, "import_events",
		[]string{"ts", "correlation_id", "asin", "marketplace", "outcome", "error_code", "remote_ms", "total_ms"},
		[][]any{{ev.At, ev.CorrelationID, ev.ASIN, ev.Marketplace, ev.Outcome, ev.ErrorCode, ev.RemoteMs, ev.TotalMs}},
	)
}
