package domain

import "context"

// ServicePort is the interface implemented by the importer service
type ServicePort interface {
	Import(ctx context.Context, in ImportInput) (ImportResult, error)
}

// EventsPort records audit events; implementations are best-effort and
// must never fail an import
type EventsPort interface {
	Record(ctx context.Context, ev ImportEvent) error
}
