package ports

import (
	"context"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

// AuditRecorder accepts dashboard-action audit entries for asynchronous
// persistence. Record never blocks the request path: when the writer cannot
// keep up, entries are dropped rather than stalling the caller.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists and reads dashboard audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, limit int64) ([]domain.AuditEntry, error)
}
