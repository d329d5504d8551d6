package repository

import (
	"context"

	"mediconnect/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// FindAll returns entries newest first.
	FindAll(ctx context.Context, limit int) ([]entity.AuditLog, error)
}
