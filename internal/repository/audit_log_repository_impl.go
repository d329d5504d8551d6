package repository

import (
	"context"
	"sync"

	"mediconnect/internal/domain/entity"
	domainRepo "mediconnect/internal/domain/repository"
)

// auditLogRepository keeps the most recent entries in memory, dropping the
// oldest once capacity is reached.
type auditLogRepository struct {
	mu       sync.Mutex
	logs     []entity.AuditLog
	capacity int
	nextID   int64
}

func NewAuditLogRepository(capacity int) domainRepo.AuditLogRepository {
	if capacity <= 0 {
		capacity = 1000
	}
	return &auditLogRepository{capacity: capacity}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	log.ID = r.nextID
	r.logs = append(r.logs, *log)
	if overflow := len(r.logs) - r.capacity; overflow > 0 {
		r.logs = append([]entity.AuditLog(nil), r.logs[overflow:]...)
	}
	return nil
}

func (r *auditLogRepository) FindAll(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.logs) {
		limit = len(r.logs)
	}
	logs := make([]entity.AuditLog, 0, limit)
	for i := len(r.logs) - 1; i >= 0 && len(logs) < limit; i-- {
		logs = append(logs, r.logs[i])
	}
	return logs, nil
}
