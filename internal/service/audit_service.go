package service

import (
	"context"
	"time"

	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AuditService interface {
	LogCreate(ctx context.Context, userID string, action string, entityName string, entityID string, newValue any) error
	LogUpdate(ctx context.Context, userID string, action string, entityName string, entityID string, oldValue, newValue any) error
	LogDelete(ctx context.Context, userID string, action string, entityName string, entityID string, oldValue any) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
	now       func() time.Time
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository, now func() time.Time) AuditService {
	if now == nil {
		now = time.Now
	}
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
		now:       now,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, userID string, action string, entityName string, entityID string, newValue any) error {
	return s.write(ctx, userID, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, userID string, action string, entityName string, entityID string, oldValue, newValue any) error {
	return s.write(ctx, userID, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, userID string, action string, entityName string, entityID string, oldValue any) error {
	return s.write(ctx, userID, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) write(ctx context.Context, userID string, action string, entityName string, entityID string, oldValue, newValue any) error {
	auditLog := &entity.AuditLog{
		UserID: userID,
		Action: action,
		Metadata: map[string]any{
			"entity":    entityName,
			"entity_id": entityID,
			"old_value": oldValue,
			"new_value": newValue,
		},
		CreatedAt: s.now(),
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
