package usecase

import (
	"context"
	"sync"
	"time"

	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"
	"mediconnect/internal/service"
	"mediconnect/pkg/latency"

	"github.com/sirupsen/logrus"
)

// SessionUsecase owns the single signed-in user of the process.
type SessionUsecase interface {
	Restore(ctx context.Context) *entity.User
	Login(ctx context.Context, user *entity.User) error
	Logout(ctx context.Context) error
	Current() *entity.User
}

type sessionUsecase struct {
	log          *logrus.Logger
	sessionRepo  repository.SessionRepository
	auditService service.AuditService
	delay        time.Duration

	mu      sync.RWMutex
	current *entity.User
}

func NewSessionUsecase(
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	auditService service.AuditService,
	delay time.Duration,
) SessionUsecase {
	return &sessionUsecase{
		log:          log,
		sessionRepo:  sessionRepo,
		auditService: auditService,
		delay:        delay,
	}
}

// Restore loads the persisted session. Any failure yields a signed-out state.
func (u *sessionUsecase) Restore(ctx context.Context) *entity.User {
	user, err := u.sessionRepo.Load(ctx)
	if err != nil {
		u.log.Warnf("Failed to restore session: %+v", err)
		user = nil
	}

	u.mu.Lock()
	u.current = user
	u.mu.Unlock()

	return cloneUser(user)
}

func (u *sessionUsecase) Login(ctx context.Context, user *entity.User) error {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return err
	}
	if user == nil || !user.Role.Valid() {
		return entity.ErrUnknownRole
	}

	stored := user.Clone()
	if err := u.sessionRepo.Save(ctx, &stored); err != nil {
		u.log.Warnf("Failed to persist session: %+v", err)
		return err
	}

	u.mu.Lock()
	u.current = &stored
	u.mu.Unlock()

	_ = u.auditService.LogCreate(ctx, stored.ID, entity.AuditActionUserLogin, "session", stored.ID, string(stored.Role))
	return nil
}

func (u *sessionUsecase) Logout(ctx context.Context) error {
	u.mu.Lock()
	previous := u.current
	u.current = nil
	u.mu.Unlock()

	if err := u.sessionRepo.Clear(ctx); err != nil {
		u.log.Warnf("Failed to clear session: %+v", err)
		return err
	}

	if previous != nil {
		_ = u.auditService.LogDelete(ctx, previous.ID, entity.AuditActionUserLogout, "session", previous.ID, string(previous.Role))
	}
	return nil
}

func (u *sessionUsecase) Current() *entity.User {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return cloneUser(u.current)
}

func cloneUser(user *entity.User) *entity.User {
	if user == nil {
		return nil
	}
	c := user.Clone()
	return &c
}
