package usecase

import (
	"context"
	"time"

	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"
	"mediconnect/internal/service"
	"mediconnect/pkg/latency"

	"github.com/sirupsen/logrus"
)

type AdminUsecase interface {
	Stats(ctx context.Context) (*dto.AdminStatsResponse, error)
	GetSettings(ctx context.Context) (entity.Settings, error)
	UpdateSettings(ctx context.Context, actorID string, settings entity.Settings) (entity.Settings, error)
}

type adminUsecase struct {
	log             *logrus.Logger
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	settingsRepo    repository.SettingsRepository
	auditService    service.AuditService
	delay           time.Duration
	now             func() time.Time
}

func NewAdminUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	settingsRepo repository.SettingsRepository,
	auditService service.AuditService,
	delay time.Duration,
	now func() time.Time,
) AdminUsecase {
	if now == nil {
		now = time.Now
	}
	return &adminUsecase{
		log:             log,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		auditService:    auditService,
		delay:           delay,
		now:             now,
	}
}

func (u *adminUsecase) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return nil, err
	}

	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	stats := &dto.AdminStatsResponse{
		TotalUsers:           len(users),
		UsersByRole:          make(map[string]int, len(entity.Roles)),
		TotalAppointments:    len(appointments),
		AppointmentsByStatus: make(map[string]int, len(entity.AppointmentStatuses)),
	}
	for _, role := range entity.Roles {
		stats.UsersByRole[string(role)] = 0
	}
	for _, status := range entity.AppointmentStatuses {
		stats.AppointmentsByStatus[string(status)] = 0
	}

	for i := range users {
		stats.UsersByRole[string(users[i].Role)]++
	}
	now := u.now()
	for i := range appointments {
		stats.AppointmentsByStatus[string(appointments[i].Status)]++
		if appointments[i].IsUpcoming(now) {
			stats.UpcomingAppointments++
		}
	}
	return stats, nil
}

func (u *adminUsecase) GetSettings(ctx context.Context) (entity.Settings, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return entity.Settings{}, err
	}
	return u.settingsRepo.Get(ctx)
}

func (u *adminUsecase) UpdateSettings(ctx context.Context, actorID string, settings entity.Settings) (entity.Settings, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return entity.Settings{}, err
	}

	previous, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return entity.Settings{}, err
	}
	if err := u.settingsRepo.Save(ctx, settings); err != nil {
		u.log.Warnf("Failed to save settings: %+v", err)
		return entity.Settings{}, err
	}

	_ = u.auditService.LogUpdate(ctx, actorID, entity.AuditActionSettingsUpdate, "settings", "system", previous, settings)
	return settings, nil
}
