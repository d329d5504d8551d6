package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"mediconnect/internal/domain/entity"
	domainRepo "mediconnect/internal/domain/repository"
	"mediconnect/internal/infrastructure/storage"
	"mediconnect/internal/repository"
	"mediconnect/internal/seed"
	"mediconnect/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fixedNow is the clock of every fixture; the seeded appointment a1 is dated 2024-03-10.
var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store        domainRepo.BlobStore
	log          *logrus.Logger
	userRepo     domainRepo.UserRepository
	auditRepo    domainRepo.AuditLogRepository
	settingsRepo domainRepo.SettingsRepository
	session      SessionUsecase
	directory    DirectoryUsecase
	appointments AppointmentUsecase
	admin        AdminUsecase
}

func clock() time.Time { return fixedNow }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := storage.NewMemoryBlobStore()
	userRepo := repository.NewUserRepository(seed.Users())
	auditRepo := repository.NewAuditLogRepository(100)
	settingsRepo := repository.NewSettingsRepository(store, log)
	appointmentRepo := repository.NewAppointmentRepository(store, log, clock)
	audit := service.NewAuditService(log, auditRepo, clock)

	return &fixture{
		store:        store,
		log:          log,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		settingsRepo: settingsRepo,
		session:      NewSessionUsecase(log, repository.NewSessionRepository(store, log), audit, 0),
		directory:    NewDirectoryUsecase(log, userRepo, settingsRepo, audit, 0),
		appointments: NewAppointmentUsecase(log, appointmentRepo, userRepo, audit, 0, clock),
		admin:        NewAdminUsecase(log, userRepo, appointmentRepo, settingsRepo, audit, 0, clock),
	}
}

func (f *fixture) auditActions(t *testing.T) []string {
	t.Helper()
	logs, err := f.auditRepo.FindAll(context.Background(), 0)
	require.NoError(t, err)
	actions := make([]string, len(logs))
	for i := range logs {
		actions[i] = logs[i].Action
	}
	return actions
}

func mustUser(t *testing.T, f *fixture, id string) *entity.User {
	t.Helper()
	user, err := f.directory.Get(context.Background(), id)
	require.NoError(t, err)
	return user
}
