package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"
	"mediconnect/internal/seed"
	"mediconnect/internal/service"
	"mediconnect/pkg/latency"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already registered for this role")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrRegistrationDisabled = errors.New("registration is currently disabled")
	ErrUserNotFound         = errors.New("user not found")
)

// registerIDAttempts bounds retries when a generated id collides.
const registerIDAttempts = 3

type DirectoryUsecase interface {
	FindByEmailAndRole(ctx context.Context, email string, role entity.Role) (*entity.User, error)
	Login(ctx context.Context, email string, role entity.Role) (*entity.User, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Search(ctx context.Context, filter entity.UserFilter) ([]entity.User, error)
	ListDoctors(ctx context.Context, filter entity.DoctorFilter) ([]entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	Remove(ctx context.Context, actorID, id string) error
	Update(ctx context.Context, actorID string, user *entity.User) (*entity.User, error)
}

type directoryUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	auditService service.AuditService
	delay        time.Duration
}

func NewDirectoryUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	auditService service.AuditService,
	delay time.Duration,
) DirectoryUsecase {
	return &directoryUsecase{
		log:          log,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		auditService: auditService,
		delay:        delay,
	}
}

func (u *directoryUsecase) FindByEmailAndRole(ctx context.Context, email string, role entity.Role) (*entity.User, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return nil, err
	}
	return u.userRepo.FindByEmailAndRole(ctx, email, role)
}

// Login resolves the roster entry for email and role. When nobody matches, the
// role's demo account is returned instead.
func (u *directoryUsecase) Login(ctx context.Context, email string, role entity.Role) (*entity.User, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		u.log.Warnf("Failed to find user by email and role: %+v", err)
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	fallback, err := seed.FallbackUser(role)
	if err != nil {
		return nil, err
	}
	u.log.WithField("role", role).Debug("No roster match, using demo account")
	return &fallback, nil
}

func (u *directoryUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*entity.User, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return nil, err
	}

	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		u.log.Warnf("Failed to load settings: %+v", err)
		return nil, err
	}
	if !settings.AllowRegistration {
		return nil, ErrRegistrationDisabled
	}

	existing, err := u.userRepo.FindByEmailAndRole(ctx, req.Email, role)
	if err != nil {
		u.log.Warnf("Failed to check email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	user := &entity.User{
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		AvatarURL: "https://ui-avatars.com/api/?name=" + url.QueryEscape(req.Name) + "&background=random",
	}
	if role == entity.RoleDoctor {
		user.DoctorProfile = &entity.DoctorProfile{AvailableSlots: []string{}}
	}

	for attempt := 1; ; attempt++ {
		user.ID = newUserID()
		err = u.userRepo.Create(ctx, user)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateUserID) || attempt == registerIDAttempts {
			u.log.Warnf("Failed to create user: %+v", err)
			return nil, err
		}
	}

	_ = u.auditService.LogCreate(ctx, user.ID, entity.AuditActionUserRegister, "user", user.ID, user)
	return user, nil
}

func newUserID() string {
	return "u_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

func (u *directoryUsecase) List(ctx context.Context) ([]entity.User, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return nil, err
	}
	return u.userRepo.FindAll(ctx)
}

// Search matches the query against name and email, case-insensitively.
func (u *directoryUsecase) Search(ctx context.Context, filter entity.UserFilter) ([]entity.User, error) {
	users, err := u.List(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matched := make([]entity.User, 0, len(users))
	for _, user := range users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(user.Name), query) &&
			!strings.Contains(strings.ToLower(user.Email), query) {
			continue
		}
		matched = append(matched, user)
	}
	return matched, nil
}

func (u *directoryUsecase) ListDoctors(ctx context.Context, filter entity.DoctorFilter) ([]entity.User, error) {
	users, err := u.List(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	location := strings.ToLower(strings.TrimSpace(filter.Location))
	doctors := make([]entity.User, 0)
	for _, user := range users {
		if !user.IsDoctor() {
			continue
		}
		profile := user.DoctorProfile
		if profile == nil {
			profile = &entity.DoctorProfile{}
		}
		if filter.Specialization != "" && !strings.EqualFold(profile.Specialization, filter.Specialization) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(profile.Location), location) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(user.Name), query) &&
			!strings.Contains(strings.ToLower(profile.Specialization), query) {
			continue
		}
		doctors = append(doctors, user)
	}
	return doctors, nil
}

func (u *directoryUsecase) Get(ctx context.Context, id string) (*entity.User, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Remove is a no-op when id is unknown.
func (u *directoryUsecase) Remove(ctx context.Context, actorID, id string) error {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return err
	}

	existing, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := u.userRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}
	if removed {
		_ = u.auditService.LogDelete(ctx, actorID, entity.AuditActionUserDelete, "user", id, existing)
	}
	return nil
}

// Update merges the non-zero fields of user into the entry with the same id.
// An unknown id returns user unchanged and inserts nothing.
func (u *directoryUsecase) Update(ctx context.Context, actorID string, user *entity.User) (*entity.User, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return nil, err
	}
	if user.Role != "" && !user.Role.Valid() {
		return nil, entity.ErrUnknownRole
	}

	existing, err := u.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		merged := existing.Merge(*user)
		if merged.Email != existing.Email || merged.Role != existing.Role {
			clash, err := u.userRepo.FindByEmailAndRole(ctx, merged.Email, merged.Role)
			if err != nil {
				return nil, err
			}
			if clash != nil && clash.ID != user.ID {
				return nil, ErrEmailAlreadyExists
			}
		}
	}

	updated, found, err := u.userRepo.Update(ctx, user)
	if err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}
	if found {
		_ = u.auditService.LogUpdate(ctx, actorID, entity.AuditActionUserUpdate, "user", user.ID, existing, updated)
	}
	return updated, nil
}
