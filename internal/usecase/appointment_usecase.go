package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"
	"mediconnect/internal/service"
	"mediconnect/pkg/latency"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrSlotUnavailable     = errors.New("doctor does not offer this time slot")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrNotAllowed          = errors.New("not allowed to change this appointment")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, draft entity.AppointmentDraft) (*entity.Appointment, error)
	ListFor(ctx context.Context, userID string, role entity.Role) ([]entity.Appointment, error)
	History(ctx context.Context, patientID string) (upcoming, past []entity.Appointment, err error)
	Cancel(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status entity.AppointmentStatus) error
	CancelAs(ctx context.Context, actor *entity.User, id string) (*entity.Appointment, error)
	SetStatusAs(ctx context.Context, actor *entity.User, id string, status entity.AppointmentStatus) (*entity.Appointment, error)
	DoctorStats(ctx context.Context, doctorID string) (*dto.DoctorStatsResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
	delay           time.Duration
	now             func() time.Time
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	delay time.Duration,
	now func() time.Time,
) AppointmentUsecase {
	if now == nil {
		now = time.Now
	}
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		auditService:    auditService,
		delay:           delay,
		now:             now,
	}
}

func (u *appointmentUsecase) Book(ctx context.Context, draft entity.AppointmentDraft) (*entity.Appointment, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return nil, err
	}

	if _, err := time.Parse(entity.DateLayout, draft.Date); err != nil {
		return nil, ErrInvalidDateFormat
	}

	patient, err := u.userRepo.FindByID(ctx, draft.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil || patient.Role != entity.RolePatient {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.userRepo.FindByID(ctx, draft.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}
	if doctor.DoctorProfile != nil && len(doctor.DoctorProfile.AvailableSlots) > 0 && !doctor.DoctorProfile.HasSlot(draft.Time) {
		return nil, ErrSlotUnavailable
	}

	if draft.PatientName == "" {
		draft.PatientName = patient.Name
	}
	if draft.DoctorName == "" {
		draft.DoctorName = doctor.Name
	}

	appointment := &entity.Appointment{
		ID:          newAppointmentID(),
		PatientID:   draft.PatientID,
		PatientName: draft.PatientName,
		DoctorID:    draft.DoctorID,
		DoctorName:  draft.DoctorName,
		Date:        draft.Date,
		Time:        draft.Time,
		Status:      entity.AppointmentStatusPending,
		Notes:       draft.Notes,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if !errors.Is(err, repository.ErrSlotTaken) {
			u.log.Warnf("Failed to create appointment: %+v", err)
		}
		return nil, err
	}

	_ = u.auditService.LogCreate(ctx, draft.PatientID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID, appointment)
	return appointment, nil
}

func newAppointmentID() string {
	return "apt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

func (u *appointmentUsecase) ListFor(ctx context.Context, userID string, role entity.Role) ([]entity.Appointment, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return nil, err
	}

	switch role {
	case entity.RolePatient:
		return u.appointmentRepo.FindByPatientID(ctx, userID)
	case entity.RoleDoctor:
		return u.appointmentRepo.FindByDoctorID(ctx, userID)
	case entity.RoleAdmin:
		return u.appointmentRepo.FindAll(ctx)
	default:
		return nil, entity.ErrUnknownRole
	}
}

func (u *appointmentUsecase) History(ctx context.Context, patientID string) ([]entity.Appointment, []entity.Appointment, error) {
	appointments, err := u.ListFor(ctx, patientID, entity.RolePatient)
	if err != nil {
		return nil, nil, err
	}

	now := u.now()
	upcoming := make([]entity.Appointment, 0)
	past := make([]entity.Appointment, 0)
	for i := range appointments {
		if appointments[i].IsUpcoming(now) {
			upcoming = append(upcoming, appointments[i])
		} else {
			past = append(past, appointments[i])
		}
	}
	return upcoming, past, nil
}

// Cancel is idempotent and silently ignores unknown ids.
func (u *appointmentUsecase) Cancel(ctx context.Context, id string) error {
	return u.SetStatus(ctx, id, entity.AppointmentStatusCancelled)
}

// SetStatus silently ignores unknown ids. Illegal moves return
// entity.ErrInvalidTransition.
func (u *appointmentUsecase) SetStatus(ctx context.Context, id string, status entity.AppointmentStatus) error {
	_, err := u.applyStatus(ctx, "", id, status, nil)
	return err
}

func (u *appointmentUsecase) applyStatus(ctx context.Context, actorID, id string, status entity.AppointmentStatus, guard repository.StatusGuard) (*entity.Appointment, error) {
	if err := latency.Wait(ctx, u.delay); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	before, updated, err := u.appointmentRepo.UpdateStatus(ctx, id, status, guard)
	if err != nil {
		if !errors.Is(err, entity.ErrInvalidTransition) && !errors.Is(err, ErrNotAllowed) && !errors.Is(err, ErrAppointmentNotFound) {
			u.log.Warnf("Failed to update appointment status: %+v", err)
		}
		return nil, err
	}

	if updated != nil && before != nil && before.Status != updated.Status {
		_ = u.auditService.LogUpdate(ctx, actorID, entity.AuditActionForStatus(updated.Status), "appointment", id, before.Status, updated.Status)
	}
	return updated, nil
}

// CancelAs cancels on behalf of actor. Patients may cancel their own upcoming
// appointments, doctors their own pending ones, admins any.
func (u *appointmentUsecase) CancelAs(ctx context.Context, actor *entity.User, id string) (*entity.Appointment, error) {
	return u.SetStatusAs(ctx, actor, id, entity.AppointmentStatusCancelled)
}

func (u *appointmentUsecase) SetStatusAs(ctx context.Context, actor *entity.User, id string, status entity.AppointmentStatus) (*entity.Appointment, error) {
	if actor == nil {
		return nil, ErrNotAllowed
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	// the policy is checked against the version the status change is applied to
	updated, err := u.applyStatus(ctx, actor.ID, id, status, func(current *entity.Appointment) error {
		return u.authorize(actor, current, status)
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrAppointmentNotFound
	}
	return updated, nil
}

func (u *appointmentUsecase) authorize(actor *entity.User, appointment *entity.Appointment, status entity.AppointmentStatus) error {
	switch actor.Role {
	case entity.RolePatient:
		if appointment.PatientID != actor.ID {
			return ErrAppointmentNotFound
		}
		if status != entity.AppointmentStatusCancelled || !appointment.IsUpcoming(u.now()) {
			return ErrNotAllowed
		}
		return nil
	case entity.RoleDoctor:
		if appointment.DoctorID != actor.ID {
			return ErrAppointmentNotFound
		}
		if !appointment.IsPending() {
			return ErrNotAllowed
		}
		if status != entity.AppointmentStatusConfirmed && status != entity.AppointmentStatusCancelled {
			return ErrNotAllowed
		}
		return nil
	case entity.RoleAdmin:
		return nil
	default:
		return entity.ErrUnknownRole
	}
}

func (u *appointmentUsecase) DoctorStats(ctx context.Context, doctorID string) (*dto.DoctorStatsResponse, error) {
	appointments, err := u.ListFor(ctx, doctorID, entity.RoleDoctor)
	if err != nil {
		return nil, err
	}

	fee := decimal.Zero
	doctor, err := u.userRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor.IsDoctor() && doctor.DoctorProfile != nil {
		fee = doctor.DoctorProfile.ConsultationFee
	}

	today := u.now().Format(entity.DateLayout)
	patients := make(map[string]struct{})
	stats := &dto.DoctorStatsResponse{
		TotalAppointments: len(appointments),
		Earnings:          decimal.Zero,
	}
	for i := range appointments {
		a := &appointments[i]
		patients[a.PatientID] = struct{}{}
		if a.Date == today && a.Status != entity.AppointmentStatusCancelled {
			stats.AppointmentsToday++
		}
		if a.IsPending() {
			stats.PendingRequests++
		}
		if a.Status == entity.AppointmentStatusCompleted {
			stats.Earnings = stats.Earnings.Add(fee)
		}
	}
	stats.TotalPatients = len(patients)
	return stats, nil
}
