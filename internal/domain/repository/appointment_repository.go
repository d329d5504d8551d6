package repository

import (
	"context"
	"errors"

	"mediconnect/internal/domain/entity"
)

var ErrSlotTaken = errors.New("doctor already has an active appointment at this date and time")

// StatusGuard vets the stored appointment right before its status changes.
// A non-nil error aborts the update.
type StatusGuard func(current *entity.Appointment) error

type AppointmentRepository interface {
	// Create appends the appointment unless an active one holds the same slot.
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	FindByID(ctx context.Context, id string) (*entity.Appointment, error)
	FindByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]entity.Appointment, error)
	// UpdateStatus runs guard (when non-nil) and the transition on the same
	// version of the document. It returns the appointment before and after the
	// change, both nil when no appointment has the given ID.
	UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus, guard StatusGuard) (before, after *entity.Appointment, err error)
}
