package repository

import (
	"context"
	"time"

	"mediconnect/internal/domain/entity"
	domainRepo "mediconnect/internal/domain/repository"
	"mediconnect/internal/infrastructure/storage"
	"mediconnect/internal/seed"

	"github.com/sirupsen/logrus"
)

// AppointmentsKey is the BlobStore key of the appointment collection.
const AppointmentsKey = "appointments"

// appointmentRepository stores the whole collection as one document and
// rewrites it on every mutation.
type appointmentRepository struct {
	doc *storage.Document[[]entity.Appointment]
}

func NewAppointmentRepository(store domainRepo.BlobStore, log *logrus.Logger, now func() time.Time) domainRepo.AppointmentRepository {
	fallback := func() []entity.Appointment {
		return seed.Appointments(now())
	}
	return &appointmentRepository{
		doc: storage.NewDocument(store, AppointmentsKey, fallback, log),
	}
}

func (r *appointmentRepository) load(ctx context.Context) ([]entity.Appointment, error) {
	appointments, _, err := r.doc.Load(ctx)
	return appointments, err
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	_, err := r.doc.Update(ctx, func(current []entity.Appointment) ([]entity.Appointment, error) {
		for i := range current {
			if current[i].IsActive() && current[i].SameSlot(appointment) {
				return nil, domainRepo.ErrSlotTaken
			}
		}
		next := make([]entity.Appointment, len(current), len(current)+1)
		copy(next, current)
		return append(next, *appointment), nil
	})
	return err
}

func (r *appointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	return r.load(ctx)
}

func (r *appointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	appointments, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		if appointments[i].ID == id {
			return &appointments[i], nil
		}
	}
	return nil, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	return r.filter(ctx, func(a *entity.Appointment) bool { return a.PatientID == patientID })
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]entity.Appointment, error) {
	return r.filter(ctx, func(a *entity.Appointment) bool { return a.DoctorID == doctorID })
}

func (r *appointmentRepository) filter(ctx context.Context, keep func(*entity.Appointment) bool) ([]entity.Appointment, error) {
	appointments, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]entity.Appointment, 0, len(appointments))
	for i := range appointments {
		if keep(&appointments[i]) {
			matched = append(matched, appointments[i])
		}
	}
	return matched, nil
}

// UpdateStatus applies guard and the transition inside the read-modify-write
// cycle, so both see the version that gets written.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus, guard domainRepo.StatusGuard) (*entity.Appointment, *entity.Appointment, error) {
	var before, after *entity.Appointment
	_, err := r.doc.Update(ctx, func(current []entity.Appointment) ([]entity.Appointment, error) {
		before, after = nil, nil
		next := make([]entity.Appointment, len(current))
		copy(next, current)
		for i := range next {
			if next[i].ID != id {
				continue
			}
			prior := next[i]
			if guard != nil {
				if err := guard(&prior); err != nil {
					return nil, err
				}
			}
			if _, err := next[i].TransitionTo(status); err != nil {
				return nil, err
			}
			found := next[i]
			before, after = &prior, &found
		}
		return next, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}
