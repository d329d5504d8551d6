package entity

import (
	"errors"
	"time"
)

// ErrInvalidTransition is returned for a status move the lifecycle does not allow.
var ErrInvalidTransition = errors.New("appointment status transition is not allowed")

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// AppointmentStatuses lists every status in lifecycle order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

// DateLayout is the ISO calendar date used by Appointment.Date.
const DateLayout = "2006-01-02"

// Appointment is a booking of a doctor's time label on a given date.
// Appointments are never deleted, only cancelled.
type Appointment struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patient_id"`
	PatientName string            `json:"patient_name"`
	DoctorID    string            `json:"doctor_id"`
	DoctorName  string            `json:"doctor_name"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
}

// Valid reports whether s is one of the four lifecycle states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Re-applying the current status counts as allowed (no-op).
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	case AppointmentStatusCompleted, AppointmentStatusCancelled:
		return false
	default:
		return false
	}
}

// TransitionTo moves the appointment to next. It reports whether the status
// actually changed.
func (a *Appointment) TransitionTo(next AppointmentStatus) (bool, error) {
	if !a.Status.CanTransitionTo(next) {
		return false, ErrInvalidTransition
	}
	if a.Status == next {
		return false, nil
	}
	a.Status = next
	return true, nil
}

// IsPending reports whether the appointment still awaits the doctor.
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsActive reports whether the appointment still holds its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// IsUpcoming reports whether the appointment is active and dated today or later.
// An unparsable date is never upcoming.
func (a *Appointment) IsUpcoming(now time.Time) bool {
	if !a.IsActive() {
		return false
	}
	day, err := time.ParseInLocation(DateLayout, a.Date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !day.Before(today)
}

// SameSlot reports whether both appointments target the same doctor, date and time.
func (a *Appointment) SameSlot(other *Appointment) bool {
	return a.DoctorID == other.DoctorID && a.Date == other.Date && a.Time == other.Time
}

// AppointmentDraft is the caller-supplied part of a booking.
type AppointmentDraft struct {
	PatientID   string
	PatientName string
	DoctorID    string
	DoctorName  string
	Date        string
	Time        string
	Notes       string
}
