package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"mediconnect/internal/domain/entity"
	domainRepo "mediconnect/internal/domain/repository"
	"mediconnect/internal/repository"
	"mediconnect/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draft(patientID, doctorID, date, time string) entity.AppointmentDraft {
	return entity.AppointmentDraft{PatientID: patientID, DoctorID: doctorID, Date: date, Time: time}
}

func TestAppointmentUsecase_BookThenList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booked, err := f.appointments.Book(ctx, entity.AppointmentDraft{
		PatientID:   "p1",
		PatientName: "A",
		DoctorID:    "d1",
		DoctorName:  "B",
		Date:        "2024-01-01",
		Time:        "10:00 AM",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(booked.ID, "apt_"))
	assert.Equal(t, entity.AppointmentStatusPending, booked.Status)
	assert.Equal(t, "A", booked.PatientName)
	assert.Equal(t, "B", booked.DoctorName)

	mine, err := f.appointments.ListFor(ctx, "p1", entity.RolePatient)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a1", mine[0].ID)
	assert.Equal(t, booked.ID, mine[1].ID)
	assert.Equal(t, entity.AppointmentStatusPending, mine[1].Status)

	assert.Contains(t, f.auditActions(t), entity.AuditActionAppointmentCreate)
}

func TestAppointmentUsecase_BookFillsNamesFromDirectory(t *testing.T) {
	f := newFixture(t)

	booked, err := f.appointments.Book(context.Background(), draft("p2", "d2", "2024-04-01", "09:00 AM"))
	require.NoError(t, err)
	assert.Equal(t, "Pooja Verma", booked.PatientName)
	assert.Equal(t, "Dr. Priya Sharma", booked.DoctorName)
}

func TestAppointmentUsecase_BookRejections(t *testing.T) {
	cases := []struct {
		name  string
		draft entity.AppointmentDraft
		want  error
	}{
		{"unknown doctor", draft("p1", "d99", "2024-04-01", "10:00 AM"), ErrDoctorNotFound},
		{"patient is not a doctor", draft("p1", "p2", "2024-04-01", "10:00 AM"), ErrDoctorNotFound},
		{"unknown patient", draft("p99", "d1", "2024-04-01", "10:00 AM"), ErrPatientNotFound},
		{"slot not offered", draft("p1", "d1", "2024-04-01", "03:15 AM"), ErrSlotUnavailable},
		{"bad date", draft("p1", "d1", "01/04/2024", "10:00 AM"), ErrInvalidDateFormat},
		{"slot already held", draft("p2", "d1", "2024-03-10", "10:00 AM"), domainRepo.ErrSlotTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.appointments.Book(context.Background(), tc.draft)
			assert.ErrorIs(t, err, tc.want)

			all, err := f.appointments.ListFor(context.Background(), "admin1", entity.RoleAdmin)
			require.NoError(t, err)
			assert.Len(t, all, 1, "a rejected booking must not be stored")
		})
	}
}

func TestAppointmentUsecase_ListForScopesByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.appointments.Book(ctx, draft("p2", "d2", "2024-04-01", "09:00 AM"))
	require.NoError(t, err)

	byDoctor, err := f.appointments.ListFor(ctx, "d2", entity.RoleDoctor)
	require.NoError(t, err)
	require.Len(t, byDoctor, 1)
	assert.Equal(t, "p2", byDoctor[0].PatientID)

	all, err := f.appointments.ListFor(ctx, "admin1", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.appointments.ListFor(ctx, "x", entity.Role("NURSE"))
	assert.ErrorIs(t, err, entity.ErrUnknownRole)
}

func TestAppointmentUsecase_Cancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.appointments.Cancel(ctx, "a1"))
	require.NoError(t, f.appointments.Cancel(ctx, "a1"), "cancel is idempotent")

	all, err := f.appointments.ListFor(ctx, "p1", entity.RolePatient)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, all[0].Status)

	assert.NoError(t, f.appointments.Cancel(ctx, "missing"), "unknown ids are ignored")

	// one audit entry for the actual change, none for the repeat
	assert.Equal(t, []string{entity.AuditActionAppointmentCancel}, f.auditActions(t))
}

func TestAppointmentUsecase_CompletedCannotBeCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.appointments.SetStatus(ctx, "a1", entity.AppointmentStatusCompleted))
	assert.ErrorIs(t, f.appointments.Cancel(ctx, "a1"), entity.ErrInvalidTransition)
	assert.ErrorIs(t, f.appointments.SetStatus(ctx, "a1", entity.AppointmentStatusPending), entity.ErrInvalidTransition)
	assert.ErrorIs(t, f.appointments.SetStatus(ctx, "a1", entity.AppointmentStatus("ARCHIVED")), ErrInvalidStatus)
}

func TestAppointmentUsecase_SetStatusAsPolicy(t *testing.T) {
	patient := &entity.User{ID: "p2", Role: entity.RolePatient}
	otherPatient := &entity.User{ID: "p3", Role: entity.RolePatient}
	doctor := &entity.User{ID: "d2", Role: entity.RoleDoctor}
	otherDoctor := &entity.User{ID: "d3", Role: entity.RoleDoctor}
	admin := &entity.User{ID: "admin1", Role: entity.RoleAdmin}

	book := func(t *testing.T, f *fixture, date string) string {
		t.Helper()
		a, err := f.appointments.Book(context.Background(), draft("p2", "d2", date, "09:00 AM"))
		require.NoError(t, err)
		return a.ID
	}

	t.Run("doctor confirms own pending", func(t *testing.T) {
		f := newFixture(t)
		id := book(t, f, "2024-04-01")

		updated, err := f.appointments.SetStatusAs(context.Background(), doctor, id, entity.AppointmentStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, entity.AppointmentStatusConfirmed, updated.Status)

		_, err = f.appointments.SetStatusAs(context.Background(), doctor, id, entity.AppointmentStatusCancelled)
		assert.ErrorIs(t, err, ErrNotAllowed, "doctors only act on pending appointments")
	})

	t.Run("doctor cannot complete", func(t *testing.T) {
		f := newFixture(t)
		id := book(t, f, "2024-04-01")

		_, err := f.appointments.SetStatusAs(context.Background(), doctor, id, entity.AppointmentStatusCompleted)
		assert.ErrorIs(t, err, ErrNotAllowed)
	})

	t.Run("other doctor does not see it", func(t *testing.T) {
		f := newFixture(t)
		id := book(t, f, "2024-04-01")

		_, err := f.appointments.SetStatusAs(context.Background(), otherDoctor, id, entity.AppointmentStatusConfirmed)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("patient cancels own upcoming", func(t *testing.T) {
		f := newFixture(t)
		id := book(t, f, "2024-03-10")

		updated, err := f.appointments.CancelAs(context.Background(), patient, id)
		require.NoError(t, err)
		assert.Equal(t, entity.AppointmentStatusCancelled, updated.Status)
	})

	t.Run("patient cannot cancel past", func(t *testing.T) {
		f := newFixture(t)
		id := book(t, f, "2024-03-09")

		_, err := f.appointments.CancelAs(context.Background(), patient, id)
		assert.ErrorIs(t, err, ErrNotAllowed)
	})

	t.Run("patient cannot confirm", func(t *testing.T) {
		f := newFixture(t)
		id := book(t, f, "2024-04-01")

		_, err := f.appointments.SetStatusAs(context.Background(), patient, id, entity.AppointmentStatusConfirmed)
		assert.ErrorIs(t, err, ErrNotAllowed)
	})

	t.Run("patient cannot touch others", func(t *testing.T) {
		f := newFixture(t)
		id := book(t, f, "2024-04-01")

		_, err := f.appointments.CancelAs(context.Background(), otherPatient, id)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("admin completes confirmed", func(t *testing.T) {
		f := newFixture(t)

		updated, err := f.appointments.SetStatusAs(context.Background(), admin, "a1", entity.AppointmentStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, entity.AppointmentStatusCompleted, updated.Status)

		_, err = f.appointments.CancelAs(context.Background(), admin, "a1")
		assert.ErrorIs(t, err, entity.ErrInvalidTransition)

		logs, err := f.auditRepo.FindAll(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, entity.AuditActionAppointmentComplete, logs[0].Action)
		assert.Equal(t, "admin1", logs[0].UserID)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.appointments.CancelAs(context.Background(), admin, "missing")
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestAppointmentUsecase_SetStatusAsChecksPolicyOnLatestVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctor := &entity.User{ID: "d2", Role: entity.RoleDoctor}

	a, err := f.appointments.Book(ctx, draft("p2", "d2", "2024-04-01", "09:00 AM"))
	require.NoError(t, err)

	// a slow portal shares the store with the fast one
	slow := NewAppointmentUsecase(
		f.log,
		repository.NewAppointmentRepository(f.store, f.log, clock),
		f.userRepo,
		service.NewAuditService(f.log, f.auditRepo, clock),
		100*time.Millisecond,
		clock,
	)

	type result struct {
		updated *entity.Appointment
		err     error
	}
	done := make(chan result, 1)
	go func() {
		updated, err := slow.SetStatusAs(ctx, doctor, a.ID, entity.AppointmentStatusCancelled)
		done <- result{updated, err}
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, f.appointments.SetStatus(ctx, a.ID, entity.AppointmentStatusConfirmed))

	res := <-done
	assert.ErrorIs(t, res.err, ErrNotAllowed, "the appointment was no longer pending when the cancel landed")
	assert.Nil(t, res.updated)

	listed, err := f.appointments.ListFor(ctx, "d2", entity.RoleDoctor)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, entity.AppointmentStatusConfirmed, listed[0].Status)
}

func TestAppointmentUsecase_History(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.appointments.Book(ctx, draft("p1", "d2", "2024-03-01", "09:00 AM"))
	require.NoError(t, err)
	future, err := f.appointments.Book(ctx, draft("p1", "d2", "2024-05-01", "09:00 AM"))
	require.NoError(t, err)
	require.NoError(t, f.appointments.Cancel(ctx, future.ID))

	upcoming, past, err := f.appointments.History(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "a1", upcoming[0].ID)
	assert.Len(t, past, 2, "past dates and cancelled appointments are history")
}

func TestAppointmentUsecase_DoctorStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.appointments.Book(ctx, draft("p2", "d1", "2024-03-10", "11:30 AM"))
	require.NoError(t, err)
	require.NoError(t, f.appointments.SetStatus(ctx, "a1", entity.AppointmentStatusCompleted))

	stats, err := f.appointments.DoctorStats(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalAppointments)
	assert.Equal(t, 2, stats.TotalPatients)
	assert.Equal(t, 2, stats.AppointmentsToday)
	assert.Equal(t, 1, stats.PendingRequests)
	assert.True(t, decimal.NewFromInt(1500).Equal(stats.Earnings))
}
