package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		allowed  bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCompleted, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatus("ARCHIVED"), false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestAppointment_TransitionTo(t *testing.T) {
	t.Run("cancel twice is idempotent", func(t *testing.T) {
		a := &Appointment{Status: AppointmentStatusConfirmed}

		changed, err := a.TransitionTo(AppointmentStatusCancelled)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = a.TransitionTo(AppointmentStatusCancelled)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, AppointmentStatusCancelled, a.Status)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		a := &Appointment{Status: AppointmentStatusCompleted}

		_, err := a.TransitionTo(AppointmentStatusCancelled)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, AppointmentStatusCompleted, a.Status)
	})
}

func TestAppointment_IsUpcoming(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.True(t, (&Appointment{Date: "2024-03-10", Status: AppointmentStatusPending}).IsUpcoming(now))
	assert.True(t, (&Appointment{Date: "2024-04-01", Status: AppointmentStatusConfirmed}).IsUpcoming(now))
	assert.False(t, (&Appointment{Date: "2024-03-09", Status: AppointmentStatusPending}).IsUpcoming(now))
	assert.False(t, (&Appointment{Date: "2024-04-01", Status: AppointmentStatusCancelled}).IsUpcoming(now))
	assert.False(t, (&Appointment{Date: "someday", Status: AppointmentStatusPending}).IsUpcoming(now))
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("doctor")
	require.NoError(t, err)
	assert.Equal(t, RoleDoctor, role)
	assert.Equal(t, "/doctor/dashboard", role.DashboardPath())

	_, err = ParseRole("nurse")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestUser_Merge(t *testing.T) {
	base := User{
		ID:    "d1",
		Name:  "Dr. A",
		Email: "a@example.com",
		Role:  RoleDoctor,
		DoctorProfile: &DoctorProfile{
			Specialization: "Cardiologist",
			AvailableSlots: []string{"10:00 AM"},
		},
	}

	merged := base.Merge(User{ID: "ignored", Name: "Dr. B", DoctorProfile: &DoctorProfile{Location: "Pune"}})

	assert.Equal(t, "d1", merged.ID)
	assert.Equal(t, "Dr. B", merged.Name)
	assert.Equal(t, "a@example.com", merged.Email)
	assert.Equal(t, "Cardiologist", merged.DoctorProfile.Specialization)
	assert.Equal(t, "Pune", merged.DoctorProfile.Location)
	assert.Empty(t, base.DoctorProfile.Location, "merge must not mutate the original")
}
