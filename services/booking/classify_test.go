package booking

import (
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appt(id, date string, start int) models.Appointment {
	return models.Appointment{ID: id, PatientID: "pat-1", DoctorID: "doc-1", Date: date, Start: start, End: start + 30}
}

func TestClassifyAppointments_Partition(t *testing.T) {
	asOf := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	appointments := []models.Appointment{
		appt("past", "2025-01-10", 540),
		appt("future", "2025-03-01", 600),
	}

	got := ClassifyAppointments(appointments, asOf)

	require.Len(t, got.Upcoming, 1)
	require.Len(t, got.History, 1)
	assert.Equal(t, "future", got.Upcoming[0].ID)
	assert.Equal(t, "past", got.History[0].ID)
}

func TestClassifyAppointments_Ordering(t *testing.T) {
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	appointments := []models.Appointment{
		appt("u2", "2025-02-20", 540),
		appt("h1", "2025-01-30", 540),
		appt("u1", "2025-02-05", 600),
		appt("h2", "2025-01-05", 540),
		appt("u3", "2025-02-20", 600),
	}

	got := ClassifyAppointments(appointments, asOf)

	// Upcoming soonest first, history most recent first.
	require.Len(t, got.Upcoming, 3)
	assert.Equal(t, "u1", got.Upcoming[0].ID)
	assert.Equal(t, "u2", got.Upcoming[1].ID)
	assert.Equal(t, "u3", got.Upcoming[2].ID)

	require.Len(t, got.History, 2)
	assert.Equal(t, "h1", got.History[0].ID)
	assert.Equal(t, "h2", got.History[1].ID)
}

func TestClassifyAppointments_BoundaryIsUpcoming(t *testing.T) {
	a := appt("edge", "2025-02-01", 9*60)
	got := ClassifyAppointments([]models.Appointment{a}, a.StartTime())

	// Start exactly at asOf counts as upcoming, not history.
	require.Len(t, got.Upcoming, 1)
	assert.Empty(t, got.History)
}

func TestClassifyAppointments_EmptyInput(t *testing.T) {
	got := ClassifyAppointments(nil, time.Now())
	assert.NotNil(t, got.Upcoming)
	assert.NotNil(t, got.History)
	assert.Empty(t, got.Upcoming)
	assert.Empty(t, got.History)
}

func TestClassifyAppointments_Idempotent(t *testing.T) {
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	appointments := []models.Appointment{
		appt("u1", "2025-02-05", 540),
		appt("h1", "2025-01-10", 540),
		appt("u2", "2025-02-20", 600),
	}

	first := ClassifyAppointments(appointments, asOf)
	second := ClassifyAppointments(appointments, asOf)
	assert.Equal(t, first, second)
}

func TestClassifyAppointments_DoesNotMutateInput(t *testing.T) {
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	appointments := []models.Appointment{
		appt("b", "2025-02-20", 540),
		appt("a", "2025-02-05", 540),
	}

	_ = ClassifyAppointments(appointments, asOf)

	assert.Equal(t, "b", appointments[0].ID)
	assert.Equal(t, "a", appointments[1].ID)
}
