package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableSlots_FiltersAndOrders(t *testing.T) {
	slots := newMemSlotRepo(
		openSlot("late", "doc-1", "2025-06-12", 600, 630),
		openSlot("early", "doc-1", "2025-06-10", 540, 570),
		openSlot("sameDayLater", "doc-1", "2025-06-10", 600, 630),
		openSlot("otherDoctor", "doc-2", "2025-06-10", 540, 570),
	)
	booked := openSlot("booked", "doc-1", "2025-06-11", 540, 570)
	booked.Booked = true
	slots.CreateMany(context.Background(), "doc-1", []models.AvailableSlot{booked})

	svc := &DefaultBookingService{Slots: slots}

	got, err := svc.AvailableSlots(context.Background(), "doc-1", "2025-06-01")
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "sameDayLater", got[1].ID)
	assert.Equal(t, "late", got[2].ID)
}

func TestAvailableSlots_FromDateCutsOff(t *testing.T) {
	slots := newMemSlotRepo(
		openSlot("before", "doc-1", "2025-06-10", 540, 570),
		openSlot("after", "doc-1", "2025-06-20", 540, 570),
	)
	svc := &DefaultBookingService{Slots: slots}

	got, err := svc.AvailableSlots(context.Background(), "doc-1", "2025-06-15")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "after", got[0].ID)
}

func TestAvailableSlots_RepeatedReadsAgree(t *testing.T) {
	slots := newMemSlotRepo(
		openSlot("early", "doc-1", "2025-06-10", 540, 570),
		openSlot("late", "doc-1", "2025-06-12", 600, 630),
	)
	svc := &DefaultBookingService{Slots: slots}

	first, err := svc.AvailableSlots(context.Background(), "doc-1", "2025-06-01")
	require.NoError(t, err)
	second, err := svc.AvailableSlots(context.Background(), "doc-1", "2025-06-01")
	require.NoError(t, err)

	// Absent writes, listing is a pure read.
	assert.Equal(t, first, second)
}

func TestAvailableSlots_InvalidFromDate(t *testing.T) {
	svc := &DefaultBookingService{Slots: newMemSlotRepo()}

	_, err := svc.AvailableSlots(context.Background(), "doc-1", "10-06-2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestAvailableSlots_StoreFaultIsNotValidation(t *testing.T) {
	slots := newMemSlotRepo()
	slots.failList = errors.New("server selection timeout")
	svc := &DefaultBookingService{Slots: slots}

	_, err := svc.AvailableSlots(context.Background(), "doc-1", "2025-06-01")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidDate)
}

func TestAvailableSlots_DefaultsToToday(t *testing.T) {
	today := time.Now().Format(models.SlotDateLayout)
	slots := newMemSlotRepo(
		openSlot("today", "doc-1", today, 23*60, 23*60+30),
		openSlot("yesterday", "doc-1", time.Now().AddDate(0, 0, -1).Format(models.SlotDateLayout), 540, 570),
	)
	svc := &DefaultBookingService{Slots: slots}

	got, err := svc.AvailableSlots(context.Background(), "doc-1", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "today", got[0].ID)
}

func TestCloseExpired_MarksOnlyPastOpenSlots(t *testing.T) {
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

	past := openSlot("past", "doc-1", "2025-06-10", 540, 570)
	future := openSlot("future", "doc-1", "2025-06-12", 540, 570)
	pastBooked := openSlot("pastBooked", "doc-1", "2025-06-09", 540, 570)
	pastBooked.Booked = true
	slots := newMemSlotRepo(past, future, pastBooked)

	closed, err := slots.CloseExpired(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, closed)

	got, err := slots.ListOpen(context.Background(), "doc-1", "2025-06-01")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "future", got[0].ID)
}
