package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	patientRepo "medibook/database/repository/patient"
	slotRepo "medibook/database/repository/slot"
	"medibook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookSlot validates a booking intent and commits it: one slot transition and
// one appointment record, or neither. Lost races surface as ErrSlotTaken and
// are not retried here — the caller picks another slot.
func (s *DefaultBookingService) BookSlot(ctx context.Context, principal models.Principal, req models.BookingRequest, requestedAt time.Time) (*models.Appointment, error) {
	logger := zap.L()

	// A patient may only book for themselves; doctors and admins may book on
	// a patient's behalf.
	if principal.Role == models.RolePatient && principal.ID != req.PatientID {
		return nil, ErrNotAuthorized
	}

	if _, err := s.Patients.GetByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to resolve patient %s: %w", req.PatientID, err)
	}

	slot, err := s.Slots.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to resolve slot %s: %w", req.SlotID, err)
	}

	// No booking into the past: the window must start strictly after the
	// request moment.
	if !slot.StartTime().After(requestedAt) {
		return nil, ErrSlotExpired
	}

	// The commit point. A stale open slot from an earlier read is re-validated
	// here, never assumed valid.
	if err := s.Slots.MarkBooked(ctx, req.SlotID); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrAlreadyBooked):
			logger.Debug("lost booking race",
				zap.String("slotId", req.SlotID),
				zap.String("patientId", req.PatientID))
			return nil, ErrSlotTaken
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return nil, ErrSlotNotFound
		default:
			return nil, fmt.Errorf("slot transition failed: %w", err)
		}
	}

	appointment := &models.Appointment{
		ID:        uuid.New().String(),
		PatientID: req.PatientID,
		DoctorID:  slot.DoctorID,
		SlotID:    slot.ID,
		Date:      slot.Date,
		Start:     slot.Start,
		End:       slot.End,
		CreatedAt: time.Now(),
	}

	if err := s.Appointments.Create(ctx, appointment); err != nil {
		// The slot is booked but the record did not land; compensate so no
		// booked-but-unrecorded slot is left behind.
		if reopenErr := s.Slots.Reopen(ctx, slot.ID); reopenErr != nil {
			logger.Error("failed to reopen slot after appointment insert failure",
				zap.String("slotId", slot.ID),
				zap.Error(reopenErr))
		}
		return nil, fmt.Errorf("failed to record appointment: %w", err)
	}

	s.invalidateAvailability(ctx, slot.DoctorID)

	logger.Info("appointment booked",
		zap.String("appointmentId", appointment.ID),
		zap.String("patientId", appointment.PatientID),
		zap.String("doctorId", appointment.DoctorID),
		zap.String("slotId", appointment.SlotID))
	return appointment, nil
}
