package booking

import (
	"context"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	patientRepo "medibook/database/repository/patient"
	slotRepo "medibook/database/repository/slot"
	"medibook/models"

	"github.com/go-redis/redis/v8"
)

// BookingService defines the booking engine's operations: browsing open slots
// and atomically converting one into an appointment.
type BookingService interface {
	BookSlot(ctx context.Context, principal models.Principal, req models.BookingRequest, requestedAt time.Time) (*models.Appointment, error)
	AvailableSlots(ctx context.Context, doctorID, fromDate string) ([]models.AvailableSlot, error)
}

// DefaultBookingService is the default, robust implementation. The slot
// repository's conditional transition is the single synchronization point;
// everything else here is validation and bookkeeping.
type DefaultBookingService struct {
	Slots        slotRepo.SlotRepository
	Appointments appointmentRepo.AppointmentRepository
	Patients     patientRepo.PatientRepository
	// Cache is optional; when nil, availability reads go straight to the store.
	Cache *redis.Client
}
