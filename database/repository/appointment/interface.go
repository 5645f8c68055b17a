// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository owns the append-only appointment log. Records are
// written once by the booking engine and never mutated or deleted.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	GetByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	Count(ctx context.Context) (int64, error)
	CountUpcoming(ctx context.Context, now time.Time) (int64, error)
	TopDoctorsByUpcoming(ctx context.Context, now time.Time, limit int64) ([]models.DoctorLoad, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.Collection("appointments"),
	}
}
