// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"
	"errors"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrDoctorNotFound is returned when no doctor carries the given ID.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrCapacityFull is returned when a reservation would exceed the
	// doctor's maximum roster. Expected during registration, not a fault.
	ErrCapacityFull = errors.New("doctor roster is full")
)

// DoctorRepository owns doctor records and the atomic roster counter.
// TryReserve/Release are the only writers of CurrentPatients.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	GetAll(ctx context.Context) ([]models.Doctor, error)
	TryReserve(ctx context.Context, doctorID string) error
	Release(ctx context.Context, doctorID string) error
	Count(ctx context.Context) (int64, error)
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a new MongoDB DoctorRepository.
func NewMongoDoctorRepo() DoctorRepository {
	return &mongoDoctorRepo{
		coll: database.Collection("doctors"),
	}
}
