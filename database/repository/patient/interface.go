// File: database/repository/patient/interface.go
package patientRepo

import (
	"context"
	"errors"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrPatientNotFound is returned when no patient carries the given ID.
var ErrPatientNotFound = errors.New("patient not found")

// PatientRepository owns patient records and their doctor assignment.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, patientID string) (*models.Patient, error)
	GetByDoctor(ctx context.Context, doctorID string) ([]models.Patient, error)
	Count(ctx context.Context) (int64, error)
}

type mongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo constructs a new MongoDB PatientRepository.
func NewMongoPatientRepo() PatientRepository {
	return &mongoPatientRepo{
		coll: database.Collection("patients"),
	}
}
