// File: database/repository/doctor/doctor_mongo.go
package doctorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	doctor.CurrentPatients = 0
	doctor.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		return fmt.Errorf("failed to insert doctor: %w", err)
	}
	return nil
}

func (r *mongoDoctorRepo) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": doctorID}).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to fetch doctor %s: %w", doctorID, err)
	}
	return &doctor, nil
}

func (r *mongoDoctorRepo) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "fullName", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := []models.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

// TryReserve increments the roster counter only while it is below the
// maximum, as one conditional update. A full roster never matches, so the
// counter cannot exceed the cap regardless of concurrent registrations.
func (r *mongoDoctorRepo) TryReserve(ctx context.Context, doctorID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":    doctorID,
		"$expr": bson.M{"$lt": bson.A{"$currentPatients", "$maxPatients"}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"currentPatients": 1}})
	if err != nil {
		return fmt.Errorf("failed to reserve roster seat for doctor %s: %w", doctorID, err)
	}
	if res.MatchedCount == 0 {
		count, countErr := r.coll.CountDocuments(ctx, bson.M{"id": doctorID})
		if countErr != nil {
			return fmt.Errorf("failed to resolve doctor %s after lost reservation: %w", doctorID, countErr)
		}
		if count == 0 {
			return ErrDoctorNotFound
		}
		return ErrCapacityFull
	}
	return nil
}

// Release compensates a reservation whose patient insert failed. The counter
// never drops below zero.
func (r *mongoDoctorRepo) Release(ctx context.Context, doctorID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": doctorID, "currentPatients": bson.M{"$gt": 0}}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"currentPatients": -1}})
	if err != nil {
		return fmt.Errorf("failed to release roster seat for doctor %s: %w", doctorID, err)
	}
	if res.MatchedCount == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *mongoDoctorRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}
