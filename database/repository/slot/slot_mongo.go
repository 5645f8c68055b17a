// File: database/repository/slot/slot_mongo.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateMany inserts a batch of windows for one doctor. No two windows for
// the same doctor may overlap on the same date, neither against stored slots
// nor within the batch itself. The check is not atomic with the insert, so
// two concurrent provisioning requests for the same doctor can still collide;
// provisioning is a low-rate administrative write, not the booking hot path,
// which keeps its single conditional update in MarkBooked.
func (r *mongoSlotRepo) CreateMany(ctx context.Context, doctorID string, slots []models.AvailableSlot) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(slots))
	staged := make([]models.AvailableSlot, 0, len(slots))
	ids := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.End <= slot.Start {
			return nil, fmt.Errorf("slot %s on %s: end must be after start", slot.ID, slot.Date)
		}
		overlap, err := r.coll.CountDocuments(ctx, bson.M{
			"doctorId": doctorID,
			"date":     slot.Date,
			"start":    bson.M{"$lt": slot.End},
			"end":      bson.M{"$gt": slot.Start},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to check slot overlap: %w", err)
		}
		if overlap > 0 {
			return nil, ErrSlotOverlap
		}
		for _, prior := range staged {
			if prior.Date == slot.Date && prior.Start < slot.End && prior.End > slot.Start {
				return nil, ErrSlotOverlap
			}
		}

		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		slot.DoctorID = doctorID
		slot.Booked = false
		slot.CreatedAt = now
		staged = append(staged, slot)
		docs = append(docs, slot)
		ids = append(ids, slot.ID)
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert slots: %w", err)
	}
	return ids, nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, slotID string) (*models.AvailableSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.AvailableSlot
	if err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot); err != nil {
		if isNoDocuments(err) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to fetch slot %s: %w", slotID, err)
	}
	return &slot, nil
}

// ListOpen returns the doctor's open, unexpired slots at or after fromDate,
// ordered by date then start time. An empty result is not an error.
func (r *mongoSlotRepo) ListOpen(ctx context.Context, doctorID, fromDate string) ([]models.AvailableSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId": doctorID,
		"booked":   false,
		"expired":  bson.M{"$ne": true},
		"date":     bson.M{"$gte": fromDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list open slots for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	slots := []models.AvailableSlot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode open slots: %w", err)
	}
	return slots, nil
}
