// File: database/repository/slot/transition.go
package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MarkBooked performs the open → booked transition as a single conditional
// update keyed on the slot ID and its current state. Under concurrent callers
// targeting the same slot, exactly one update matches; every other caller
// observes ErrAlreadyBooked. There is deliberately no read-then-write here.
func (r *mongoSlotRepo) MarkBooked(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": slotID, "booked": false, "expired": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"booked": true, "bookedAt": now}},
	)
	if err := res.Err(); err != nil {
		if !isNoDocuments(err) {
			return fmt.Errorf("failed to mark slot %s booked: %w", slotID, err)
		}
		// The conditional update matched nothing: either the slot does not
		// exist, or another caller won the transition first.
		count, countErr := r.coll.CountDocuments(ctx, bson.M{"id": slotID})
		if countErr != nil {
			return fmt.Errorf("failed to resolve slot %s after lost transition: %w", slotID, countErr)
		}
		if count == 0 {
			return ErrSlotNotFound
		}
		return ErrAlreadyBooked
	}
	return nil
}

// Reopen compensates a won transition whose appointment insert failed. It is
// the only path back to open and is never exposed outside the booking engine.
func (r *mongoSlotRepo) Reopen(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": slotID, "booked": true},
		bson.M{"$set": bson.M{"booked": false}, "$unset": bson.M{"bookedAt": ""}},
	)
	if err != nil {
		return fmt.Errorf("failed to reopen slot %s: %w", slotID, err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// CloseExpired marks open slots whose window has started as expired so they
// drop out of listings. Returns the number of slots closed.
func (r *mongoSlotRepo) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	today, minuteOfDay := models.DayMinute(now)

	filter := bson.M{
		"booked":  false,
		"expired": bson.M{"$ne": true},
		"$or": []bson.M{
			{"date": bson.M{"$lt": today}},
			{"date": today, "start": bson.M{"$lte": minuteOfDay}},
		},
	}
	res, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"expired": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to close expired slots: %w", err)
	}
	return res.ModifiedCount, nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
