// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrSlotNotFound is returned when no slot carries the given ID.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrAlreadyBooked is returned when the conditional transition loses to a
	// concurrent booking. Callers treat this as contention, not as a fault.
	ErrAlreadyBooked = errors.New("slot already booked")
	// ErrSlotOverlap is returned when a provisioned slot overlaps an existing
	// window for the same doctor and date.
	ErrSlotOverlap = errors.New("slot overlaps an existing slot")
)

// SlotRepository owns the catalog of bookable windows and their occupancy.
// MarkBooked is the single mutual-exclusion point of the booking engine.
type SlotRepository interface {
	CreateMany(ctx context.Context, doctorID string, slots []models.AvailableSlot) ([]string, error)
	GetByID(ctx context.Context, slotID string) (*models.AvailableSlot, error)
	ListOpen(ctx context.Context, doctorID, fromDate string) ([]models.AvailableSlot, error)
	MarkBooked(ctx context.Context, slotID string) error
	Reopen(ctx context.Context, slotID string) error
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{
		coll: database.Collection("slots"),
	}
}
