package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medibook/models"

	"go.uber.org/zap"
)

const availabilityCacheTTL = 30 * time.Second

// AvailableSlots lists a doctor's open slots at or after fromDate, soonest
// first. Results may be served from a short-lived cache; a stale entry can
// show a slot that has since been taken, which the booking commit re-checks.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, doctorID, fromDate string) ([]models.AvailableSlot, error) {
	if fromDate == "" {
		fromDate = time.Now().Format(models.SlotDateLayout)
	} else if _, err := time.Parse(models.SlotDateLayout, fromDate); err != nil {
		return nil, fmt.Errorf("%w: from date %q", ErrInvalidDate, fromDate)
	}

	cacheKey := availabilityCacheKey(doctorID, fromDate)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var slots []models.AvailableSlot
			if err := json.Unmarshal([]byte(raw), &slots); err == nil {
				return slots, nil
			}
		}
	}

	slots, err := s.Slots.ListOpen(ctx, doctorID, fromDate)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, raw, availabilityCacheTTL).Err(); err != nil {
				zap.L().Warn("failed to cache availability", zap.String("doctorId", doctorID), zap.Error(err))
			}
		}
	}
	return slots, nil
}

func availabilityCacheKey(doctorID, fromDate string) string {
	return fmt.Sprintf("availability:%s:%s", doctorID, fromDate)
}

// invalidateAvailability drops every cached listing for the doctor after a
// successful booking so stale windows age out immediately.
func (s *DefaultBookingService) invalidateAvailability(ctx context.Context, doctorID string) {
	if s.Cache == nil {
		return
	}
	iter := s.Cache.Scan(ctx, 0, fmt.Sprintf("availability:%s:*", doctorID), 100).Iterator()
	for iter.Next(ctx) {
		if err := s.Cache.Del(ctx, iter.Val()).Err(); err != nil {
			zap.L().Warn("failed to invalidate availability cache", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		zap.L().Warn("availability cache scan failed", zap.String("doctorId", doctorID), zap.Error(err))
	}
}
