package models

import "time"

// SlotDateLayout is the wire format for slot and appointment dates.
const SlotDateLayout = "2006-01-02"

// AvailableSlot represents a doctor's pre-defined booking window.
// A slot is either open or booked; once booked it never reopens here
// (administrative cancellation is a separate concern).
type AvailableSlot struct {
	ID        string     `bson:"id" json:"id"`
	DoctorID  string     `bson:"doctorId" json:"doctorId"`
	Date      string     `bson:"date" json:"date"`   // e.g., "2025-06-01"
	Start     int        `bson:"start" json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
	End       int        `bson:"end" json:"end"`     // minutes from midnight (e.g., 570 for 9:30 AM)
	Booked    bool       `bson:"booked" json:"booked"`
	Expired   bool       `bson:"expired,omitempty" json:"expired,omitempty"` // set by the sweeper once the window has passed unbooked
	BookedAt  *time.Time `bson:"bookedAt,omitempty" json:"bookedAt,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// StartTime resolves the slot's date and start minute into a point in time.
// A malformed date yields the zero time, which always compares as past.
func (s AvailableSlot) StartTime() time.Time {
	day, err := time.Parse(SlotDateLayout, s.Date)
	if err != nil {
		return time.Time{}
	}
	return day.Add(time.Duration(s.Start) * time.Minute)
}

// EndTime resolves the slot's date and end minute into a point in time.
func (s AvailableSlot) EndTime() time.Time {
	day, err := time.Parse(SlotDateLayout, s.Date)
	if err != nil {
		return time.Time{}
	}
	return day.Add(time.Duration(s.End) * time.Minute)
}

// DayMinute resolves a point in time into slot wire coordinates: the date
// string and the minutes from midnight, both in UTC. StartTime parses dates
// in UTC, so every comparison against slot or appointment times must go
// through the same location or boundary appointments flip buckets.
func DayMinute(t time.Time) (date string, minute int) {
	u := t.UTC()
	return u.Format(SlotDateLayout), u.Hour()*60 + u.Minute()
}

// SlotInput is one window in a schedule-provisioning request.
type SlotInput struct {
	Date  string `json:"date" binding:"required"`
	Start int    `json:"start" binding:"required"`
	End   int    `json:"end" binding:"required"`
}

// CreateSlotsRequest defines the payload for provisioning a doctor's slots.
type CreateSlotsRequest struct {
	Slots []SlotInput `json:"slots" binding:"required,min=1"`
}
