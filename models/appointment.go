package models

import "time"

// Appointment represents a confirmed appointment record. Appointments are
// created only by the booking engine, reference exactly one slot, and are
// never mutated or deleted afterwards.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`                // Unique appointment identifier (UUID)
	PatientID string    `bson:"patientId" json:"patientId"`  // Patient who booked
	DoctorID  string    `bson:"doctorId" json:"doctorId"`    // Doctor being seen
	SlotID    string    `bson:"slotId" json:"slotId"`        // Originating slot, one-to-one
	Date      string    `bson:"date" json:"date"`            // Appointment date in "YYYY-MM-DD" format
	Start     int       `bson:"start" json:"start"`          // Start time (minutes from midnight)
	End       int       `bson:"end" json:"end"`              // End time (minutes from midnight)
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`  // Timestamp when the booking committed
}

// StartTime resolves the appointment's date and start minute into a point in time.
func (a Appointment) StartTime() time.Time {
	day, err := time.Parse(SlotDateLayout, a.Date)
	if err != nil {
		return time.Time{}
	}
	return day.Add(time.Duration(a.Start) * time.Minute)
}

// ClassifiedAppointments partitions a set of appointments relative to a
// reference moment: upcoming soonest-first, history most-recent-first.
type ClassifiedAppointments struct {
	Upcoming []Appointment `json:"upcoming"`
	History  []Appointment `json:"history"`
}

// BookingRequest defines the payload for a booking intent.
type BookingRequest struct {
	PatientID string `json:"patientId" binding:"required"`
	SlotID    string `json:"slotId" binding:"required"`
}
