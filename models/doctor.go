package models

import "time"

// Doctor represents a registered doctor and their patient roster limits.
// CurrentPatients is mutated only through the capacity registry's atomic
// reserve/release operations, never by direct writes.
type Doctor struct {
	ID              string    `bson:"id" json:"id"`
	FullName        string    `bson:"fullName" json:"fullName"`
	Specialty       string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
	MaxPatients     int       `bson:"maxPatients" json:"maxPatients"`
	CurrentPatients int       `bson:"currentPatients" json:"currentPatients"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// Capacity is a read snapshot of a doctor's roster utilization. It may lag
// concurrent registrations; the registry enforces the real bound.
type Capacity struct {
	Current int `json:"current"`
	Maximum int `json:"maximum"`
}

// CreateDoctorRequest defines the payload for administrative doctor provisioning.
type CreateDoctorRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Specialty   string `json:"specialty"`
	MaxPatients int    `json:"maxPatients" binding:"required,min=1"`
}

// DoctorLoad pairs a doctor with their upcoming appointment count,
// used for the admin top-N listing.
type DoctorLoad struct {
	DoctorID string `bson:"_id" json:"doctorId"`
	FullName string `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Upcoming int64  `bson:"upcoming" json:"upcoming"`
}
