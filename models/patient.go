package models

import "time"

// Patient represents a registered patient and their family-doctor assignment.
// A patient carries at most one assigned doctor, and that doctor's roster
// count reflects the assignment.
type Patient struct {
	ID          string    `bson:"id" json:"id"`
	FullName    string    `bson:"fullName" json:"fullName"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	BirthDate   string    `bson:"birthDate,omitempty" json:"birthDate,omitempty"` // "YYYY-MM-DD"
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	Gender      string    `bson:"gender,omitempty" json:"gender,omitempty"`
	DoctorID    string    `bson:"doctorId" json:"doctorId"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// RegisterPatientRequest defines the payload for patient registration under a doctor.
type RegisterPatientRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	BirthDate   string `json:"birthDate"`
	Address     string `json:"address"`
	Gender      string `json:"gender"`
	DoctorID    string `json:"doctorId" binding:"required"`
}

// PatientProfile is the composed patient view: the profile, the assigned
// doctor and the patient's classified appointments.
type PatientProfile struct {
	Patient      Patient                `json:"patient"`
	Doctor       *Doctor                `json:"doctor,omitempty"`
	Appointments ClassifiedAppointments `json:"appointments"`
}
