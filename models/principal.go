package models

// Roles attached to authenticated principals by the identity collaborator.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// Principal is the authenticated identity attached to each request.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// DashboardMetrics carries the cross-doctor aggregates for the admin view.
type DashboardMetrics struct {
	TotalPatients     int64        `json:"totalPatients"`
	TotalDoctors      int64        `json:"totalDoctors"`
	TotalAppointments int64        `json:"totalAppointments"`
	TotalUpcoming     int64        `json:"totalUpcoming"`
	TopDoctors        []DoctorLoad `json:"topDoctors"`
}
