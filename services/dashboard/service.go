package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/services/booking"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	metricsCacheKey = "dashboard:metrics"
	metricsCacheTTL = 60 * time.Second
	topDoctorsLimit = 5
)

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
)

// DashboardService is the read-side facade composing the stores and the
// classifier for patient, doctor and admin views. Everything here is
// read-only; consistency is eventual and that is acceptable for display.
type DashboardService interface {
	Metrics(ctx context.Context, now time.Time) (*models.DashboardMetrics, error)
	DoctorDay(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	DoctorAppointments(ctx context.Context, doctorID string, asOf time.Time) (models.ClassifiedAppointments, error)
	PatientAppointments(ctx context.Context, patientID string, asOf time.Time) (models.ClassifiedAppointments, error)
	PatientProfile(ctx context.Context, patientID string, asOf time.Time) (*models.PatientProfile, error)
}

// DefaultDashboardService is the default implementation.
type DefaultDashboardService struct {
	Doctors      doctorRepo.DoctorRepository
	Patients     patientRepo.PatientRepository
	Appointments appointmentRepo.AppointmentRepository
	// Cache is optional; when nil, aggregates are computed on every call.
	Cache *redis.Client
}

// Metrics assembles the cross-doctor aggregates for the admin dashboard.
func (s *DefaultDashboardService) Metrics(ctx context.Context, now time.Time) (*models.DashboardMetrics, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, metricsCacheKey).Result(); err == nil {
			var cached models.DashboardMetrics
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	totalPatients, err := s.Patients.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalDoctors, err := s.Doctors.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAppointments, err := s.Appointments.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUpcoming, err := s.Appointments.CountUpcoming(ctx, now)
	if err != nil {
		return nil, err
	}
	topDoctors, err := s.Appointments.TopDoctorsByUpcoming(ctx, now, topDoctorsLimit)
	if err != nil {
		return nil, err
	}
	s.fillDoctorNames(ctx, topDoctors)

	metrics := &models.DashboardMetrics{
		TotalPatients:     totalPatients,
		TotalDoctors:      totalDoctors,
		TotalAppointments: totalAppointments,
		TotalUpcoming:     totalUpcoming,
		TopDoctors:        topDoctors,
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(metrics); err == nil {
			if err := s.Cache.Set(ctx, metricsCacheKey, raw, metricsCacheTTL).Err(); err != nil {
				zap.L().Warn("failed to cache dashboard metrics", zap.Error(err))
			}
		}
	}
	return metrics, nil
}

func (s *DefaultDashboardService) fillDoctorNames(ctx context.Context, loads []models.DoctorLoad) {
	for i := range loads {
		doctor, err := s.Doctors.GetByID(ctx, loads[i].DoctorID)
		if err != nil {
			continue
		}
		loads[i].FullName = doctor.FullName
	}
}

// DoctorDay returns a doctor's appointments for one date, ordered by start time.
func (s *DefaultDashboardService) DoctorDay(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	if _, err := s.Doctors.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return s.Appointments.GetByDoctorAndDate(ctx, doctorID, date)
}

// DoctorAppointments returns a doctor's appointments split into upcoming and history.
func (s *DefaultDashboardService) DoctorAppointments(ctx context.Context, doctorID string, asOf time.Time) (models.ClassifiedAppointments, error) {
	appointments, err := s.Appointments.GetByDoctor(ctx, doctorID)
	if err != nil {
		return models.ClassifiedAppointments{}, err
	}
	return booking.ClassifyAppointments(appointments, asOf), nil
}

// PatientAppointments returns a patient's appointments split into upcoming and history.
func (s *DefaultDashboardService) PatientAppointments(ctx context.Context, patientID string, asOf time.Time) (models.ClassifiedAppointments, error) {
	if _, err := s.Patients.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			return models.ClassifiedAppointments{}, ErrPatientNotFound
		}
		return models.ClassifiedAppointments{}, err
	}
	appointments, err := s.Appointments.GetByPatient(ctx, patientID)
	if err != nil {
		return models.ClassifiedAppointments{}, err
	}
	return booking.ClassifyAppointments(appointments, asOf), nil
}

// PatientProfile composes the patient record, their assigned doctor and their
// classified appointments into a single view.
func (s *DefaultDashboardService) PatientProfile(ctx context.Context, patientID string, asOf time.Time) (*models.PatientProfile, error) {
	patient, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	profile := &models.PatientProfile{Patient: *patient}
	if patient.DoctorID != "" {
		if doctor, err := s.Doctors.GetByID(ctx, patient.DoctorID); err == nil {
			profile.Doctor = doctor
		}
	}

	appointments, err := s.Appointments.GetByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	profile.Appointments = booking.ClassifyAppointments(appointments, asOf)
	return profile, nil
}
