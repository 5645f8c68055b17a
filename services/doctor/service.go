package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	slotRepo "medibook/database/repository/slot"
	"medibook/models"

	"go.uber.org/zap"
)

// Registry failures surfaced to callers. A full roster is an expected
// outcome: the caller picks another doctor.
var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrCapacityFull   = errors.New("doctor has no roster capacity left")
	ErrSlotOverlap    = errors.New("provisioned slot overlaps an existing one")
)

// DoctorService covers the capacity registry and the doctor-side provisioning
// flows: doctor creation, roster snapshots, patient registration and slot
// schedule provisioning.
type DoctorService interface {
	CreateDoctor(ctx context.Context, req models.CreateDoctorRequest) (*models.Doctor, error)
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	Capacity(ctx context.Context, doctorID string) (*models.Capacity, error)
	RegisterPatient(ctx context.Context, req models.RegisterPatientRequest) (*models.Patient, error)
	ProvisionSlots(ctx context.Context, doctorID string, req models.CreateSlotsRequest) ([]string, error)
}

// DefaultDoctorService is the default implementation.
type DefaultDoctorService struct {
	Doctors  doctorRepo.DoctorRepository
	Patients patientRepo.PatientRepository
	Slots    slotRepo.SlotRepository
}

func (s *DefaultDoctorService) CreateDoctor(ctx context.Context, req models.CreateDoctorRequest) (*models.Doctor, error) {
	doctor := &models.Doctor{
		FullName:    req.FullName,
		Specialty:   req.Specialty,
		MaxPatients: req.MaxPatients,
	}
	if err := s.Doctors.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	zap.L().Info("doctor provisioned", zap.String("doctorId", doctor.ID), zap.String("fullName", doctor.FullName))
	return doctor, nil
}

func (s *DefaultDoctorService) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	return s.Doctors.GetAll(ctx)
}

// Capacity returns a roster snapshot. It may lag a concurrent registration;
// the registration path itself enforces the bound.
func (s *DefaultDoctorService) Capacity(ctx context.Context, doctorID string) (*models.Capacity, error) {
	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return &models.Capacity{Current: doctor.CurrentPatients, Maximum: doctor.MaxPatients}, nil
}

// RegisterPatient assigns a new patient to a doctor. The roster seat is
// reserved first through the registry's conditional increment; if persisting
// the patient then fails, the seat is released again.
func (s *DefaultDoctorService) RegisterPatient(ctx context.Context, req models.RegisterPatientRequest) (*models.Patient, error) {
	if err := s.Doctors.TryReserve(ctx, req.DoctorID); err != nil {
		switch {
		case errors.Is(err, doctorRepo.ErrCapacityFull):
			return nil, ErrCapacityFull
		case errors.Is(err, doctorRepo.ErrDoctorNotFound):
			return nil, ErrDoctorNotFound
		default:
			return nil, fmt.Errorf("roster reservation failed: %w", err)
		}
	}

	patient := &models.Patient{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		BirthDate:   req.BirthDate,
		Address:     req.Address,
		Gender:      req.Gender,
		DoctorID:    req.DoctorID,
	}
	if err := s.Patients.Create(ctx, patient); err != nil {
		if releaseErr := s.Doctors.Release(ctx, req.DoctorID); releaseErr != nil {
			zap.L().Error("failed to release roster seat after patient insert failure",
				zap.String("doctorId", req.DoctorID),
				zap.Error(releaseErr))
		}
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}

	zap.L().Info("patient registered",
		zap.String("patientId", patient.ID),
		zap.String("doctorId", patient.DoctorID))
	return patient, nil
}

// ProvisionSlots creates bookable windows for a doctor's schedule.
func (s *DefaultDoctorService) ProvisionSlots(ctx context.Context, doctorID string, req models.CreateSlotsRequest) ([]string, error) {
	if _, err := s.Doctors.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	slots := make([]models.AvailableSlot, 0, len(req.Slots))
	for _, in := range req.Slots {
		if _, err := time.Parse(models.SlotDateLayout, in.Date); err != nil {
			return nil, fmt.Errorf("invalid slot date %q: %w", in.Date, err)
		}
		if in.End <= in.Start {
			return nil, fmt.Errorf("slot on %s: end must be after start", in.Date)
		}
		slots = append(slots, models.AvailableSlot{Date: in.Date, Start: in.Start, End: in.End})
	}

	ids, err := s.Slots.CreateMany(ctx, doctorID, slots)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotOverlap) {
			return nil, ErrSlotOverlap
		}
		return nil, fmt.Errorf("failed to provision slots: %w", err)
	}
	zap.L().Info("slots provisioned", zap.String("doctorId", doctorID), zap.Int("count", len(ids)))
	return ids, nil
}
