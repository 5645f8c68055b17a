package handlers

import (
	"errors"
	"net/http"
	"time"

	"medibook/models"
	"medibook/services/dashboard"
	"medibook/services/doctor"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PatientHandler exposes patient registration and patient-side views.
type PatientHandler struct {
	Doctors   doctor.DoctorService
	Dashboard dashboard.DashboardService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(doctors doctor.DoctorService, dash dashboard.DashboardService) *PatientHandler {
	return &PatientHandler{Doctors: doctors, Dashboard: dash}
}

// RegisterPatient registers a patient under a family doctor. A full roster is
// an expected outcome and reports 409 so the client can pick another doctor.
// POST /api/patients/register
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var req models.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid registration payload", err.Error())
		return
	}

	patient, err := h.Doctors.RegisterPatient(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, doctor.ErrDoctorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, doctor.ErrCapacityFull):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			zap.L().Error("Failed to register patient", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register patient"})
		}
		return
	}
	c.JSON(http.StatusCreated, patient)
}

// GetUpcomingAppointments returns the patient's future appointments, soonest first.
// GET /api/patients/:id/upcomingAppointments
func (h *PatientHandler) GetUpcomingAppointments(c *gin.Context) {
	classified, err := h.Dashboard.PatientAppointments(c.Request.Context(), c.Param("id"), time.Now())
	if err != nil {
		if errors.Is(err, dashboard.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Failed to fetch patient appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"upcoming": classified.Upcoming})
}

// GetAppointments returns the patient's appointments split into upcoming and history.
// GET /api/patients/:id/appointments
func (h *PatientHandler) GetAppointments(c *gin.Context) {
	classified, err := h.Dashboard.PatientAppointments(c.Request.Context(), c.Param("id"), time.Now())
	if err != nil {
		if errors.Is(err, dashboard.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Failed to fetch patient appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}
	c.JSON(http.StatusOK, classified)
}

// GetProfile returns the composed patient view: profile, assigned doctor and
// classified appointments.
// GET /api/patients/:id
func (h *PatientHandler) GetProfile(c *gin.Context) {
	profile, err := h.Dashboard.PatientProfile(c.Request.Context(), c.Param("id"), time.Now())
	if err != nil {
		if errors.Is(err, dashboard.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Failed to fetch patient profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
