package handlers

import (
	"errors"
	"net/http"
	"time"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/dashboard"
	"medibook/services/doctor"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler exposes doctor listing, capacity snapshots and schedule
// provisioning.
type DoctorHandler struct {
	Service   doctor.DoctorService
	Dashboard dashboard.DashboardService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(svc doctor.DoctorService, dash dashboard.DashboardService) *DoctorHandler {
	return &DoctorHandler{Service: svc, Dashboard: dash}
}

// ListDoctors returns all doctors with their roster utilization.
// GET /api/doctors
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.Service.ListDoctors(c.Request.Context())
	if err != nil {
		zap.L().Error("Failed to fetch doctors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch doctors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

// GetCapacity returns one doctor's current/maximum roster snapshot.
// GET /api/doctors/:id/capacity
func (h *DoctorHandler) GetCapacity(c *gin.Context) {
	capacity, err := h.Service.Capacity(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Failed to fetch capacity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch capacity"})
		return
	}
	c.JSON(http.StatusOK, capacity)
}

// CreateDoctor provisions a new doctor (admin only).
// POST /api/doctors
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req models.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid doctor payload", err.Error())
		return
	}
	created, err := h.Service.CreateDoctor(c.Request.Context(), req)
	if err != nil {
		zap.L().Error("Failed to create doctor", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create doctor"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ProvisionSlots creates bookable windows on a doctor's schedule. Allowed for
// admins and for the doctor who owns the schedule.
// POST /api/doctors/:id/slots
func (h *DoctorHandler) ProvisionSlots(c *gin.Context) {
	doctorID := c.Param("id")
	principal, _ := middleware.GetPrincipal(c)
	if principal.Role == models.RoleDoctor && principal.ID != doctorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot provision another doctor's schedule"})
		return
	}

	var req models.CreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid slots payload", err.Error())
		return
	}

	ids, err := h.Service.ProvisionSlots(c.Request.Context(), doctorID, req)
	if err != nil {
		switch {
		case errors.Is(err, doctor.ErrDoctorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, doctor.ErrSlotOverlap):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			utils.JSONError(c, http.StatusBadRequest, "failed to provision slots", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slotIds": ids})
}

// GetSchedule returns a doctor's appointments: the ?date=YYYY-MM-DD day view,
// or the full upcoming/history split when no date is given.
// GET /api/doctors/:id/appointments
func (h *DoctorHandler) GetSchedule(c *gin.Context) {
	doctorID := c.Param("id")
	if date := c.Query("date"); date != "" {
		if _, err := time.Parse(models.SlotDateLayout, date); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		appointments, err := h.Dashboard.DoctorDay(c.Request.Context(), doctorID, date)
		if err != nil {
			if errors.Is(err, dashboard.ErrDoctorNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			zap.L().Error("Failed to fetch doctor day", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"date": date, "appointments": appointments})
		return
	}

	classified, err := h.Dashboard.DoctorAppointments(c.Request.Context(), doctorID, time.Now())
	if err != nil {
		zap.L().Error("Failed to fetch doctor appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}
	c.JSON(http.StatusOK, classified)
}
