package handlers

import (
	"errors"
	"net/http"
	"time"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/booking"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// GetAvailableTimes returns a doctor's open slots at or after the given date.
// GET /api/available_times?doctor_id=...&from=YYYY-MM-DD
func (h *BookingHandler) GetAvailableTimes(c *gin.Context) {
	doctorID := c.Query("doctor_id")
	if doctorID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing doctor_id", "doctor_id query parameter is required")
		return
	}
	fromDate := c.Query("from")

	slots, err := h.Service.AvailableSlots(c.Request.Context(), doctorID, fromDate)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidDate) {
			utils.JSONError(c, http.StatusBadRequest, "invalid from date", err.Error())
			return
		}
		h.Logger.Error("failed to list available times", zap.String("doctorId", doctorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list available times, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// BookAppointment submits a booking intent for one slot.
// POST /api/book_appointment
func (h *BookingHandler) BookAppointment(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload", err.Error())
		return
	}

	appointment, err := h.Service.BookSlot(c.Request.Context(), principal, req, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrPatientNotFound), errors.Is(err, booking.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrSlotExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrSlotTaken):
			// Expected outcome of a lost race, not a fault.
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.Logger.Error("booking failed", zap.String("slotId", req.SlotID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "booking failed, please retry"})
		}
		return
	}

	c.JSON(http.StatusCreated, appointment)
}
