// File: handlers/admin.go
package handlers

import (
	"net/http"
	"time"

	"medibook/services/dashboard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Dashboard dashboard.DashboardService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(dash dashboard.DashboardService) *AdminHandler {
	return &AdminHandler{Dashboard: dash}
}

// GetMetrics returns the cross-doctor aggregates for the admin dashboard.
// GET /api/admin/metrics
func (ah *AdminHandler) GetMetrics(c *gin.Context) {
	metrics, err := ah.Dashboard.Metrics(c.Request.Context(), time.Now())
	if err != nil {
		zap.L().Error("Failed to assemble dashboard metrics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metrics"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}
