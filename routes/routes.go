package routes

import (
	"net/http"
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the slot browsing and booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/available_times", bh.GetAvailableTimes)
		api.POST("/book_appointment", bh.BookAppointment)
	}
}

// RegisterDoctorRoutes registers doctor listing, capacity and schedule endpoints.
func RegisterDoctorRoutes(r *gin.Engine, dh *handlers.DoctorHandler) {
	api := r.Group("/api/doctors")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("", dh.ListDoctors)
		api.GET("/:id/capacity", dh.GetCapacity)

		api.POST("", middleware.RequireRoles(models.RoleAdmin), dh.CreateDoctor)
		api.POST("/:id/slots", middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor), dh.ProvisionSlots)
		api.GET("/:id/appointments", middleware.RequireSelfOrRoles(models.RoleAdmin), dh.GetSchedule)
	}
}

// RegisterPatientRoutes registers patient registration and patient views.
func RegisterPatientRoutes(r *gin.Engine, ph *handlers.PatientHandler) {
	api := r.Group("/api/patients")
	{
		// Registration happens before the patient holds a token.
		api.POST("/register", ph.RegisterPatient)

		// Patient-owned views: the patient themself, their doctor, or an admin.
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		protected.GET("/:id", middleware.RequireSelfOrRoles(models.RoleAdmin, models.RoleDoctor), ph.GetProfile)
		protected.GET("/:id/appointments", middleware.RequireSelfOrRoles(models.RoleAdmin, models.RoleDoctor), ph.GetAppointments)
		protected.GET("/:id/upcomingAppointments", middleware.RequireSelfOrRoles(models.RoleAdmin, models.RoleDoctor), ph.GetUpcomingAppointments)
	}
}

// RegisterAdminRoutes registers the admin dashboard endpoints.
func RegisterAdminRoutes(r *gin.Engine, ah *handlers.AdminHandler) {
	api := r.Group("/api/admin")
	api.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
	{
		api.GET("/metrics", ah.GetMetrics)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes wires CORS and every route group onto the router.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, dh *handlers.DoctorHandler, ph *handlers.PatientHandler, ah *handlers.AdminHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bh)
	RegisterDoctorRoutes(r, dh)
	RegisterPatientRoutes(r, ph)
	RegisterAdminRoutes(r, ah)
}
