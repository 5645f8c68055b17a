// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	slotRepo "medibook/database/repository/slot"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/booking"
	"medibook/services/dashboard"
	"medibook/services/doctor"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	slots := slotRepo.NewMongoSlotRepo()
	doctors := doctorRepo.NewMongoDoctorRepo()
	patients := patientRepo.NewMongoPatientRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	cache := utils.GetCacheClient()
	bookingService := &booking.DefaultBookingService{
		Slots:        slots,
		Appointments: appointments,
		Patients:     patients,
		Cache:        cache,
	}
	doctorService := &doctor.DefaultDoctorService{
		Doctors:  doctors,
		Patients: patients,
		Slots:    slots,
	}
	dashboardService := &dashboard.DefaultDashboardService{
		Doctors:      doctors,
		Patients:     patients,
		Appointments: appointments,
		Cache:        cache,
	}

	// handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	doctorHandler := handlers.NewDoctorHandler(doctorService, dashboardService)
	patientHandler := handlers.NewPatientHandler(doctorService, dashboardService)
	adminHandler := handlers.NewAdminHandler(dashboardService)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, doctorHandler, patientHandler, adminHandler)

	// Background sweep for expired open slots.
	cron.InitSlotSweeper(slots)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
