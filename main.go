package main

import (
	"log"
	"net/http"

	"dochadzka/config"
	"dochadzka/database"
	"dochadzka/export"
	"dochadzka/handlers"
	"dochadzka/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	uploader := &export.FTPUploader{
		Addr:     cfg.FTPAddr,
		User:     cfg.FTPUser,
		Password: cfg.FTPPassword,
		BaseURL:  cfg.PublicBaseURL,
	}

	// Initialize handlers
	attendanceHandler := handlers.NewAttendanceHandler(cfg)
	storeHandler := handlers.NewStoreHandler(cfg)
	adminHandler := handlers.NewAdminHandler(cfg)
	exportHandler := handlers.NewExportHandler(cfg, uploader)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Kiosk routes
	router.Post("/api/attendance", attendanceHandler.Create)
	router.Get("/api/attendance", attendanceHandler.List)
	router.Get("/api/attendance/active", attendanceHandler.Active)
	router.Get("/api/attendance/overview", attendanceHandler.Overview)
	router.Get("/api/attendance/lunches", attendanceHandler.Lunches)
	router.Post("/api/attendance/lunch", attendanceHandler.CreateLunch)
	router.Post("/api/attendance/vacation", attendanceHandler.CreateVacation)
	router.Post("/api/uploads/ftp", exportHandler.UploadPhoto)
	router.Get("/api/stores", storeHandler.List)
	router.Get("/api/stores/limits", storeHandler.GetLimits)
	router.Get("/api/stores/opening-hours", storeHandler.GetOpeningHours)
	router.Get("/api/stores/fix-opening-hours", storeHandler.GetFixOpeningHours)
	router.Get("/api/stores/fix-closing-hours", storeHandler.GetFixClosingHours)
	router.Get("/api/employees", adminHandler.Employees)
	router.Get("/api/settings", adminHandler.GetSettings)
	router.Post("/api/settings", adminHandler.UpdateSettings)
	router.Post("/api/verify-admin-code", adminHandler.VerifyCode)
	router.Get("/api/admin-code", adminHandler.GetCode)

	// Manager routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth)

		r.Post("/api/admin-code", adminHandler.UpdateCode)
		r.Post("/api/employees/rename", adminHandler.RenameEmployee)
		r.Post("/api/stores/limits", storeHandler.SetLimits)
		r.Post("/api/stores/opening-hours", storeHandler.SetOpeningHours)
		r.Post("/api/stores/fix-opening-hours", storeHandler.SetFixOpeningHours)
		r.Post("/api/stores/fix-closing-hours", storeHandler.SetFixClosingHours)
		r.Delete("/api/attendance/vacation", attendanceHandler.DeleteVacations)
		r.Post("/api/attendance/delete-range", attendanceHandler.DeleteShiftRange)
		r.Post("/api/lunch/delete-range", attendanceHandler.DeleteLunchRange)
		r.Post("/api/vacation/delete-range", attendanceHandler.DeleteVacationRange)
		r.Post("/api/export/individual", exportHandler.Individual)
		r.Post("/api/export/summary", exportHandler.Summary)
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
