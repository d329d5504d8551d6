package http

import (
	"net/http"

	"mediconnect/internal/delivery/http/handler"
	"mediconnect/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	userHandler           *handler.UserHandler
	appointmentHandler    *handler.AppointmentHandler
	adviceHandler         *handler.AdviceHandler
	adminHandler          *handler.AdminHandler
	auditLogHandler       *handler.AuditLogHandler
	navigationHandler     *handler.NavigationHandler
	authMiddleware        *middleware.AuthMiddleware
	maintenanceMiddleware *middleware.MaintenanceMiddleware
	loggingMiddleware     *middleware.LoggingMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	appointmentHandler *handler.AppointmentHandler,
	adviceHandler *handler.AdviceHandler,
	adminHandler *handler.AdminHandler,
	auditLogHandler *handler.AuditLogHandler,
	navigationHandler *handler.NavigationHandler,
	authMiddleware *middleware.AuthMiddleware,
	maintenanceMiddleware *middleware.MaintenanceMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		userHandler:           userHandler,
		appointmentHandler:    appointmentHandler,
		adviceHandler:         adviceHandler,
		adminHandler:          adminHandler,
		auditLogHandler:       auditLogHandler,
		navigationHandler:     navigationHandler,
		authMiddleware:        authMiddleware,
		maintenanceMiddleware: maintenanceMiddleware,
		loggingMiddleware:     loggingMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.Use(r.authMiddleware.Identify)

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Navigation (public, session-aware)
	api.HandleFunc("/navigate", r.navigationHandler.Navigate).Methods(http.MethodGet)

	// Auth routes (public, reachable during maintenance)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Health assistant (any signed-in user)
	advice := api.PathPrefix("/advice").Subrouter()
	advice.Use(r.maintenanceMiddleware.Handle, r.authMiddleware.Authenticate)
	advice.HandleFunc("", r.adviceHandler.Ask).Methods(http.MethodPost)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.maintenanceMiddleware.Handle, r.authMiddleware.Authenticate, middleware.RequirePatient)
	patient.HandleFunc("/doctors", r.userHandler.GetDoctors).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.maintenanceMiddleware.Handle, r.authMiddleware.Authenticate, middleware.RequireDoctor)
	doctor.HandleFunc("/appointments", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPost)
	doctor.HandleFunc("/stats", r.appointmentHandler.GetDoctorStats).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate, middleware.RequireAdmin)
	admin.HandleFunc("/users", r.userHandler.GetAllUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPost)
	admin.HandleFunc("/stats", r.adminHandler.GetStats).Methods(http.MethodGet)
	admin.HandleFunc("/settings", r.adminHandler.GetSettings).Methods(http.MethodGet)
	admin.HandleFunc("/settings", r.adminHandler.UpdateSettings).Methods(http.MethodPut)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)

	// Add logging and CORS middleware
	r.router.Use(r.loggingMiddleware.Handle, r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
