package web

import "net/http"

// registerRoutes wires all API routes. Method-scoped patterns keep the
// method checks out of the handlers; {id} segments are read with
// r.PathValue.
func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)

	// Camps
	mux.HandleFunc("GET /api/camps", handleListCamps)
	mux.HandleFunc("POST /api/camps", handleCreateCamp)
	mux.HandleFunc("GET /api/camps/{id}", handleGetCamp)

	// Schedule and exceptions
	mux.HandleFunc("PUT /api/camps/{id}/schedule", handleSetSchedule)
	mux.HandleFunc("GET /api/camps/{id}/exceptions", handleListExceptions)
	mux.HandleFunc("POST /api/camps/{id}/exceptions", handleRecordException)

	// Calendar
	mux.HandleFunc("GET /api/camps/{id}/calendar", handleCampCalendar)
	mux.HandleFunc("GET /api/camps/{id}/calendar.ics", handleCampCalendarICS)

	// Registrations
	mux.HandleFunc("POST /api/camps/{id}/registrations", handleRegisterCamper)
	mux.HandleFunc("GET /api/camps/{id}/roster", handleRoster)
	mux.HandleFunc("POST /api/registrations/{id}/cancel", handleCancelRegistration)

	// Announcements
	mux.HandleFunc("GET /api/camps/{id}/announcements", handleAnnouncements)
	mux.HandleFunc("POST /api/camps/{id}/announcements", handleAnnouncements)

	// Dashboard
	mux.HandleFunc("GET /api/sessions/today", handleTodaysSessions)

	// Admin
	mux.HandleFunc("GET /api/accounts", handleAccounts)
	mux.HandleFunc("POST /api/accounts", handleAccounts)
	mux.HandleFunc("GET /api/admin/perf", handleAdminPerf)
}
