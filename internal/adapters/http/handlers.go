package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"camphq/internal/adapters/http/middleware"
	"camphq/internal/adapters/ingest"
	"camphq/internal/application/listutil"
	"camphq/internal/application/orchestrators"
	"camphq/internal/application/projections"
	accountDomain "camphq/internal/domain/account"
	announcementDomain "camphq/internal/domain/announcement"
	campDomain "camphq/internal/domain/camp"
	"camphq/internal/domain/civil"
	registrationDomain "camphq/internal/domain/registration"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts markdown to sanitized HTML, falling back to the
// raw text when conversion fails.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v with the JSON content type and the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireStaff checks the session for a staff or admin role.
// Returns false if the request should not proceed.
func requireStaff(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	if sess.Role != accountDomain.RoleAdmin && sess.Role != accountDomain.RoleStaff {
		slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role, "required", "staff")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// requireAdmin checks the session for the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	if sess.Role != accountDomain.RoleAdmin {
		slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role, "required", "admin")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// handleLogin handles POST /api/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"Email"`
		Password string `json:"Password"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			http.Error(w, err.Error(), http.StatusLocked)
			return
		}
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := sessions.Create(result.AccountID, result.OrganizationID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"AccountID": result.AccountID,
		"Email":     result.Email,
		"Role":      result.Role,
	})
}

// handleLogout handles POST /api/logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("camphq_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// campSummary is the list-view shape of a camp, with its weekly schedule
// rendered as summary lines.
type campSummary struct {
	ID        string
	Name      string
	Location  string
	StartDate string
	EndDate   string
	Capacity  int
	Status    string
	Schedule  []string
}

// handleListCamps handles GET /api/camps. Anonymous callers see published
// camps; staff see every camp in their organization.
func handleListCamps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var camps []campDomain.Camp
	var err error
	if sess, ok := middleware.GetSessionFromContext(ctx); ok && middleware.IsStaffOrAdmin(ctx) {
		camps, err = stores.CampStore.ListByOrganizationID(ctx, sess.OrganizationID)
	} else {
		camps, err = stores.CampStore.ListPublished(ctx)
	}
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]campSummary, 0, len(camps))
	for _, c := range camps {
		summary, err := projections.QueryGetScheduleSummary(ctx, c.ID, projections.GetScheduleSummaryDeps{
			ScheduleStore: stores.ScheduleStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		out = append(out, campSummary{
			ID:        c.ID,
			Name:      c.Name,
			Location:  c.Location,
			StartDate: c.StartDate.String(),
			EndDate:   c.EndDate.String(),
			Capacity:  c.Capacity,
			Status:    c.Status,
			Schedule:  summary.Lines,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateCamp handles POST /api/camps
func handleCreateCamp(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireStaff(w, r)
	if !ok {
		return
	}

	var input struct {
		Name        string `json:"Name"`
		Description string `json:"Description"`
		Location    string `json:"Location"`
		StartDate   string `json:"StartDate"`
		EndDate     string `json:"EndDate"`
		Capacity    int    `json:"Capacity"`
		Publish     bool   `json:"Publish"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	startDate, err := ingest.ParseDate(input.StartDate)
	if err != nil {
		http.Error(w, "StartDate: "+err.Error(), http.StatusBadRequest)
		return
	}
	endDate, err := ingest.ParseDate(input.EndDate)
	if err != nil {
		http.Error(w, "EndDate: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := orchestrators.ExecuteCreateCamp(r.Context(), orchestrators.CreateCampInput{
		OrganizationID: sess.OrganizationID,
		Name:           input.Name,
		Description:    input.Description,
		Location:       input.Location,
		StartDate:      startDate,
		EndDate:        endDate,
		Capacity:       input.Capacity,
		Publish:        input.Publish,
	}, orchestrators.CreateCampDeps{
		CampStore:         stores.CampStore,
		OrganizationStore: stores.OrganizationStore,
		GenerateID:        generateID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"ID": id})
}

// handleGetCamp handles GET /api/camps/{id}. Draft camps are visible only
// to staff.
func handleGetCamp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	c, err := stores.CampStore.GetByID(ctx, id)
	if err != nil {
		http.Error(w, "camp not found", http.StatusNotFound)
		return
	}
	if !c.IsPublished() && !middleware.IsStaffOrAdmin(ctx) {
		http.Error(w, "camp not found", http.StatusNotFound)
		return
	}

	summary, err := projections.QueryGetScheduleSummary(ctx, c.ID, projections.GetScheduleSummaryDeps{
		ScheduleStore: stores.ScheduleStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ID":              c.ID,
		"Name":            c.Name,
		"Description":     c.Description,
		"DescriptionHTML": renderMarkdown(c.Description),
		"Location":        c.Location,
		"StartDate":       c.StartDate.String(),
		"EndDate":         c.EndDate.String(),
		"Capacity":        c.Capacity,
		"Status":          c.Status,
		"Schedule":        summary.Lines,
	})
}

// handleSetSchedule handles PUT /api/camps/{id}/schedule. The body carries
// the complete replacement rule set; the whole set is rejected when any
// record is bad.
func handleSetSchedule(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireStaff(w, r); !ok {
		return
	}

	var input struct {
		Rules []ingest.RuleRecord `json:"Rules"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	count, err := orchestrators.ExecuteSetCampSchedule(r.Context(), orchestrators.SetCampScheduleInput{
		CampID:  r.PathValue("id"),
		Records: input.Rules,
	}, orchestrators.SetCampScheduleDeps{
		CampStore:     stores.CampStore,
		ScheduleStore: stores.ScheduleStore,
		GenerateID:    generateID,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrCampNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"Count": count})
}

// handleListExceptions handles GET /api/camps/{id}/exceptions
func handleListExceptions(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireStaff(w, r); !ok {
		return
	}

	excs, err := stores.ExceptionStore.ListByCampID(r.Context(), r.PathValue("id"))
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, excs)
}

// handleRecordException handles POST /api/camps/{id}/exceptions. Recording
// a second exception for the same date overwrites the first.
func handleRecordException(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireStaff(w, r)
	if !ok {
		return
	}

	var record ingest.ExceptionRecord
	if err := strictDecode(r, &record); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	id, err := orchestrators.ExecuteRecordException(r.Context(), orchestrators.RecordExceptionInput{
		CampID:    r.PathValue("id"),
		Record:    record,
		CreatedBy: sess.AccountID,
	}, orchestrators.RecordExceptionDeps{
		CampStore:         stores.CampStore,
		ExceptionStore:    stores.ExceptionStore,
		AnnouncementStore: stores.AnnouncementStore,
		GenerateID:        generateID,
		Now:               timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrCampNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"ID": id})
}

// handleRegisterCamper handles POST /api/camps/{id}/registrations.
// Public endpoint: parents register without an account.
func handleRegisterCamper(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CamperName      string `json:"CamperName"`
		CamperBirthDate string `json:"CamperBirthDate"`
		ParentName      string `json:"ParentName"`
		ParentEmail     string `json:"ParentEmail"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	birthDate, err := ingest.ParseDate(input.CamperBirthDate)
	if err != nil {
		http.Error(w, "CamperBirthDate: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteRegisterCamper(r.Context(), orchestrators.RegisterCamperInput{
		CampID:          r.PathValue("id"),
		CamperName:      input.CamperName,
		CamperBirthDate: birthDate,
		ParentName:      input.ParentName,
		ParentEmail:     input.ParentEmail,
	}, orchestrators.RegisterCamperDeps{
		CampStore:         stores.CampStore,
		RegistrationStore: stores.RegistrationStore,
		ScheduleStore:     stores.ScheduleStore,
		EmailSender:       emailSender,
		GenerateID:        generateID,
		Now:               timeNow,
		FromAddress:       emailFromAddress,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrCampNotOpen) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"RegistrationID": result.RegistrationID,
		"Status":         result.Status,
	})
}

// handleRoster handles GET /api/camps/{id}/roster with pagination, sorting,
// search and status filtering.
func handleRoster(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireStaff(w, r); !ok {
		return
	}

	params := listutil.ParseListParams(r.URL.Query(),
		projections.RosterSortColumns,
		projections.RosterFilterKeys,
	)

	result, err := projections.QueryGetRoster(r.Context(), r.PathValue("id"), params, projections.GetRosterDeps{
		CampStore:         stores.CampStore,
		RegistrationStore: stores.RegistrationStore,
	})
	if err != nil {
		if errors.Is(err, projections.ErrCampNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleCancelRegistration handles POST /api/registrations/{id}/cancel.
// Freeing an active spot promotes the longest-waiting waitlisted camper.
func handleCancelRegistration(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireStaff(w, r); !ok {
		return
	}

	result, err := orchestrators.ExecuteCancelRegistration(r.Context(), orchestrators.CancelRegistrationInput{
		RegistrationID: r.PathValue("id"),
	}, orchestrators.CancelRegistrationDeps{
		CampStore:         stores.CampStore,
		RegistrationStore: stores.RegistrationStore,
		EmailSender:       emailSender,
		FromAddress:       emailFromAddress,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrRegistrationNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, registrationDomain.ErrAlreadyCancelled) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"CancelledID": result.CancelledID,
		"PromotedID":  result.PromotedID,
	})
}

// handleAnnouncements handles GET/POST for /api/camps/{id}/announcements.
// Anonymous callers see published announcements only.
func handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	campID := r.PathValue("id")

	if r.Method == "GET" {
		var list []announcementDomain.Announcement
		var err error
		if middleware.IsStaffOrAdmin(ctx) {
			list, err = stores.AnnouncementStore.ListByCampID(ctx, campID)
		} else {
			list, err = stores.AnnouncementStore.ListPublishedByCampID(ctx, campID)
		}
		if err != nil {
			internalError(w, err)
			return
		}

		type announcementView struct {
			ID        string
			Type      string
			Status    string
			Title     string
			Body      string
			BodyHTML  string
			CreatedAt time.Time
		}
		out := make([]announcementView, 0, len(list))
		for _, a := range list {
			out = append(out, announcementView{
				ID:        a.ID,
				Type:      a.Type,
				Status:    a.Status,
				Title:     a.Title,
				Body:      a.Body,
				BodyHTML:  renderMarkdown(a.Body),
				CreatedAt: a.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	// POST: publish an announcement
	sess, ok := requireStaff(w, r)
	if !ok {
		return
	}
	var input struct {
		Type  string `json:"Type"`
		Title string `json:"Title"`
		Body  string `json:"Body"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if _, err := stores.CampStore.GetByID(ctx, campID); err != nil {
		http.Error(w, "camp not found", http.StatusNotFound)
		return
	}

	a := announcementDomain.Announcement{
		ID:        generateID(),
		CampID:    campID,
		Type:      input.Type,
		Status:    announcementDomain.StatusPublished,
		Title:     input.Title,
		Body:      input.Body,
		CreatedBy: sess.AccountID,
		CreatedAt: timeNow(),
	}
	if err := a.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := stores.AnnouncementStore.Save(ctx, a); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// handleTodaysSessions handles GET /api/sessions/today. The optional date
// query overrides the server clock, mainly for dashboards reviewing another
// day.
func handleTodaysSessions(w http.ResponseWriter, r *http.Request) {
	var today civil.Date
	if s := r.URL.Query().Get("date"); s != "" {
		var err error
		today, err = ingest.ParseDate(s)
		if err != nil {
			http.Error(w, "date: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		// The server's local clock decides which calendar day "today" is.
		now := timeNow()
		today = civil.Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
	}

	results, err := projections.QueryGetTodaysSessions(r.Context(), today, projections.GetTodaysSessionsDeps{
		CampStore:      stores.CampStore,
		ScheduleStore:  stores.ScheduleStore,
		ExceptionStore: stores.ExceptionStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	if results == nil {
		results = []projections.TodaysSessionResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

// handleAccounts handles GET/POST for /api/accounts (admin only).
func handleAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		accounts, err := stores.AccountStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		// Strip password hashes from the response
		type safeAccount struct {
			ID    string
			Email string
			Role  string
		}
		safe := make([]safeAccount, 0, len(accounts))
		for _, a := range accounts {
			safe = append(safe, safeAccount{ID: a.ID, Email: a.Email, Role: a.Role})
		}
		writeJSON(w, http.StatusOK, safe)
		return
	}

	// POST: create an account
	sess, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	var input struct {
		Email    string `json:"Email"`
		Password string `json:"Password"`
		Role     string `json:"Role"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	id, err := orchestrators.ExecuteCreateAccount(ctx, orchestrators.CreateAccountInput{
		OrganizationID: sess.OrganizationID,
		Email:          input.Email,
		Password:       input.Password,
		Role:           input.Role,
	}, orchestrators.CreateAccountDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailAlreadyExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"ID": id, "Email": input.Email, "Role": input.Role})
}

// handleAdminPerf handles GET /api/admin/perf — request/query timings for
// the last hour.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusServiceUnavailable)
		return
	}
	snapshot := perfCollector.Snapshot(timeNow().Add(-time.Hour), 20)
	writeJSON(w, http.StatusOK, snapshot)
}
