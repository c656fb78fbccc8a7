/*
handlers.go - HTTP handlers for the timesheet API

PURPOSE:
  Exposes the timesheet core over REST. Handles HTTP request/response, JSON
  serialization, session checks, and delegates everything else to the
  domain packages.

ENDPOINTS:
  POST   /api/login                Authenticate, mint a session token
  POST   /api/logout               Revoke the session
  GET    /api/period               Current period label and bounds
  GET    /api/entries              Current-period entries, densified
  PUT    /api/entries              Batch save (natural-key upsert)
  GET    /api/admin/report         Previous-completed-period summary
  GET    /api/admin/report/export  Detail rows as CSV or XLSX

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Missing/expired session, failed login
  - 403: Non-admin hitting admin routes
  - 500: Store failures

  An empty reporting window is NOT an error: the report endpoints return
  200 with empty rows and an informational message. Every failure leaves
  the caller free to retry; nothing here is fatal to the process.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - session.go: Token registry
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/nickharris808/tribalhours/timesheet"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Users    timesheet.UserStore
	Entries  timesheet.EntryStore
	Scheme   timesheet.IdentityScheme
	Sessions *Sessions

	// Now supplies "today" for period math. Overridable in tests.
	Now func() timesheet.TimePoint
}

// NewHandler creates a handler around the injected stores.
func NewHandler(users timesheet.UserStore, entries timesheet.EntryStore, scheme timesheet.IdentityScheme) *Handler {
	return &Handler{
		Users:    users,
		Entries:  entries,
		Scheme:   scheme,
		Sessions: NewSessions(),
		Now:      timesheet.Today,
	}
}

// =============================================================================
// AUTH
// =============================================================================

// Login matches the presented identity fields against the user table under
// the configured scheme. Failure changes nothing server-side.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	creds := timesheet.Credentials{
		Email:       req.Email,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}

	user, err := h.Users.FindUser(r.Context(), h.Scheme, creds)
	if timesheet.IsNotFound(err) || timesheet.IsClientError(err) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up user", err)
		return
	}

	sess := h.Sessions.Create(*user)
	writeJSON(w, http.StatusOK, LoginResponse{Token: sess.Token, User: userDTO(*user)})
}

// Logout revokes the presented token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		h.Sessions.Revoke(token)
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// session authenticates a request, writing the error response itself when
// the token is missing or stale.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (Session, bool) {
	sess, ok := h.Sessions.Get(bearerToken(r.Header.Get("Authorization")))
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not logged in", nil)
		return Session{}, false
	}
	return sess, true
}

func (h *Handler) adminSession(w http.ResponseWriter, r *http.Request) (Session, bool) {
	sess, ok := h.session(w, r)
	if !ok {
		return Session{}, false
	}
	if !sess.User.IsAdmin {
		writeError(w, http.StatusForbidden, "Admin access required", nil)
		return Session{}, false
	}
	return sess, true
}

// =============================================================================
// PERIOD + ENTRIES
// =============================================================================

// GetPeriod returns the current period bounds, for form headers.
func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, periodDTO(timesheet.CurrentPeriod(h.Now())))
}

// GetEntries returns the session user's current-period entries, reconciled
// to one row per calendar day.
func (h *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	period := timesheet.CurrentPeriod(h.Now())
	entries, err := h.Entries.FetchEntries(r.Context(), sess.User.ID, period.Start, period.End)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch entries", err)
		return
	}

	dense := timesheet.Reconcile(entries, period, sess.User.ID)
	dtos := make([]EntryDTO, len(dense))
	for i, e := range dense {
		dtos[i] = entryDTO(e)
	}

	writeJSON(w, http.StatusOK, EntriesResponse{Period: periodDTO(period), Entries: dtos})
}

// SaveEntries upserts a submitted batch of entries for the session user.
// Dates outside the current period are rejected rather than silently
// written into someone else's billing window.
func (h *Handler) SaveEntries(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SaveEntriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period := timesheet.CurrentPeriod(h.Now())
	entries := make([]timesheet.WorkEntry, 0, len(req.Entries))
	for _, dto := range req.Entries {
		entry, err := dto.toEntry(sess.User.ID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		if !period.Contains(entry.Date) {
			writeError(w, http.StatusBadRequest, "Date outside current period: "+entry.Date.String(), nil)
			return
		}
		if err := entry.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid entry", err)
			return
		}
		entries = append(entries, entry)
	}

	if err := h.Entries.UpsertBatch(r.Context(), entries); err != nil {
		if timesheet.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid entry", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save entries", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"saved": len(entries)})
}

// =============================================================================
// ADMIN REPORTING
// =============================================================================

// buildReport assembles the previous-completed-period report.
func (h *Handler) buildReport(r *http.Request) (timesheet.Report, error) {
	period := timesheet.PreviousCompletedPeriod(h.Now())

	entries, err := h.Entries.FetchAllEntries(r.Context(), period.Start, period.End)
	if err != nil {
		return timesheet.Report{}, err
	}
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		return timesheet.Report{}, err
	}
	return timesheet.Aggregate(entries, users, period), nil
}

// AdminReport returns per-user totals and detail rows for the last
// completed period.
func (h *Handler) AdminReport(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.adminSession(w, r); !ok {
		return
	}

	report, err := h.buildReport(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	resp := ReportResponse{
		Period: periodDTO(report.Period),
		Rows:   make([]ReportRowDTO, len(report.Rows)),
		Detail: make([]ReportDetailDTO, len(report.Detail)),
	}
	for i, row := range report.Rows {
		resp.Rows[i] = ReportRowDTO{
			UserID:     row.UserID,
			Email:      row.Email,
			LastName:   row.LastName,
			TotalHours: row.TotalHours.InexactFloat64(),
		}
	}
	for i, d := range report.Detail {
		resp.Detail[i] = detailDTO(d)
	}
	if report.Empty() {
		resp.Message = "No data available for the last completed period."
	}

	writeJSON(w, http.StatusOK, resp)
}

// ExportReport streams the detail rows as a file download.
// Formats: csv (default) and xlsx.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.adminSession(w, r); !ok {
		return
	}

	report, err := h.buildReport(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "csv":
		if err := writeReportCSV(w, report); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to write CSV", err)
		}
	case "xlsx":
		if err := writeReportXLSX(w, report); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to write XLSX", err)
		}
	default:
		writeError(w, http.StatusBadRequest, "Unknown format (use csv or xlsx)", nil)
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
