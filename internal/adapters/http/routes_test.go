package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	campDomain "camphq/internal/domain/camp"
)

// newTestMux builds the full handler stack over mock stores, with the rate
// limit raised so tests never trip it.
func newTestMux(t *testing.T) http.Handler {
	t.Helper()
	prev := RateLimitPerSecond
	RateLimitPerSecond = 1000
	t.Cleanup(func() { RateLimitPerSecond = prev })

	h := NewMux(newFullStores(), nil)
	emailSender = &mockSender{}
	emailFromAddress = "CampHQ <noreply@camphq.test>"
	return h
}

func TestRoutes_ListCampsThroughStack(t *testing.T) {
	h := newTestMux(t)
	seedCamp(t, campDomain.StatusPublished)

	req := httptest.NewRequest("GET", "/api/camps", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var camps []campSummary
	if err := json.NewDecoder(rec.Body).Decode(&camps); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(camps) != 1 {
		t.Errorf("got %d camps, want 1", len(camps))
	}
}

func TestRoutes_SecurityHeadersApplied(t *testing.T) {
	h := newTestMux(t)

	req := httptest.NewRequest("GET", "/api/camps", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); !strings.Contains(got, "default-src 'self'") {
		t.Errorf("missing CSP header, got %q", got)
	}
}

func TestRoutes_MethodScoping(t *testing.T) {
	h := newTestMux(t)

	req := httptest.NewRequest("DELETE", "/api/camps", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("got %d, want 405", rec.Code)
	}
}

func TestRoutes_UnknownPath(t *testing.T) {
	h := newTestMux(t)

	req := httptest.NewRequest("GET", "/api/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}

func TestRoutes_ProtectedEndpointsRejectAnonymous(t *testing.T) {
	h := newTestMux(t)
	seedCamp(t, campDomain.StatusPublished)

	protected := []struct {
		method, path string
	}{
		{"PUT", "/api/camps/c1/schedule"},
		{"POST", "/api/camps/c1/exceptions"},
		{"GET", "/api/camps/c1/roster"},
		{"POST", "/api/registrations/g1/cancel"},
		{"GET", "/api/accounts"},
		{"GET", "/api/admin/perf"},
	}
	for _, p := range protected {
		var req *http.Request
		if p.method == "GET" {
			req = httptest.NewRequest(p.method, p.path, nil)
		} else {
			req = httptest.NewRequest(p.method, p.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", p.method, p.path, rec.Code)
		}
	}
}

func TestRoutes_CalendarICSPublic(t *testing.T) {
	h := newTestMux(t)
	seedCamp(t, campDomain.StatusPublished)
	seedMondayRule(t)

	req := httptest.NewRequest("GET", "/api/camps/c1/calendar.ics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("response is not an iCalendar feed")
	}
}
