package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"camphq/internal/application/listutil"
	domainCamp "camphq/internal/domain/camp"
	"camphq/internal/domain/civil"
	domainRegistration "camphq/internal/domain/registration"
)

type mockRosterRegistrationStore struct {
	regs []domainRegistration.Registration
}

func (m *mockRosterRegistrationStore) ListByCampID(_ context.Context, campID string) ([]domainRegistration.Registration, error) {
	var out []domainRegistration.Registration
	for _, r := range m.regs {
		if r.CampID == campID {
			out = append(out, r)
		}
	}
	return out, nil
}

func rosterFixture() []domainRegistration.Registration {
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	birth := civil.Date{Year: 2014, Month: 3, Day: 12}
	return []domainRegistration.Registration{
		{ID: "g1", CampID: "c1", CamperName: "Zoe Adams", CamperBirthDate: birth,
			ParentName: "Kim Adams", ParentEmail: "kim@test.com",
			Status: domainRegistration.StatusActive, RegisteredAt: base},
		{ID: "g2", CampID: "c1", CamperName: "Ben Carter", CamperBirthDate: birth,
			ParentName: "Lee Carter", ParentEmail: "lee@test.com",
			Status: domainRegistration.StatusActive, RegisteredAt: base.Add(time.Hour)},
		{ID: "g3", CampID: "c1", CamperName: "Amy Smith", CamperBirthDate: birth,
			ParentName: "Jo Smith", ParentEmail: "jo@test.com",
			Status: domainRegistration.StatusWaitlisted, RegisteredAt: base.Add(2 * time.Hour)},
		{ID: "g4", CampID: "c1", CamperName: "Dan Smith", CamperBirthDate: birth,
			ParentName: "Jo Smith", ParentEmail: "jo@test.com",
			Status: domainRegistration.StatusCancelled, RegisteredAt: base.Add(3 * time.Hour)},
	}
}

// TestQueryGetRoster_CountsAndDefaultSort verifies counts cover the whole
// roster and rows sort by camper name by default.
func TestQueryGetRoster_CountsAndDefaultSort(t *testing.T) {
	deps := GetRosterDeps{
		CampStore:         &mockCalendarCampStore{camps: []domainCamp.Camp{juneCamp()}},
		RegistrationStore: &mockRosterRegistrationStore{regs: rosterFixture()},
	}

	res, err := QueryGetRoster(context.Background(), "c1", listutil.ListParams{
		PageParams: listutil.PageParams{Page: 1, PerPage: 20},
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Active != 2 || res.Waitlist != 1 {
		t.Errorf("active/waitlist=%d/%d want 2/1", res.Active, res.Waitlist)
	}
	if res.Capacity != 30 {
		t.Errorf("capacity=%d want 30", res.Capacity)
	}
	if len(res.Rows) != 4 {
		t.Fatalf("rows=%d want 4", len(res.Rows))
	}
	if res.Rows[0].CamperName != "Amy Smith" || res.Rows[3].CamperName != "Zoe Adams" {
		t.Errorf("sort order wrong: first=%q last=%q", res.Rows[0].CamperName, res.Rows[3].CamperName)
	}
}

// TestQueryGetRoster_StatusFilter verifies the status filter narrows rows but
// not the roster-wide counts.
func TestQueryGetRoster_StatusFilter(t *testing.T) {
	deps := GetRosterDeps{
		CampStore:         &mockCalendarCampStore{camps: []domainCamp.Camp{juneCamp()}},
		RegistrationStore: &mockRosterRegistrationStore{regs: rosterFixture()},
	}

	params := listutil.ListParams{
		PageParams:   listutil.PageParams{Page: 1, PerPage: 20},
		FilterParams: listutil.FilterParams{Filters: map[string]string{"status": "waitlisted"}},
	}
	res, err := QueryGetRoster(context.Background(), "c1", params, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows=%d want 1", len(res.Rows))
	}
	if res.Rows[0].Status != "waitlisted" {
		t.Errorf("status=%q want waitlisted", res.Rows[0].Status)
	}
	if res.Active != 2 {
		t.Errorf("active=%d want 2 (counts ignore filter)", res.Active)
	}
}

// TestQueryGetRoster_Search verifies the free-text search matches camper and
// parent fields case-insensitively.
func TestQueryGetRoster_Search(t *testing.T) {
	deps := GetRosterDeps{
		CampStore:         &mockCalendarCampStore{camps: []domainCamp.Camp{juneCamp()}},
		RegistrationStore: &mockRosterRegistrationStore{regs: rosterFixture()},
	}

	params := listutil.ListParams{
		PageParams:   listutil.PageParams{Page: 1, PerPage: 20},
		FilterParams: listutil.FilterParams{Search: "smith"},
	}
	res, err := QueryGetRoster(context.Background(), "c1", params, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("rows=%d want 2", len(res.Rows))
	}
}

// TestQueryGetRoster_Pagination verifies paging slices the sorted rows.
func TestQueryGetRoster_Pagination(t *testing.T) {
	deps := GetRosterDeps{
		CampStore:         &mockCalendarCampStore{camps: []domainCamp.Camp{juneCamp()}},
		RegistrationStore: &mockRosterRegistrationStore{regs: rosterFixture()},
	}

	params := listutil.ListParams{
		PageParams: listutil.PageParams{Page: 2, PerPage: 10},
	}
	res, err := QueryGetRoster(context.Background(), "c1", params, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only 4 rows total: page is clamped back to 1 and all rows returned.
	if res.PageInfo.Page != 1 {
		t.Errorf("page=%d want 1 (clamped)", res.PageInfo.Page)
	}
	if len(res.Rows) != 4 {
		t.Errorf("rows=%d want 4", len(res.Rows))
	}
}

// TestQueryGetRoster_UnknownCamp verifies ErrCampNotFound is returned.
func TestQueryGetRoster_UnknownCamp(t *testing.T) {
	deps := GetRosterDeps{
		CampStore:         &mockCalendarCampStore{},
		RegistrationStore: &mockRosterRegistrationStore{},
	}

	_, err := QueryGetRoster(context.Background(), "missing", listutil.ListParams{}, deps)
	if !errors.Is(err, ErrCampNotFound) {
		t.Fatalf("err=%v want ErrCampNotFound", err)
	}
}
