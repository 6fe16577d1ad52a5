package projections

import (
	"context"
	"sort"
	"strings"

	"camphq/internal/application/listutil"
	"camphq/internal/domain/camp"
	"camphq/internal/domain/registration"
)

// RosterCampStore defines the store interface needed by this projection.
type RosterCampStore interface {
	GetByID(ctx context.Context, id string) (camp.Camp, error)
}

// RosterRegistrationStore defines the store interface needed by this projection.
type RosterRegistrationStore interface {
	ListByCampID(ctx context.Context, campID string) ([]registration.Registration, error)
}

// GetRosterDeps holds dependencies for the projection.
type GetRosterDeps struct {
	CampStore         RosterCampStore
	RegistrationStore RosterRegistrationStore
}

// RosterRow is one camper on the roster.
type RosterRow struct {
	RegistrationID string
	CamperName     string
	BirthDate      string
	ParentName     string
	ParentEmail    string
	Status         string
	RegisteredAt   string
}

// GetRosterResult carries the query result.
type GetRosterResult struct {
	CampID   string
	CampName string
	Capacity int
	Active   int
	Waitlist int
	Rows     []RosterRow
	PageInfo listutil.PageInfo
}

// RosterSortColumns are the sort columns accepted by the roster query.
var RosterSortColumns = []string{"camper_name", "registered_at", "status"}

// RosterFilterKeys are the filter keys accepted by the roster query.
var RosterFilterKeys = []string{"status"}

// QueryGetRoster retrieves a camp's registrations with search, sort and
// pagination applied. Counts cover the full roster, not just the current page.
func QueryGetRoster(ctx context.Context, campID string, params listutil.ListParams, deps GetRosterDeps) (GetRosterResult, error) {
	c, err := deps.CampStore.GetByID(ctx, campID)
	if err != nil {
		return GetRosterResult{}, ErrCampNotFound
	}

	regs, err := deps.RegistrationStore.ListByCampID(ctx, campID)
	if err != nil {
		return GetRosterResult{}, err
	}

	result := GetRosterResult{
		CampID:   c.ID,
		CampName: c.Name,
		Capacity: c.Capacity,
	}
	for _, r := range regs {
		switch r.Status {
		case registration.StatusActive:
			result.Active++
		case registration.StatusWaitlisted:
			result.Waitlist++
		}
	}

	// Filter
	var filtered []registration.Registration
	search := strings.ToLower(params.Search)
	status := params.Filters["status"]
	for _, r := range regs {
		if status != "" && r.Status != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.CamperName), search) &&
			!strings.Contains(strings.ToLower(r.ParentName), search) &&
			!strings.Contains(strings.ToLower(r.ParentEmail), search) {
			continue
		}
		filtered = append(filtered, r)
	}

	// Sort
	less := rosterLess(params.Sort)
	sort.SliceStable(filtered, func(i, j int) bool {
		if params.Dir == "desc" {
			return less(filtered[j], filtered[i])
		}
		return less(filtered[i], filtered[j])
	})

	// Paginate
	pi := listutil.NewPageInfo(params.Page, params.PerPage, len(filtered))
	start := pi.Offset()
	end := start + pi.PerPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	for _, r := range filtered[start:end] {
		result.Rows = append(result.Rows, RosterRow{
			RegistrationID: r.ID,
			CamperName:     r.CamperName,
			BirthDate:      r.CamperBirthDate.String(),
			ParentName:     r.ParentName,
			ParentEmail:    r.ParentEmail,
			Status:         r.Status,
			RegisteredAt:   r.RegisteredAt.Format("2006-01-02 15:04"),
		})
	}
	result.PageInfo = pi

	return result, nil
}

func rosterLess(col string) func(a, b registration.Registration) bool {
	switch col {
	case "registered_at":
		return func(a, b registration.Registration) bool { return a.RegisteredAt.Before(b.RegisteredAt) }
	case "status":
		return func(a, b registration.Registration) bool { return a.Status < b.Status }
	default:
		return func(a, b registration.Registration) bool {
			return strings.ToLower(a.CamperName) < strings.ToLower(b.CamperName)
		}
	}
}
