package orchestrators

import (
	"context"
	"errors"
	"sync"
	"time"

	emailAdapter "camphq/internal/adapters/email"
	"camphq/internal/domain/announcement"
	"camphq/internal/domain/camp"
	"camphq/internal/domain/civil"
	"camphq/internal/domain/exception"
	"camphq/internal/domain/organization"
	"camphq/internal/domain/registration"
	"camphq/internal/domain/schedule"
)

var errNotFound = errors.New("not found")

type mockCampStore struct {
	camps map[string]camp.Camp
	saved []camp.Camp
}

func (m *mockCampStore) GetByID(_ context.Context, id string) (camp.Camp, error) {
	if c, ok := m.camps[id]; ok {
		return c, nil
	}
	return camp.Camp{}, errNotFound
}

func (m *mockCampStore) Save(_ context.Context, c camp.Camp) error {
	m.saved = append(m.saved, c)
	return nil
}

type mockOrganizationStore struct {
	orgs map[string]organization.Organization
}

func (m *mockOrganizationStore) GetByID(_ context.Context, id string) (organization.Organization, error) {
	if o, ok := m.orgs[id]; ok {
		return o, nil
	}
	return organization.Organization{}, errNotFound
}

type mockScheduleStore struct {
	rules    []schedule.Rule
	replaced [][]schedule.Rule
}

func (m *mockScheduleStore) ListByCampID(_ context.Context, campID string) ([]schedule.Rule, error) {
	var out []schedule.Rule
	for _, r := range m.rules {
		if r.CampID == campID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockScheduleStore) ReplaceForCamp(_ context.Context, campID string, rules []schedule.Rule) error {
	m.replaced = append(m.replaced, rules)
	m.rules = nil
	for _, r := range rules {
		m.rules = append(m.rules, r)
	}
	return nil
}

type mockExceptionStore struct {
	byDate map[string]exception.Exception // keyed by campID+"|"+date
	saved  []exception.Exception
}

func (m *mockExceptionStore) GetByCampAndDate(_ context.Context, campID string, date civil.Date) (exception.Exception, error) {
	if e, ok := m.byDate[campID+"|"+date.String()]; ok {
		return e, nil
	}
	return exception.Exception{}, errNotFound
}

func (m *mockExceptionStore) Save(_ context.Context, e exception.Exception) error {
	if m.byDate == nil {
		m.byDate = make(map[string]exception.Exception)
	}
	m.byDate[e.CampID+"|"+e.Date.String()] = e
	m.saved = append(m.saved, e)
	return nil
}

type mockAnnouncementStore struct {
	saved []announcement.Announcement
}

func (m *mockAnnouncementStore) Save(_ context.Context, a announcement.Announcement) error {
	m.saved = append(m.saved, a)
	return nil
}

type mockRegistrationStore struct {
	regs map[string]registration.Registration
}

func (m *mockRegistrationStore) GetByID(_ context.Context, id string) (registration.Registration, error) {
	if r, ok := m.regs[id]; ok {
		return r, nil
	}
	return registration.Registration{}, errNotFound
}

func (m *mockRegistrationStore) Save(_ context.Context, r registration.Registration) error {
	if m.regs == nil {
		m.regs = make(map[string]registration.Registration)
	}
	m.regs[r.ID] = r
	return nil
}

func (m *mockRegistrationStore) CountActiveByCampID(_ context.Context, campID string) (int, error) {
	n := 0
	for _, r := range m.regs {
		if r.CampID == campID && r.Status == registration.StatusActive {
			n++
		}
	}
	return n, nil
}

func (m *mockRegistrationStore) FirstWaitlisted(_ context.Context, campID string) (registration.Registration, error) {
	var best registration.Registration
	found := false
	for _, r := range m.regs {
		if r.CampID != campID || r.Status != registration.StatusWaitlisted {
			continue
		}
		if !found || r.RegisteredAt.Before(best.RegisteredAt) {
			best = r
			found = true
		}
	}
	if !found {
		return registration.Registration{}, errNotFound
	}
	return best, nil
}

type mockSender struct {
	mu   sync.Mutex
	sent []emailAdapter.SendRequest
	fail bool
}

func (m *mockSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if m.fail {
		return emailAdapter.SendResult{}, errors.New("provider down")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-1", SentAt: time.Now()}, nil
}

func (m *mockSender) SendBatch(ctx context.Context, reqs []emailAdapter.SendRequest) ([]emailAdapter.SendResult, error) {
	var out []emailAdapter.SendResult
	for _, r := range reqs {
		res, err := m.Send(ctx, r)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + string(rune('0'+n))
	}
}

func fixedNow() time.Time {
	return time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
}

func publishedJuneCamp() camp.Camp {
	return camp.Camp{
		ID:             "c1",
		OrganizationID: "o1",
		Name:           "June Basketball",
		Location:       "Court A",
		StartDate:      civil.Date{Year: 2025, Month: 6, Day: 1},
		EndDate:        civil.Date{Year: 2025, Month: 6, Day: 28},
		Capacity:       2,
		Status:         camp.StatusPublished,
	}
}
