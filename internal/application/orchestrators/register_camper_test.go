package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"camphq/internal/domain/camp"
	"camphq/internal/domain/civil"
	"camphq/internal/domain/registration"
	"camphq/internal/domain/schedule"
)

func registerDeps(c camp.Camp, regs *mockRegistrationStore, sender *mockSender) RegisterCamperDeps {
	return RegisterCamperDeps{
		CampStore:         &mockCampStore{camps: map[string]camp.Camp{c.ID: c}},
		RegistrationStore: regs,
		ScheduleStore: &mockScheduleStore{rules: []schedule.Rule{
			{ID: "r1", CampID: c.ID, Weekday: civil.Monday,
				Start: civil.TimeOfDay{Hour: 9}, End: civil.TimeOfDay{Hour: 10}},
		}},
		EmailSender: sender,
		GenerateID:  seqIDs("reg-"),
		Now:         fixedNow,
		FromAddress: "CampHQ <noreply@camphq.app>",
	}
}

func camperInput(name string) RegisterCamperInput {
	return RegisterCamperInput{
		CampID:          "c1",
		CamperName:      name,
		CamperBirthDate: civil.Date{Year: 2014, Month: 3, Day: 12},
		ParentName:      "Kim Adams",
		ParentEmail:     "kim@test.com",
	}
}

// TestExecuteRegisterCamper_ActiveWithinCapacity verifies a camper gets an
// active spot while capacity remains and the parent is emailed the schedule.
func TestExecuteRegisterCamper_ActiveWithinCapacity(t *testing.T) {
	regs := &mockRegistrationStore{}
	sender := &mockSender{}
	deps := registerDeps(publishedJuneCamp(), regs, sender)

	res, err := ExecuteRegisterCamper(context.Background(), camperInput("Zoe Adams"), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != registration.StatusActive {
		t.Errorf("status=%q want active", res.Status)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("emails=%d want 1", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].HTML, "Mon 09:00-10:00") {
		t.Errorf("confirmation missing schedule summary: %s", sender.sent[0].HTML)
	}
	if !strings.Contains(sender.sent[0].Subject, "Registration confirmed") {
		t.Errorf("subject=%q", sender.sent[0].Subject)
	}
}

// TestExecuteRegisterCamper_WaitlistsWhenFull verifies the camper is
// waitlisted once active registrations reach capacity.
func TestExecuteRegisterCamper_WaitlistsWhenFull(t *testing.T) {
	regs := &mockRegistrationStore{}
	sender := &mockSender{}
	deps := registerDeps(publishedJuneCamp(), regs, sender) // capacity 2

	for _, name := range []string{"A One", "B Two"} {
		res, err := ExecuteRegisterCamper(context.Background(), camperInput(name), deps)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != registration.StatusActive {
			t.Fatalf("%s: status=%q want active", name, res.Status)
		}
	}

	res, err := ExecuteRegisterCamper(context.Background(), camperInput("C Three"), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != registration.StatusWaitlisted {
		t.Errorf("status=%q want waitlisted", res.Status)
	}
	if !strings.Contains(sender.sent[2].Subject, "Waitlisted") {
		t.Errorf("subject=%q want waitlist notice", sender.sent[2].Subject)
	}
}

// TestExecuteRegisterCamper_ZeroCapacityUnlimited verifies capacity 0 never
// waitlists.
func TestExecuteRegisterCamper_ZeroCapacityUnlimited(t *testing.T) {
	c := publishedJuneCamp()
	c.Capacity = 0
	regs := &mockRegistrationStore{}
	deps := registerDeps(c, regs, &mockSender{})

	for i, name := range []string{"A One", "B Two", "C Three", "D Four"} {
		res, err := ExecuteRegisterCamper(context.Background(), camperInput(name), deps)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != registration.StatusActive {
			t.Errorf("camper %d: status=%q want active", i, res.Status)
		}
	}
}

// TestExecuteRegisterCamper_RejectsDraftCamp verifies unpublished camps do not
// accept registrations.
func TestExecuteRegisterCamper_RejectsDraftCamp(t *testing.T) {
	c := publishedJuneCamp()
	c.Status = camp.StatusDraft
	deps := registerDeps(c, &mockRegistrationStore{}, &mockSender{})

	_, err := ExecuteRegisterCamper(context.Background(), camperInput("Zoe Adams"), deps)
	if !errors.Is(err, ErrCampNotOpen) {
		t.Fatalf("err=%v want ErrCampNotOpen", err)
	}
}

// TestExecuteRegisterCamper_EmailFailureKeepsRegistration verifies a provider
// outage never loses the registration.
func TestExecuteRegisterCamper_EmailFailureKeepsRegistration(t *testing.T) {
	regs := &mockRegistrationStore{}
	deps := registerDeps(publishedJuneCamp(), regs, &mockSender{fail: true})

	res, err := ExecuteRegisterCamper(context.Background(), camperInput("Zoe Adams"), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := regs.regs[res.RegistrationID]; !ok {
		t.Fatal("registration not persisted after email failure")
	}
}

// TestExecuteRegisterCamper_UnknownCamp verifies ErrCampNotFound.
func TestExecuteRegisterCamper_UnknownCamp(t *testing.T) {
	deps := registerDeps(publishedJuneCamp(), &mockRegistrationStore{}, &mockSender{})
	in := camperInput("Zoe Adams")
	in.CampID = "missing"

	_, err := ExecuteRegisterCamper(context.Background(), in, deps)
	if !errors.Is(err, ErrCampNotFound) {
		t.Fatalf("err=%v want ErrCampNotFound", err)
	}
}
