package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	emailAdapter "camphq/internal/adapters/email"
	"camphq/internal/application/projections"
	"camphq/internal/domain/camp"
	"camphq/internal/domain/civil"
	"camphq/internal/domain/registration"
	"camphq/internal/domain/schedule"
)

// RegistrationStoreForRegister defines the store interface needed by RegisterCamper.
type RegistrationStoreForRegister interface {
	Save(ctx context.Context, r registration.Registration) error
	CountActiveByCampID(ctx context.Context, campID string) (int, error)
}

// ScheduleLookup defines the schedule store interface needed for the
// confirmation email's summary.
type ScheduleLookup interface {
	ListByCampID(ctx context.Context, campID string) ([]schedule.Rule, error)
}

// RegisterCamperInput carries input for the orchestrator.
type RegisterCamperInput struct {
	CampID          string
	CamperName      string
	CamperBirthDate civil.Date
	ParentName      string
	ParentEmail     string
}

// RegisterCamperDeps holds dependencies for RegisterCamper.
type RegisterCamperDeps struct {
	CampStore         CampLookup
	RegistrationStore RegistrationStoreForRegister
	ScheduleStore     ScheduleLookup
	EmailSender       emailAdapter.Sender
	GenerateID        func() string
	Now               func() time.Time
	FromAddress       string
}

// RegisterCamperResult carries the outcome of a registration.
type RegisterCamperResult struct {
	RegistrationID string
	Status         string // active or waitlisted
}

var ErrCampNotOpen = errors.New("camp is not open for registration")

// ExecuteRegisterCamper registers a camper, placing them on the waitlist when
// the camp is full, and emails the parent a confirmation with the weekly
// schedule. The email is best-effort: a provider failure never loses the
// registration.
// PRE: CampID refers to a published camp
// POST: Registration saved with status active or waitlisted
func ExecuteRegisterCamper(ctx context.Context, input RegisterCamperInput, deps RegisterCamperDeps) (RegisterCamperResult, error) {
	c, err := deps.CampStore.GetByID(ctx, input.CampID)
	if err != nil {
		return RegisterCamperResult{}, ErrCampNotFound
	}
	if !c.IsPublished() {
		return RegisterCamperResult{}, ErrCampNotOpen
	}

	status := registration.StatusActive
	if c.Capacity > 0 {
		active, err := deps.RegistrationStore.CountActiveByCampID(ctx, input.CampID)
		if err != nil {
			return RegisterCamperResult{}, err
		}
		if active >= c.Capacity {
			status = registration.StatusWaitlisted
		}
	}

	reg := registration.Registration{
		ID:              deps.GenerateID(),
		CampID:          input.CampID,
		CamperName:      input.CamperName,
		CamperBirthDate: input.CamperBirthDate,
		ParentName:      input.ParentName,
		ParentEmail:     input.ParentEmail,
		Status:          status,
		RegisteredAt:    deps.Now(),
	}
	if err := reg.Validate(); err != nil {
		return RegisterCamperResult{}, err
	}

	if err := deps.RegistrationStore.Save(ctx, reg); err != nil {
		return RegisterCamperResult{}, err
	}

	sendConfirmation(ctx, c, reg, deps)

	slog.Info("registration_event", "event", "camper_registered", "registration_id", reg.ID, "camp_id", c.ID, "status", reg.Status)
	return RegisterCamperResult{RegistrationID: reg.ID, Status: reg.Status}, nil
}

func sendConfirmation(ctx context.Context, c camp.Camp, reg registration.Registration, deps RegisterCamperDeps) {
	if deps.EmailSender == nil {
		return
	}

	summary, err := projections.QueryGetScheduleSummary(ctx, c.ID, projections.GetScheduleSummaryDeps{
		ScheduleStore: deps.ScheduleStore,
	})
	if err != nil {
		slog.Error("internal_error", "error", err, "op", "register_confirmation_summary", "camp_id", c.ID)
	}

	var b strings.Builder
	if reg.Status == registration.StatusWaitlisted {
		fmt.Fprintf(&b, "<p>Hi %s,</p><p>%s is on the waitlist for <strong>%s</strong>. We will email you as soon as a spot opens.</p>",
			reg.ParentName, reg.CamperName, c.Name)
	} else {
		fmt.Fprintf(&b, "<p>Hi %s,</p><p>%s is registered for <strong>%s</strong> (%s to %s).</p>",
			reg.ParentName, reg.CamperName, c.Name, c.StartDate, c.EndDate)
	}
	if len(summary.Lines) > 0 {
		b.WriteString("<p>Weekly schedule:</p><ul>")
		for _, line := range summary.Lines {
			fmt.Fprintf(&b, "<li>%s</li>", line)
		}
		b.WriteString("</ul>")
	}
	if c.Location != "" {
		fmt.Fprintf(&b, "<p>Location: %s</p>", c.Location)
	}

	subject := fmt.Sprintf("Registration confirmed: %s", c.Name)
	if reg.Status == registration.StatusWaitlisted {
		subject = fmt.Sprintf("Waitlisted: %s", c.Name)
	}

	if _, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{reg.ParentEmail},
		From:    deps.FromAddress,
		Subject: subject,
		HTML:    b.String(),
	}); err != nil {
		slog.Error("internal_error", "error", err, "op", "register_confirmation_send", "registration_id", reg.ID)
	}
}
