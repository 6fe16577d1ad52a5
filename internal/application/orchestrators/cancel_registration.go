package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	emailAdapter "camphq/internal/adapters/email"
	"camphq/internal/domain/registration"
)

// RegistrationStoreForCancel defines the store interface needed by CancelRegistration.
type RegistrationStoreForCancel interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
	Save(ctx context.Context, r registration.Registration) error
	FirstWaitlisted(ctx context.Context, campID string) (registration.Registration, error)
}

// CancelRegistrationInput carries input for the orchestrator.
type CancelRegistrationInput struct {
	RegistrationID string
}

// CancelRegistrationDeps holds dependencies for CancelRegistration.
type CancelRegistrationDeps struct {
	CampStore         CampLookup
	RegistrationStore RegistrationStoreForCancel
	EmailSender       emailAdapter.Sender
	FromAddress       string
}

// CancelRegistrationResult carries the outcome, including any promotion.
type CancelRegistrationResult struct {
	CancelledID string
	PromotedID  string // empty when no waitlisted camper moved up
}

var ErrRegistrationNotFound = errors.New("registration does not exist")

// ExecuteCancelRegistration cancels a registration. When an active spot is
// freed, the longest-waiting waitlisted camper is promoted and their parent
// notified. Promotion email is best-effort.
// PRE: RegistrationID refers to an existing registration
// POST: Registration cancelled; first waitlisted promoted if a spot opened
func ExecuteCancelRegistration(ctx context.Context, input CancelRegistrationInput, deps CancelRegistrationDeps) (CancelRegistrationResult, error) {
	reg, err := deps.RegistrationStore.GetByID(ctx, input.RegistrationID)
	if err != nil {
		return CancelRegistrationResult{}, ErrRegistrationNotFound
	}

	wasActive := reg.IsActive()
	if err := reg.Cancel(); err != nil {
		return CancelRegistrationResult{}, err
	}
	if err := deps.RegistrationStore.Save(ctx, reg); err != nil {
		return CancelRegistrationResult{}, err
	}

	result := CancelRegistrationResult{CancelledID: reg.ID}
	slog.Info("registration_event", "event", "registration_cancelled", "registration_id", reg.ID, "camp_id", reg.CampID)

	if !wasActive {
		return result, nil
	}

	// A spot opened: promote the longest-waiting camper, if any.
	next, err := deps.RegistrationStore.FirstWaitlisted(ctx, reg.CampID)
	if err != nil {
		return result, nil
	}
	if err := next.Promote(); err != nil {
		return result, nil
	}
	if err := deps.RegistrationStore.Save(ctx, next); err != nil {
		return CancelRegistrationResult{}, err
	}
	result.PromotedID = next.ID
	slog.Info("registration_event", "event", "camper_promoted", "registration_id", next.ID, "camp_id", next.CampID)

	notifyPromotion(ctx, next, deps)
	return result, nil
}

func notifyPromotion(ctx context.Context, reg registration.Registration, deps CancelRegistrationDeps) {
	if deps.EmailSender == nil {
		return
	}

	campName := reg.CampID
	if c, err := deps.CampStore.GetByID(ctx, reg.CampID); err == nil {
		campName = c.Name
	}

	html := fmt.Sprintf("<p>Hi %s,</p><p>Good news: a spot opened up and %s is now registered for <strong>%s</strong>.</p>",
		reg.ParentName, reg.CamperName, campName)
	if _, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{reg.ParentEmail},
		From:    deps.FromAddress,
		Subject: fmt.Sprintf("You're in: %s", campName),
		HTML:    html,
	}); err != nil {
		slog.Error("internal_error", "error", err, "op", "promotion_notify", "registration_id", reg.ID)
	}
}
