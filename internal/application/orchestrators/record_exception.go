package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"camphq/internal/adapters/ingest"
	"camphq/internal/domain/announcement"
	"camphq/internal/domain/civil"
	"camphq/internal/domain/exception"
)

// ExceptionStoreForRecord defines the store interface needed by RecordException.
type ExceptionStoreForRecord interface {
	GetByCampAndDate(ctx context.Context, campID string, date civil.Date) (exception.Exception, error)
	Save(ctx context.Context, e exception.Exception) error
}

// AnnouncementStoreForRecord defines the announcement store interface needed here.
type AnnouncementStoreForRecord interface {
	Save(ctx context.Context, a announcement.Announcement) error
}

// RecordExceptionInput carries one exception in wire form plus the acting account.
type RecordExceptionInput struct {
	CampID    string
	Record    ingest.ExceptionRecord
	CreatedBy string
}

// RecordExceptionDeps holds dependencies for RecordException.
type RecordExceptionDeps struct {
	CampStore         CampLookup
	ExceptionStore    ExceptionStoreForRecord
	AnnouncementStore AnnouncementStoreForRecord
	GenerateID        func() string
	Now               func() time.Time
}

var ErrDateOutsideCamp = errors.New("exception date falls outside the camp's dates")

// ExecuteRecordException records or overwrites the exception for one camp
// date and publishes a schedule announcement so registered families see the
// change. A date carries at most one exception: recording a new one for the
// same date replaces the previous one.
// PRE: CampID refers to an existing camp; record date within the camp's run
// POST: Exception upserted; schedule announcement published
func ExecuteRecordException(ctx context.Context, input RecordExceptionInput, deps RecordExceptionDeps) (string, error) {
	c, err := deps.CampStore.GetByID(ctx, input.CampID)
	if err != nil {
		return "", ErrCampNotFound
	}

	normalized, bad := ingest.NormalizeExceptions(input.CampID, []ingest.ExceptionRecord{input.Record})
	if len(bad) > 0 {
		return "", errors.Join(bad...)
	}
	exc := normalized[0]

	if !c.Contains(exc.Date) {
		return "", fmt.Errorf("%w: %s not in %s..%s", ErrDateOutsideCamp, exc.Date, c.StartDate, c.EndDate)
	}

	// Keep the existing ID when overwriting the date's exception, so the
	// storage upsert updates in place.
	if existing, err := deps.ExceptionStore.GetByCampAndDate(ctx, input.CampID, exc.Date); err == nil {
		exc.ID = existing.ID
	} else if exc.ID == "" {
		exc.ID = deps.GenerateID()
	}

	if err := deps.ExceptionStore.Save(ctx, exc); err != nil {
		return "", err
	}

	ann := announcement.Announcement{
		ID:        deps.GenerateID(),
		CampID:    input.CampID,
		Type:      announcement.TypeSchedule,
		Status:    announcement.StatusPublished,
		Title:     fmt.Sprintf("Schedule change on %s", exc.Date),
		Body:      exceptionAnnouncementBody(exc),
		CreatedBy: input.CreatedBy,
		CreatedAt: deps.Now(),
	}
	if err := deps.AnnouncementStore.Save(ctx, ann); err != nil {
		// The exception is already recorded; a failed announcement should
		// not undo it.
		slog.Error("internal_error", "error", err, "op", "record_exception_announcement", "camp_id", input.CampID)
	}

	slog.Info("camp_event", "event", "exception_recorded", "camp_id", input.CampID, "date", exc.Date.String(), "status", exc.Status)
	return exc.ID, nil
}

func exceptionAnnouncementBody(exc exception.Exception) string {
	switch exc.Status {
	case exception.StatusCancelled:
		if exc.Reason != "" {
			return fmt.Sprintf("Sessions on **%s** are cancelled: %s", exc.Date, exc.Reason)
		}
		return fmt.Sprintf("Sessions on **%s** are cancelled.", exc.Date)
	case exception.StatusRescheduled:
		return fmt.Sprintf("Sessions on **%s** move to **%s-%s**. %s", exc.Date, exc.Start, exc.End, exc.Reason)
	default:
		return fmt.Sprintf("The session on **%s** now runs **%s-%s**. %s", exc.Date, exc.Start, exc.End, exc.Reason)
	}
}
