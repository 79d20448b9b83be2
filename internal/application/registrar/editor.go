package registrar

import (
	"context"
	"fmt"

	"github.com/sis/backend/internal/application/notification"
	"github.com/sis/backend/internal/domain/registrar"
	"go.uber.org/zap"
)

// SaveOutcome is the accumulator a batch save folds into. A batch is always
// describable as "the first Saved edited records succeeded"; on failure
// FailedID names the record that aborted the batch and Remaining counts the
// overlay entries that survived it.
type SaveOutcome struct {
	Success   bool   `json:"success"`
	Saved     int    `json:"saved"`
	Skipped   int    `json:"skipped"`
	FailedID  *int64 `json:"failed_id,omitempty"`
	Remaining int    `json:"remaining"`
}

// ApplyFunc persists one record merged with its overlay entry
type ApplyFunc func(ctx context.Context, record registrar.ProgramTagging, entry OverlayEntry) error

// Editor is the reconciliation engine shared by the fee and prerequisite
// screens. The two differ only in which fields they edit and how an edited
// record reaches its repository, so each screen is a thin configuration of
// this one engine.
type Editor struct {
	name          string
	successText   string
	failureText   string
	apply         ApplyFunc
	catalog       *CatalogService
	notifications *notification.Channel
	log           *zap.Logger
}

// NewFeeEditor configures the engine for the curriculum payment screen:
// overlay fees are merged over the baseline record and the whole record is
// rewritten, which keeps a re-sent batch idempotent.
func NewFeeEditor(
	taggingRepo registrar.ProgramTaggingRepository,
	catalog *CatalogService,
	notifications *notification.Channel,
	log *zap.Logger,
) *Editor {
	return newEditor("fees", "Fees saved successfully!", "Error saving fees",
		func(ctx context.Context, record registrar.ProgramTagging, entry OverlayEntry) error {
			lecFee, err := entry.FeeValue(FieldLecFee, record.LecFee)
			if err != nil {
				return err
			}
			labFee, err := entry.FeeValue(FieldLabFee, record.LabFee)
			if err != nil {
				return err
			}
			merged := record.WithFees(lecFee, labFee)
			return taggingRepo.Update(ctx, &merged)
		},
		catalog, notifications, log)
}

// NewPrereqEditor configures the engine for the course panel screen: the
// edited prerequisite text lands on the course master record the tagging row
// points at.
func NewPrereqEditor(
	courseRepo registrar.CourseRepository,
	catalog *CatalogService,
	notifications *notification.Channel,
	log *zap.Logger,
) *Editor {
	return newEditor("prereqs", "Prerequisites saved successfully!", "Failed to save prerequisites",
		func(ctx context.Context, record registrar.ProgramTagging, entry OverlayEntry) error {
			text := entry.PrereqValue(record.PrereqText())
			var prereq *string
			if text != "" {
				prereq = &text
			}
			return courseRepo.UpdatePrereq(ctx, record.CourseID, prereq)
		},
		catalog, notifications, log)
}

func newEditor(name, successText, failureText string, apply ApplyFunc, catalog *CatalogService, notifications *notification.Channel, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		name:          name,
		successText:   successText,
		failureText:   failureText,
		apply:         apply,
		catalog:       catalog,
		notifications: notifications,
		log:           log,
	}
}

// Save reconciles one semester batch against the overlay. Records without an
// overlay entry are skipped outright; edited records are persisted one at a
// time, in the order given, each awaited before the next. The first failure
// aborts the remainder of the batch: already-applied updates stay applied on
// the remote side, the overlay is left exactly as it was so the operator can
// retry, and the outcome reports the abort point. Only after every edited
// record lands does the overlay clear and the baseline refetch.
func (e *Editor) Save(ctx context.Context, records []registrar.ProgramTagging, overlay *EditOverlay) (SaveOutcome, error) {
	var outcome SaveOutcome

	for _, record := range records {
		entry, ok := overlay.Entry(record.ProgramTaggingID)
		if !ok {
			outcome.Skipped++
			continue
		}

		if err := e.apply(ctx, record, entry); err != nil {
			id := record.ProgramTaggingID
			outcome.FailedID = &id
			outcome.Remaining = overlay.Len()
			e.notifications.Publish(e.failureText, notification.SeverityError)
			e.log.Warn("batch save aborted",
				zap.String("editor", e.name),
				zap.Int64("program_tagging_id", id),
				zap.Int("saved", outcome.Saved),
				zap.Error(err),
			)
			return outcome, fmt.Errorf("%s batch aborted at record %d: %w", e.name, id, err)
		}
		outcome.Saved++
	}

	overlay.ClearAll()
	outcome.Success = true

	// The save already landed; a stale snapshot is recoverable by reloading.
	if err := e.catalog.Refresh(ctx); err != nil {
		e.log.Warn("baseline refresh after save failed",
			zap.String("editor", e.name),
			zap.Error(err),
		)
	}

	e.notifications.Publish(e.successText, notification.SeveritySuccess)
	return outcome, nil
}
