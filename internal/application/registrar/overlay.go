package registrar

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sis/backend/internal/domain/registrar"
	"github.com/sis/backend/internal/domain/shared"
)

// Field identifies an editable attribute of a tagged course
type Field string

const (
	FieldLecFee Field = "lec_fee"
	FieldLabFee Field = "lab_fee"
	FieldPrereq Field = "prereq"
)

// OverlayEntry holds only the fields actually edited for one record. Anything
// absent here must be read from the baseline, never defaulted.
type OverlayEntry map[Field]string

// Has reports whether the entry carries an edit for the field
func (e OverlayEntry) Has(field Field) bool {
	_, ok := e[field]
	return ok
}

// FeeValue resolves the amount to persist for a numeric field: the baseline
// when the field is untouched, zero for a cleared input, otherwise the parsed
// edit. Raw text that never became a number fails here, before any update
// call is issued.
func (e OverlayEntry) FeeValue(field Field, baseline decimal.Decimal) (decimal.Decimal, error) {
	raw, ok := e[field]
	if !ok {
		return baseline, nil
	}
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, shared.ErrInvalidAmount
	}
	return amount, nil
}

// PrereqValue resolves the prerequisite text: the overlay edit when present,
// else the baseline
func (e OverlayEntry) PrereqValue(baseline string) string {
	if raw, ok := e[FieldPrereq]; ok {
		return raw
	}
	return baseline
}

// EditOverlay is the sparse, unsaved edit state layered over the last-fetched
// baseline. Entries are created on first edit, merged field by field, and
// removed only by ClearAll after a fully successful save or by the operator
// discarding the screen. It never stores a full record, so edits to different
// fields of the same record made on unrelated screens cannot collide.
type EditOverlay struct {
	entries map[int64]OverlayEntry
}

// NewEditOverlay creates an empty overlay
func NewEditOverlay() *EditOverlay {
	return &EditOverlay{entries: make(map[int64]OverlayEntry)}
}

// SetField merges one edited value into the entry for a record, creating the
// entry if absent. Numeric fields are coerced at write time: parseable input
// is normalized, an empty input is kept as the empty-string sentinel so the
// field can be visually cleared, and anything else is stored raw and rejected
// only when a save resolves it.
func (o *EditOverlay) SetField(recordID int64, field Field, value string) {
	entry, ok := o.entries[recordID]
	if !ok {
		entry = make(OverlayEntry)
		o.entries[recordID] = entry
	}

	if field == FieldLecFee || field == FieldLabFee {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			if amount, err := decimal.NewFromString(trimmed); err == nil {
				entry[field] = amount.String()
				return
			}
		}
		entry[field] = trimmed
		return
	}

	entry[field] = value
}

// Entry returns the overlay entry for a record, if any
func (o *EditOverlay) Entry(recordID int64) (OverlayEntry, bool) {
	entry, ok := o.entries[recordID]
	return entry, ok
}

// Len returns the number of records carrying unsaved edits
func (o *EditOverlay) Len() int {
	return len(o.entries)
}

// ClearAll discards every entry. Called only after the corresponding batch
// was persisted in full.
func (o *EditOverlay) ClearAll() {
	o.entries = make(map[int64]OverlayEntry)
}

// EffectiveLecFee returns the value the fee column displays for a record:
// the overlay edit when present, else the baseline amount. The cleared-input
// sentinel displays blank, not zero.
func (o *EditOverlay) EffectiveLecFee(record registrar.ProgramTagging) string {
	return o.effectiveFee(record.ProgramTaggingID, FieldLecFee, record.LecFee)
}

// EffectiveLabFee returns the displayed lab fee, overlay first
func (o *EditOverlay) EffectiveLabFee(record registrar.ProgramTagging) string {
	return o.effectiveFee(record.ProgramTaggingID, FieldLabFee, record.LabFee)
}

// EffectivePrereq returns the displayed prerequisite text, overlay first
func (o *EditOverlay) EffectivePrereq(record registrar.ProgramTagging) string {
	if entry, ok := o.entries[record.ProgramTaggingID]; ok && entry.Has(FieldPrereq) {
		return entry[FieldPrereq]
	}
	return record.PrereqText()
}

func (o *EditOverlay) effectiveFee(recordID int64, field Field, baseline decimal.Decimal) string {
	if entry, ok := o.entries[recordID]; ok && entry.Has(field) {
		return entry[field]
	}
	return baseline.String()
}
