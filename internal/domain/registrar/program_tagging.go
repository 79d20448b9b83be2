package registrar

import (
	"github.com/shopspring/decimal"
)

// ProgramTagging attaches a course to a curriculum, year level, and semester,
// carrying the per-offering fee and prerequisite metadata. It is the unit the
// curriculum map screens render and selectively persist.
type ProgramTagging struct {
	ProgramTaggingID     int64           `gorm:"column:program_tagging_id;primaryKey;autoIncrement" json:"program_tagging_id"`
	CurriculumID         int64           `gorm:"column:curriculum_id;not null;index" json:"curriculum_id"`
	YearLevelDescription string          `gorm:"column:year_level_description;type:varchar(100);not null" json:"year_level_description"`
	SemesterDescription  string          `gorm:"column:semester_description;type:varchar(100);not null" json:"semester_description"`
	CourseID             int64           `gorm:"column:course_id;not null;index" json:"course_id"`
	CourseCode           string          `gorm:"column:course_code;type:varchar(50);not null" json:"course_code"`
	CourseDescription    string          `gorm:"column:course_description;type:varchar(255)" json:"course_description"`
	Prereq               *string         `gorm:"column:prereq;type:varchar(255)" json:"prereq"`
	LecFee               decimal.Decimal `gorm:"column:lec_fee;type:decimal(18,2);not null;default:0" json:"lec_fee"`
	LabFee               decimal.Decimal `gorm:"column:lab_fee;type:decimal(18,2);not null;default:0" json:"lab_fee"`
}

// TableName returns the table name for GORM
func (ProgramTagging) TableName() string {
	return "program_tagging"
}

// WithFees returns a full-state copy of the record with the given fees applied.
// Updates are whole-record overwrites, which is what keeps a re-sent batch
// idempotent after a partial failure.
func (p ProgramTagging) WithFees(lecFee, labFee decimal.Decimal) ProgramTagging {
	p.LecFee = lecFee
	p.LabFee = labFee
	return p
}

// PrereqText returns the prerequisite text, blank when unset
func (p *ProgramTagging) PrereqText() string {
	if p.Prereq == nil {
		return ""
	}
	return *p.Prereq
}
