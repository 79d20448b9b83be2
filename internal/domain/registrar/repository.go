package registrar

import "context"

// CurriculumRepository provides access to curriculum records
type CurriculumRepository interface {
	FindActive(ctx context.Context) ([]Curriculum, error)
}

// ProgramTaggingRepository provides access to tagged program records.
// Update is a whole-record overwrite; the reconciliation engine relies on
// that for safe re-sends after a partial batch failure.
type ProgramTaggingRepository interface {
	FindAll(ctx context.Context) ([]ProgramTagging, error)
	FindByID(ctx context.Context, id int64) (*ProgramTagging, error)
	Update(ctx context.Context, record *ProgramTagging) error
}

// CourseRepository provides access to course master records
type CourseRepository interface {
	FindByID(ctx context.Context, id int64) (*Course, error)
	UpdatePrereq(ctx context.Context, courseID int64, prereq *string) error
}
