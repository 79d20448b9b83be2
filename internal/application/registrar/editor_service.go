package registrar

import (
	"context"

	"github.com/sis/backend/internal/domain/registrar"
	"github.com/sis/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// FeeEdit is the sparse per-record payload of a batch fee save: only the
// fields the operator actually touched are present
type FeeEdit struct {
	LecFee *string `json:"lec_fee"`
	LabFee *string `json:"lab_fee"`
}

// EditorService fronts the two editing screens: it scopes a save to one
// semester bucket of the selected curriculum, rebuilds the overlay from the
// request, and hands both to the reconciliation engine.
type EditorService struct {
	catalog      *CatalogService
	feeEditor    *Editor
	prereqEditor *Editor
	taggingRepo  registrar.ProgramTaggingRepository
	courseRepo   registrar.CourseRepository
	log          *zap.Logger
}

// NewEditorService creates a new EditorService
func NewEditorService(
	catalog *CatalogService,
	feeEditor *Editor,
	prereqEditor *Editor,
	taggingRepo registrar.ProgramTaggingRepository,
	courseRepo registrar.CourseRepository,
	log *zap.Logger,
) *EditorService {
	if log == nil {
		log = zap.NewNop()
	}
	return &EditorService{
		catalog:      catalog,
		feeEditor:    feeEditor,
		prereqEditor: prereqEditor,
		taggingRepo:  taggingRepo,
		courseRepo:   courseRepo,
		log:          log,
	}
}

// SaveSemesterFees saves the edited fees of one semester bucket
func (s *EditorService) SaveSemesterFees(ctx context.Context, selectedCurriculum, yearLevel, semester string, edits map[int64]FeeEdit) (SaveOutcome, error) {
	records, err := s.semesterBatch(ctx, selectedCurriculum, yearLevel, semester)
	if err != nil {
		return SaveOutcome{}, err
	}

	overlay := NewEditOverlay()
	for id, edit := range edits {
		if edit.LecFee != nil {
			overlay.SetField(id, FieldLecFee, *edit.LecFee)
		}
		if edit.LabFee != nil {
			overlay.SetField(id, FieldLabFee, *edit.LabFee)
		}
	}

	return s.feeEditor.Save(ctx, records, overlay)
}

// SaveSemesterPrereqs saves the edited prerequisite texts of one semester
// bucket. A present-but-blank edit clears the prerequisite.
func (s *EditorService) SaveSemesterPrereqs(ctx context.Context, selectedCurriculum, yearLevel, semester string, edits map[int64]string) (SaveOutcome, error) {
	records, err := s.semesterBatch(ctx, selectedCurriculum, yearLevel, semester)
	if err != nil {
		return SaveOutcome{}, err
	}

	overlay := NewEditOverlay()
	for id, text := range edits {
		overlay.SetField(id, FieldPrereq, text)
	}

	return s.prereqEditor.Save(ctx, records, overlay)
}

// UpdateTaggingFees is the single-record collaborator endpoint: a full-state
// overwrite of one tagging row's fees
func (s *EditorService) UpdateTaggingFees(ctx context.Context, id int64, lecFeeRaw, labFeeRaw string) (*registrar.ProgramTagging, error) {
	record, err := s.taggingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := OverlayEntry{FieldLecFee: lecFeeRaw, FieldLabFee: labFeeRaw}
	lecFee, err := entry.FeeValue(FieldLecFee, record.LecFee)
	if err != nil {
		return nil, err
	}
	labFee, err := entry.FeeValue(FieldLabFee, record.LabFee)
	if err != nil {
		return nil, err
	}

	merged := record.WithFees(lecFee, labFee)
	if err := s.taggingRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	s.refreshCatalog(ctx)
	return &merged, nil
}

// UpdateCoursePrereq is the single-record collaborator endpoint of the
// course panel screen
func (s *EditorService) UpdateCoursePrereq(ctx context.Context, courseID int64, prereq string) (*registrar.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	course.SetPrereq(prereq)
	if err := s.courseRepo.UpdatePrereq(ctx, courseID, course.Prereq); err != nil {
		return nil, err
	}

	s.refreshCatalog(ctx)
	return course, nil
}

func (s *EditorService) semesterBatch(ctx context.Context, selectedCurriculum, yearLevel, semester string) ([]registrar.ProgramTagging, error) {
	courseMap, err := s.catalog.CourseMap(ctx, selectedCurriculum)
	if err != nil {
		return nil, err
	}

	records := courseMap.SemesterBatch(yearLevel, semester)
	if records == nil {
		return nil, shared.ErrNotFound
	}
	return records, nil
}

func (s *EditorService) refreshCatalog(ctx context.Context) {
	if err := s.catalog.Refresh(ctx); err != nil {
		s.log.Warn("catalog refresh after update failed", zap.Error(err))
	}
}
