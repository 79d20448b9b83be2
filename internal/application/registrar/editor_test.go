package registrar

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sis/backend/internal/application/notification"
	"github.com/sis/backend/internal/domain/registrar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCurriculumRepository is a mock implementation of CurriculumRepository
type MockCurriculumRepository struct {
	mock.Mock
}

func (m *MockCurriculumRepository) FindActive(ctx context.Context) ([]registrar.Curriculum, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registrar.Curriculum), args.Error(1)
}

// MockProgramTaggingRepository is a mock implementation of ProgramTaggingRepository
type MockProgramTaggingRepository struct {
	mock.Mock
}

func (m *MockProgramTaggingRepository) FindAll(ctx context.Context) ([]registrar.ProgramTagging, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registrar.ProgramTagging), args.Error(1)
}

func (m *MockProgramTaggingRepository) FindByID(ctx context.Context, id int64) (*registrar.ProgramTagging, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registrar.ProgramTagging), args.Error(1)
}

func (m *MockProgramTaggingRepository) Update(ctx context.Context, record *registrar.ProgramTagging) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockCourseRepository is a mock implementation of CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id int64) (*registrar.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registrar.Course), args.Error(1)
}

func (m *MockCourseRepository) UpdatePrereq(ctx context.Context, courseID int64, prereq *string) error {
	args := m.Called(ctx, courseID, prereq)
	return args.Error(0)
}

func taggedCourse(id int64, lecFee, labFee int64) registrar.ProgramTagging {
	return registrar.ProgramTagging{
		ProgramTaggingID:     id,
		CurriculumID:         12,
		YearLevelDescription: "First Year",
		SemesterDescription:  "First Semester",
		CourseID:             100 + id,
		CourseCode:           "CS10" + strconv.FormatInt(id, 10),
		LecFee:               decimal.NewFromInt(lecFee),
		LabFee:               decimal.NewFromInt(labFee),
	}
}

type feeFixture struct {
	curriculumRepo *MockCurriculumRepository
	taggingRepo    *MockProgramTaggingRepository
	notifications  *notification.Channel
	catalog        *CatalogService
	editor         *Editor
}

func newFeeFixture() *feeFixture {
	curriculumRepo := new(MockCurriculumRepository)
	taggingRepo := new(MockProgramTaggingRepository)
	notifications := notification.NewChannel(0)
	catalog := NewCatalogService(curriculumRepo, taggingRepo, nil)

	return &feeFixture{
		curriculumRepo: curriculumRepo,
		taggingRepo:    taggingRepo,
		notifications:  notifications,
		catalog:        catalog,
		editor:         NewFeeEditor(taggingRepo, catalog, notifications, nil),
	}
}

func (f *feeFixture) expectRefresh(refetched []registrar.ProgramTagging) {
	f.curriculumRepo.On("FindActive", mock.Anything).Return([]registrar.Curriculum{}, nil)
	f.taggingRepo.On("FindAll", mock.Anything).Return(refetched, nil)
}

func TestEditorSaveSelectivePersistence(t *testing.T) {
	ctx := context.Background()
	records := []registrar.ProgramTagging{taggedCourse(1, 100, 0), taggedCourse(2, 200, 0), taggedCourse(3, 300, 0)}

	f := newFeeFixture()
	f.expectRefresh(records)

	var updated []int64
	f.taggingRepo.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = append(updated, args.Get(1).(*registrar.ProgramTagging).ProgramTaggingID)
		}).
		Return(nil)

	overlay := NewEditOverlay()
	overlay.SetField(2, FieldLecFee, "1200")

	outcome, err := f.editor.Save(ctx, records, overlay)

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Saved)
	assert.Equal(t, 2, outcome.Skipped)
	assert.Equal(t, []int64{2}, updated)
	f.taggingRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestEditorSaveAbortOnFailure(t *testing.T) {
	ctx := context.Background()
	records := []registrar.ProgramTagging{taggedCourse(1, 100, 0), taggedCourse(2, 200, 0), taggedCourse(3, 300, 0)}

	f := newFeeFixture()

	var updated []int64
	f.taggingRepo.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = append(updated, args.Get(1).(*registrar.ProgramTagging).ProgramTaggingID)
		}).
		Return(nil).Once()
	f.taggingRepo.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = append(updated, args.Get(1).(*registrar.ProgramTagging).ProgramTaggingID)
		}).
		Return(errors.New("connection reset")).Once()

	overlay := NewEditOverlay()
	overlay.SetField(1, FieldLecFee, "100")
	overlay.SetField(2, FieldLecFee, "200")
	overlay.SetField(3, FieldLecFee, "300")

	outcome, err := f.editor.Save(ctx, records, overlay)

	// the batch stops at the failed record; the third is never sent
	require.Error(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, []int64{1, 2}, updated)
	require.NotNil(t, outcome.FailedID)
	assert.Equal(t, int64(2), *outcome.FailedID)
	assert.Equal(t, 1, outcome.Saved)

	// the overlay survives in full so a retry can resume
	assert.Equal(t, 3, overlay.Len())
	assert.Equal(t, 3, outcome.Remaining)

	// no baseline refetch on an aborted batch
	f.taggingRepo.AssertNotCalled(t, "FindAll", mock.Anything)

	msg := f.notifications.Current()
	require.NotNil(t, msg)
	assert.Equal(t, notification.SeverityError, msg.Severity)
}

func TestEditorSaveClearOnSuccess(t *testing.T) {
	ctx := context.Background()
	records := []registrar.ProgramTagging{taggedCourse(1, 100, 0), taggedCourse(2, 200, 0)}

	refetched := []registrar.ProgramTagging{taggedCourse(1, 1500, 0), taggedCourse(2, 2500, 0)}

	f := newFeeFixture()
	f.expectRefresh(refetched)
	f.taggingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	overlay := NewEditOverlay()
	overlay.SetField(1, FieldLecFee, "1500")
	overlay.SetField(2, FieldLecFee, "2500")

	outcome, err := f.editor.Save(ctx, records, overlay)

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 2, outcome.Saved)
	assert.Equal(t, 0, overlay.Len())

	// displayed values now come from the refetched baseline, not the overlay
	fresh, err := f.catalog.TaggedPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1500", overlay.EffectiveLecFee(fresh[0]))

	msg := f.notifications.Current()
	require.NotNil(t, msg)
	assert.Equal(t, notification.SeveritySuccess, msg.Severity)
}

func TestEditorSaveMergesOverlayOverBaseline(t *testing.T) {
	ctx := context.Background()
	record := taggedCourse(5, 500, 300)

	f := newFeeFixture()
	f.expectRefresh([]registrar.ProgramTagging{record})

	var sent *registrar.ProgramTagging
	f.taggingRepo.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(*registrar.ProgramTagging)
		}).
		Return(nil)

	overlay := NewEditOverlay()
	overlay.SetField(5, FieldLecFee, "1200")

	_, err := f.editor.Save(ctx, []registrar.ProgramTagging{record}, overlay)

	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.True(t, sent.LecFee.Equal(decimal.NewFromInt(1200)))
	// the untouched lab fee rides along from the baseline
	assert.True(t, sent.LabFee.Equal(decimal.NewFromInt(300)))
}

func TestEditorSaveRejectsUnparseableFee(t *testing.T) {
	ctx := context.Background()
	record := taggedCourse(5, 500, 300)

	f := newFeeFixture()

	overlay := NewEditOverlay()
	overlay.SetField(5, FieldLecFee, "abc")

	outcome, err := f.editor.Save(ctx, []registrar.ProgramTagging{record}, overlay)

	require.Error(t, err)
	assert.False(t, outcome.Success)
	f.taggingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Equal(t, 1, overlay.Len())
}

func TestPrereqEditorSave(t *testing.T) {
	ctx := context.Background()

	newFixture := func() (*MockCourseRepository, *Editor, *notification.Channel) {
		curriculumRepo := new(MockCurriculumRepository)
		taggingRepo := new(MockProgramTaggingRepository)
		courseRepo := new(MockCourseRepository)
		curriculumRepo.On("FindActive", mock.Anything).Return([]registrar.Curriculum{}, nil)
		taggingRepo.On("FindAll", mock.Anything).Return([]registrar.ProgramTagging{}, nil)
		notifications := notification.NewChannel(0)
		catalog := NewCatalogService(curriculumRepo, taggingRepo, nil)
		return courseRepo, NewPrereqEditor(courseRepo, catalog, notifications, nil), notifications
	}

	t.Run("writes the edited text to the course master record", func(t *testing.T) {
		courseRepo, editor, _ := newFixture()
		record := taggedCourse(1, 0, 0)

		courseRepo.On("UpdatePrereq", mock.Anything, record.CourseID, mock.MatchedBy(func(p *string) bool {
			return p != nil && *p == "MATH101"
		})).Return(nil)

		overlay := NewEditOverlay()
		overlay.SetField(1, FieldPrereq, "MATH101")

		outcome, err := editor.Save(ctx, []registrar.ProgramTagging{record}, overlay)

		require.NoError(t, err)
		assert.True(t, outcome.Success)
		courseRepo.AssertExpectations(t)
	})

	t.Run("a blank edit clears the prerequisite", func(t *testing.T) {
		courseRepo, editor, _ := newFixture()
		record := taggedCourse(1, 0, 0)

		courseRepo.On("UpdatePrereq", mock.Anything, record.CourseID, (*string)(nil)).Return(nil)

		overlay := NewEditOverlay()
		overlay.SetField(1, FieldPrereq, "")

		_, err := editor.Save(ctx, []registrar.ProgramTagging{record}, overlay)

		require.NoError(t, err)
		courseRepo.AssertExpectations(t)
	})
}
