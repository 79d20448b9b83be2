package handler

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	appregistrar "github.com/sis/backend/internal/application/registrar"
	"github.com/sis/backend/internal/application/notification"
	"github.com/sis/backend/internal/domain/registrar"
	"github.com/sis/backend/internal/domain/shared"
	"github.com/sis/backend/internal/infrastructure/cache"
	"github.com/sis/backend/internal/interfaces/http/middleware"
)

type stubCurriculumRepo struct {
	items []registrar.Curriculum
	err   error
}

func (r *stubCurriculumRepo) FindActive(context.Context) ([]registrar.Curriculum, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.items, nil
}

type stubTaggingRepo struct {
	items   []registrar.ProgramTagging
	updated []registrar.ProgramTagging
	failID  int64
}

func (r *stubTaggingRepo) FindAll(context.Context) ([]registrar.ProgramTagging, error) {
	return r.items, nil
}

func (r *stubTaggingRepo) FindByID(_ context.Context, id int64) (*registrar.ProgramTagging, error) {
	for i := range r.items {
		if r.items[i].ProgramTaggingID == id {
			record := r.items[i]
			return &record, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubTaggingRepo) Update(_ context.Context, record *registrar.ProgramTagging) error {
	if r.failID != 0 && record.ProgramTaggingID == r.failID {
		return fmt.Errorf("update tagging %d: %w", record.ProgramTaggingID, shared.ErrNotFound)
	}
	r.updated = append(r.updated, *record)
	for i := range r.items {
		if r.items[i].ProgramTaggingID == record.ProgramTaggingID {
			r.items[i] = *record
		}
	}
	return nil
}

type stubCourseRepo struct {
	courses map[int64]registrar.Course
	prereqs map[int64]*string
	failID  int64
}

func (r *stubCourseRepo) FindByID(_ context.Context, id int64) (*registrar.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &course, nil
}

func (r *stubCourseRepo) UpdatePrereq(_ context.Context, courseID int64, prereq *string) error {
	if r.failID != 0 && courseID == r.failID {
		return fmt.Errorf("update course %d: %w", courseID, shared.ErrNotFound)
	}
	if r.prereqs == nil {
		r.prereqs = make(map[int64]*string)
	}
	r.prereqs[courseID] = prereq
	return nil
}

func taggingFixture(id int64, year, semester string, courseID int64, lecFee string) registrar.ProgramTagging {
	return registrar.ProgramTagging{
		ProgramTaggingID:     id,
		CurriculumID:         10,
		YearLevelDescription: year,
		SemesterDescription:  semester,
		CourseID:             courseID,
		CourseCode:           fmt.Sprintf("CS%d", courseID),
		CourseDescription:    fmt.Sprintf("Course %d", courseID),
		LecFee:               decimal.RequireFromString(lecFee),
		LabFee:               decimal.Zero,
	}
}

type consoleFixture struct {
	curriculumRepo *stubCurriculumRepo
	taggingRepo    *stubTaggingRepo
	courseRepo     *stubCourseRepo
	channel        *notification.Channel
	catalog        *appregistrar.CatalogService
	editor         *appregistrar.EditorService
	router         *gin.Engine
}

func newConsoleFixture(t *testing.T) *consoleFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &consoleFixture{
		curriculumRepo: &stubCurriculumRepo{
			items: []registrar.Curriculum{
				{CurriculumID: 10, ProgramDescription: "BS Information Technology", Major: "", Active: true},
			},
		},
		taggingRepo: &stubTaggingRepo{
			items: []registrar.ProgramTagging{
				taggingFixture(1, "First Year", "First Semester", 101, "1500.00"),
				taggingFixture(2, "First Year", "First Semester", 102, "1200.00"),
				taggingFixture(3, "First Year", "Second Semester", 103, "900.00"),
			},
		},
		courseRepo: &stubCourseRepo{
			courses: map[int64]registrar.Course{
				101: {CourseID: 101, CourseCode: "CS101", CourseDescription: "Course 101"},
				102: {CourseID: 102, CourseCode: "CS102", CourseDescription: "Course 102"},
				103: {CourseID: 103, CourseCode: "CS103", CourseDescription: "Course 103"},
			},
		},
		channel: notification.NewChannel(0),
	}

	f.catalog = appregistrar.NewCatalogService(f.curriculumRepo, f.taggingRepo, nil)
	feeEditor := appregistrar.NewFeeEditor(f.taggingRepo, f.catalog, f.channel, nil)
	prereqEditor := appregistrar.NewPrereqEditor(f.courseRepo, f.catalog, f.channel, nil)
	f.editor = appregistrar.NewEditorService(f.catalog, feeEditor, prereqEditor, f.taggingRepo, f.courseRepo, nil)

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	f.router = gin.New()
	f.router.Use(middleware.RequestID())
	api := f.router.Group("/api/v1")
	NewCatalogHandler(f.catalog).RegisterRoutes(api)
	NewEditorHandler(f.editor, store, time.Minute, nil, nil).RegisterRoutes(api)
	NewNotificationHandler(f.channel).RegisterRoutes(api)
	return f
}

func (f *consoleFixture) request(method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}
