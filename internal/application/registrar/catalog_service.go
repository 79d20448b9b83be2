package registrar

import (
	"context"
	"fmt"
	"sync"

	"github.com/sis/backend/internal/domain/registrar"
	"github.com/sis/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CatalogService holds the server-authoritative baseline the console screens
// render: the active curricula and the flat tagged-program list. The snapshot
// is replaced wholesale on refresh; nothing patches it incrementally, so a
// course map derived from it can never drift from its sources.
type CatalogService struct {
	curriculumRepo registrar.CurriculumRepository
	taggingRepo    registrar.ProgramTaggingRepository
	log            *zap.Logger

	mu        sync.RWMutex
	curricula []registrar.Curriculum
	taggings  []registrar.ProgramTagging
	loaded    bool
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	curriculumRepo registrar.CurriculumRepository,
	taggingRepo registrar.ProgramTaggingRepository,
	log *zap.Logger,
) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{
		curriculumRepo: curriculumRepo,
		taggingRepo:    taggingRepo,
		log:            log,
	}
}

// ActiveCurricula returns the curricula of the current snapshot, fetching it
// on first use
func (s *CatalogService) ActiveCurricula(ctx context.Context) ([]registrar.Curriculum, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]registrar.Curriculum, len(s.curricula))
	copy(out, s.curricula)
	return out, nil
}

// TaggedPrograms returns the flat tagged-program list of the current snapshot
func (s *CatalogService) TaggedPrograms(ctx context.Context) ([]registrar.ProgramTagging, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]registrar.ProgramTagging, len(s.taggings))
	copy(out, s.taggings)
	return out, nil
}

// CourseMap derives the year/semester hierarchy for the selected curriculum
// from the current snapshot
func (s *CatalogService) CourseMap(ctx context.Context, selectedCurriculum string) (registrar.CourseMap, error) {
	records, err := s.TaggedPrograms(ctx)
	if err != nil {
		return registrar.CourseMap{}, err
	}
	return registrar.BuildCourseMap(records, selectedCurriculum), nil
}

// Refresh refetches both collections and swaps the snapshot in one step.
// After a successful batch save this is what makes displayed values reflect
// persisted state instead of trusting any local merge.
func (s *CatalogService) Refresh(ctx context.Context) error {
	curricula, err := s.curriculumRepo.FindActive(ctx)
	if err != nil {
		s.log.Error("curriculum baseline fetch failed", zap.Error(err))
		return fmt.Errorf("refresh curricula: %w", shared.ErrFetchFailed)
	}

	taggings, err := s.taggingRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("program tagging baseline fetch failed", zap.Error(err))
		return fmt.Errorf("refresh program tagging: %w", shared.ErrFetchFailed)
	}

	s.mu.Lock()
	s.curricula = curricula
	s.taggings = taggings
	s.loaded = true
	s.mu.Unlock()

	s.log.Debug("catalog snapshot refreshed",
		zap.Int("curricula", len(curricula)),
		zap.Int("tagged_programs", len(taggings)),
	)
	return nil
}

func (s *CatalogService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded {
		return nil
	}
	return s.Refresh(ctx)
}
