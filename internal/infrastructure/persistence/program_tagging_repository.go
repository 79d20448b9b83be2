package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sis/backend/internal/domain/registrar"
	"github.com/sis/backend/internal/domain/shared"
)

// GormProgramTaggingRepository implements ProgramTaggingRepository using GORM
type GormProgramTaggingRepository struct {
	db *gorm.DB
}

// NewGormProgramTaggingRepository creates a new GormProgramTaggingRepository
func NewGormProgramTaggingRepository(db *gorm.DB) *GormProgramTaggingRepository {
	return &GormProgramTaggingRepository{db: db}
}

// FindAll returns every tagged program row, in curriculum map display order.
// Year level and semester rows keep their insertion order within a curriculum,
// so ordering by primary key preserves the first-seen grouping the map builds.
func (r *GormProgramTaggingRepository) FindAll(ctx context.Context) ([]registrar.ProgramTagging, error) {
	var taggings []registrar.ProgramTagging
	if err := r.db.WithContext(ctx).
		Order("program_tagging_id ASC").
		Find(&taggings).Error; err != nil {
		return nil, err
	}
	return taggings, nil
}

// FindByID finds a tagged program by its ID
func (r *GormProgramTaggingRepository) FindByID(ctx context.Context, id int64) (*registrar.ProgramTagging, error) {
	var tagging registrar.ProgramTagging
	if err := r.db.WithContext(ctx).
		First(&tagging, "program_tagging_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tagging, nil
}

// Update overwrites the whole record. Save writes every column, which keeps
// a re-sent batch after a partial failure from diverging.
func (r *GormProgramTaggingRepository) Update(ctx context.Context, record *registrar.ProgramTagging) error {
	result := r.db.WithContext(ctx).Save(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ registrar.ProgramTaggingRepository = (*GormProgramTaggingRepository)(nil)
