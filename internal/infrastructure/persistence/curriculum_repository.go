package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/sis/backend/internal/domain/registrar"
)

// GormCurriculumRepository implements CurriculumRepository using GORM
type GormCurriculumRepository struct {
	db *gorm.DB
}

// NewGormCurriculumRepository creates a new GormCurriculumRepository
func NewGormCurriculumRepository(db *gorm.DB) *GormCurriculumRepository {
	return &GormCurriculumRepository{db: db}
}

// FindActive returns all curricula still offered, ordered by program description
func (r *GormCurriculumRepository) FindActive(ctx context.Context) ([]registrar.Curriculum, error) {
	var curricula []registrar.Curriculum
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("program_description ASC").
		Find(&curricula).Error; err != nil {
		return nil, err
	}
	return curricula, nil
}

var _ registrar.CurriculumRepository = (*GormCurriculumRepository)(nil)
