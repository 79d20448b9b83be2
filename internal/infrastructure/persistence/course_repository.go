package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sis/backend/internal/domain/registrar"
	"github.com/sis/backend/internal/domain/shared"
)

// GormCourseRepository implements CourseRepository using GORM
type GormCourseRepository struct {
	db *gorm.DB
}

// NewGormCourseRepository creates a new GormCourseRepository
func NewGormCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// FindByID finds a course master record by its ID
func (r *GormCourseRepository) FindByID(ctx context.Context, id int64) (*registrar.Course, error) {
	var course registrar.Course
	if err := r.db.WithContext(ctx).
		First(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// UpdatePrereq sets the prerequisite text on a course; nil clears it
func (r *GormCourseRepository) UpdatePrereq(ctx context.Context, courseID int64, prereq *string) error {
	result := r.db.WithContext(ctx).
		Model(&registrar.Course{}).
		Where("course_id = ?", courseID).
		Update("prereq", prereq)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ registrar.CourseRepository = (*GormCourseRepository)(nil)
