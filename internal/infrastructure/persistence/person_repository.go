package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sis/backend/internal/domain/admission"
	"github.com/sis/backend/internal/domain/shared"
)

// GormPersonRepository implements PersonRepository using GORM
type GormPersonRepository struct {
	db *gorm.DB
}

// NewGormPersonRepository creates a new GormPersonRepository
func NewGormPersonRepository(db *gorm.DB) *GormPersonRepository {
	return &GormPersonRepository{db: db}
}

// FindByApplicantNumber finds an applicant record by applicant number
func (r *GormPersonRepository) FindByApplicantNumber(ctx context.Context, applicantNumber string) (*admission.Person, error) {
	var person admission.Person
	if err := r.db.WithContext(ctx).
		Where("applicant_number = ?", applicantNumber).
		First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

var _ admission.PersonRepository = (*GormPersonRepository)(nil)
