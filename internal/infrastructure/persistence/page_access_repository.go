package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sis/backend/internal/domain/access"
	"github.com/sis/backend/internal/domain/shared"
)

// GormPageAccessRepository implements PageAccessRepository using GORM
type GormPageAccessRepository struct {
	db *gorm.DB
}

// NewGormPageAccessRepository creates a new GormPageAccessRepository
func NewGormPageAccessRepository(db *gorm.DB) *GormPageAccessRepository {
	return &GormPageAccessRepository{db: db}
}

// FindPrivilege finds the privilege row for an employee and page
func (r *GormPageAccessRepository) FindPrivilege(ctx context.Context, employeeID string, pageID int) (*access.PageAccess, error) {
	var row access.PageAccess
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND page_id = ?", employeeID, pageID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

var _ access.PageAccessRepository = (*GormPageAccessRepository)(nil)
