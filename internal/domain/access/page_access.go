package access

import "context"

// RoleRegistrar is the role required by every registrar console page
const RoleRegistrar = "registrar"

// Page identifiers of the gated registrar screens
const (
	PageCurriculumPayment = 111
	PageCoursePanel       = 112
)

// PageAccess is one row of the per-employee page privilege table
type PageAccess struct {
	EmployeeID    string `gorm:"column:employee_id;type:varchar(50);primaryKey" json:"employee_id"`
	PageID        int    `gorm:"column:page_id;primaryKey" json:"page_id"`
	PagePrivilege int    `gorm:"column:page_privilege;not null;default:0" json:"page_privilege"`
}

// TableName returns the table name for GORM
func (PageAccess) TableName() string {
	return "page_access"
}

// Granted reports whether the privilege flag is the affirmative value
func (p *PageAccess) Granted() bool {
	return p.PagePrivilege == 1
}

// PageAccessRepository provides access to page privilege rows
type PageAccessRepository interface {
	FindPrivilege(ctx context.Context, employeeID string, pageID int) (*PageAccess, error)
}
