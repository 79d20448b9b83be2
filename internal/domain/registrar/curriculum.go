package registrar

import "strings"

// Curriculum represents one program curriculum offered by the school.
// Identifiers are legacy integer keys carried over from the registrar database.
type Curriculum struct {
	CurriculumID       int64  `gorm:"column:curriculum_id;primaryKey;autoIncrement" json:"curriculum_id"`
	ProgramDescription string `gorm:"column:program_description;type:varchar(255);not null" json:"program_description"`
	Major              string `gorm:"column:major;type:varchar(255)" json:"major"`
	Active             bool   `gorm:"column:active;not null;default:true" json:"active"`
}

// TableName returns the table name for GORM
func (Curriculum) TableName() string {
	return "curricula"
}

// DisplayName returns the label shown in the curriculum selector
func (c *Curriculum) DisplayName() string {
	return strings.TrimSpace(c.ProgramDescription + " " + c.Major)
}
