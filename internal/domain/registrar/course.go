package registrar

// Course is the master record a tagged program points at. The course panel
// screen edits the prerequisite text here rather than on the tagging row.
type Course struct {
	CourseID          int64   `gorm:"column:course_id;primaryKey;autoIncrement" json:"course_id"`
	CourseCode        string  `gorm:"column:course_code;type:varchar(50);not null" json:"course_code"`
	CourseDescription string  `gorm:"column:course_description;type:varchar(255)" json:"course_description"`
	Prereq            *string `gorm:"column:prereq;type:varchar(255)" json:"prereq"`
}

// TableName returns the table name for GORM
func (Course) TableName() string {
	return "courses"
}

// SetPrereq replaces the prerequisite text; blank input clears it
func (c *Course) SetPrereq(text string) {
	if text == "" {
		c.Prereq = nil
		return
	}
	c.Prereq = &text
}
