package admission

import "context"

// Person is an applicant record looked up by applicant number when the
// registrar prints an exam permit
type Person struct {
	PersonID        int64  `gorm:"column:person_id;primaryKey;autoIncrement" json:"person_id"`
	ApplicantNumber string `gorm:"column:applicant_number;type:varchar(50);not null;uniqueIndex" json:"applicant_number"`
	FirstName       string `gorm:"column:first_name;type:varchar(100)" json:"first_name"`
	MiddleName      string `gorm:"column:middle_name;type:varchar(100)" json:"middle_name"`
	LastName        string `gorm:"column:last_name;type:varchar(100)" json:"last_name"`
	ExamDate        string `gorm:"column:exam_date;type:varchar(50)" json:"exam_date"`
	ExamTime        string `gorm:"column:exam_time;type:varchar(50)" json:"exam_time"`
	ExamRoom        string `gorm:"column:exam_room;type:varchar(100)" json:"exam_room"`
}

// TableName returns the table name for GORM
func (Person) TableName() string {
	return "persons"
}

// PersonRepository provides applicant lookups
type PersonRepository interface {
	FindByApplicantNumber(ctx context.Context, applicantNumber string) (*Person, error)
}
