package registrar

import (
	"github.com/sis/backend/internal/domain/registrar"
)

// CurriculumResponse represents a curriculum in API responses
type CurriculumResponse struct {
	CurriculumID       int64  `json:"curriculum_id"`
	ProgramDescription string `json:"program_description"`
	Major              string `json:"major"`
	DisplayName        string `json:"display_name"`
	Active             bool   `json:"active"`
}

// ToCurriculumResponse converts a curriculum to its response form
func ToCurriculumResponse(c *registrar.Curriculum) CurriculumResponse {
	return CurriculumResponse{
		CurriculumID:       c.CurriculumID,
		ProgramDescription: c.ProgramDescription,
		Major:              c.Major,
		DisplayName:        c.DisplayName(),
		Active:             c.Active,
	}
}

// TaggedCourseResponse represents one tagged course in API responses. Fees
// are serialized as plain decimal strings.
type TaggedCourseResponse struct {
	ProgramTaggingID  int64  `json:"program_tagging_id"`
	CurriculumID      int64  `json:"curriculum_id"`
	YearLevel         string `json:"year_level_description"`
	Semester          string `json:"semester_description"`
	CourseID          int64  `json:"course_id"`
	CourseCode        string `json:"course_code"`
	CourseDescription string `json:"course_description"`
	Prereq            string `json:"prereq"`
	LecFee            string `json:"lec_fee"`
	LabFee            string `json:"lab_fee"`
}

// ToTaggedCourseResponse converts a tagged program record to its response form
func ToTaggedCourseResponse(p *registrar.ProgramTagging) TaggedCourseResponse {
	return TaggedCourseResponse{
		ProgramTaggingID:  p.ProgramTaggingID,
		CurriculumID:      p.CurriculumID,
		YearLevel:         p.YearLevelDescription,
		Semester:          p.SemesterDescription,
		CourseID:          p.CourseID,
		CourseCode:        p.CourseCode,
		CourseDescription: p.CourseDescription,
		Prereq:            p.PrereqText(),
		LecFee:            p.LecFee.String(),
		LabFee:            p.LabFee.String(),
	}
}

// ToTaggedCourseResponses converts a record slice, keeping its order
func ToTaggedCourseResponses(records []registrar.ProgramTagging) []TaggedCourseResponse {
	out := make([]TaggedCourseResponse, 0, len(records))
	for i := range records {
		out = append(out, ToTaggedCourseResponse(&records[i]))
	}
	return out
}

// SemesterGroupResponse is one semester bucket of the course map
type SemesterGroupResponse struct {
	Semester string                 `json:"semester"`
	Courses  []TaggedCourseResponse `json:"courses"`
}

// YearGroupResponse is one year level of the course map
type YearGroupResponse struct {
	YearLevel string                  `json:"year_level"`
	Semesters []SemesterGroupResponse `json:"semesters"`
}

// CourseMapResponse is the grouped hierarchy a curriculum screen renders
type CourseMapResponse struct {
	Years []YearGroupResponse `json:"years"`
}

// ToCourseMapResponse converts a course map, preserving group order
func ToCourseMapResponse(m registrar.CourseMap) CourseMapResponse {
	resp := CourseMapResponse{Years: make([]YearGroupResponse, 0, len(m.Years))}
	for _, year := range m.Years {
		yg := YearGroupResponse{
			YearLevel: year.YearLevel,
			Semesters: make([]SemesterGroupResponse, 0, len(year.Semesters)),
		}
		for _, sem := range year.Semesters {
			yg.Semesters = append(yg.Semesters, SemesterGroupResponse{
				Semester: sem.Semester,
				Courses:  ToTaggedCourseResponses(sem.Courses),
			})
		}
		resp.Years = append(resp.Years, yg)
	}
	return resp
}

// CourseResponse represents a course master record in API responses
type CourseResponse struct {
	CourseID          int64  `json:"course_id"`
	CourseCode        string `json:"course_code"`
	CourseDescription string `json:"course_description"`
	Prereq            string `json:"prereq"`
}

// ToCourseResponse converts a course to its response form
func ToCourseResponse(c *registrar.Course) CourseResponse {
	prereq := ""
	if c.Prereq != nil {
		prereq = *c.Prereq
	}
	return CourseResponse{
		CourseID:          c.CourseID,
		CourseCode:        c.CourseCode,
		CourseDescription: c.CourseDescription,
		Prereq:            prereq,
	}
}
