package registrar

import (
	"strconv"
	"strings"
)

// CourseMap is the two-level hierarchy the curriculum screens render:
// year level, then semester, then the tagged courses of that semester.
// It is derived from the flat tagging list on every build and holds no
// state of its own.
type CourseMap struct {
	Years []YearGroup `json:"years"`
}

// YearGroup holds the semesters of one year level
type YearGroup struct {
	YearLevel string          `json:"year_level"`
	Semesters []SemesterGroup `json:"semesters"`
}

// SemesterGroup holds the tagged courses of one semester bucket.
// A semester bucket is also the batch a single save operates on.
type SemesterGroup struct {
	Semester string           `json:"semester"`
	Courses  []ProgramTagging `json:"courses"`
}

// BuildCourseMap groups the flat tagging list by year level and semester,
// scoped to the selected curriculum. Group order follows the first occurrence
// of each year/semester key in the source list, and records keep their source
// order within a bucket. An empty selection yields an empty map. The selected
// id arrives from the transport layer as text and may have been a number
// upstream, so matching coerces rather than comparing raw strings.
func BuildCourseMap(records []ProgramTagging, selectedCurriculum string) CourseMap {
	selected := strings.TrimSpace(selectedCurriculum)
	if selected == "" {
		return CourseMap{}
	}

	var m CourseMap
	for _, rec := range records {
		if !matchesCurriculum(rec.CurriculumID, selected) {
			continue
		}

		yi := -1
		for i := range m.Years {
			if m.Years[i].YearLevel == rec.YearLevelDescription {
				yi = i
				break
			}
		}
		if yi < 0 {
			m.Years = append(m.Years, YearGroup{YearLevel: rec.YearLevelDescription})
			yi = len(m.Years) - 1
		}

		year := &m.Years[yi]
		si := -1
		for i := range year.Semesters {
			if year.Semesters[i].Semester == rec.SemesterDescription {
				si = i
				break
			}
		}
		if si < 0 {
			year.Semesters = append(year.Semesters, SemesterGroup{Semester: rec.SemesterDescription})
			si = len(year.Semesters) - 1
		}

		year.Semesters[si].Courses = append(year.Semesters[si].Courses, rec)
	}

	return m
}

// SemesterBatch returns the courses of one semester bucket, or nil when the
// bucket does not exist in the map
func (m CourseMap) SemesterBatch(yearLevel, semester string) []ProgramTagging {
	for _, y := range m.Years {
		if y.YearLevel != yearLevel {
			continue
		}
		for _, s := range y.Semesters {
			if s.Semester == semester {
				return s.Courses
			}
		}
	}
	return nil
}

func matchesCurriculum(id int64, selected string) bool {
	if parsed, err := strconv.ParseInt(selected, 10, 64); err == nil {
		return id == parsed
	}
	return strconv.FormatInt(id, 10) == selected
}
