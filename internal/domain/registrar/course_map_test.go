package registrar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(id, curriculumID int64, year, sem, code string) ProgramTagging {
	return ProgramTagging{
		ProgramTaggingID:     id,
		CurriculumID:         curriculumID,
		YearLevelDescription: year,
		SemesterDescription:  sem,
		CourseCode:           code,
	}
}

func TestBuildCourseMap(t *testing.T) {
	records := []ProgramTagging{
		rec(1, 12, "First Year", "First Semester", "CS101"),
		rec(2, 12, "First Year", "Second Semester", "CS102"),
		rec(3, 12, "First Year", "First Semester", "MATH101"),
		rec(4, 12, "Second Year", "First Semester", "CS201"),
		rec(5, 99, "First Year", "First Semester", "EE101"),
	}

	t.Run("filters by selected curriculum", func(t *testing.T) {
		m := BuildCourseMap(records, "12")

		for _, y := range m.Years {
			for _, s := range y.Semesters {
				for _, c := range s.Courses {
					assert.Equal(t, int64(12), c.CurriculumID)
				}
			}
		}
	})

	t.Run("excludes records of other curricula", func(t *testing.T) {
		m := BuildCourseMap(records, "12")

		for _, y := range m.Years {
			for _, s := range y.Semesters {
				for _, c := range s.Courses {
					assert.NotEqual(t, "EE101", c.CourseCode)
				}
			}
		}
	})

	t.Run("keeps source order inside a semester bucket", func(t *testing.T) {
		m := BuildCourseMap(records, "12")

		bucket := m.SemesterBatch("First Year", "First Semester")
		assert.Len(t, bucket, 2)
		assert.Equal(t, int64(1), bucket[0].ProgramTaggingID)
		assert.Equal(t, int64(3), bucket[1].ProgramTaggingID)
	})

	t.Run("group order follows first occurrence of each key", func(t *testing.T) {
		m := BuildCourseMap(records, "12")

		assert.Equal(t, "First Year", m.Years[0].YearLevel)
		assert.Equal(t, "Second Year", m.Years[1].YearLevel)
		assert.Equal(t, "First Semester", m.Years[0].Semesters[0].Semester)
		assert.Equal(t, "Second Semester", m.Years[0].Semesters[1].Semester)
	})

	t.Run("is pure and deterministic", func(t *testing.T) {
		first := BuildCourseMap(records, "12")
		second := BuildCourseMap(records, "12")

		assert.Equal(t, first, second)
	})

	t.Run("empty selection yields empty hierarchy", func(t *testing.T) {
		m := BuildCourseMap(records, "")

		assert.Empty(t, m.Years)
	})

	t.Run("tolerates whitespace around the selected id", func(t *testing.T) {
		m := BuildCourseMap(records, " 12 ")

		assert.NotEmpty(t, m.Years)
	})

	t.Run("non-numeric selection matches nothing", func(t *testing.T) {
		m := BuildCourseMap(records, "abc")

		assert.Empty(t, m.Years)
	})

	t.Run("does not mutate the source slice", func(t *testing.T) {
		before := make([]ProgramTagging, len(records))
		copy(before, records)

		BuildCourseMap(records, "12")

		assert.Equal(t, before, records)
	})
}

func TestCourseMapSemesterBatch(t *testing.T) {
	records := []ProgramTagging{
		rec(1, 7, "First Year", "First Semester", "CS101"),
	}
	m := BuildCourseMap(records, "7")

	t.Run("returns nil for an unknown bucket", func(t *testing.T) {
		assert.Nil(t, m.SemesterBatch("First Year", "Summer"))
		assert.Nil(t, m.SemesterBatch("Third Year", "First Semester"))
	})

	t.Run("returns the courses of a known bucket", func(t *testing.T) {
		bucket := m.SemesterBatch("First Year", "First Semester")
		assert.Len(t, bucket, 1)
	})
}
