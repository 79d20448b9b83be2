package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sis/backend/internal/domain/shared"
)

// newMockCourseRepository creates a GormCourseRepository with a mocked SQL connection
func newMockCourseRepository(t *testing.T) (*GormCourseRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCourseRepository(gormDB), mock, mockDB
}

func TestGormCourseRepository_FindByID(t *testing.T) {
	t.Run("finds existing course", func(t *testing.T) {
		repo, mock, mockDB := newMockCourseRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"course_id", "course_code", "course_description", "prereq"}).
			AddRow(int64(10), "CS101", "Intro to Computing", nil)

		mock.ExpectQuery(`SELECT \* FROM "courses" WHERE course_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(10), 1).
			WillReturnRows(rows)

		course, err := repo.FindByID(context.Background(), 10)

		require.NoError(t, err)
		require.NotNil(t, course)
		assert.Equal(t, "CS101", course.CourseCode)
		assert.Nil(t, course.Prereq)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing course", func(t *testing.T) {
		repo, mock, mockDB := newMockCourseRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "courses" WHERE course_id = \$1`).
			WithArgs(int64(404), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		course, err := repo.FindByID(context.Background(), 404)

		assert.Nil(t, course)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCourseRepository_UpdatePrereq(t *testing.T) {
	t.Run("sets prerequisite text", func(t *testing.T) {
		repo, mock, mockDB := newMockCourseRepository(t)
		defer mockDB.Close()

		prereq := "CS101, MATH01"
		mock.ExpectExec(`UPDATE "courses" SET "prereq"=\$1 WHERE course_id = \$2`).
			WithArgs(prereq, int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePrereq(context.Background(), 11, &prereq)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clears prerequisite with nil", func(t *testing.T) {
		repo, mock, mockDB := newMockCourseRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "courses" SET "prereq"=\$1 WHERE course_id = \$2`).
			WithArgs(nil, int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePrereq(context.Background(), 11, nil)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no row matched", func(t *testing.T) {
		repo, mock, mockDB := newMockCourseRepository(t)
		defer mockDB.Close()

		prereq := "CS101"
		mock.ExpectExec(`UPDATE "courses" SET "prereq"=\$1 WHERE course_id = \$2`).
			WithArgs(prereq, int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePrereq(context.Background(), 404, &prereq)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
