// Package integration provides integration testing utilities for the SIS backend.
// It uses testcontainers to spin up real PostgreSQL databases for testing.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sis/backend/internal/domain/access"
	"github.com/sis/backend/internal/domain/admission"
	"github.com/sis/backend/internal/domain/registrar"
)

var (
	// Shared container for all tests in the package
	sharedContainer    testcontainers.Container
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
)

// TestDB represents a test database connection
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB creates a new PostgreSQL container for testing.
// This creates a fresh container for each test, providing complete isolation.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("sis_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, sqlDB := connectToDatabase(t, dsn)
	runMigrations(t, sqlDB)

	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: container,
		DSN:       dsn,
		t:         t,
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// NewSharedTestDB returns a shared PostgreSQL container for tests that clean
// up after themselves. Each call gets a fresh connection to the same database.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	ctx := context.Background()

	if sharedContainer == nil {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("sis_shared_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("admin123"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err, "Failed to start shared PostgreSQL container")

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err, "Failed to get connection string")

		sharedContainer = container
		sharedContainerDSN = dsn

		db, sqlDB := connectToDatabase(t, dsn)
		runMigrations(t, sqlDB)
		sqlDB.Close()
		_ = db
	}

	db, sqlDB := connectToDatabase(t, sharedContainerDSN)

	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: sharedContainer,
		DSN:       sharedContainerDSN,
		t:         t,
	}

	// The shared container outlives the test; only the connection is closed
	t.Cleanup(func() {
		if testDB.SqlDB != nil {
			testDB.SqlDB.Close()
		}
	})

	return testDB
}

// Close closes the database connection and terminates the container
func (tdb *TestDB) Close() {
	ctx := context.Background()

	if tdb.SqlDB != nil {
		tdb.SqlDB.Close()
	}

	if tdb.Container != nil && tdb.Container != sharedContainer {
		if err := tdb.Container.Terminate(ctx); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}

// CleanTables truncates all tables in the database
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")

	for _, table := range tables {
		err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error
		if err != nil {
			tdb.t.Logf("Warning: Failed to truncate table %s: %v", table, err)
		}
	}
}

// SeedRegistrarConsole loads one curriculum worth of catalog data plus the
// page privileges and applicant record the console tests exercise.
func (tdb *TestDB) SeedRegistrarConsole() {
	tdb.t.Helper()

	curricula := []registrar.Curriculum{
		{CurriculumID: 10, ProgramDescription: "BS Information Technology", Major: "", Active: true},
		{CurriculumID: 11, ProgramDescription: "BS Accountancy", Major: "", Active: true},
		{CurriculumID: 12, ProgramDescription: "BS Civil Engineering", Major: "", Active: false},
	}
	require.NoError(tdb.t, tdb.DB.Create(&curricula).Error, "Failed to seed curricula")

	courses := []registrar.Course{
		{CourseID: 101, CourseCode: "IT101", CourseDescription: "Introduction to Computing"},
		{CourseID: 102, CourseCode: "IT102", CourseDescription: "Computer Programming 1"},
		{CourseID: 103, CourseCode: "IT103", CourseDescription: "Computer Programming 2"},
	}
	require.NoError(tdb.t, tdb.DB.Create(&courses).Error, "Failed to seed courses")

	taggings := []registrar.ProgramTagging{
		{
			ProgramTaggingID:     1,
			CurriculumID:         10,
			YearLevelDescription: "First Year",
			SemesterDescription:  "First Semester",
			CourseID:             101,
			CourseCode:           "IT101",
			CourseDescription:    "Introduction to Computing",
			LecFee:               decimal.NewFromInt(1500),
			LabFee:               decimal.NewFromInt(300),
		},
		{
			ProgramTaggingID:     2,
			CurriculumID:         10,
			YearLevelDescription: "First Year",
			SemesterDescription:  "First Semester",
			CourseID:             102,
			CourseCode:           "IT102",
			CourseDescription:    "Computer Programming 1",
			LecFee:               decimal.NewFromInt(1800),
			LabFee:               decimal.NewFromInt(500),
		},
		{
			ProgramTaggingID:     3,
			CurriculumID:         10,
			YearLevelDescription: "First Year",
			SemesterDescription:  "Second Semester",
			CourseID:             103,
			CourseCode:           "IT103",
			CourseDescription:    "Computer Programming 2",
			LecFee:               decimal.NewFromInt(1800),
			LabFee:               decimal.NewFromInt(500),
		},
	}
	require.NoError(tdb.t, tdb.DB.Create(&taggings).Error, "Failed to seed program tagging")

	privileges := []access.PageAccess{
		{EmployeeID: "EMP-001", PageID: access.PageCurriculumPayment, PagePrivilege: 1},
		{EmployeeID: "EMP-001", PageID: access.PageCoursePanel, PagePrivilege: 1},
		{EmployeeID: "EMP-002", PageID: access.PageCurriculumPayment, PagePrivilege: 0},
	}
	require.NoError(tdb.t, tdb.DB.Create(&privileges).Error, "Failed to seed page access")

	persons := []admission.Person{
		{
			PersonID:        42,
			ApplicantNumber: "APP-2026-0042",
			FirstName:       "Maria",
			MiddleName:      "Reyes",
			LastName:        "Santos",
			ExamDate:        "2026-04-18",
			ExamTime:        "08:00 AM",
			ExamRoom:        "Room 204",
		},
	}
	require.NoError(tdb.t, tdb.DB.Create(&persons).Error, "Failed to seed persons")
}

// connectToDatabase establishes a GORM connection to the database
func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}

// runMigrations applies all database migrations
func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err, "Failed to create migration driver")

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to run migrations")
	}
}

// findMigrationsPath locates the migrations directory
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		migrationsPath := filepath.Join(dir, "migrations")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath
		}
		dir = filepath.Dir(dir)
	}

	if wd, err := os.Getwd(); err == nil {
		paths := []string{
			filepath.Join(wd, "migrations"),
			filepath.Join(wd, "..", "migrations"),
			filepath.Join(wd, "..", "..", "migrations"),
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}

	return ""
}

// CleanupSharedContainer terminates the shared container.
// This should be called in TestMain if using shared containers.
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerDSN = ""
	}
}
