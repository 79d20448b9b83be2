package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add course tables")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.Contains(t, filepath.Base(mf.UpPath), "add_course_tables.up.sql")
	assert.Contains(t, filepath.Base(mf.DownPath), "add_course_tables.down.sql")

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add course tables")

	_, err = os.Stat(mf.DownPath)
	assert.NoError(t, err)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"add course tables", "add_course_tables"},
		{"Add-Course--Tables", "add_course_tables"},
		{"trailing space ", "trailing_space"},
		{"UPPER123", "upper123"},
		{"weird!@#chars", "weirdchars"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.input), "input %q", tt.input)
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory returns empty list", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("pairs are listed once, sorted", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"20260101000002_b.up.sql", "20260101000002_b.down.sql",
			"20260101000001_a.up.sql", "20260101000001_a.down.sql",
			"README.md",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"20260101000001_a", "20260101000002_b"}, migrations)
	})
}
