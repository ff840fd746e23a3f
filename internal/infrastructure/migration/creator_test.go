package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/migrations"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add users table", "add_users_table"},
		{"Add-Users-Table", "add_users_table"},
		{"add__users__table", "add_users_table"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "special_chars"},
		{"_leading", "leading"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_NumbersSequentially(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "create users")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_users.up.sql"), first.UpPath)
	assert.FileExists(t, first.DownPath)

	second, err := CreateMigration(dir, "Add product index")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)
	assert.Equal(t, "000002_add_product_index", second.BaseName())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_b.up.sql":   {},
		"000002_b.down.sql": {},
		"000001_a.up.sql":   {},
		"000001_a.down.sql": {},
		"README.md":         {},
	}
	files, err := ListMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "000001_a", files[0].BaseName())
	assert.Equal(t, "000002_b.down.sql", files[1].DownPath)
}

func TestListMigrations_MissingHalf(t *testing.T) {
	fsys := fstest.MapFS{"000001_a.up.sql": {}}
	_, err := ListMigrations(fsys)
	assert.ErrorContains(t, err, "missing its up or down file")
}

func TestListMigrations_MissingDir(t *testing.T) {
	_, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "absent")))
	assert.Error(t, err)
}

func TestEmbeddedMigrations_AreContiguousPairs(t *testing.T) {
	files, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for i, f := range files {
		assert.Equal(t, uint(i+1), f.Version, "gap before %s", f.BaseName())
	}
}
