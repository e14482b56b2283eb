package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsGooseMigrations(t *testing.T) {
	entries, err := fs.ReadDir(FS(), ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		raw, err := fs.ReadFile(FS(), e.Name())
		require.NoError(t, err)
		body := string(raw)
		assert.True(t, strings.Contains(body, "-- +goose Up"), e.Name())
		assert.True(t, strings.Contains(body, "-- +goose Down"), e.Name())
	}
}

func TestBaseline_PendingForeignKeyHasNoCascade(t *testing.T) {
	raw, err := fs.ReadFile(FS(), "00001_catalog_baseline.sql")
	require.NoError(t, err)
	body := strings.ToUpper(string(raw))
	assert.Contains(t, body, "REFERENCES USE_CASES (ID)")
	assert.NotContains(t, body, "ON DELETE CASCADE")
}
