package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCreatesHeaderOnlyFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	for _, schema := range Schemas {
		path := filepath.Join(dir, schema.File)
		_, err := os.Stat(path)
		require.NoError(t, err, "expected %s to exist", schema.File)

		rows, err := Read(dir, schema)
		require.NoError(t, err)
		assert.Empty(t, rows)
	}
}

func TestInitLeavesExistingFilesAlone(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	schema, ok := SchemaFor("subjects")
	require.True(t, ok)
	require.NoError(t, Write(dir, schema, [][]string{{"1", "Rex", "2026-08-01 10:00:00"}}))

	require.NoError(t, Init(dir))
	rows, err := Read(dir, schema)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rex", rows[0][1])
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	schema, ok := SchemaFor("daily_scores")
	require.True(t, ok)

	in := [][]string{
		{"1", "2", "2026-08-01", "7", "good session"},
		{"2", "2", "2026-08-02", "8", "notes, with comma"},
	}
	require.NoError(t, Write(dir, schema, in))

	out, err := Read(dir, schema)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWriteRejectsShortRow(t *testing.T) {
	dir := t.TempDir()
	schema, ok := SchemaFor("subjects")
	require.True(t, ok)

	err := Write(dir, schema, [][]string{{"1", "Rex"}})
	require.Error(t, err)
}

func TestReadRejectsHeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	schema, ok := SchemaFor("subjects")
	require.True(t, ok)

	path := filepath.Join(dir, schema.File)
	require.NoError(t, os.WriteFile(path, []byte("Wrong,Header,Here\n"), 0o644))

	_, err := Read(dir, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header mismatch")
}

func TestSchemaForUnknown(t *testing.T) {
	_, ok := SchemaFor("nope")
	assert.False(t, ok)
}
