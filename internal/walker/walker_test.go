package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protodex/protodex/internal/errors"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("-- lua\n"), 0644))
}

func TestFindFiles_WalksRecursively(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data.lua"))
	writeFile(t, filepath.Join(dir, "prototypes", "item.lua"))
	writeFile(t, filepath.Join(dir, "prototypes", "recipe.LUA"))
	writeFile(t, filepath.Join(dir, "readme.md"))

	files, err := FindFiles(dir, ".lua")
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(dir, "data.lua"), files[0])
	assert.Equal(t, filepath.Join(dir, "prototypes", "item.lua"), files[1])
	assert.Equal(t, filepath.Join(dir, "prototypes", "recipe.LUA"), files[2])
}

func TestFindFiles_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.lua")
	writeFile(t, path)

	files, err := FindFiles(path, ".lua")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFindFiles_SingleFileWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	writeFile(t, path)

	_, err := FindFiles(path, ".lua")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoFilesFound)
}

func TestFindFiles_MissingRoot(t *testing.T) {
	_, err := FindFiles(filepath.Join(t.TempDir(), "nope"), ".lua")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestFindFiles_NoMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.md"))

	_, err := FindFiles(dir, ".lua")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoFilesFound)
}
