package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "mergebench/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbers.txt")
	store := NewFileStore(path)

	cases := [][]int{
		{},
		{42},
		{5, 3, 3, 1, 9, 2},
		{-7, 0, 2147483647, -2147483648},
	}
	for _, want := range cases {
		require.NoError(t, store.Save(want))
		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbers.txt")

	require.NoError(t, Save(path, []int{1, 2, 3, 4, 5}))
	require.NoError(t, Save(path, []int{9}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9\n", string(content))
}

func TestRead(t *testing.T) {
	data, err := Read(strings.NewReader("100\n250\n100\n999\n"), "inline")
	require.NoError(t, err)
	assert.Equal(t, []int{100, 250, 100, 999}, data)

	// trailing newline is optional, stray whitespace and blank lines are ignored
	data, err = Read(strings.NewReader("  7 \n\n8\r\n9"), "inline")
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8, 9}, data)
}

func TestRead_ParseFailure(t *testing.T) {
	data, err := Read(strings.NewReader("1\n2\nabc\n4\n"), "bad.txt")
	assert.Nil(t, data)
	require.Error(t, err)

	var ioErr *apperrors.IOFailure
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "parse", ioErr.Op)
	assert.Equal(t, "bad.txt", ioErr.Path)
	assert.Equal(t, 3, ioErr.Line)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, apperrors.IsIO(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave_UnwritablePath(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "no", "such", "dir", "x.txt"), []int{1})
	require.Error(t, err)

	var ioErr *apperrors.IOFailure
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "save", ioErr.Op)
}
