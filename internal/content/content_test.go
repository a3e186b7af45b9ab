package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a   b\n", "a b"},
		{"a b\n", "a b"},
		{" a b ", "a b"},
		{"", ""},
		{"   ", ""},
		{"1  2\n3    4\n", "1 2\n3 4"},
		{"a\tb", "a\tb"},
		{"a \t  b", "a \t b"},
		{"\n\nx\n\n", "x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalize_TabsAreSignificant(t *testing.T) {
	assert.NotEqual(t, Normalize("a\tb"), Normalize("a b"))
}

func TestNormalize_LineBreaksAreSignificant(t *testing.T) {
	assert.NotEqual(t, Normalize("a\nb"), Normalize("a b"))
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestEqual(t *testing.T) {
	dir := t.TempDir()
	padded := writeFile(t, dir, "padded", "  7   8 \n")
	plain := writeFile(t, dir, "plain", "7 8")
	tabbed := writeFile(t, dir, "tabbed", "7\t8")

	eq, err := Equal(padded, plain)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = Equal(plain, padded)
	require.NoError(t, err)
	assert.True(t, eq, "Equal must be symmetric")

	eq, err = Equal(plain, plain)
	require.NoError(t, err)
	assert.True(t, eq, "Equal must be reflexive")

	eq, err = Equal(plain, tabbed)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestEqual_MissingFile(t *testing.T) {
	dir := t.TempDir()
	plain := writeFile(t, dir, "plain", "7")

	_, err := Equal(plain, filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
