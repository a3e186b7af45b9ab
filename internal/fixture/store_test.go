package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"martianoff/lama/internal/judge"
	"martianoff/lama/lamaerr"
)

// writeArchive extracts a txtar archive into a fresh temporary directory.
func writeArchive(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(dir, f.Name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, f.Data, 0644))
	}
	return dir
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		ok    bool
	}{
		{"input.1", "1", true},
		{"input.042", "042", true},
		{"input.abc", "abc", true},
		{"input.1.bak", "1.bak", true},
		{"input.", "", false},
		{"input", "", false},
		{"output.1", "", false},
		{"myinput.1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := ParseToken(InputTemplate, tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestFormatNameRoundTrip(t *testing.T) {
	name := FormatName(OutputTemplate, "17")
	assert.Equal(t, "output.17", name)

	token, ok := ParseToken(OutputTemplate, name)
	require.True(t, ok)
	assert.Equal(t, "17", token)
}

func TestDiscover_SortsByOrdinal(t *testing.T) {
	dir := writeArchive(t, `
-- input.10 --
10
-- output.10 --
10
-- input.2 --
2
-- output.2 --
2
-- input.1 --
1
-- output.1 --
1
`)

	tests, err := Discover(dir)
	require.NoError(t, err)

	want := []judge.TestCase{
		{Ordinal: 1, InputPath: filepath.Join(dir, "input.1"), ExpectedOutputPath: filepath.Join(dir, "output.1")},
		{Ordinal: 2, InputPath: filepath.Join(dir, "input.2"), ExpectedOutputPath: filepath.Join(dir, "output.2")},
		{Ordinal: 10, InputPath: filepath.Join(dir, "input.10"), ExpectedOutputPath: filepath.Join(dir, "output.10")},
	}
	if diff := cmp.Diff(want, tests); diff != "" {
		t.Errorf("Discover mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_SkipsNonConformingEntries(t *testing.T) {
	dir := writeArchive(t, `
-- input.1 --
ok
-- output.1 --
ok
-- input.3 --
no expected output
-- input.abc --
not numeric
-- output.abc --
x
-- input.-4 --
negative
-- output.-4 --
x
-- input.5.bak --
backup
-- output.5.bak --
x
-- notes.txt --
ignored
-- output.9 --
orphan output
`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "input.7"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "output.7"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input.8"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "output.8"), 0755))

	tests, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, 1, tests[0].Ordinal)
}

func TestDiscover_NoTests(t *testing.T) {
	dir := writeArchive(t, `
-- input.1 --
only input
`)

	_, err := Discover(dir)
	require.Error(t, err)
	assert.True(t, lamaerr.IsType(err, lamaerr.TypeNoTests))
}

func TestDiscover_EmptyDirectory(t *testing.T) {
	_, err := Discover(t.TempDir())
	assert.True(t, lamaerr.IsType(err, lamaerr.TypeNoTests))
}

func TestDiscover_MissingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.False(t, lamaerr.IsType(err, lamaerr.TypeNoTests))
}

func TestDiscover_DuplicateOrdinal(t *testing.T) {
	dir := writeArchive(t, `
-- input.1 --
a
-- output.1 --
a
-- input.01 --
b
-- output.01 --
b
`)

	_, err := Discover(dir)
	require.Error(t, err)
	assert.True(t, lamaerr.IsType(err, lamaerr.TypeDuplicateOrdinal))

	var dup *lamaerr.DuplicateOrdinalError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 1, dup.Ordinal)
	assert.ElementsMatch(t, []string{"input.1", "input.01"}, []string{dup.First, dup.Second})
}

func TestMaxOrdinalWidth(t *testing.T) {
	dir := writeArchive(t, `
-- input.7 --
-- output.7 --
-- input.123 --
-- output.123 --
`)

	tests, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, MaxOrdinalWidth(tests))
}
