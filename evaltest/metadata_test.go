package evaltest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	src := `;; INPUT: 1 2; 3   4 ;
; OUTPUT: 3; 7; 0
;; trailing comment
(define (main) 0)
; INPUT: ignored
`
	cases, err := ParseMetadata(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []Case{
		{Input: "1\n2\n", Output: "3"},
		{Input: "3\n4\n", Output: "7"},
		{Input: "\n", Output: "0"},
	}, cases)
}

func TestParseMetadataNoInput(t *testing.T) {
	cases, err := ParseMetadata(strings.NewReader("; OUTPUT: 42\n(+ 40 2)\n"))
	require.NoError(t, err)
	assert.Equal(t, []Case{{Output: "42"}}, cases)
}

func TestParseMetadataErrors(t *testing.T) {
	_, err := ParseMetadata(strings.NewReader("(+ 1 2)\n; OUTPUT: 3\n"))
	assert.Equal(t, ErrNoOutput, err)

	_, err = ParseMetadata(strings.NewReader("; OUTPUT: 1; 2\n"))
	assert.Equal(t, ErrMultiOutput, err)

	_, err = ParseMetadata(strings.NewReader("; INPUT: 1; 2\n; OUTPUT: 1\n"))
	assert.Equal(t, ErrCaseCount, err)
}

func TestLoadMetadata(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test3.src")
	require.NoError(t, os.WriteFile(file, []byte("; INPUT: 5\n; OUTPUT: 6\n(+ (read) 1)\n"), 0644))
	cases, err := LoadMetadata(file)
	require.NoError(t, err)
	assert.Equal(t, []Case{{Input: "5\n", Output: "6"}}, cases)

	_, err = LoadMetadata(filepath.Join(dir, "missing.src"))
	assert.True(t, os.IsNotExist(err))

	bad := filepath.Join(dir, "bad.src")
	require.NoError(t, os.WriteFile(bad, []byte("(read)\n"), 0644))
	_, err = LoadMetadata(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrNoOutput.Error())
}

func TestSortNumerically(t *testing.T) {
	files := []string{"tests/test10.src", "tests/test2.src", "tests/a.src", "t9/test2b.src", "tests/test1.src"}
	assert.Equal(t, []string{
		"tests/a.src", "tests/test1.src", "tests/test2.src", "t9/test2b.src", "tests/test10.src",
	}, SortNumerically(files))
	assert.Equal(t, "tests/test10.src", files[0], "input slice must not be reordered")
	assert.Equal(t, 0, Number("prog.src"))
	assert.Equal(t, 123, Number("/x/99/p123q4.src"))
}
