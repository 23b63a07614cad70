package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationString(t *testing.T) {
	require.Equal(t, "a.py", Location{FilePath: "a.py"}.String())
	require.Equal(t, "a.py:1:1-2:4", Location{FilePath: "a.py", StartLine: 1, StartCol: 1, EndLine: 2, EndCol: 4}.String())
}

func TestLocationEqual(t *testing.T) {
	a := Location{FilePath: "a.py", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 5}
	b := Location{FilePath: "a.py", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 5}
	assert.True(t, a.Equal(b))

	c := Location{FilePath: "a.py", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 6}
	assert.False(t, a.Equal(c))
}

func TestSliceText(t *testing.T) {
	text := "def foo():\n    return 1\n"
	got := SliceText(text, 1, 1, 1, 4)
	assert.Equal(t, "def", got)
}

func TestSliceTextMultiline(t *testing.T) {
	text := "line one\nline two\nline three"
	got := SliceText(text, 1, 6, 2, 5)
	assert.Equal(t, "one\nline", got)
}

func TestSliceTextClampsOutOfRangeColumn(t *testing.T) {
	text := "abc\n"
	got := SliceText(text, 1, 1, 1, 999)
	assert.Equal(t, "abc", got)
}

func TestSliceTextAround(t *testing.T) {
	text := "abcdef"
	prefix, span, suffix := SliceTextAround(text, 1, 3, 1, 5)
	assert.Equal(t, "ab", prefix)
	assert.Equal(t, "cd", span)
	assert.Equal(t, "ef", suffix)
}
