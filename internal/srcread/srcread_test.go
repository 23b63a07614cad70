package srcread

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadTextStripsUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	assert.Equal(t, "hello", ReadText("a.py", data, 0))
}

func TestReadTextFallsBackOnInvalidUTF8(t *testing.T) {
	data := []byte{'a', 0xff, 'b'}
	got := ReadText("a.py", data, 0)
	assert.Contains(t, got, "a")
	assert.Contains(t, got, "b")
}

func TestReadTextTruncatesToMaxLines(t *testing.T) {
	text := "line1\nline2\nline3\nline4\n"
	got := ReadText("a.py", []byte(text), 2)
	assert.Equal(t, "line1\nline2\n", got)
}

func TestReadTextNoTruncationWhenUnderLimit(t *testing.T) {
	text := "line1\nline2\n"
	got := ReadText("a.py", []byte(text), 10)
	assert.Equal(t, text, got)
}

func TestReadTextZeroMaxLinesMeansUnlimited(t *testing.T) {
	text := "line1\nline2\nline3\n"
	got := ReadText("a.py", []byte(text), 0)
	assert.Equal(t, text, got)
}
