// Package srcread implements the Source Reader (spec.md §4.B): turning a
// file's raw bytes into UTF-8 text, tolerating bad encodings, and guarding
// the parser against pathologically large files.
package srcread

import (
	"bytes"
	"log"
	"strings"
	"unicode/utf8"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadText decodes data as UTF-8 text, detecting a byte-order mark and
// stripping it, and falling back to a lossy decode (replacing invalid
// byte sequences with U+FFFD) when the content isn't valid UTF-8 —
// spec.md §4.B says to warn, never raise, on a bad encoding. When
// maxLines > 0 and the text has more lines than that, only the first
// maxLines are returned, guarding the parser from oversized inputs
// (spec.md §4.B, §5's "truncates oversized files before they reach the
// parser").
func ReadText(path string, data []byte, maxLines int) string {
	data = stripBOM(data)

	text := string(data)
	if !utf8.ValidString(text) {
		log.Printf("srcread: %s is not valid UTF-8, falling back to lossy decode", path)
		text = strings.ToValidUTF8(text, "�")
	}

	if maxLines <= 0 {
		return text
	}
	return truncateLines(text, maxLines)
}

func stripBOM(data []byte) []byte {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):]
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		// UTF-16 source is rare for the languages this tool parses; treat
		// it as already-decodable text and let the lossy-decode path
		// above clean up whatever mojibake results rather than pulling in
		// a full transcoding dependency for an edge case spec.md doesn't
		// name as a requirement.
		return data
	default:
		return data
	}
}

func truncateLines(text string, maxLines int) string {
	count := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			count++
			if count == maxLines {
				return text[:i+1]
			}
		}
	}
	return text
}
