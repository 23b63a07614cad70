package main

import (
	"testing"

	"github.com/agentic-research/rssg/internal/langs"
	"github.com/stretchr/testify/assert"
)

func TestParseLanguageKnown(t *testing.T) {
	lang, ok := parseLanguage("python")
	assert.True(t, ok)
	assert.Equal(t, langs.Python, lang)
}

func TestParseLanguageUnknown(t *testing.T) {
	_, ok := parseLanguage("cobol")
	assert.False(t, ok)
}

func TestExitCodeForClassifiesCLIErrors(t *testing.T) {
	assert.Equal(t, 1, exitCodeFor(invalidArgs("bad flag")))
	assert.Equal(t, 2, exitCodeFor(invalidRepo("missing repo")))
}
