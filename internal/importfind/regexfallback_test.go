package importfind

import (
	"testing"

	"github.com/agentic-research/rssg/internal/langs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindImportsRegexLua(t *testing.T) {
	code := "local net = require(\"net.utils\")\nprint(net)\n"
	tokens := findImportsRegex(langs.Lua, "a.lua", code)
	require.Len(t, tokens, 1)
	assert.Equal(t, "net.utils", tokens[0].Text)
	assert.Equal(t, 1, tokens[0].Anchor.StartLine)
}

func TestFindImportsRegexR(t *testing.T) {
	code := "x <- 1\nsource(\"helpers.R\")\n"
	tokens := findImportsRegex(langs.R, "a.R", code)
	require.Len(t, tokens, 1)
	assert.Equal(t, "helpers.R", tokens[0].Text)
	assert.Equal(t, 2, tokens[0].Anchor.StartLine)
}

func TestFindImportsRegexIgnoresUnsupportedLanguage(t *testing.T) {
	tokens := findImportsRegex(langs.Python, "a.py", "require('x')")
	assert.Nil(t, tokens)
}
