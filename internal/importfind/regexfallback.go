package importfind

import (
	"regexp"

	"github.com/agentic-research/rssg/internal/langs"
	"github.com/agentic-research/rssg/internal/location"
)

// requireCallPattern matches `require("x")`, `require 'x'`, and
// `require_relative("x")`-style call forms; sourceCallPattern matches R's
// `source("x.R")`. Both languages' import statements are bare function
// calls with no distinguishing grammar node worth a tree-sitter query for
// (spec.md §4.F: "Lua and R require fallback for require/source call
// forms with string-literal arguments").
var (
	requireCallPattern = regexp.MustCompile(`require(?:_relative)?\s*\(?\s*["']([^"']+)["']\s*\)?`)
	sourceCallPattern  = regexp.MustCompile(`source\s*\(\s*["']([^"']+)["']\s*\)`)
)

func findImportsRegex(lang langs.Language, filePath, code string) []Token {
	var pattern *regexp.Regexp
	switch lang {
	case langs.Lua:
		pattern = requireCallPattern
	case langs.R:
		pattern = sourceCallPattern
	default:
		return nil
	}

	var out []Token
	line := 1
	lineStartOffset := 0
	for i := 0; i <= len(code); i++ {
		if i == len(code) || code[i] == '\n' {
			lineText := code[lineStartOffset:i]
			for _, m := range pattern.FindAllStringSubmatchIndex(lineText, -1) {
				startCol, endCol := m[2]+1, m[3]+1
				out = append(out, Token{
					Text: lineText[m[2]:m[3]],
					Anchor: location.Location{
						FilePath:  filePath,
						StartLine: line,
						StartCol:  startCol,
						EndLine:   line,
						EndCol:    endCol,
					},
				})
			}
			line++
			lineStartOffset = i + 1
		}
	}
	return out
}
