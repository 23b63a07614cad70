// Package importresolve turns an import_find token into zero or more
// repo-relative file paths (spec.md §4.G), one strategy per language,
// selected by table lookup rather than a type switch (spec.md §9).
package importresolve

import (
	"fmt"
	"sort"

	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/langs"
	"github.com/agentic-research/rssg/internal/reposfs"
)

// ModuleMap maps a module name (spec.md §4.F's derived identity) to every
// file path declaring it. Star imports and ambiguous short names can
// legitimately map to more than one file.
type ModuleMap map[string][]string

// Context is everything a resolver strategy needs beyond the token itself.
type Context struct {
	Repo         *reposfs.Repo
	ModuleMap    ModuleMap
	ImporterPath string // repo-relative path of the file containing the import

	// goModCache lazily holds the parsed go.mod, filled in on first use
	// by the Go strategy so every token resolved through this Context
	// shares one parse.
	goModCache *goModInfo
}

// strategy resolves one token to a set of repo-relative file paths.
type strategy func(tok importfind.Token, ctx *Context) ([]string, error)

var strategies = map[langs.Language]strategy{
	langs.Java:       resolveMapLookupStar,
	langs.Kotlin:     resolveMapLookupStar,
	langs.CSharp:     resolveMapLookup,
	langs.TypeScript: resolveTSJS,
	langs.JavaScript: resolveTSJS,
	langs.Python:     resolvePython,
	langs.PHP:        resolvePHP,
	langs.Ruby:       resolveRuby,
	langs.C:          resolveCFamily,
	langs.CPP:        resolveCFamily,
	langs.Go:         resolveGo,
	langs.Swift:      resolveSwift,
	langs.Rust:       resolveHeuristic(".rs"),
	langs.Lua:        resolveHeuristic(".lua"),
	langs.Bash:       resolveHeuristic(".sh", ".bash"),
	langs.R:          resolveHeuristic(".r", ".R"),
}

// Resolve dispatches tok to lang's strategy and de-duplicates the result,
// matching resolve_import.py's `return list(set(resolved_path_list))`.
func Resolve(lang langs.Language, tok importfind.Token, ctx *Context) ([]string, error) {
	fn, ok := strategies[lang]
	if !ok {
		return nil, fmt.Errorf("importresolve: no strategy registered for %s", lang)
	}
	paths, err := fn(tok, ctx)
	if err != nil {
		return nil, err
	}
	return dedupeSorted(paths), nil
}

func dedupeSorted(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func stripAngleBrackets(s string) string {
	if len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>' {
		return s[1 : len(s)-1]
	}
	return s
}
