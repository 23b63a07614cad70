package importresolve

import (
	"strings"

	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/reposfs"
)

// resolveHeuristic builds a generic path-search strategy for the
// languages spec.md §4.G groups together as "similar path-search
// heuristics appropriate to the language" (Rust, Lua, Bash, R): strip
// quotes, normalise a module-path separator to "/", and try the token
// both next to the importer and relative to the repo root, with each of
// exts appended when the token carries no suffix of its own.
func resolveHeuristic(exts ...string) strategy {
	return func(tok importfind.Token, ctx *Context) ([]string, error) {
		name := stripQuotes(tok.Text)
		name = strings.ReplaceAll(name, "::", "/") // Rust module paths

		importerDir := reposfs.Dir(ctx.ImporterPath)
		bases := []string{reposfs.Join(importerDir, name), name}

		var out []string
		for _, base := range bases {
			if suffix := reposfs.Suffix(base); suffix != "" {
				if ctx.Repo.IsFile(base) {
					out = append(out, base)
				}
				continue
			}
			for _, ext := range exts {
				candidate := base + ext
				if ctx.Repo.IsFile(candidate) {
					out = append(out, candidate)
				}
			}
		}
		return out, nil
	}
}
