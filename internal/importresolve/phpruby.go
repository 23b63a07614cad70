package importresolve

import (
	"strings"

	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/reposfs"
)

// resolvePHP strips the surrounding quotes from a require/include argument
// and resolves it as an absolute path, or relative to the importer's
// directory (spec.md §4.G).
func resolvePHP(tok importfind.Token, ctx *Context) ([]string, error) {
	name := stripQuotes(tok.Text)
	if strings.HasPrefix(name, "/") && ctx.Repo.Exists(name) {
		return []string{name}, nil
	}
	path := reposfs.Join(reposfs.Dir(ctx.ImporterPath), name)
	if ctx.Repo.Exists(path) {
		return []string{path}, nil
	}
	return nil, nil
}

// resolveRuby strips quotes and searches <importer_dir>/<token>.rb,
// falling back to the literal path if it was already absolute.
func resolveRuby(tok importfind.Token, ctx *Context) ([]string, error) {
	name := stripQuotes(tok.Text)
	var out []string
	for _, ext := range []string{".rb"} {
		withExt := withSuffix(name, ext)
		if strings.HasPrefix(withExt, "/") && ctx.Repo.Exists(withExt) {
			out = append(out, withExt)
			continue
		}
		path := withSuffix(reposfs.Join(reposfs.Dir(ctx.ImporterPath), name), ext)
		if ctx.Repo.Exists(path) {
			out = append(out, path)
		}
	}
	return out, nil
}

// withSuffix replaces path's extension with ext, or appends ext if path
// has none — pathlib's Path.with_suffix.
func withSuffix(path, ext string) string {
	if suffix := reposfs.Suffix(path); suffix != "" {
		return strings.TrimSuffix(path, suffix) + ext
	}
	return path + ext
}
