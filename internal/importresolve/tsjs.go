package importresolve

import (
	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/reposfs"
)

// tsJSExtensions is the combined TypeScript + JavaScript extension table,
// mirroring resolve_import.py's `Repository.code_file_extensions[TypeScript]
// + Repository.code_file_extensions[JavaScript]` concatenation.
var tsJSExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// resolveTSJS implements spec.md §4.G: a relative token ("./x", "../x")
// is searched next to the importer, trying each known extension and, for
// a directory import, its index file; anything else is a module-map
// lookup by bare name.
func resolveTSJS(tok importfind.Token, ctx *Context) ([]string, error) {
	name := tok.Text
	if !reposfs.IsRelativeToken(name) {
		return ctx.ModuleMap[name], nil
	}

	importerDir := reposfs.Dir(ctx.ImporterPath)

	if suffix := reposfs.Suffix(name); suffix != "" {
		if !containsString(tsJSExtensions, suffix) {
			// e.g. '../package.json' — not a source file, filter out.
			return nil, nil
		}
		path := reposfs.Join(importerDir, name)
		if ctx.Repo.IsFile(path) {
			return []string{path}, nil
		}
		return nil, nil
	}

	return searchTSJSFile(ctx, importerDir, name), nil
}

func searchTSJSFile(ctx *Context, searchDir, moduleName string) []string {
	var out []string
	for _, ext := range tsJSExtensions {
		candidate := reposfs.Join(searchDir, moduleName+ext)
		if ctx.Repo.IsFile(candidate) {
			out = append(out, candidate)
		}
	}
	if len(out) > 0 {
		return out
	}
	dirCandidate := reposfs.Join(searchDir, moduleName)
	if ctx.Repo.IsDir(dirCandidate) {
		for _, ext := range tsJSExtensions {
			idx := reposfs.Join(dirCandidate, "index"+ext)
			if ctx.Repo.IsFile(idx) {
				out = append(out, idx)
			}
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
