package importresolve

import (
	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/reposfs"
)

// resolveCFamily implements the C/C++ #include heuristic of spec.md §4.G:
// strip quotes or angle brackets, then search an ordered list of
// candidate directories — include/, the importer's own directory, src/,
// the literal path, every ancestor of the importer, and every sibling
// directory of every ancestor. Every candidate that exists is returned
// (Resolve de-duplicates and sorts them), so when several headers with the
// same relative name exist in the tree, all of them are reported.
func resolveCFamily(tok importfind.Token, ctx *Context) ([]string, error) {
	name := stripAngleBrackets(stripQuotes(tok.Text))
	importerDir := reposfs.Dir(ctx.ImporterPath)

	searchDirs := []string{
		"include",
		importerDir,
		"src",
	}
	for _, ancestor := range reposfs.Ancestors(ctx.ImporterPath) {
		searchDirs = append(searchDirs, ancestor)
	}
	for _, ancestor := range reposfs.Ancestors(ctx.ImporterPath) {
		for _, sibling := range ctx.Repo.Subdirs(ancestor) {
			if sibling == importerDir {
				continue
			}
			searchDirs = append(searchDirs, sibling)
		}
	}

	var out []string
	if ctx.Repo.Exists(name) {
		out = append(out, name)
	}
	for _, dir := range searchDirs {
		candidate := reposfs.Join(dir, name)
		if ctx.Repo.Exists(candidate) {
			out = append(out, candidate)
		}
	}
	return out, nil
}
