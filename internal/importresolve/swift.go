package importresolve

import (
	"strings"

	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/langs"
	"github.com/agentic-research/rssg/internal/reposfs"
)

// resolveSwift implements spec.md §4.G's Swift heuristic: drop a trailing
// ".symbol" fragment (an individual-declaration import like
// `import kind Module.symbol`), then search Sources/, Tests/, Modules/,
// every ancestor of the importer, and every sibling of every ancestor for
// a matching *.swift file anywhere under that directory.
func resolveSwift(tok importfind.Token, ctx *Context) ([]string, error) {
	name := tok.Text
	if strings.Contains(name, ".") {
		name = name[:strings.LastIndex(name, ".")]
	}
	name = strings.ReplaceAll(name, ".", "/")

	importerDir := reposfs.Dir(ctx.ImporterPath)

	var searchDirs []string
	for _, base := range []string{"Sources", "Tests", "Modules"} {
		searchDirs = append(searchDirs, reposfs.Join(base, name))
	}
	for _, ancestor := range reposfs.Ancestors(ctx.ImporterPath) {
		searchDirs = append(searchDirs, reposfs.Join(ancestor, name))
	}
	for _, ancestor := range reposfs.Ancestors(ctx.ImporterPath) {
		for _, sibling := range ctx.Repo.Subdirs(ancestor) {
			if sibling == importerDir {
				continue
			}
			searchDirs = append(searchDirs, reposfs.Join(sibling, name))
		}
	}

	var out []string
	for _, dir := range searchDirs {
		files, err := ctx.Repo.RglobIn(dir, langs.Extensions[langs.Swift]...)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}
