package importresolve

import (
	"strings"

	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/reposfs"
)

// resolvePython emulates CPython's own import search well enough to find
// the file a statement would load, following
// original_source/.../tree_sitter_generator/python_resolver.py: absolute
// names are tried against both the repo root and the importer's
// directory, relative names (leading dots) are tried against the
// importer's directory, and for a from-import the last dotted segment
// might name a symbol rather than a package, so its parent directory is
// tried too (spec.md §4.G's "Python resolution detail").
func resolvePython(tok importfind.Token, ctx *Context) ([]string, error) {
	if tok.Python == nil || tok.Python.Name == "" || tok.Python.IsStar {
		return nil, nil
	}
	imp := tok.Python
	relPath, level := convertToPath(imp.Name)

	importerDir := reposfs.Dir(ctx.ImporterPath)

	var candidates []string
	if level > 0 {
		candidates = append(candidates, reposfs.Join(importerDir, relPath))
	} else {
		candidates = append(candidates, relPath)
		candidates = append(candidates, reposfs.Join(importerDir, relPath))
	}

	// A from-import's last segment may be a symbol, not a package: also
	// try the parent directory of each candidate (python_resolver.py's
	// short_filename = (repo_path / filename).parent).
	if imp.IsFrom {
		var shortCandidates []string
		for _, c := range candidates {
			shortCandidates = append(shortCandidates, reposfs.Dir(c))
		}
		candidates = append(candidates, shortCandidates...)
	}

	for _, c := range candidates {
		if found, ok := findPythonFile(ctx.Repo, c); ok {
			if found == ctx.ImporterPath {
				// Python can't import a module from itself.
				continue
			}
			return []string{found}, nil
		}
	}
	return nil, nil
}

// convertToPath splits a dotted Python import name into a slash path and
// a relative-import level — the count of leading dots (importlab's
// convert_to_path). "a.b.c" -> ("a/b/c", 0); ".b.c" -> ("b/c", 1);
// "..c" -> ("c", 2).
func convertToPath(name string) (relPath string, level int) {
	i := 0
	for i < len(name) && name[i] == '.' {
		level++
		i++
	}
	relPath = strings.ReplaceAll(name[i:], ".", "/")
	return relPath, level
}

// findPythonFile tries path as a package (path/__init__.py) then as a
// plain module (path.py), python_resolver.py's _find_file.
func findPythonFile(repo *reposfs.Repo, path string) (string, bool) {
	if path == "" || path == "." {
		return "", false
	}
	initFile := reposfs.Join(path, "__init__.py")
	if repo.IsFile(initFile) {
		return initFile, true
	}
	pyFile := path + ".py"
	if repo.IsFile(pyFile) {
		return pyFile, true
	}
	return "", false
}
