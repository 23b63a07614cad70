package importresolve

import (
	"path"
	"strings"

	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/reposfs"
)

type goModInfo struct {
	ModulePath   string
	Replacements map[string]string
}

// loadGoMod parses the repo's go.mod once per Context and caches it —
// resolve_go_import re-reads go.mod per call in the original; a builder
// processing hundreds of files shouldn't re-read and re-parse it that
// often, so the Context instance shared across one file's resolution pass
// caches it instead.
func loadGoMod(ctx *Context) *goModInfo {
	if ctx.goModCache != nil {
		return ctx.goModCache
	}
	info := &goModInfo{Replacements: map[string]string{}}
	data, err := ctx.Repo.ReadBytes("go.mod")
	if err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, "module "):
				fields := strings.Fields(line)
				if len(fields) >= 2 {
					info.ModulePath = fields[1]
				}
			case strings.HasPrefix(line, "replace "):
				fields := strings.Fields(line)
				if len(fields) >= 4 && fields[2] == "=>" {
					info.Replacements[fields[1]] = fields[3]
				}
			}
		}
	}
	ctx.goModCache = info
	return info
}

// resolveGo implements spec.md §4.G's Go strategy: parse go.mod for the
// module path and replace directives, rewrite the import accordingly, and
// otherwise fall back to src/vendor/pkg/literal-path search, accepting
// every .go file found in the resolved directory.
func resolveGo(tok importfind.Token, ctx *Context) ([]string, error) {
	importStmt := stripQuotes(tok.Text)
	info := loadGoMod(ctx)

	var dirs []string
	switch {
	case info.Replacements[importStmt] != "":
		dirs = append(dirs, path.Clean(info.Replacements[importStmt]))
	case info.ModulePath != "" && strings.HasPrefix(importStmt, info.ModulePath):
		rest := strings.TrimPrefix(importStmt, info.ModulePath)
		rest = strings.TrimPrefix(rest, "/")
		dirs = append(dirs, rest)
	default:
		dirs = append(dirs, goFallbackDirs(importStmt)...)
	}

	var out []string
	for _, dir := range dirs {
		if ctx.Repo.IsDir(dir) {
			out = append(out, ctx.Repo.FilesInDir(dir, ".go")...)
		}
	}
	return out, nil
}

func goFallbackDirs(importStmt string) []string {
	return []string{
		importStmt,
		reposfs.Join("src", importStmt),
		reposfs.Join("vendor", importStmt),
		reposfs.Join("pkg", importStmt),
	}
}
