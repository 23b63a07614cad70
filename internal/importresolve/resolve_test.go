package importresolve

import (
	"testing"

	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/langs"
	"github.com/agentic-research/rssg/internal/reposfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func virtualRepo(t *testing.T, files ...reposfs.VirtualFile) *reposfs.Repo {
	t.Helper()
	repo, err := reposfs.NewVirtual(files)
	require.NoError(t, err)
	return repo
}

func TestResolveJavaStarImportMatchesPackage(t *testing.T) {
	repo := virtualRepo(t)
	ctx := &Context{
		Repo: repo,
		ModuleMap: ModuleMap{
			"com.acme.util.Helper": {"com/acme/util/Helper.java"},
			"com.acme.util.Other":  {"com/acme/util/Other.java"},
			"com.acme.main.App":    {"com/acme/main/App.java"},
		},
		ImporterPath: "com/acme/main/App.java",
	}
	tok := importfind.Token{Text: "com.acme.util", IsStar: true}

	got, err := Resolve(langs.Java, tok, ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"com/acme/util/Helper.java", "com/acme/util/Other.java"}, got)
}

func TestResolveJavaPlainImportMapLookup(t *testing.T) {
	ctx := &Context{
		Repo:         virtualRepo(t),
		ModuleMap:    ModuleMap{"com.acme.util.Helper": {"com/acme/util/Helper.java"}},
		ImporterPath: "com/acme/main/App.java",
	}
	got, err := Resolve(langs.Java, importfind.Token{Text: "com.acme.util.Helper"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"com/acme/util/Helper.java"}, got)
}

func TestResolveTSRelativeImport(t *testing.T) {
	repo := virtualRepo(t,
		reposfs.VirtualFile{Path: "/src/main.ts", Content: "import './util'"},
		reposfs.VirtualFile{Path: "/src/util.ts", Content: "export const x = 1"},
	)
	ctx := &Context{Repo: repo, ImporterPath: "src/main.ts"}
	got, err := Resolve(langs.TypeScript, importfind.Token{Text: "./util"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/util.ts"}, got)
}

func TestResolveTSRelativeImportOfDirectoryUsesIndex(t *testing.T) {
	repo := virtualRepo(t,
		reposfs.VirtualFile{Path: "/src/main.ts", Content: "import './widgets'"},
		reposfs.VirtualFile{Path: "/src/widgets/index.ts", Content: "export const W = 1"},
	)
	ctx := &Context{Repo: repo, ImporterPath: "src/main.ts"}
	got, err := Resolve(langs.TypeScript, importfind.Token{Text: "./widgets"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/widgets/index.ts"}, got)
}

func TestResolvePythonAbsoluteImport(t *testing.T) {
	repo := virtualRepo(t,
		reposfs.VirtualFile{Path: "/pkg/a.py", Content: "import pkg.b"},
		reposfs.VirtualFile{Path: "/pkg/b.py", Content: "x = 1"},
	)
	ctx := &Context{Repo: repo, ImporterPath: "pkg/a.py"}
	tok := importfind.Token{Python: &importfind.PythonImport{Name: "pkg.b", IsFrom: false}}
	got, err := Resolve(langs.Python, tok, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/b.py"}, got)
}

func TestResolvePythonFromImportSymbolFallsBackToModule(t *testing.T) {
	repo := virtualRepo(t,
		reposfs.VirtualFile{Path: "/pkg/a.py", Content: "from pkg.b import thing"},
		reposfs.VirtualFile{Path: "/pkg/b.py", Content: "def thing(): pass"},
	)
	ctx := &Context{Repo: repo, ImporterPath: "pkg/a.py"}
	tok := importfind.Token{Python: &importfind.PythonImport{Name: "pkg.b.thing", IsFrom: true}}
	got, err := Resolve(langs.Python, tok, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/b.py"}, got)
}

func TestResolveCIncludeHeuristic(t *testing.T) {
	repo := virtualRepo(t,
		reposfs.VirtualFile{Path: "/main.c", Content: `#include "net/net_utils.h"`},
		reposfs.VirtualFile{Path: "/net/net_utils.h", Content: "void f();"},
	)
	ctx := &Context{Repo: repo, ImporterPath: "main.c"}
	got, err := Resolve(langs.C, importfind.Token{Text: `"net/net_utils.h"`}, ctx)
	require.NoError(t, err)
	assert.Contains(t, got, "net/net_utils.h")
}

func TestResolveGoUsesModulePath(t *testing.T) {
	repo := virtualRepo(t,
		reposfs.VirtualFile{Path: "/go.mod", Content: "module example.com/widgets\n\ngo 1.25\n"},
		reposfs.VirtualFile{Path: "/internal/foo/foo.go", Content: "package foo"},
		reposfs.VirtualFile{Path: "/main.go", Content: `import "example.com/widgets/internal/foo"`},
	)
	ctx := &Context{Repo: repo, ImporterPath: "main.go"}
	got, err := Resolve(langs.Go, importfind.Token{Text: `"example.com/widgets/internal/foo"`}, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"internal/foo/foo.go"}, got)
}

func TestResolveGoHonoursReplaceDirective(t *testing.T) {
	repo := virtualRepo(t,
		reposfs.VirtualFile{Path: "/go.mod", Content: "module example.com/widgets\n\nreplace example.com/other => ./vendor/other\n"},
		reposfs.VirtualFile{Path: "/vendor/other/other.go", Content: "package other"},
	)
	ctx := &Context{Repo: repo, ImporterPath: "main.go"}
	got, err := Resolve(langs.Go, importfind.Token{Text: `"example.com/other"`}, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/other/other.go"}, got)
}
