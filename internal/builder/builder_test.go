package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/rssg/internal/graph"
	"github.com/agentic-research/rssg/internal/langs"
	"github.com/agentic-research/rssg/internal/reposfs"
)

func TestBuildCreatesModuleNodesAndImportEdges(t *testing.T) {
	repo, err := reposfs.NewVirtual([]reposfs.VirtualFile{
		{Path: "/pkg/a.py", Content: "import pkg.b\n"},
		{Path: "/pkg/b.py", Content: "x = 1\n"},
	})
	require.NoError(t, err)

	g, err := Build(context.Background(), Options{
		Repo:      repo,
		Languages: []langs.Language{langs.Python},
	})
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, n := range g.Nodes() {
		assert.Equal(t, graph.KindModule, n.Kind)
		names[n.Name] = true
	}
	assert.True(t, names["a"])
	assert.True(t, names["b"])

	imports := g.EdgesOfRelation(graph.Imports)
	require.Len(t, imports, 1)
	assert.Equal(t, "a", imports[0].U.Name)
	assert.Equal(t, "b", imports[0].V.Name)

	importedBy := g.EdgesOfRelation(graph.ImportedBy)
	require.Len(t, importedBy, 1)
	assert.Equal(t, "b", importedBy[0].U.Name)
	assert.Equal(t, "a", importedBy[0].V.Name)
}

func TestBuildRejectsNilRepo(t *testing.T) {
	_, err := Build(context.Background(), Options{Languages: []langs.Language{langs.Python}})
	require.Error(t, err)
}

func TestBuildRejectsNoLanguages(t *testing.T) {
	repo, err := reposfs.NewVirtual(nil)
	require.NoError(t, err)
	_, err = Build(context.Background(), Options{Repo: repo})
	require.Error(t, err)
}

func TestBuildSkipsEmptyFiles(t *testing.T) {
	repo, err := reposfs.NewVirtual([]reposfs.VirtualFile{
		{Path: "/empty.py", Content: ""},
	})
	require.NoError(t, err)

	g, err := Build(context.Background(), Options{
		Repo:      repo,
		Languages: []langs.Language{langs.Python},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
}

func TestBuildWithCacheSkipsReparse(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenCache(dir + "/cache.sqlite")
	require.NoError(t, err)
	defer cache.Close()

	repo, err := reposfs.NewVirtual([]reposfs.VirtualFile{
		{Path: "/pkg/a.py", Content: "import pkg.b\n"},
		{Path: "/pkg/b.py", Content: "x = 1\n"},
	})
	require.NoError(t, err)

	opts := Options{Repo: repo, Languages: []langs.Language{langs.Python}, Cache: cache}

	g1, err := Build(context.Background(), opts)
	require.NoError(t, err)
	g2, err := Build(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, g1.NodeCount(), g2.NodeCount())
	assert.Len(t, g2.EdgesOfRelation(graph.Imports), 1)
}
