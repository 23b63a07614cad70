// Package importfind locates import/include/require statements in source
// text and derives each file's module name (spec.md §4.F). One Finder
// holds one tree-sitter parser; parsers aren't safe for concurrent use, so
// the graph builder's worker pool gives each goroutine its own Finder
// (spec.md §5), the same division of labour the teacher's SitterWalker
// assumes of its caller.
package importfind

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/agentic-research/rssg/internal/langs"
	"github.com/agentic-research/rssg/internal/location"
	"github.com/agentic-research/rssg/internal/reposfs"
)

// Token is one raw import/include/require token found in a file, with the
// source span it came from.
type Token struct {
	// Text is the captured node's raw text — still quoted for string
	// literals, not yet interpreted. importresolve strips quotes/braces
	// per its own per-language rules.
	Text   string
	Anchor location.Location

	// IsStar marks a Java/Kotlin wildcard import ("import x.y.*"), per
	// resolve_import.py's check for ".*" in the import node's parent text.
	IsStar bool

	// Python carries the decomposed import_statement/import_from_statement
	// fields the Python resolver strategy needs — populated only when lang
	// is Python (see python.go).
	Python *PythonImport
}

// compiledQueryCache caches one compiled *sitter.Query per query string,
// shared across every Finder — queries are read-only once compiled, so
// this is safe to share across the worker pool, unlike the parser itself.
// Mirrors the teacher's sync.Map-keyed callQueryCache/contextQueryCache in
// sitter_walker.go.
var compiledQueryCache sync.Map // string (query source) -> *sitter.Query

func compiledQuery(lang *sitter.Language, query string) (*sitter.Query, error) {
	if cached, ok := compiledQueryCache.Load(query); ok {
		return cached.(*sitter.Query), nil
	}
	q, err := sitter.NewQuery([]byte(query), lang)
	if err != nil {
		return nil, fmt.Errorf("importfind: invalid query: %w", err)
	}
	compiledQueryCache.Store(query, q)
	return q, nil
}

// Finder parses source text for one worker goroutine. Not safe for
// concurrent use — create one per goroutine.
type Finder struct {
	parser *sitter.Parser
}

// New returns a Finder with its own tree-sitter parser instance.
func New() *Finder {
	return &Finder{parser: sitter.NewParser()}
}

// FindImports returns every import/include/require token in code for the
// given language, in source order. Lua and R have no tree-sitter query and
// go through findImportsRegex instead (spec.md §4.F).
func (f *Finder) FindImports(ctx context.Context, lang langs.Language, filePath, code string) ([]Token, error) {
	if langs.UsesRegexFallback(lang) {
		return findImportsRegex(lang, filePath, code), nil
	}

	grammar := grammarFor(lang)
	if grammar == nil {
		return nil, fmt.Errorf("importfind: no grammar registered for %s", lang)
	}
	queryStr, ok := importQueries[lang]
	if !ok {
		return nil, fmt.Errorf("importfind: no import query registered for %s", lang)
	}

	f.parser.SetLanguage(grammar)
	tree, err := f.parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return nil, fmt.Errorf("importfind: parse %s: %w", filePath, err)
	}
	defer tree.Close()

	source := []byte(code)
	if lang == langs.Python {
		return f.findPythonImports(grammar, queryStr, filePath, source, tree.RootNode())
	}

	detectStar := lang == langs.Java || lang == langs.Kotlin
	return f.runCaptureQuery(grammar, queryStr, captureName, filePath, source, tree.RootNode(), detectStar)
}

func (f *Finder) runCaptureQuery(grammar *sitter.Language, queryStr, wantCapture, filePath string, source []byte, root *sitter.Node, detectStar bool) ([]Token, error) {
	q, err := compiledQuery(grammar, queryStr)
	if err != nil {
		return nil, err
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var out []Token
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, source)
		for _, c := range m.Captures {
			if q.CaptureNameForId(c.Index) != wantCapture {
				continue
			}
			tok := Token{
				Text:   c.Node.Content(source),
				Anchor: nodeLocation(filePath, c.Node),
			}
			// A wildcard import ("import x.y.*") captures only "x.y" as
			// the scoped identifier; the "*" is a sibling token in the
			// same import_declaration, so star detection looks at the
			// captured node's parent text, per resolve_import.py's
			// `b".*" in import_symbol_node.parent.text` check.
			if detectStar {
				if parent := c.Node.Parent(); parent != nil {
					tok.IsStar = strings.Contains(parent.Content(source), ".*")
				}
			}
			out = append(out, tok)
		}
	}
	return out, nil
}

func nodeLocation(filePath string, n *sitter.Node) location.Location {
	start, end := n.StartPoint(), n.EndPoint()
	return location.Location{
		FilePath:  filePath,
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
	}
}

// FindModuleName derives filePath's module name per spec.md §4.F's table,
// dispatched through langs.ModuleNameConventions instead of a per-language
// switch (spec.md §9's "dispatch is a table lookup" design note).
func (f *Finder) FindModuleName(ctx context.Context, lang langs.Language, filePath, code string) (string, error) {
	switch langs.ModuleNameConventions[lang] {
	case langs.PackageQualifiedStem:
		pkg, err := f.singlePackageCapture(ctx, lang, filePath, code)
		if err != nil {
			return "", err
		}
		return pkg + "." + reposfs.Stem(filePath), nil
	case langs.DeclaredNamespace:
		return f.singlePackageCapture(ctx, lang, filePath, code)
	case langs.FileStem:
		return reposfs.Stem(filePath), nil
	case langs.FileBaseName:
		return reposfs.Join(reposfs.Stem(filePath) + reposfs.Suffix(filePath)), nil
	case langs.ParentDirName:
		return reposfs.ParentDir(filePath), nil
	default:
		return "", fmt.Errorf("importfind: language %s has no module name convention", lang)
	}
}

func (f *Finder) singlePackageCapture(ctx context.Context, lang langs.Language, filePath, code string) (string, error) {
	grammar := grammarFor(lang)
	if grammar == nil {
		return "", fmt.Errorf("importfind: no grammar registered for %s", lang)
	}
	queryStr, ok := packageQueries[lang]
	if !ok {
		return "", fmt.Errorf("importfind: no package query registered for %s", lang)
	}

	f.parser.SetLanguage(grammar)
	tree, err := f.parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return "", fmt.Errorf("importfind: parse %s: %w", filePath, err)
	}
	defer tree.Close()

	tokens, err := f.runCaptureQuery(grammar, queryStr, packageCaptureName, filePath, []byte(code), tree.RootNode(), false)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		// No package/namespace declaration (common for Go's main package
		// files with an otherwise-empty clause, or a file with no
		// namespace): fall back to the file stem rather than failing the
		// whole file.
		return reposfs.Stem(filePath), nil
	}
	return tokens[0].Text, nil
}
