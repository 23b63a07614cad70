// Package builder implements the Graph Builder (spec.md §4.H): a
// two-pass orchestration over a repository's source files that produces a
// complete graph.Graph of module declarations and Imports/ImportedBy
// edges. Pass one enumerates files and extracts each file's module name
// and raw import tokens; pass two resolves every token against the
// module map assembled from pass one and emits edges. Both passes run
// over a bounded worker pool, one tree-sitter parser per worker, mirroring
// the division of labour the teacher's ingestSQLiteStreaming pipeline
// draws between its reader, workers and collector (internal/ingest/engine.go).
package builder

import (
	"context"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agentic-research/rssg/internal/graph"
	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/importresolve"
	"github.com/agentic-research/rssg/internal/langs"
	"github.com/agentic-research/rssg/internal/location"
	"github.com/agentic-research/rssg/internal/reposfs"
	"github.com/agentic-research/rssg/internal/rssgerr"
	"github.com/agentic-research/rssg/internal/srcread"
)

// fileTask is one file queued for pass one, already bound to the language
// that claims its extension.
type fileTask struct {
	Path string
	Lang langs.Language
}

// fileRecord is pass one's output for one file: its derived module name
// and every raw import token found in it, ready for pass two's resolver.
type fileRecord struct {
	Path       string
	Lang       langs.Language
	ModuleName string
	Tokens     []importfind.Token
}

// Build walks opts.Repo, extracts module declarations and import
// relations for every file matching opts.Languages, and returns the
// resulting graph (spec.md §4.H). Parse errors, missing files and
// resolver failures are logged and skipped per file or token; only a nil
// Repo or an empty language set is an InputError, and only a graph
// invariant violation aborts the build outright (spec.md §7).
func Build(ctx context.Context, opts Options) (*graph.Graph, error) {
	if opts.Repo == nil {
		return nil, rssgerr.Wrap(rssgerr.InputError, errNoRepo)
	}
	if len(opts.Languages) == 0 {
		return nil, rssgerr.Wrap(rssgerr.InputError, errNoLanguages)
	}

	tasks, err := enumerate(opts)
	if err != nil {
		return nil, err
	}

	records := runPass1(ctx, opts, tasks)

	g := graph.New(opts.Repo.FS.Root())
	for _, lang := range opts.Languages {
		g.AddLanguage(string(lang))
	}
	for _, rec := range records {
		g.AddNode(graph.Node{
			Kind: graph.KindModule,
			Name: rec.ModuleName,
			Loc:  location.Location{FilePath: rec.Path},
		})
	}

	moduleMap := buildModuleMap(records)
	pathToModule := make(map[string]string, len(records))
	for _, rec := range records {
		pathToModule[rec.Path] = rec.ModuleName
	}
	if err := runPass2(ctx, opts, records, moduleMap, pathToModule, g); err != nil {
		return nil, err
	}

	return g, nil
}

// enumerate lists every file under opts.Repo whose extension belongs to
// one of opts.Languages, skipping directories (spec.md §4.H step 1; empty
// files are dropped later, by processFile). When two requested languages
// share an extension (C and C++ both claim ".c"/".h"), the language listed
// first in opts.Languages wins. A failed walk for one language is logged
// as an IoError and that language contributes no files.
func enumerate(opts Options) ([]fileTask, error) {
	seen := make(map[string]langs.Language)
	var order []string
	for _, lang := range opts.Languages {
		paths, err := opts.Repo.Rglob(langs.Extensions[lang]...)
		if err != nil {
			log.Printf("build: enumerate %s files: %v", lang, rssgerr.Wrap(rssgerr.IoError, err))
			continue
		}
		for _, p := range paths {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = lang
			order = append(order, p)
		}
	}
	sort.Strings(order)

	tasks := make([]fileTask, 0, len(order))
	for _, p := range order {
		if !opts.Repo.IsFile(p) {
			continue
		}
		tasks = append(tasks, fileTask{Path: p, Lang: seen[p]})
	}
	return tasks, nil
}

// runPass1 extracts (module name, import tokens) for every task, using a
// bounded pool of workers that each own one importfind.Finder — tree-sitter
// parsers aren't safe for concurrent use, the same constraint the
// teacher's SitterWalker leaves to its caller. A per-file context carries
// the wall-clock budget of spec.md §5. A failed read or module-name
// extraction is logged and the file is dropped; a failed import search is
// logged and the file is kept with no import tokens. Neither aborts the
// build.
func runPass1(ctx context.Context, opts Options, tasks []fileTask) []fileRecord {
	taskCh := make(chan fileTask)
	var mu sync.Mutex
	var records []fileRecord

	var wg sync.WaitGroup
	for i := 0; i < opts.numWorkers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			finder := importfind.New()
			for task := range taskCh {
				if ctx.Err() != nil {
					continue
				}
				rec, ok := processFile(ctx, opts, finder, task)
				if !ok {
					continue
				}
				mu.Lock()
				records = append(records, rec)
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(taskCh)
		for _, t := range tasks {
			if ctx.Err() != nil {
				return
			}
			taskCh <- t
		}
	}()

	wg.Wait()

	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	return records
}

func processFile(ctx context.Context, opts Options, finder *importfind.Finder, task fileTask) (fileRecord, bool) {
	fileCtx, cancel := context.WithTimeout(ctx, opts.fileTimeout())
	defer cancel()

	data, err := opts.Repo.ReadBytes(task.Path)
	if err != nil {
		log.Printf("build: read %s: %v", task.Path, rssgerr.Wrap(rssgerr.IoError, err))
		return fileRecord{}, false
	}
	if len(data) == 0 {
		return fileRecord{}, false
	}

	hash := contentHash(data)
	if opts.Cache != nil {
		if moduleName, tokens, ok, err := opts.Cache.Lookup(fileCtx, task.Path, hash); err != nil {
			log.Printf("build: cache lookup %s: %v", task.Path, err)
		} else if ok {
			return fileRecord{Path: task.Path, Lang: task.Lang, ModuleName: moduleName, Tokens: tokens}, true
		}
	}

	code := srcread.ReadText(task.Path, data, opts.maxLines())

	moduleName, err := finder.FindModuleName(fileCtx, task.Lang, task.Path, code)
	if err != nil {
		log.Printf("build: module name %s: %v", task.Path, rssgerr.Wrap(rssgerr.ParseError, err))
		return fileRecord{}, false
	}

	tokens, err := finder.FindImports(fileCtx, task.Lang, task.Path, code)
	if err != nil {
		log.Printf("build: find imports %s: %v", task.Path, rssgerr.Wrap(rssgerr.ParseError, err))
		tokens = nil
	}

	if opts.Cache != nil {
		if err := opts.Cache.Store(fileCtx, task.Path, hash, moduleName, tokens); err != nil {
			log.Printf("build: cache store %s: %v", task.Path, err)
		}
	}

	return fileRecord{Path: task.Path, Lang: task.Lang, ModuleName: moduleName, Tokens: tokens}, true
}

// buildModuleMap assembles the module_name -> [file_path] map pass two
// resolves against (spec.md §4.H step 3). Built sequentially from pass
// one's already-collected records, so no locking is needed.
func buildModuleMap(records []fileRecord) importresolve.ModuleMap {
	mm := make(importresolve.ModuleMap)
	for _, rec := range records {
		mm[rec.ModuleName] = append(mm[rec.ModuleName], rec.Path)
	}
	return mm
}

// runPass2 resolves every file's import tokens against moduleMap and
// emits Imports/ImportedBy edges into g (spec.md §4.H steps 4-5). Each
// file gets its own *importresolve.Context (see resolveFile) so the Go
// resolver's lazily cached go.mod parse (importresolve.loadGoMod) is never
// written from two goroutines at once; g.AddEdge takes its own lock, so
// edge emission itself needs no additional synchronisation.
func runPass2(ctx context.Context, opts Options, records []fileRecord, moduleMap importresolve.ModuleMap, pathToModule map[string]string, g *graph.Graph) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.numWorkers())

	for _, rec := range records {
		rec := rec
		eg.Go(func() error {
			return resolveFile(egCtx, opts, rec, moduleMap, pathToModule, g)
		})
	}

	return eg.Wait()
}

func resolveFile(ctx context.Context, opts Options, rec fileRecord, moduleMap importresolve.ModuleMap, pathToModule map[string]string, g *graph.Graph) error {
	if ctx.Err() != nil {
		return nil
	}
	fileCtx, cancel := context.WithTimeout(ctx, opts.fileTimeout())
	defer cancel()

	rctx := &importresolve.Context{
		Repo:         opts.Repo,
		ModuleMap:    moduleMap,
		ImporterPath: rec.Path,
	}

	importerNode := graph.Node{Kind: graph.KindModule, Name: rec.ModuleName, Loc: location.Location{FilePath: rec.Path}}

	for _, tok := range rec.Tokens {
		if fileCtx.Err() != nil {
			break
		}
		paths, err := importresolve.Resolve(rec.Lang, tok, rctx)
		if err != nil {
			log.Printf("build: resolve %s in %s: %v", tok.Text, rec.Path, rssgerr.Wrap(rssgerr.ResolveError, err))
			continue
		}
		for _, importeePath := range paths {
			if importeePath == rec.Path {
				continue
			}
			importeeNode := graph.Node{Kind: graph.KindModule, Name: moduleNameFor(pathToModule, importeePath), Loc: location.Location{FilePath: importeePath}}

			anchor := &tok.Anchor
			fwd := graph.Edge{Relation: graph.Imports, Anchor: anchor}
			rev := graph.Edge{Relation: graph.ImportedBy, Anchor: anchor}
			if err := g.AddEdge(importerNode, importeeNode, fwd, &rev); err != nil {
				return rssgerr.Wrap(rssgerr.InvariantViolation, err)
			}
		}
	}
	return nil
}

// moduleNameFor looks up the module name already derived for importeePath
// during pass one. A resolved path outside the enumerated file set (rare:
// a resolver heuristic found a file of a language this build didn't
// request) falls back to the path's stem as a best-effort module name
// rather than being dropped.
func moduleNameFor(pathToModule map[string]string, importeePath string) string {
	if name, ok := pathToModule[importeePath]; ok {
		return name
	}
	return reposfs.Stem(importeePath)
}
