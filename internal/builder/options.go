package builder

import (
	"runtime"
	"time"

	"github.com/agentic-research/rssg/internal/langs"
	"github.com/agentic-research/rssg/internal/reposfs"
)

// Options configures one Build call (spec.md §4.H, §5). There is no config
// file format: the CLI wires flags straight into this struct, the way the
// teacher's cmd/build.go wires flags into its own Engine.
type Options struct {
	Repo      *reposfs.Repo
	Languages []langs.Language

	// NumWorkers bounds the worker pool (spec.md §5's "a worker pool where
	// each worker owns its own tree-sitter parser"). Zero means
	// runtime.NumCPU().
	NumWorkers int

	// FileTimeout is the hard wall-clock budget for processing one file
	// (spec.md §5). Zero means DefaultFileTimeout.
	FileTimeout time.Duration

	// MaxLines truncates a file before it reaches the parser (spec.md
	// §4.B, §5's line-count guard). Zero means DefaultMaxLines.
	MaxLines int

	// Cache, if non-nil, skips re-parsing a file whose (path, content
	// hash) pair was already processed in a previous Build (spec.md §8's
	// supplemented incremental cache).
	Cache *Cache
}

const (
	DefaultFileTimeout = 10 * time.Second
	DefaultMaxLines    = 50000
)

func (o Options) numWorkers() int {
	if o.NumWorkers > 0 {
		return o.NumWorkers
	}
	return runtime.NumCPU()
}

func (o Options) fileTimeout() time.Duration {
	if o.FileTimeout > 0 {
		return o.FileTimeout
	}
	return DefaultFileTimeout
}

func (o Options) maxLines() int {
	if o.MaxLines > 0 {
		return o.MaxLines
	}
	return DefaultMaxLines
}
