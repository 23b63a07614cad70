// Package reposfs abstracts the repository tree the graph builder walks
// over a billy.Filesystem (spec.md §4.A), so the same walking, reading and
// enumeration code runs against a real checkout (osfs) or an in-memory
// fixture (memfs) built straight from a test's string literals — mirroring
// the Python tool's VirtualRepository/VirtualPath pair in
// original_source/repo_specific_semantic_graph/dependency_graph/models/virtual_fs,
// which lets its test suite build repos out of `{path: content}` maps with
// no disk involved.
package reposfs

import (
	"io"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/agentic-research/rssg/internal/rssgerr"
)

// Repo wraps a billy.Filesystem rooted at a repository, providing the
// pathlib-flavoured helpers (Path.rglob, Path.stem, Path.parent, ...) the
// rest of the builder is written against instead of raw billy calls.
type Repo struct {
	FS billy.Filesystem
}

// Open wraps a real directory on disk.
func Open(repoPath string) *Repo {
	return &Repo{FS: osfs.New(repoPath)}
}

// VirtualFile is one file of an in-memory fixture repo (spec.md's virtual
// filesystem scenarios), named after the original tool's VirtualFile tuple.
type VirtualFile struct {
	Path    string
	Content string
}

// NewVirtual builds a repo entirely in memory from files, for tests and
// for library callers that already have source text in hand and don't
// want a real checkout.
func NewVirtual(files []VirtualFile) (*Repo, error) {
	fs := memfs.New()
	for _, vf := range files {
		clean := strings.TrimPrefix(vf.Path, "/")
		if dir := path.Dir(clean); dir != "." {
			if err := fs.MkdirAll(dir, 0o755); err != nil {
				return nil, rssgerr.Wrap(rssgerr.IoError, err)
			}
		}
		f, err := fs.Create(clean)
		if err != nil {
			return nil, rssgerr.Wrap(rssgerr.IoError, err)
		}
		if _, err := f.Write([]byte(vf.Content)); err != nil {
			f.Close()
			return nil, rssgerr.Wrap(rssgerr.IoError, err)
		}
		if err := f.Close(); err != nil {
			return nil, rssgerr.Wrap(rssgerr.IoError, err)
		}
	}
	return &Repo{FS: fs}, nil
}

// Exists reports whether p names a file or directory in the repo.
func (r *Repo) Exists(p string) bool {
	_, err := r.FS.Stat(p)
	return err == nil
}

// IsFile reports whether p names a regular file.
func (r *Repo) IsFile(p string) bool {
	info, err := r.FS.Stat(p)
	return err == nil && !info.IsDir()
}

// IsDir reports whether p names a directory.
func (r *Repo) IsDir(p string) bool {
	info, err := r.FS.Stat(p)
	return err == nil && info.IsDir()
}

// Subdirs returns the full paths of every subdirectory directly under dir,
// or nil if dir doesn't exist or isn't a directory — used by the C/C++ and
// Swift resolvers' "sibling of each ancestor" search (spec.md §4.G).
func (r *Repo) Subdirs(dir string) []string {
	entries, err := r.FS.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, path.Join(dir, e.Name()))
		}
	}
	return out
}

// FilesInDir returns the full paths of every file directly under dir
// (not recursive) whose name ends with suffix, sorted.
func (r *Repo) FilesInDir(dir, suffix string) []string {
	entries, err := r.FS.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			out = append(out, path.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// Ancestors returns every ancestor directory of p, from its immediate
// parent up to (but not including) the repo root "".
func Ancestors(p string) []string {
	var out []string
	dir := Dir(p)
	for dir != "." && dir != "/" && dir != "" {
		out = append(out, dir)
		dir = path.Dir(dir)
	}
	return out
}

// ReadBytes reads the full content of p.
func (r *Repo) ReadBytes(p string) ([]byte, error) {
	f, err := r.FS.Open(p)
	if err != nil {
		return nil, rssgerr.Wrap(rssgerr.IoError, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, rssgerr.Wrap(rssgerr.IoError, err)
	}
	return data, nil
}

// Rglob walks the whole repo tree and returns every regular file whose
// name ends with one of exts ("*.ext" in pathlib terms), in sorted order
// so builds are deterministic regardless of directory-iteration order.
func (r *Repo) Rglob(exts ...string) ([]string, error) {
	return r.RglobIn("/", exts...)
}

// RglobIn is Rglob scoped to start under dir instead of the repo root —
// used by resolvers that only want to search within one candidate
// directory tree (e.g. Swift's "Sources/<Module>/**/*.swift").
func (r *Repo) RglobIn(dir string, exts ...string) ([]string, error) {
	var out []string
	if !r.IsDir(dir) {
		return nil, nil
	}
	if err := r.walk(dir, exts, &out); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func (r *Repo) walk(dir string, exts []string, out *[]string) error {
	entries, err := r.FS.ReadDir(dir)
	if err != nil {
		return rssgerr.Wrap(rssgerr.IoError, err)
	}
	for _, e := range entries {
		full := path.Join(dir, e.Name())
		if e.IsDir() {
			if err := r.walk(full, exts, out); err != nil {
				return err
			}
			continue
		}
		for _, ext := range exts {
			if strings.HasSuffix(e.Name(), ext) {
				*out = append(*out, strings.TrimPrefix(full, "/"))
				break
			}
		}
	}
	return nil
}

// Stem returns p's file name with its final extension removed.
func Stem(p string) string {
	base := path.Base(p)
	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// Suffix returns p's final extension, including the leading dot, or "" if
// there is none.
func Suffix(p string) string {
	return path.Ext(path.Base(p))
}

// ParentDir returns the name (not the full path) of p's parent directory.
func ParentDir(p string) string {
	return path.Base(path.Dir(p))
}

// Dir returns p's containing directory.
func Dir(p string) string {
	return path.Dir(p)
}

// Join joins path elements using forward-slash repo-relative semantics,
// regardless of host OS.
func Join(elems ...string) string {
	return path.Join(elems...)
}

// IsRelativeToken reports whether token looks like a path rather than a
// bare module name — starts with "." (which covers "..") or "/", per
// spec.md §4.G's TypeScript/JavaScript resolution rule.
func IsRelativeToken(token string) bool {
	return strings.HasPrefix(token, ".") || strings.HasPrefix(token, "/")
}
