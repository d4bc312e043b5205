// Package walker performs an iterative depth-first traversal of a
// directory tree, mapping each accepted directory to its retained files.
//
// The traversal is driven by an explicit work stack rather than call
// recursion, so tree depth is bounded by memory, not by the call stack.
// Filters decide what gets recorded, never what gets traversed: a
// rejected directory contributes no result entry but its subdirectories
// are still descended into.
package walker

import (
	"fmt"
	"path/filepath"

	"github.com/scanwalk/dirscan/internal/lister"
	"github.com/scanwalk/dirscan/internal/types"
)

// Filter accepts or rejects a path. Implementations must not depend on
// traversal state: a filter may be called any number of times, in any
// order.
type Filter interface {
	Accepts(path string) bool
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(path string) bool

// Accepts calls f.
func (f FilterFunc) Accepts(path string) bool { return f(path) }

// Lister lists the immediate children of one directory. *lister.Service
// is the standard implementation; tests substitute their own to inject
// listing failures.
type Lister interface {
	List(path string) (types.DirectoryListing, error)
}

// Options configures a Service.
type Options struct {
	// FileFilter decides which files of an accepted directory are
	// retained. Nil retains every file, without a per-file filtering
	// pass.
	FileFilter Filter

	// DirFilter decides which directories get a result entry. Nil
	// accepts every directory.
	DirFilter Filter

	// OnSkip observes every directory whose listing failed and was
	// skipped. Nil skips silently. Ignored when FailFast is set.
	OnSkip func(path string, err error)

	// FailFast aborts the walk on the first listing failure instead of
	// skipping the directory.
	FailFast bool

	// Lister overrides the directory lister. Nil uses lister.New().
	Lister Lister
}

// Service traverses directory trees. One Service may run any number of
// traversals; each Walk or Traverse call owns its own stack and result.
type Service struct {
	fileFilter Filter
	dirFilter  Filter
	onSkip     func(path string, err error)
	failFast   bool
	lister     Lister
}

// New creates a new Service.
func New(opts Options) *Service {
	l := opts.Lister
	if l == nil {
		l = lister.New()
	}
	return &Service{
		fileFilter: opts.FileFilter,
		dirFilter:  opts.DirFilter,
		onSkip:     opts.OnSkip,
		failFast:   opts.FailFast,
		lister:     l,
	}
}

// Walk traverses the tree rooted at root and returns a map from each
// accepted directory to its retained files, all as absolute paths.
// Recorded file slices are never nil.
//
// An unreadable root fails the walk with an error naming it. An
// unreadable subdirectory contributes no files and no children; OnSkip
// observes it and the walk continues, unless FailFast is set, in which
// case the walk aborts with an error naming the failed path.
func (s *Service) Walk(root string) (map[string][]string, error) {
	t, err := s.Traverse(root)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]string)
	for t.Next() {
		if err := t.Err(); err != nil {
			if t.Dir() == t.Root() || s.failFast {
				return nil, fmt.Errorf("scan failed: %w", err)
			}
			if s.onSkip != nil {
				s.onSkip(t.Dir(), err)
			}
			continue
		}
		if t.Kept() {
			result[t.Dir()] = t.Files()
		}
	}
	return result, nil
}

// Traversal steps through the directories of a tree, most recently
// discovered first. Next must be called before reading each visit,
// including the first.
//
// A Traversal exposes its own state mid-walk: Pending reports how many
// directories wait on the stack, and each visit carries the outcome of
// listing and filtering one directory.
type Traversal struct {
	svc     *Service
	root    string
	stack   []string
	visited map[string]struct{}
	cur     visit
}

type visit struct {
	dir   string
	kept  bool
	files []string
	err   error
}

// Traverse starts a traversal rooted at root, which is resolved to an
// absolute path before the first visit.
func (s *Service) Traverse(root string) (*Traversal, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %s - %w", root, err)
	}
	return &Traversal{
		svc:     s,
		root:    absRoot,
		stack:   []string{absRoot},
		visited: make(map[string]struct{}),
	}, nil
}

// Next visits the next directory: it pops one path off the stack, lists
// it, applies the filters, and pushes every subdirectory back onto the
// stack. It returns false once the stack is empty.
//
// Directories whose resolved real path was already visited are dropped
// without a listing, so a tree reaching the same directory through
// several symlinks visits it once, and a symlink cycle terminates.
func (t *Traversal) Next() bool {
	for len(t.stack) > 0 {
		i := len(t.stack) - 1
		dir := t.stack[i]
		t.stack = t.stack[:i]

		real := dir
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			real = resolved
		}
		if _, seen := t.visited[real]; seen {
			continue
		}
		t.visited[real] = struct{}{}

		listing, err := t.svc.lister.List(dir)
		if err != nil {
			t.cur = visit{dir: dir, err: err}
			return true
		}

		// Descend regardless of the directory filter's verdict.
		t.stack = append(t.stack, listing.Directories...)

		cur := visit{dir: dir}
		if t.svc.dirFilter == nil || t.svc.dirFilter.Accepts(dir) {
			cur.kept = true
			cur.files = retain(listing.Files, t.svc.fileFilter)
		}
		t.cur = cur
		return true
	}
	return false
}

// Root returns the absolute root of the traversal.
func (t *Traversal) Root() string {
	return t.root
}

// Dir returns the directory of the most recent visit.
func (t *Traversal) Dir() string {
	return t.cur.dir
}

// Kept reports whether the directory filter accepted the most recent
// visit. It is false whenever Err is non-nil.
func (t *Traversal) Kept() bool {
	return t.cur.kept
}

// Files returns the retained files of the most recent visit. It is
// non-nil whenever Kept is true, and nil otherwise.
func (t *Traversal) Files() []string {
	return t.cur.files
}

// Err returns the listing error of the most recent visit, if any. A
// failed visit contributes no files and no subdirectories.
func (t *Traversal) Err() error {
	return t.cur.err
}

// Pending returns the number of directories waiting on the stack.
func (t *Traversal) Pending() int {
	return len(t.stack)
}

func retain(files []string, f Filter) []string {
	if f == nil {
		if files == nil {
			return []string{}
		}
		return files
	}
	kept := make([]string, 0, len(files))
	for _, file := range files {
		if f.Accepts(file) {
			kept = append(kept, file)
		}
	}
	return kept
}
