package tree

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goliatone/go-mdshelf/internal/domain"
)

const scanOperation = "scan"

// DefaultMaxDepth bounds how deep a scan descends below the root.
const DefaultMaxDepth = 256

// ErrMaxDepthExceeded is the cause reported when a directory is nested
// deeper than Options.MaxDepth.
var ErrMaxDepthExceeded = errors.New("tree: maximum directory depth exceeded")

// Options configures which entries a Scanner emits and how siblings sort.
type Options struct {
	// SkipDirs lists directory names that are never descended into
	// (dependency manager folders). Matching is exact.
	SkipDirs []string
	// Extension selects the files included in the tree (defaults to ".md").
	Extension string
	// CaseSensitiveExt disables case folding when matching Extension.
	CaseSensitiveExt bool
	// Locale is the BCP 47 tag used for locale aware name collation.
	Locale string
	// MaxDepth is the deepest folder level visited below the root.
	MaxDepth int
	// FollowSymlinks descends into symlinked directories and includes
	// symlinked files. Cycles are detected through resolved real paths.
	FollowSymlinks bool
}

// DefaultOptions returns the scanner defaults used by the library service.
func DefaultOptions() Options {
	return Options{
		SkipDirs:       []string{"node_modules"},
		Extension:      ".md",
		Locale:         "en",
		MaxDepth:       DefaultMaxDepth,
		FollowSymlinks: true,
	}
}

// Scanner walks a directory and produces its markdown tree. A Scanner holds
// no per-scan state and can be shared between goroutines.
type Scanner struct {
	skip           map[string]struct{}
	extension      string
	caseSensitive  bool
	locale         language.Tag
	maxDepth       int
	followSymlinks bool
}

// NewScanner constructs a Scanner, filling zero option values with defaults.
func NewScanner(opts Options) *Scanner {
	defaults := DefaultOptions()

	ext := strings.TrimSpace(opts.Extension)
	if ext == "" {
		ext = defaults.Extension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	skipDirs := opts.SkipDirs
	if skipDirs == nil {
		skipDirs = defaults.SkipDirs
	}
	skip := make(map[string]struct{}, len(skipDirs))
	for _, name := range skipDirs {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			skip[trimmed] = struct{}{}
		}
	}

	tag := language.English
	if locale := strings.TrimSpace(opts.Locale); locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaults.MaxDepth
	}

	return &Scanner{
		skip:           skip,
		extension:      ext,
		caseSensitive:  opts.CaseSensitiveExt,
		locale:         tag,
		maxDepth:       maxDepth,
		followSymlinks: opts.FollowSymlinks,
	}
}

// frame is one pending directory on the work stack.
type frame struct {
	abs      string
	rel      string
	depth    int
	realPath string
	parent   *frame
	// children receives the sorted entries of this directory.
	children *[]*Node
}

func (f *frame) onAncestry(realPath string) bool {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.realPath == realPath {
			return true
		}
	}
	return false
}

// Scan returns the sorted tree under root. The result is built completely
// before it is returned; any read failure aborts the scan and no partial
// tree is produced.
func (s *Scanner) Scan(ctx context.Context, root string) ([]*Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, domain.NewPathError(scanOperation, domain.ErrNotFound, root, err)
	}
	if !info.IsDir() {
		return nil, domain.NewPathError(scanOperation, domain.ErrNotADirectory, root, nil)
	}

	rootReal, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, domain.NewPathError(scanOperation, domain.ErrInternal, root, err)
	}

	collator := collate.New(s.locale)
	var nodes []*Node

	stack := []*frame{{
		abs:      root,
		rel:      "",
		realPath: rootReal,
		children: &nodes,
	}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(current.abs)
		if err != nil {
			return nil, domain.NewPathError(scanOperation, domain.ErrInternal, current.abs, err)
		}

		level := make([]*Node, 0, len(entries))
		var pending []*frame

		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}

			abs := filepath.Join(current.abs, name)
			isDir, isFile, ok := s.classify(entry, abs, rootReal)
			if !ok {
				continue
			}

			rel := path.Join(current.rel, name)

			if isDir {
				if _, skipped := s.skip[name]; skipped {
					continue
				}
				node := &Node{Name: name, Path: rel, Type: NodeFolder, Children: []*Node{}}
				level = append(level, node)

				child, err := s.childFrame(current, abs, rel, node)
				if err != nil {
					return nil, err
				}
				if child != nil {
					pending = append(pending, child)
				}
				continue
			}

			if isFile && s.matchesExtension(name) {
				level = append(level, &Node{Name: name, Path: rel, Type: NodeFile})
			}
		}

		sortLevel(level, collator)
		*current.children = level

		for i := len(pending) - 1; i >= 0; i-- {
			stack = append(stack, pending[i])
		}
	}

	if nodes == nil {
		nodes = []*Node{}
	}
	return nodes, nil
}

// childFrame prepares the traversal of a sub-directory. It returns nil when
// the directory closes a symlink cycle; the folder is then emitted empty.
func (s *Scanner) childFrame(parent *frame, abs, rel string, node *Node) (*frame, error) {
	depth := parent.depth + 1
	if depth > s.maxDepth {
		return nil, domain.NewPathError(scanOperation, domain.ErrInternal, abs, ErrMaxDepthExceeded)
	}

	realPath, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, domain.NewPathError(scanOperation, domain.ErrInternal, abs, err)
	}
	if parent.onAncestry(realPath) {
		return nil, nil
	}

	return &frame{
		abs:      abs,
		rel:      rel,
		depth:    depth,
		realPath: realPath,
		parent:   parent,
		children: &node.Children,
	}, nil
}

// classify resolves the entry type, following symlinks when enabled. ok is
// false for entries that should be ignored (broken or unfollowed links,
// links resolving outside rootReal, devices, sockets).
func (s *Scanner) classify(entry fs.DirEntry, abs, rootReal string) (isDir, isFile, ok bool) {
	mode := entry.Type()
	if mode&fs.ModeSymlink != 0 {
		if !s.followSymlinks {
			return false, false, false
		}
		target, err := filepath.EvalSymlinks(abs)
		if err != nil || !withinRoot(rootReal, target) {
			return false, false, false
		}
		info, err := os.Stat(target)
		if err != nil {
			return false, false, false
		}
		mode = info.Mode().Type()
	}

	switch {
	case mode.IsDir():
		return true, false, true
	case mode.IsRegular():
		return false, true, true
	default:
		return false, false, false
	}
}

func withinRoot(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (s *Scanner) matchesExtension(name string) bool {
	ext := filepath.Ext(name)
	if s.caseSensitive {
		return ext == s.extension
	}
	return strings.EqualFold(ext, s.extension)
}

// sortLevel orders siblings: folders before files, then by collated name.
// Raw byte order breaks collation ties so the order is deterministic.
func sortLevel(level []*Node, collator *collate.Collator) {
	sort.SliceStable(level, func(i, j int) bool {
		a, b := level[i], level[j]
		if a.Type != b.Type {
			return a.Type == NodeFolder
		}
		if cmp := collator.CompareString(a.Name, b.Name); cmp != 0 {
			return cmp < 0
		}
		return a.Name < b.Name
	})
}
