package tree

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goliatone/go-mdshelf/internal/domain"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, name := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(full, []byte("# "+name+"\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestScanHiddenAndDependencyEntriesOnly(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		".git/config.md",
		".hidden.md",
		".obsidian/workspace.md",
		"node_modules/pkg/README.md",
	)

	nodes, err := NewScanner(DefaultOptions()).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if nodes == nil || len(nodes) != 0 {
		t.Fatalf("expected empty non-nil tree, got %#v", nodes)
	}
}

func TestScanOrdersFoldersFirstWithCollation(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"Banana.md",
		"apple.md",
		"éclair.md",
		"cherry.md",
		"fig.md",
		"zeta/",
		"Alpha/",
		"beta/",
	)

	nodes, err := NewScanner(DefaultOptions()).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	want := []string{"Alpha", "beta", "zeta", "apple.md", "Banana.md", "cherry.md", "éclair.md", "fig.md"}
	if got := names(nodes); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order\nwant %v\ngot  %v", want, got)
	}
}

func TestScanOrderingHoldsAtEveryLevel(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"course/week-2/b.md",
		"course/week-2/A.md",
		"course/week-10/notes.md",
		"course/intro.md",
		"course/appendix/",
		"course/Zed.md",
		"misc.md",
	)

	nodes, err := NewScanner(DefaultOptions()).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	collator := collate.New(language.English)
	var check func(level []*Node)
	check = func(level []*Node) {
		seenFile := false
		for i, node := range level {
			if node.IsFolder() {
				if seenFile {
					t.Fatalf("folder %s listed after a file", node.Path)
				}
				check(node.Children)
			} else {
				seenFile = true
			}
			if i == 0 {
				continue
			}
			prev := level[i-1]
			if prev.Type == node.Type && collator.CompareString(prev.Name, node.Name) > 0 {
				t.Fatalf("siblings out of order: %s before %s", prev.Path, node.Path)
			}
		}
	}
	check(nodes)
}

func TestScanBuildsRelativeSlashPaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"notes/week1/intro.md",
		"notes/week1/data.csv",
		"notes/empty/image.png",
		"top.md",
		"script.sh",
	)

	nodes, err := NewScanner(DefaultOptions()).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	intro := FindByPath(nodes, "notes/week1/intro.md")
	if intro == nil {
		t.Fatalf("expected notes/week1/intro.md in tree")
	}
	if intro.Type != NodeFile || intro.Children != nil {
		t.Fatalf("expected leaf file node, got %#v", intro)
	}
	if FindByPath(nodes, "notes/week1/data.csv") != nil || FindByPath(nodes, "script.sh") != nil {
		t.Fatalf("non markdown files must be omitted")
	}

	empty := FindByPath(nodes, "notes/empty")
	if empty == nil || !empty.IsFolder() {
		t.Fatalf("expected folder without markdown files to be emitted")
	}
	if empty.Children == nil || len(empty.Children) != 0 {
		t.Fatalf("expected empty children slice, got %#v", empty.Children)
	}

	Walk(nodes, func(n *Node) bool {
		if n.IsFolder() {
			if n.Children == nil {
				t.Fatalf("folder %s must carry children", n.Path)
			}
			for _, child := range n.Children {
				if child.Path != n.Path+"/"+child.Name {
					t.Fatalf("child path %q is not parent %q joined with %q", child.Path, n.Path, child.Name)
				}
			}
		}
		return true
	})

	for _, rel := range FilePaths(nodes) {
		full := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil {
			t.Fatalf("file node %s does not resolve: %v", rel, err)
		}
		if !info.Mode().IsRegular() || !strings.EqualFold(filepath.Ext(rel), ".md") {
			t.Fatalf("file node %s is not a markdown file", rel)
		}
	}
}

func TestScanIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a/one.md", "a/b/two.md", "three.md", "c/")

	scanner := NewScanner(DefaultOptions())
	first, err := scanner.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	second, err := scanner.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical trees across scans")
	}
}

func TestScanRootErrors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "file.md")
	scanner := NewScanner(DefaultOptions())

	_, err := scanner.Scan(context.Background(), filepath.Join(root, "missing"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = scanner.Scan(context.Background(), filepath.Join(root, "file.md"))
	if !errors.Is(err, domain.ErrNotADirectory) {
		t.Fatalf("expected not a directory, got %v", err)
	}
}

func TestScanExtensionCasePolicy(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "README.MD", "notes.md", "draft.Md")

	nodes, err := NewScanner(DefaultOptions()).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected case-insensitive match of 3 files, got %v", names(nodes))
	}

	opts := DefaultOptions()
	opts.CaseSensitiveExt = true
	nodes, err = NewScanner(opts).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if got := names(nodes); !reflect.DeepEqual(got, []string{"notes.md"}) {
		t.Fatalf("expected only notes.md, got %v", got)
	}
}

func TestScanCustomSkipDirs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "vendor/lib.md", "node_modules/x.md", "docs/guide.md")

	opts := DefaultOptions()
	opts.SkipDirs = []string{"vendor"}
	nodes, err := NewScanner(opts).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if got := names(nodes); !reflect.DeepEqual(got, []string{"docs", "node_modules"}) {
		t.Fatalf("unexpected top level %v", got)
	}
}

func TestScanMaxDepth(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a/b/ok.md")

	opts := DefaultOptions()
	opts.MaxDepth = 2
	if _, err := NewScanner(opts).Scan(context.Background(), root); err != nil {
		t.Fatalf("scan within depth: %v", err)
	}

	writeFiles(t, root, "a/b/c/deep.md")
	_, err := NewScanner(opts).Scan(context.Background(), root)
	if !errors.Is(err, domain.ErrInternal) || !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected max depth error, got %v", err)
	}
}

func TestScanSymlinkCycleIsNotFollowedTwice(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	root := t.TempDir()
	writeFiles(t, root, "loop/page.md")
	if err := os.Symlink(root, filepath.Join(root, "loop", "back")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "broken")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	nodes, err := NewScanner(DefaultOptions()).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	back := FindByPath(nodes, "loop/back")
	if back == nil || !back.IsFolder() {
		t.Fatalf("expected symlinked folder to be listed")
	}
	if len(back.Children) != 0 {
		t.Fatalf("expected cycle to stop descent, got %d children", len(back.Children))
	}
	if FindByPath(nodes, "broken") != nil {
		t.Fatalf("expected broken symlink to be skipped")
	}
}

func TestScanSkipsSymlinksResolvingOutsideRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	writeFiles(t, root, "docs/real.md")
	writeFiles(t, parent, "outside/ext.md")
	if err := os.Symlink(filepath.Join(parent, "outside", "ext.md"), filepath.Join(root, "link.md")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(parent, "outside"), filepath.Join(root, "external")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "docs", "real.md"), filepath.Join(root, "alias.md")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	nodes, err := NewScanner(DefaultOptions()).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if FindByPath(nodes, "link.md") != nil {
		t.Fatalf("expected file link escaping the root to be skipped")
	}
	if FindByPath(nodes, "external") != nil {
		t.Fatalf("expected folder link escaping the root to be skipped")
	}
	if alias := FindByPath(nodes, "alias.md"); alias == nil || alias.IsFolder() {
		t.Fatalf("expected link inside the root to be listed as a file")
	}
}

func TestScanAbortsOnUnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	root := t.TempDir()
	writeFiles(t, root, "ok.md", "locked/secret.md")
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	nodes, err := NewScanner(DefaultOptions()).Scan(context.Background(), root)
	if !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if nodes != nil {
		t.Fatalf("expected no partial tree, got %v", names(nodes))
	}
	var pathErr *domain.PathError
	if !errors.As(err, &pathErr) || pathErr.Path != locked {
		t.Fatalf("expected error to name %s, got %v", locked, err)
	}
}

func TestScanHonoursCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.md")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewScanner(DefaultOptions()).Scan(ctx, root); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestNodeJSONShape(t *testing.T) {
	nodes := []*Node{
		{Name: "empty", Path: "empty", Type: NodeFolder},
		{Name: "a.md", Path: "a.md", Type: NodeFile},
	}
	raw, err := json.Marshal(nodes)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"name":"empty","path":"empty","type":"folder","children":[]},{"name":"a.md","path":"a.md","type":"file"}]`
	if string(raw) != want {
		t.Fatalf("unexpected json\nwant %s\ngot  %s", want, raw)
	}
}

func TestCounts(t *testing.T) {
	nodes := []*Node{
		{Name: "f", Path: "f", Type: NodeFolder, Children: []*Node{
			{Name: "x.md", Path: "f/x.md", Type: NodeFile},
		}},
		{Name: "y.md", Path: "y.md", Type: NodeFile},
	}
	folders, files := Counts(nodes)
	if folders != 1 || files != 2 {
		t.Fatalf("expected 1 folder and 2 files, got %d and %d", folders, files)
	}
}
