package markdown

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/goliatone/go-mdshelf/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func TestReaderReadsFileWithFrontMatter(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "guides", "intro.md"), "---\ntitle: X\n---\nHello")

	file, err := NewReader().Read(context.Background(), base, "guides/intro.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if file.FrontMatter["title"] != "X" {
		t.Fatalf("expected title X, got %#v", file.FrontMatter)
	}
	if strings.TrimSpace(file.Content) != "Hello" {
		t.Fatalf("expected content Hello, got %q", file.Content)
	}
	if file.FilePath != "guides/intro.md" {
		t.Fatalf("expected file path echoed, got %q", file.FilePath)
	}
	if file.FileName != "intro.md" {
		t.Fatalf("expected file name intro.md, got %q", file.FileName)
	}
	if file.LastModified.IsZero() {
		t.Fatalf("expected modification time")
	}
	if string(file.Source) != "---\ntitle: X\n---\nHello" {
		t.Fatalf("expected raw source to be retained, got %q", file.Source)
	}
}

func TestReaderWithoutFrontMatter(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "plain.md"), "# Plain\n\ntext\n")

	file, err := NewReader().Read(context.Background(), base, "plain.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(file.FrontMatter) != 0 {
		t.Fatalf("expected empty frontmatter, got %#v", file.FrontMatter)
	}
	if file.Content != "# Plain\n\ntext\n" {
		t.Fatalf("expected full content, got %q", file.Content)
	}
}

func TestReaderRejectsTraversal(t *testing.T) {
	parent := t.TempDir()
	base := filepath.Join(parent, "base")
	writeFile(t, filepath.Join(base, "inside.md"), "inside")
	writeFile(t, filepath.Join(parent, "base-other", "secret.md"), "secret")

	reader := NewReader()
	for _, candidate := range []string{"../../etc/passwd", "../base-other/secret.md", "../missing.md"} {
		_, err := reader.Read(context.Background(), base, candidate)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected forbidden for %q, got %v", candidate, err)
		}
	}
}

func TestReaderErrorKinds(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "notes", "a.md"), "a")

	reader := NewReader()

	_, err := reader.Read(context.Background(), base, "missing.md")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = reader.Read(context.Background(), base, "notes")
	if !errors.Is(err, domain.ErrNotAFile) {
		t.Fatalf("expected not a file, got %v", err)
	}

	var pathErr *domain.PathError
	if !errors.As(err, &pathErr) || pathErr.Path != "notes" {
		t.Fatalf("expected path error carrying the requested path, got %#v", err)
	}
}

func TestReaderRejectsSymlinkEscapingBase(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	parent := t.TempDir()
	base := filepath.Join(parent, "base")
	writeFile(t, filepath.Join(base, "inside.md"), "inside")
	writeFile(t, filepath.Join(parent, "outside", "ext.md"), "secret")
	if err := os.Symlink(filepath.Join(parent, "outside", "ext.md"), filepath.Join(base, "link.md")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(parent, "outside"), filepath.Join(base, "ext")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(base, "inside.md"), filepath.Join(base, "alias.md")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	reader := NewReader()
	for _, candidate := range []string{"link.md", "ext/ext.md"} {
		file, err := reader.Read(context.Background(), base, candidate)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected forbidden for %q, got %v", candidate, err)
		}
		if file != nil {
			t.Fatalf("expected no content for %q", candidate)
		}
	}

	file, err := reader.Read(context.Background(), base, "alias.md")
	if err != nil {
		t.Fatalf("Read alias: %v", err)
	}
	if file.Content != "inside" {
		t.Fatalf("expected linked content, got %q", file.Content)
	}
}

func TestReaderRequiresBasePath(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "a.md"), "a")

	for _, candidate := range []string{"", "   "} {
		_, err := NewReader().Read(context.Background(), candidate, "a.md")
		if !errors.Is(err, ErrBasePathRequired) {
			t.Fatalf("expected base path required for %q, got %v", candidate, err)
		}
		if errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("empty base must not be reported as forbidden")
		}
	}
}

func TestReaderTrailingSeparatorIsNotAFile(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "notes", "a.md"), "a")

	reader := NewReader()
	for _, candidate := range []string{"notes/a.md/", "notes/a.md" + string(filepath.Separator)} {
		_, err := reader.Read(context.Background(), base, candidate)
		if !errors.Is(err, domain.ErrNotAFile) {
			t.Fatalf("expected not a file for %q, got %v", candidate, err)
		}
	}

	if _, err := reader.Read(context.Background(), base, "notes/a.md"); err != nil {
		t.Fatalf("Read without separator: %v", err)
	}
}

func TestReaderHonoursCancelledContext(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "a.md"), "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewReader().Read(ctx, base, "a.md"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
