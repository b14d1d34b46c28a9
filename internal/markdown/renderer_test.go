package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

func TestGoldmarkRendererDefaults(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{})

	html, err := renderer.Render([]byte("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, `<h1 id="title">Title</h1>`) {
		t.Fatalf("expected heading with id, got %s", out)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected gfm table, got %s", out)
	}
	if !strings.Contains(out, "<del>old</del>") {
		t.Fatalf("expected strikethrough, got %s", out)
	}
}

func TestGoldmarkRendererSafeMode(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{})
	source := []byte("<div class=\"raw\">hi</div>\n")

	unsafe, err := renderer.Render(source)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(unsafe), `<div class="raw">`) {
		t.Fatalf("expected raw html to pass through, got %s", unsafe)
	}

	safe, err := renderer.RenderWithOptions(source, interfaces.RenderOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("RenderWithOptions: %v", err)
	}
	if strings.Contains(string(safe), `<div class="raw">`) {
		t.Fatalf("expected raw html to be omitted, got %s", safe)
	}
}

func TestGoldmarkRendererHardWraps(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{HardWraps: true})

	html, err := renderer.Render([]byte("line one\nline two\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "<br>") {
		t.Fatalf("expected hard line break, got %s", html)
	}
}

func TestGoldmarkRendererHighlight(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{Highlight: true})

	html, err := renderer.Render([]byte("```go\npackage main\n```\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), `class="chroma"`) {
		t.Fatalf("expected chroma classes, got %s", html)
	}
}

func TestCollectExtensionsIgnoresUnknownAndDuplicates(t *testing.T) {
	exts := collectExtensions([]string{"table", " TABLE ", "unknown", "", "footnote"})
	if len(exts) != 2 {
		t.Fatalf("expected two extensions, got %d", len(exts))
	}
}
