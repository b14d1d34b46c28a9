package markdown

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseFrontMatterSplitsMetadata(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("---\ntitle: X\n---\nHello"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta["title"] != "X" {
		t.Fatalf("expected title X, got %#v", meta)
	}
	if len(meta) != 1 {
		t.Fatalf("expected a single key, got %#v", meta)
	}
	if strings.TrimSpace(string(body)) != "Hello" {
		t.Fatalf("expected body Hello, got %q", body)
	}
	if strings.Contains(string(body), "---") {
		t.Fatalf("expected delimiters to be removed, got %q", body)
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	source := "# Heading\n\nNo metadata here.\n---\nstill body\n"
	meta, body, err := ParseFrontMatter([]byte(source))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta == nil || len(meta) != 0 {
		t.Fatalf("expected empty metadata, got %#v", meta)
	}
	if string(body) != source {
		t.Fatalf("expected entire file as body, got %q", body)
	}
}

func TestParseFrontMatterNestedValuesAreJSONSafe(t *testing.T) {
	source := "---\ntitle: Graphs\ntags: [math, cs]\nauthor:\n  name: Ada\n  links:\n    site: example.org\n---\nBody\n"
	meta, _, err := ParseFrontMatter([]byte(source))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	author, ok := meta["author"].(map[string]any)
	if !ok {
		t.Fatalf("expected string keyed author map, got %T", meta["author"])
	}
	if author["name"] != "Ada" {
		t.Fatalf("expected author name, got %#v", author)
	}
	if _, err := json.Marshal(meta); err != nil {
		t.Fatalf("expected metadata to marshal, got %v", err)
	}
	tags, ok := meta["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "math" {
		t.Fatalf("unexpected tags %#v", meta["tags"])
	}
}

func TestParseFrontMatterTOML(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("+++\ntitle = \"Toml\"\n+++\nText\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta["title"] != "Toml" {
		t.Fatalf("expected toml title, got %#v", meta)
	}
	if strings.TrimSpace(string(body)) != "Text" {
		t.Fatalf("unexpected body %q", body)
	}
}
