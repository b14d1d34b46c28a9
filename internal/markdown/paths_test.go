package markdown

import (
	"path/filepath"
	"testing"
)

func TestResolveWithin(t *testing.T) {
	base := filepath.FromSlash("/srv/notes")

	cases := []struct {
		name     string
		base     string
		file     string
		want     string
		contains bool
	}{
		{name: "plain", base: base, file: "intro.md", want: "/srv/notes/intro.md", contains: true},
		{name: "nested", base: base, file: "a/b/c.md", want: "/srv/notes/a/b/c.md", contains: true},
		{name: "dot segments inside", base: base, file: "a/../b/./c.md", want: "/srv/notes/b/c.md", contains: true},
		{name: "traversal", base: base, file: "../../etc/passwd", want: "/etc/passwd", contains: false},
		{name: "sibling prefix", base: base, file: "../notes-old/x.md", want: "/srv/notes-old/x.md", contains: false},
		{name: "unclean base", base: "/srv/./notes/", file: "x.md", want: "/srv/notes/x.md", contains: true},
		{name: "hidden escape", base: base, file: "a/../../secret.md", want: "/srv/secret.md", contains: false},
		{name: "base itself", base: base, file: ".", want: "/srv/notes", contains: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveWithin(tc.base, tc.file)
			if ok != tc.contains {
				t.Fatalf("expected contained=%v for %q, got %v (%s)", tc.contains, tc.file, ok, got)
			}
			if got != filepath.FromSlash(tc.want) {
				t.Fatalf("expected %s, got %s", filepath.FromSlash(tc.want), got)
			}
		})
	}
}

func TestIsWithinRootBase(t *testing.T) {
	root := string(filepath.Separator)
	if !IsWithin(root, filepath.Join(root, "etc")) {
		t.Fatalf("expected every absolute path to be inside the filesystem root")
	}
}
