package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestDirectoryUUIDIsStable(t *testing.T) {
	a := DirectoryUUID("/srv/notes")
	b := DirectoryUUID("/srv/notes/")
	if a == uuid.Nil {
		t.Fatalf("expected non-nil id")
	}
	if a != b {
		t.Fatalf("expected cleaned paths to share an id, got %s and %s", a, b)
	}
	if a == DirectoryUUID("/srv/Notes") {
		t.Fatalf("expected path ids to preserve letter case")
	}
	if a == DirectoryUUID("/srv/notes-old") {
		t.Fatalf("expected distinct paths to produce distinct ids")
	}
	if DirectoryUUID("  ") != uuid.Nil {
		t.Fatalf("expected blank path to produce nil id")
	}
}

func TestProgressUUIDsDoNotCollide(t *testing.T) {
	dir := DirectoryUUID("/srv/notes")
	status := ReadStatusUUID(dir, "a/b.md")
	bookmark := BookmarkUUID(dir, "a/b.md")
	if status == bookmark {
		t.Fatalf("expected entity prefixes to separate ids")
	}
	if status != ReadStatusUUID(dir, "./a/b.md") {
		t.Fatalf("expected normalised paths to share an id")
	}
}

func TestNormalizeFilePath(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"a.md":          "a.md",
		"./a/b.md":      "a/b.md",
		`a\b\c.md`:      "a/b/c.md",
		"a//b/../c.md":  "a/c.md",
		"  spaced.md  ": "spaced.md",
	}
	for input, want := range cases {
		if got := NormalizeFilePath(input); got != want {
			t.Fatalf("NormalizeFilePath(%q) = %q, want %q", input, got, want)
		}
	}
}
