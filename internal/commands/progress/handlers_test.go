package progresscmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-mdshelf/internal/progress"
)

func newProgressService() progress.Service {
	store := progress.NewMemoryStore()
	return progress.NewService(store.ReadStatuses(), store.Bookmarks())
}

func TestSetReadStatusHandler(t *testing.T) {
	ctx := context.Background()
	svc := newProgressService()
	handler := NewSetReadStatusHandler(svc, nil)
	dirID := uuid.New()

	if err := handler.Execute(ctx, SetReadStatusCommand{DirectoryID: dirID, FilePath: "notes/intro.md", IsCompleted: true}); err != nil {
		t.Fatalf("set read status: %v", err)
	}
	if err := handler.Execute(ctx, SetReadStatusCommand{DirectoryID: dirID, FilePath: "notes/intro.md", IsCompleted: true}); err != nil {
		t.Fatalf("repeat read status: %v", err)
	}

	counts, err := svc.Counts(ctx, dirID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Completed != 1 {
		t.Fatalf("expected one completed file, got %d", counts.Completed)
	}
}

func TestSetBookmarkHandlerToggles(t *testing.T) {
	ctx := context.Background()
	svc := newProgressService()
	handler := NewSetBookmarkHandler(svc, nil)
	dirID := uuid.New()

	if err := handler.Execute(ctx, SetBookmarkCommand{DirectoryID: dirID, FilePath: "a.md", IsBookmarked: true}); err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	counts, _ := svc.Counts(ctx, dirID)
	if counts.Bookmarks != 1 {
		t.Fatalf("expected one bookmark, got %d", counts.Bookmarks)
	}

	if err := handler.Execute(ctx, SetBookmarkCommand{DirectoryID: dirID, FilePath: "a.md"}); err != nil {
		t.Fatalf("unbookmark: %v", err)
	}
	counts, _ = svc.Counts(ctx, dirID)
	if counts.Bookmarks != 0 {
		t.Fatalf("expected bookmark removed, got %d", counts.Bookmarks)
	}
}

func TestProgressHandlersValidate(t *testing.T) {
	svc := newProgressService()

	err := NewSetReadStatusHandler(svc, nil).Execute(context.Background(), SetReadStatusCommand{FilePath: "a.md"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error for missing directory id, got %v", err)
	}

	err = NewSetBookmarkHandler(svc, nil).Execute(context.Background(), SetBookmarkCommand{DirectoryID: uuid.New(), FilePath: " "})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error for blank path, got %v", err)
	}
}

func TestSetReadStatusHandlerUnknownDirectory(t *testing.T) {
	store := progress.NewMemoryStore()
	missing := errors.New("directory missing")
	svc := progress.NewService(store.ReadStatuses(), store.Bookmarks(),
		progress.WithDirectoryLookup(func(context.Context, uuid.UUID) error { return missing }))

	err := NewSetReadStatusHandler(svc, nil).Execute(context.Background(), SetReadStatusCommand{DirectoryID: uuid.New(), FilePath: "a.md", IsCompleted: true})
	if !errors.Is(err, missing) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestHandlersReportStoredRows(t *testing.T) {
	ctx := context.Background()
	svc := newProgressService()
	dirID := uuid.New()

	var status *progress.ReadStatus
	if err := NewSetReadStatusHandler(svc, nil).Execute(ctx, SetReadStatusCommand{
		DirectoryID:    dirID,
		FilePath:       "intro.md",
		IsCompleted:    true,
		ResultCallback: func(stored *progress.ReadStatus) { status = stored },
	}); err != nil {
		t.Fatalf("set read status: %v", err)
	}
	if status == nil || status.FilePath != "intro.md" || !status.IsCompleted {
		t.Fatalf("unexpected read status result: %+v", status)
	}

	bookmarks := NewSetBookmarkHandler(svc, nil)
	var added *progress.Bookmark
	if err := bookmarks.Execute(ctx, SetBookmarkCommand{
		DirectoryID:    dirID,
		FilePath:       "intro.md",
		IsBookmarked:   true,
		ResultCallback: func(stored *progress.Bookmark) { added = stored },
	}); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}
	if added == nil || added.FilePath != "intro.md" {
		t.Fatalf("unexpected bookmark result: %+v", added)
	}

	removed := &progress.Bookmark{}
	if err := bookmarks.Execute(ctx, SetBookmarkCommand{
		DirectoryID:    dirID,
		FilePath:       "intro.md",
		IsBookmarked:   false,
		ResultCallback: func(stored *progress.Bookmark) { removed = stored },
	}); err != nil {
		t.Fatalf("remove bookmark: %v", err)
	}
	if removed != nil {
		t.Fatalf("expected nil bookmark after removal, got %+v", removed)
	}
}
