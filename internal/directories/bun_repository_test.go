package directories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-mdshelf/internal/directories"
	"github.com/goliatone/go-mdshelf/internal/progress"
	"github.com/goliatone/go-mdshelf/pkg/testsupport"
)

func newBunStores(t *testing.T) (*directories.BunDirectoryRepository, progress.Service) {
	t.Helper()
	db := testsupport.NewBunDB(t,
		(*directories.Directory)(nil),
		(*progress.ReadStatus)(nil),
		(*progress.Bookmark)(nil),
	)
	progressSvc := progress.NewService(
		progress.NewBunReadStatusRepository(db),
		progress.NewBunBookmarkRepository(db),
	)
	return directories.NewBunDirectoryRepository(db), progressSvc
}

func TestBunDirectoryRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo, _ := newBunStores(t)
	now := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)

	dir := &directories.Directory{
		ID:        uuid.MustParse("00000000-0000-0000-0000-00000000d001"),
		Name:      "Notes",
		Path:      "/srv/notes",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := repo.Create(ctx, dir)
	if err != nil {
		t.Fatalf("create directory: %v", err)
	}
	if created.ID != dir.ID || !created.IsActive {
		t.Fatalf("unexpected created directory %+v", created)
	}

	byPath, err := repo.GetByPath(ctx, "/srv/notes")
	if err != nil {
		t.Fatalf("get by path: %v", err)
	}
	if byPath.ID != dir.ID {
		t.Fatalf("expected id %s, got %s", dir.ID, byPath.ID)
	}

	_, err = repo.GetByID(ctx, uuid.New())
	var nf *directories.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil || count != 1 {
		t.Fatalf("expected count 1, got %d (%v)", count, err)
	}

	active, err := repo.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.ID != dir.ID {
		t.Fatalf("expected active %s, got %s", dir.ID, active.ID)
	}
}

func TestBunDirectoryRepositoryActivation(t *testing.T) {
	ctx := context.Background()
	repo, _ := newBunStores(t)
	svc := directories.NewService(repo)

	a, err := svc.Register(ctx, directories.RegisterInput{Name: "A", Path: "/a"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	b, err := svc.Register(ctx, directories.RegisterInput{Name: "B", Path: "/b"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.SetActive(ctx, b.ID, true); err != nil {
		t.Fatalf("activate: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	activeCount := 0
	for _, dir := range list {
		if dir.IsActive {
			activeCount++
			if dir.ID != b.ID {
				t.Fatalf("expected %s active, got %s", b.ID, dir.ID)
			}
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active row, got %d", activeCount)
	}

	refreshedA, err := svc.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if refreshedA.IsActive {
		t.Fatalf("expected previous active directory to be cleared")
	}

	if _, err := svc.SetActive(ctx, uuid.New(), true); !errors.Is(err, directories.ErrDirectoryNotFound) {
		t.Fatalf("expected not found activation, got %v", err)
	}
	if active, err := svc.Active(ctx); err != nil || active.ID != b.ID {
		t.Fatalf("expected failed activation to leave state untouched, got %v %v", active, err)
	}
}

func TestBunDirectoryRepositorySummariesAndDelete(t *testing.T) {
	ctx := context.Background()
	repo, progressSvc := newBunStores(t)

	times := []time.Time{
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	}
	i := 0
	svc := directories.NewService(repo, directories.WithNow(func() time.Time {
		if i < len(times) {
			i++
			return times[i-1]
		}
		return times[len(times)-1].Add(time.Hour)
	}))

	older, err := svc.Register(ctx, directories.RegisterInput{Name: "Older", Path: "/older"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	newer, err := svc.Register(ctx, directories.RegisterInput{Name: "Newer", Path: "/newer"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, path := range []string{"a.md", "b.md"} {
		if _, err := progressSvc.SetCompleted(ctx, newer.ID, path, true); err != nil {
			t.Fatalf("SetCompleted: %v", err)
		}
	}
	if _, err := progressSvc.SetCompleted(ctx, newer.ID, "c.md", false); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}
	if _, err := progressSvc.SetBookmarked(ctx, newer.ID, "a.md", true); err != nil {
		t.Fatalf("SetBookmarked: %v", err)
	}

	listing, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listing.Directories) != 2 || listing.Directories[0].ID != newer.ID {
		t.Fatalf("expected newest directory first, got %+v", listing.Directories)
	}
	if listing.Directories[0].CompletedCount != 2 || listing.Directories[0].BookmarkCount != 1 {
		t.Fatalf("unexpected counts %+v", listing.Directories[0])
	}
	if listing.Directories[1].CompletedCount != 0 || listing.Directories[1].BookmarkCount != 0 {
		t.Fatalf("expected empty counts for older directory, got %+v", listing.Directories[1])
	}
	if listing.Active == nil || listing.Active.ID != older.ID {
		t.Fatalf("expected first registered directory to be active, got %+v", listing.Active)
	}

	if _, err := svc.SetActive(ctx, newer.ID, true); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := svc.Delete(ctx, newer.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	counts, err := progressSvc.Counts(ctx, newer.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts != (progress.Counts{}) {
		t.Fatalf("expected progress rows to be removed with the directory, got %+v", counts)
	}

	active, err := svc.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.ID != older.ID {
		t.Fatalf("expected remaining directory to be activated, got %s", active.ID)
	}

	if err := svc.Delete(ctx, older.ID); err != nil {
		t.Fatalf("delete last: %v", err)
	}
	if _, err := svc.Active(ctx); !errors.Is(err, directories.ErrNoActiveDirectory) {
		t.Fatalf("expected no active directory, got %v", err)
	}
}
