package progress

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ReadStatusRepository persists read statuses. Rows are unique per
// (directory, file path).
type ReadStatusRepository interface {
	Upsert(ctx context.Context, status *ReadStatus) (*ReadStatus, error)
	Get(ctx context.Context, directoryID uuid.UUID, filePath string) (*ReadStatus, error)
	ListByDirectory(ctx context.Context, directoryID uuid.UUID) ([]*ReadStatus, error)
	CountCompleted(ctx context.Context, directoryID uuid.UUID) (int, error)
	DeleteByDirectory(ctx context.Context, directoryID uuid.UUID) error
}

// BookmarkRepository persists bookmarks. Rows are unique per
// (directory, file path).
type BookmarkRepository interface {
	// Insert stores the bookmark unless one already exists for the pair and
	// returns the stored row either way.
	Insert(ctx context.Context, bookmark *Bookmark) (*Bookmark, error)
	Get(ctx context.Context, directoryID uuid.UUID, filePath string) (*Bookmark, error)
	// Delete removes the bookmark for the pair and reports whether a row
	// was removed.
	Delete(ctx context.Context, directoryID uuid.UUID, filePath string) (bool, error)
	ListByDirectory(ctx context.Context, directoryID uuid.UUID) ([]*Bookmark, error)
	Count(ctx context.Context, directoryID uuid.UUID) (int, error)
	DeleteByDirectory(ctx context.Context, directoryID uuid.UUID) error
}

// NotFoundError is returned when a progress row cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func pairKey(directoryID uuid.UUID, filePath string) string {
	return directoryID.String() + ":" + filePath
}
