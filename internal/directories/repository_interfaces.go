package directories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DirectoryRepository exposes persistence operations for directories. The
// activation methods keep at most one active row.
type DirectoryRepository interface {
	// Create stores the directory. When it is active every other row is
	// deactivated in the same unit of work.
	Create(ctx context.Context, dir *Directory) (*Directory, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Directory, error)
	GetByPath(ctx context.Context, path string) (*Directory, error)
	GetActive(ctx context.Context) (*Directory, error)
	// List returns every directory, newest first.
	List(ctx context.Context) ([]*Directory, error)
	// ListSummaries is List with per directory progress counts.
	ListSummaries(ctx context.Context) ([]*Summary, error)
	Count(ctx context.Context) (int, error)
	Activate(ctx context.Context, id uuid.UUID, at time.Time) (*Directory, error)
	Deactivate(ctx context.Context, id uuid.UUID, at time.Time) (*Directory, error)
	// Delete removes the directory with its progress rows. When the removed
	// row was active the oldest remaining directory is activated and
	// returned.
	Delete(ctx context.Context, id uuid.UUID, at time.Time) (*Directory, error)
}

// NotFoundError is returned when a directory cannot be located.
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
