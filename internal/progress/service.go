package progress

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-mdshelf/internal/identity"
	"github.com/goliatone/go-mdshelf/internal/logging"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

// Service tracks per-file reading progress inside registered directories.
type Service interface {
	ForDirectory(ctx context.Context, directoryID uuid.UUID) (*Progress, error)
	SetCompleted(ctx context.Context, directoryID uuid.UUID, filePath string, completed bool) (*ReadStatus, error)
	// SetBookmarked returns the bookmark when bookmarked is true and nil
	// otherwise.
	SetBookmarked(ctx context.Context, directoryID uuid.UUID, filePath string, bookmarked bool) (*Bookmark, error)
	Counts(ctx context.Context, directoryID uuid.UUID) (Counts, error)
}

var (
	ErrReadStatusRepositoryRequired = errors.New("progress: read status repository required")
	ErrBookmarkRepositoryRequired   = errors.New("progress: bookmark repository required")
	ErrDirectoryIDRequired          = errors.New("progress: directory id is required")
	ErrFilePathRequired             = errors.New("progress: file path is required")
)

// DirectoryLookup reports whether a directory is registered. It returns a
// not found error for unknown ids.
type DirectoryLookup func(ctx context.Context, id uuid.UUID) error

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithDirectoryLookup rejects progress writes for unregistered directories.
func WithDirectoryLookup(lookup DirectoryLookup) ServiceOption {
	return func(s *service) {
		s.lookup = lookup
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	statuses  ReadStatusRepository
	bookmarks BookmarkRepository
	lookup    DirectoryLookup
	logger    interfaces.Logger
	now       func() time.Time
}

// NewService constructs a progress service instance.
func NewService(statuses ReadStatusRepository, bookmarks BookmarkRepository, opts ...ServiceOption) Service {
	if statuses == nil {
		panic(ErrReadStatusRepositoryRequired)
	}
	if bookmarks == nil {
		panic(ErrBookmarkRepositoryRequired)
	}

	s := &service{
		statuses:  statuses,
		bookmarks: bookmarks,
		logger:    logging.NoOp(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ForDirectory(ctx context.Context, directoryID uuid.UUID) (*Progress, error) {
	if directoryID == uuid.Nil {
		return nil, ErrDirectoryIDRequired
	}

	statuses, err := s.statuses.ListByDirectory(ctx, directoryID)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.bookmarks.ListByDirectory(ctx, directoryID)
	if err != nil {
		return nil, err
	}
	return &Progress{ReadStatuses: statuses, Bookmarks: bookmarks}, nil
}

func (s *service) SetCompleted(ctx context.Context, directoryID uuid.UUID, filePath string, completed bool) (*ReadStatus, error) {
	normalized, err := s.validate(ctx, directoryID, filePath)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	status, err := s.statuses.Upsert(ctx, &ReadStatus{
		ID:          identity.ReadStatusUUID(directoryID, normalized),
		DirectoryID: directoryID,
		FilePath:    normalized,
		IsCompleted: completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.scoped(directoryID, normalized).Debug("progress.read_status.updated", "completed", completed)
	return status, nil
}

func (s *service) SetBookmarked(ctx context.Context, directoryID uuid.UUID, filePath string, bookmarked bool) (*Bookmark, error) {
	normalized, err := s.validate(ctx, directoryID, filePath)
	if err != nil {
		return nil, err
	}
	logger := s.scoped(directoryID, normalized)

	if !bookmarked {
		removed, err := s.bookmarks.Delete(ctx, directoryID, normalized)
		if err != nil {
			return nil, err
		}
		if removed {
			logger.Debug("progress.bookmark.removed")
		}
		return nil, nil
	}

	bookmark, err := s.bookmarks.Insert(ctx, &Bookmark{
		ID:          identity.BookmarkUUID(directoryID, normalized),
		DirectoryID: directoryID,
		FilePath:    normalized,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("progress.bookmark.added")
	return bookmark, nil
}

func (s *service) Counts(ctx context.Context, directoryID uuid.UUID) (Counts, error) {
	if directoryID == uuid.Nil {
		return Counts{}, ErrDirectoryIDRequired
	}
	completed, err := s.statuses.CountCompleted(ctx, directoryID)
	if err != nil {
		return Counts{}, err
	}
	bookmarks, err := s.bookmarks.Count(ctx, directoryID)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Completed: completed, Bookmarks: bookmarks}, nil
}

func (s *service) validate(ctx context.Context, directoryID uuid.UUID, filePath string) (string, error) {
	if directoryID == uuid.Nil {
		return "", ErrDirectoryIDRequired
	}
	normalized := identity.NormalizeFilePath(filePath)
	if normalized == "" || normalized == "." {
		return "", ErrFilePathRequired
	}
	if s.lookup != nil {
		if err := s.lookup(ctx, directoryID); err != nil {
			return "", err
		}
	}
	return normalized, nil
}

func (s *service) scoped(directoryID uuid.UUID, filePath string) interfaces.Logger {
	logger := logging.WithDirectory(s.logger, directoryID.String(), "")
	return logging.WithFields(logger, map[string]any{logging.FieldFilePath: filePath})
}
