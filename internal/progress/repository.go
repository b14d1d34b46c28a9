package progress

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewReadStatusRepository creates a repository for read status records.
func NewReadStatusRepository(db *bun.DB) repository.Repository[*ReadStatus] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ReadStatus]{
		NewRecord: func() *ReadStatus { return &ReadStatus{} },
		GetID: func(status *ReadStatus) uuid.UUID {
			return status.ID
		},
		SetID: func(status *ReadStatus, id uuid.UUID) {
			status.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(status *ReadStatus) string {
			return status.ID.String()
		},
	})
}

// NewBookmarkRepository creates a repository for bookmark records.
func NewBookmarkRepository(db *bun.DB) repository.Repository[*Bookmark] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Bookmark]{
		NewRecord: func() *Bookmark { return &Bookmark{} },
		GetID: func(bookmark *Bookmark) uuid.UUID {
			return bookmark.ID
		},
		SetID: func(bookmark *Bookmark, id uuid.UUID) {
			bookmark.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(bookmark *Bookmark) string {
			return bookmark.ID.String()
		},
	})
}
