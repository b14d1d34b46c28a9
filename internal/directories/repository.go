package directories

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewDirectoryRepository creates a repository for directory records keyed by
// their unique path.
func NewDirectoryRepository(db *bun.DB) repository.Repository[*Directory] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Directory]{
		NewRecord: func() *Directory { return &Directory{} },
		GetID: func(dir *Directory) uuid.UUID {
			return dir.ID
		},
		SetID: func(dir *Directory, id uuid.UUID) {
			dir.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(dir *Directory) string {
			return dir.Path
		},
	})
}
