package directories

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Directory is a registered learning directory on the local filesystem.
type Directory struct {
	bun.BaseModel `bun:"table:directories,alias:d"`

	ID        uuid.UUID `bun:",pk,type:uuid"                   json:"id"`
	Name      string    `bun:"name,notnull"                    json:"name"`
	Path      string    `bun:"path,notnull,unique"             json:"path"`
	IsActive  bool      `bun:"is_active,notnull"               json:"isActive"`
	IsBuiltIn bool      `bun:"is_built_in,notnull"             json:"isBuiltIn"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// Summary is a directory with its progress counts.
type Summary struct {
	*Directory
	CompletedCount int `json:"completedCount"`
	BookmarkCount  int `json:"bookmarkCount"`
}

// Listing is the registry view returned by List.
type Listing struct {
	Directories []*Summary `json:"directories"`
	Active      *Directory `json:"activeDirectory"`
}

// RegisterInput captures the fields required to register a directory.
type RegisterInput struct {
	Name string
	Path string
	// BuiltIn marks directories discovered under the built-in root.
	BuiltIn bool
}
