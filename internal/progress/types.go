package progress

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ReadStatus records whether a file of a directory has been completed.
type ReadStatus struct {
	bun.BaseModel `bun:"table:read_statuses,alias:rs"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	DirectoryID uuid.UUID `bun:"directory_id,notnull,type:uuid,unique:read_statuses_directory_file" json:"directoryId"`
	FilePath    string    `bun:"file_path,notnull,unique:read_statuses_directory_file" json:"filePath"`
	IsCompleted bool      `bun:"is_completed,notnull" json:"isCompleted"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// Bookmark marks a file of a directory. A row exists only while the file is
// bookmarked.
type Bookmark struct {
	bun.BaseModel `bun:"table:bookmarks,alias:bm"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	DirectoryID uuid.UUID `bun:"directory_id,notnull,type:uuid,unique:bookmarks_directory_file" json:"directoryId"`
	FilePath    string    `bun:"file_path,notnull,unique:bookmarks_directory_file" json:"filePath"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// Progress is every read status and bookmark of one directory.
type Progress struct {
	ReadStatuses []*ReadStatus `json:"readStatuses"`
	Bookmarks    []*Bookmark   `json:"bookmarks"`
}

// Counts summarises the progress of one directory.
type Counts struct {
	Completed int `json:"completedCount"`
	Bookmarks int `json:"bookmarkCount"`
}
