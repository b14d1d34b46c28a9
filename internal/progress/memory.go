package progress

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type pair struct {
	directoryID uuid.UUID
	filePath    string
}

// MemoryStore backs both progress repositories with maps. It is intended for
// tests and ephemeral runs.
type MemoryStore struct {
	mu        sync.RWMutex
	statuses  map[pair]*ReadStatus
	bookmarks map[pair]*Bookmark
}

// NewMemoryStore constructs an empty in-memory progress store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		statuses:  make(map[pair]*ReadStatus),
		bookmarks: make(map[pair]*Bookmark),
	}
}

// ReadStatuses returns the read status view of the store.
func (m *MemoryStore) ReadStatuses() ReadStatusRepository { return memoryReadStatuses{m} }

// Bookmarks returns the bookmark view of the store.
func (m *MemoryStore) Bookmarks() BookmarkRepository { return memoryBookmarks{m} }

type memoryReadStatuses struct{ m *MemoryStore }

func (r memoryReadStatuses) Upsert(_ context.Context, status *ReadStatus) (*ReadStatus, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	key := pair{status.DirectoryID, status.FilePath}
	if existing, ok := r.m.statuses[key]; ok {
		existing.IsCompleted = status.IsCompleted
		existing.UpdatedAt = status.UpdatedAt
		return cloneReadStatus(existing), nil
	}
	stored := cloneReadStatus(status)
	r.m.statuses[key] = stored
	return cloneReadStatus(stored), nil
}

func (r memoryReadStatuses) Get(_ context.Context, directoryID uuid.UUID, filePath string) (*ReadStatus, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	record, ok := r.m.statuses[pair{directoryID, filePath}]
	if !ok {
		return nil, &NotFoundError{Resource: "read status", Key: pairKey(directoryID, filePath)}
	}
	return cloneReadStatus(record), nil
}

func (r memoryReadStatuses) ListByDirectory(_ context.Context, directoryID uuid.UUID) ([]*ReadStatus, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := []*ReadStatus{}
	for key, record := range r.m.statuses {
		if key.directoryID == directoryID {
			out = append(out, cloneReadStatus(record))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FilePath < out[j].FilePath })
	return out, nil
}

func (r memoryReadStatuses) CountCompleted(_ context.Context, directoryID uuid.UUID) (int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	count := 0
	for key, record := range r.m.statuses {
		if key.directoryID == directoryID && record.IsCompleted {
			count++
		}
	}
	return count, nil
}

func (r memoryReadStatuses) DeleteByDirectory(_ context.Context, directoryID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for key := range r.m.statuses {
		if key.directoryID == directoryID {
			delete(r.m.statuses, key)
		}
	}
	return nil
}

type memoryBookmarks struct{ m *MemoryStore }

func (r memoryBookmarks) Insert(_ context.Context, bookmark *Bookmark) (*Bookmark, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	key := pair{bookmark.DirectoryID, bookmark.FilePath}
	if existing, ok := r.m.bookmarks[key]; ok {
		return cloneBookmark(existing), nil
	}
	stored := cloneBookmark(bookmark)
	r.m.bookmarks[key] = stored
	return cloneBookmark(stored), nil
}

func (r memoryBookmarks) Get(_ context.Context, directoryID uuid.UUID, filePath string) (*Bookmark, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	record, ok := r.m.bookmarks[pair{directoryID, filePath}]
	if !ok {
		return nil, &NotFoundError{Resource: "bookmark", Key: pairKey(directoryID, filePath)}
	}
	return cloneBookmark(record), nil
}

func (r memoryBookmarks) Delete(_ context.Context, directoryID uuid.UUID, filePath string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	key := pair{directoryID, filePath}
	if _, ok := r.m.bookmarks[key]; !ok {
		return false, nil
	}
	delete(r.m.bookmarks, key)
	return true, nil
}

func (r memoryBookmarks) ListByDirectory(_ context.Context, directoryID uuid.UUID) ([]*Bookmark, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := []*Bookmark{}
	for key, record := range r.m.bookmarks {
		if key.directoryID == directoryID {
			out = append(out, cloneBookmark(record))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FilePath < out[j].FilePath })
	return out, nil
}

func (r memoryBookmarks) Count(_ context.Context, directoryID uuid.UUID) (int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	count := 0
	for key := range r.m.bookmarks {
		if key.directoryID == directoryID {
			count++
		}
	}
	return count, nil
}

func (r memoryBookmarks) DeleteByDirectory(_ context.Context, directoryID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for key := range r.m.bookmarks {
		if key.directoryID == directoryID {
			delete(r.m.bookmarks, key)
		}
	}
	return nil
}

func cloneReadStatus(status *ReadStatus) *ReadStatus {
	if status == nil {
		return nil
	}
	cloned := *status
	return &cloned
}

func cloneBookmark(bookmark *Bookmark) *Bookmark {
	if bookmark == nil {
		return nil
	}
	cloned := *bookmark
	return &cloned
}
