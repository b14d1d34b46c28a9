package directories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Directory
	byPath map[string]uuid.UUID
}

// NewMemoryRepository constructs an in-memory directory repository. It keeps
// no progress rows, so summaries always carry zero counts.
func NewMemoryRepository() DirectoryRepository {
	return &memoryRepository{
		byID:   make(map[uuid.UUID]*Directory),
		byPath: make(map[string]uuid.UUID),
	}
}

func (m *memoryRepository) Create(_ context.Context, dir *Directory) (*Directory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dir.IsActive {
		m.deactivateAllLocked(dir.UpdatedAt)
	}
	cloned := cloneDirectory(dir)
	m.byID[cloned.ID] = cloned
	m.byPath[cloned.Path] = cloned.ID
	return cloneDirectory(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Directory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "directory", Key: id.String()}
	}
	return cloneDirectory(record), nil
}

func (m *memoryRepository) GetByPath(_ context.Context, path string) (*Directory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byPath[path]
	if !ok {
		return nil, &NotFoundError{Resource: "directory", Key: path}
	}
	return cloneDirectory(m.byID[id]), nil
}

func (m *memoryRepository) GetActive(_ context.Context) (*Directory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.IsActive {
			return cloneDirectory(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "directory", Key: "active"}
}

func (m *memoryRepository) List(_ context.Context) ([]*Directory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Directory, 0, len(m.byID))
	for _, record := range m.byID {
		out = append(out, cloneDirectory(record))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}

func (m *memoryRepository) ListSummaries(ctx context.Context) ([]*Summary, error) {
	dirs, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Summary, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, &Summary{Directory: dir})
	}
	return out, nil
}

func (m *memoryRepository) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID), nil
}

func (m *memoryRepository) Activate(_ context.Context, id uuid.UUID, at time.Time) (*Directory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "directory", Key: id.String()}
	}
	m.deactivateAllLocked(at)
	record.IsActive = true
	record.UpdatedAt = at
	return cloneDirectory(record), nil
}

func (m *memoryRepository) Deactivate(_ context.Context, id uuid.UUID, at time.Time) (*Directory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "directory", Key: id.String()}
	}
	record.IsActive = false
	record.UpdatedAt = at
	return cloneDirectory(record), nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID, at time.Time) (*Directory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "directory", Key: id.String()}
	}
	delete(m.byID, id)
	delete(m.byPath, record.Path)

	if !record.IsActive {
		return nil, nil
	}

	var oldest *Directory
	for _, candidate := range m.byID {
		if oldest == nil ||
			candidate.CreatedAt.Before(oldest.CreatedAt) ||
			(candidate.CreatedAt.Equal(oldest.CreatedAt) && candidate.Path < oldest.Path) {
			oldest = candidate
		}
	}
	if oldest == nil {
		return nil, nil
	}
	oldest.IsActive = true
	oldest.UpdatedAt = at
	return cloneDirectory(oldest), nil
}

func (m *memoryRepository) deactivateAllLocked(at time.Time) {
	for _, record := range m.byID {
		if record.IsActive {
			record.IsActive = false
			record.UpdatedAt = at
		}
	}
}

func cloneDirectory(dir *Directory) *Directory {
	if dir == nil {
		return nil
	}
	cloned := *dir
	return &cloned
}
