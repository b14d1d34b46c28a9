package progress

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunReadStatusRepository implements ReadStatusRepository on bun.
type BunReadStatusRepository struct {
	db   *bun.DB
	repo repository.Repository[*ReadStatus]
}

// NewBunReadStatusRepository creates a read status repository.
func NewBunReadStatusRepository(db *bun.DB) *BunReadStatusRepository {
	return &BunReadStatusRepository{db: db, repo: NewReadStatusRepository(db)}
}

// Upsert inserts the row or updates the completion flag of the existing
// row for the same (directory, file path) pair.
func (r *BunReadStatusRepository) Upsert(ctx context.Context, status *ReadStatus) (*ReadStatus, error) {
	if _, err := r.db.NewInsert().
		Model(status).
		On("CONFLICT (directory_id, file_path) DO UPDATE").
		Set("is_completed = EXCLUDED.is_completed").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("upsert read status: %w", err)
	}
	return r.Get(ctx, status.DirectoryID, status.FilePath)
}

func (r *BunReadStatusRepository) Get(ctx context.Context, directoryID uuid.UUID, filePath string) (*ReadStatus, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.directory_id = ?", directoryID).
				Where("?TableAlias.file_path = ?", filePath)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "read status", pairKey(directoryID, filePath))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "read status", Key: pairKey(directoryID, filePath)}
	}
	return records[0], nil
}

func (r *BunReadStatusRepository) ListByDirectory(ctx context.Context, directoryID uuid.UUID) ([]*ReadStatus, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.directory_id = ?", directoryID).
			OrderExpr("?TableAlias.file_path ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "read status", directoryID.String())
	}
	return records, nil
}

func (r *BunReadStatusRepository) CountCompleted(ctx context.Context, directoryID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().
		Model((*ReadStatus)(nil)).
		Where("?TableAlias.directory_id = ?", directoryID).
		Where("?TableAlias.is_completed = TRUE").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count read statuses: %w", err)
	}
	return count, nil
}

func (r *BunReadStatusRepository) DeleteByDirectory(ctx context.Context, directoryID uuid.UUID) error {
	return deleteByDirectory(ctx, r.db, (*ReadStatus)(nil), directoryID)
}

// BunBookmarkRepository implements BookmarkRepository on bun.
type BunBookmarkRepository struct {
	db   *bun.DB
	repo repository.Repository[*Bookmark]
}

// NewBunBookmarkRepository creates a bookmark repository.
func NewBunBookmarkRepository(db *bun.DB) *BunBookmarkRepository {
	return &BunBookmarkRepository{db: db, repo: NewBookmarkRepository(db)}
}

func (r *BunBookmarkRepository) Insert(ctx context.Context, bookmark *Bookmark) (*Bookmark, error) {
	if _, err := r.db.NewInsert().
		Model(bookmark).
		On("CONFLICT (directory_id, file_path) DO NOTHING").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}
	return r.Get(ctx, bookmark.DirectoryID, bookmark.FilePath)
}

func (r *BunBookmarkRepository) Get(ctx context.Context, directoryID uuid.UUID, filePath string) (*Bookmark, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.directory_id = ?", directoryID).
				Where("?TableAlias.file_path = ?", filePath)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "bookmark", pairKey(directoryID, filePath))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "bookmark", Key: pairKey(directoryID, filePath)}
	}
	return records[0], nil
}

func (r *BunBookmarkRepository) Delete(ctx context.Context, directoryID uuid.UUID, filePath string) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*Bookmark)(nil)).
		Where("directory_id = ?", directoryID).
		Where("file_path = ?", filePath).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete bookmark: rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *BunBookmarkRepository) ListByDirectory(ctx context.Context, directoryID uuid.UUID) ([]*Bookmark, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.directory_id = ?", directoryID).
			OrderExpr("?TableAlias.file_path ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "bookmark", directoryID.String())
	}
	return records, nil
}

func (r *BunBookmarkRepository) Count(ctx context.Context, directoryID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().
		Model((*Bookmark)(nil)).
		Where("?TableAlias.directory_id = ?", directoryID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return count, nil
}

func (r *BunBookmarkRepository) DeleteByDirectory(ctx context.Context, directoryID uuid.UUID) error {
	return deleteByDirectory(ctx, r.db, (*Bookmark)(nil), directoryID)
}

// DeleteDirectoryRows removes every read status and bookmark of a directory
// using db, which may be a transaction.
func DeleteDirectoryRows(ctx context.Context, db bun.IDB, directoryID uuid.UUID) error {
	if err := deleteByDirectory(ctx, db, (*ReadStatus)(nil), directoryID); err != nil {
		return err
	}
	return deleteByDirectory(ctx, db, (*Bookmark)(nil), directoryID)
}

func deleteByDirectory(ctx context.Context, db bun.IDB, model any, directoryID uuid.UUID) error {
	if _, err := db.NewDelete().
		Model(model).
		Where("directory_id = ?", directoryID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete %T rows: %w", model, err)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
