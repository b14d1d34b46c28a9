package directories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-mdshelf/internal/progress"
)

// BunDirectoryRepository implements DirectoryRepository on bun. Activation
// and deletion run inside transactions.
type BunDirectoryRepository struct {
	db   *bun.DB
	repo repository.Repository[*Directory]
}

// NewBunDirectoryRepository creates a directory repository.
func NewBunDirectoryRepository(db *bun.DB) *BunDirectoryRepository {
	return &BunDirectoryRepository{db: db, repo: NewDirectoryRepository(db)}
}

func (r *BunDirectoryRepository) Create(ctx context.Context, dir *Directory) (*Directory, error) {
	if !dir.IsActive {
		record, err := r.repo.Create(ctx, dir)
		if err != nil {
			return nil, err
		}
		return record, nil
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := deactivateAll(ctx, tx, dir.UpdatedAt); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(dir).Exec(ctx); err != nil {
			return fmt.Errorf("insert directory: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, dir.ID)
}

func (r *BunDirectoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Directory, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "directory", id.String())
	}
	return record, nil
}

func (r *BunDirectoryRepository) GetByPath(ctx context.Context, path string) (*Directory, error) {
	record, err := r.repo.GetByIdentifier(ctx, path)
	if err != nil {
		return nil, mapRepositoryError(err, "directory", path)
	}
	return record, nil
}

func (r *BunDirectoryRepository) GetActive(ctx context.Context) (*Directory, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.is_active = TRUE")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "directory", Key: "active"}
	}
	return records[0], nil
}

func (r *BunDirectoryRepository) List(ctx context.Context) ([]*Directory, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.created_at DESC").OrderExpr("?TableAlias.path ASC")
	}))
	return records, err
}

type summaryRow struct {
	Directory `bun:",extend"`

	CompletedCount int `bun:"completed_count,scanonly"`
	BookmarkCount  int `bun:"bookmark_count,scanonly"`
}

func (r *BunDirectoryRepository) ListSummaries(ctx context.Context) ([]*Summary, error) {
	completed := r.db.NewSelect().
		Model((*progress.ReadStatus)(nil)).
		ColumnExpr("COUNT(*)").
		Where("rs.directory_id = d.id").
		Where("rs.is_completed = TRUE")
	bookmarks := r.db.NewSelect().
		Model((*progress.Bookmark)(nil)).
		ColumnExpr("COUNT(*)").
		Where("bm.directory_id = d.id")

	var rows []summaryRow
	if err := r.db.NewSelect().
		Model(&rows).
		ColumnExpr("d.*").
		ColumnExpr("(?) AS completed_count", completed).
		ColumnExpr("(?) AS bookmark_count", bookmarks).
		OrderExpr("d.created_at DESC").
		OrderExpr("d.path ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("list directory summaries: %w", err)
	}

	out := make([]*Summary, 0, len(rows))
	for i := range rows {
		dir := rows[i].Directory
		out = append(out, &Summary{
			Directory:      &dir,
			CompletedCount: rows[i].CompletedCount,
			BookmarkCount:  rows[i].BookmarkCount,
		})
	}
	return out, nil
}

func (r *BunDirectoryRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*Directory)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count directories: %w", err)
	}
	return count, nil
}

func (r *BunDirectoryRepository) Activate(ctx context.Context, id uuid.UUID, at time.Time) (*Directory, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := requireDirectory(ctx, tx, id); err != nil {
			return err
		}
		if err := deactivateAll(ctx, tx, at); err != nil {
			return err
		}
		return setActive(ctx, tx, id, true, at)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *BunDirectoryRepository) Deactivate(ctx context.Context, id uuid.UUID, at time.Time) (*Directory, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := requireDirectory(ctx, tx, id); err != nil {
			return err
		}
		return setActive(ctx, tx, id, false, at)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *BunDirectoryRepository) Delete(ctx context.Context, id uuid.UUID, at time.Time) (*Directory, error) {
	var reactivated uuid.UUID

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing := &Directory{}
		if err := tx.NewSelect().Model(existing).Where("?TableAlias.id = ?", id).Limit(1).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &NotFoundError{Resource: "directory", Key: id.String()}
			}
			return fmt.Errorf("load directory: %w", err)
		}

		if err := progress.DeleteDirectoryRows(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*Directory)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete directory: %w", err)
		}

		if !existing.IsActive {
			return nil
		}

		oldest := &Directory{}
		err := tx.NewSelect().
			Model(oldest).
			OrderExpr("?TableAlias.created_at ASC").
			OrderExpr("?TableAlias.path ASC").
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load oldest directory: %w", err)
		}
		reactivated = oldest.ID
		return setActive(ctx, tx, oldest.ID, true, at)
	})
	if err != nil {
		return nil, err
	}
	if reactivated == uuid.Nil {
		return nil, nil
	}
	return r.GetByID(ctx, reactivated)
}

func requireDirectory(ctx context.Context, tx bun.Tx, id uuid.UUID) error {
	exists, err := tx.NewSelect().Model((*Directory)(nil)).Where("?TableAlias.id = ?", id).Exists(ctx)
	if err != nil {
		return fmt.Errorf("lookup directory: %w", err)
	}
	if !exists {
		return &NotFoundError{Resource: "directory", Key: id.String()}
	}
	return nil
}

func deactivateAll(ctx context.Context, tx bun.Tx, at time.Time) error {
	if _, err := tx.NewUpdate().
		Model((*Directory)(nil)).
		Set("is_active = ?", false).
		Set("updated_at = ?", at).
		Where("is_active = ?", true).
		Exec(ctx); err != nil {
		return fmt.Errorf("deactivate directories: %w", err)
	}
	return nil
}

func setActive(ctx context.Context, tx bun.Tx, id uuid.UUID, active bool, at time.Time) error {
	if _, err := tx.NewUpdate().
		Model((*Directory)(nil)).
		Set("is_active = ?", active).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Exec(ctx); err != nil {
		return fmt.Errorf("update directory: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
