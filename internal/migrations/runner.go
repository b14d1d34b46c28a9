package migrations

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/goliatone/go-mdshelf/internal/logging"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

var (
	ErrDatabaseRequired   = errors.New("migrations: database required")
	ErrMigrationsRequired = errors.New("migrations: migration files required")
)

// Status describes one known migration.
type Status struct {
	Name    string `json:"name"`
	Applied bool   `json:"applied"`
	GroupID int64  `json:"groupId,omitempty"`
}

// Runner applies the embedded SQL migrations with bun/migrate.
type Runner struct {
	migrator *migrate.Migrator
	logger   interfaces.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for migration events.
func WithLogger(logger interfaces.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner discovers "<version>_<name>.up.sql" and ".down.sql" files at the
// root of files.
func NewRunner(db *bun.DB, files fs.FS, opts ...RunnerOption) (*Runner, error) {
	if db == nil {
		return nil, ErrDatabaseRequired
	}
	if files == nil {
		return nil, ErrMigrationsRequired
	}

	set := migrate.NewMigrations()
	if err := set.Discover(files); err != nil {
		return nil, fmt.Errorf("migrations: discover: %w", err)
	}

	r := &Runner{
		migrator: migrate.NewMigrator(db, set),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Migrate applies every pending migration and returns the applied names.
func (r *Runner) Migrate(ctx context.Context) ([]string, error) {
	if err := r.migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("migrations: init: %w", err)
	}
	if err := r.migrator.Lock(ctx); err != nil {
		return nil, fmt.Errorf("migrations: lock: %w", err)
	}
	defer func() {
		if err := r.migrator.Unlock(ctx); err != nil {
			r.logger.Warn("migrations.unlock.failed", "error", err)
		}
	}()

	group, err := r.migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations: migrate: %w", err)
	}
	if group.IsZero() {
		r.logger.Debug("migrations.up_to_date")
		return []string{}, nil
	}

	names := make([]string, 0, len(group.Migrations))
	for _, m := range group.Migrations {
		names = append(names, m.Name)
	}
	r.logger.Info("migrations.applied", "group", group.ID, "count", len(names))
	return names, nil
}

// Rollback reverts the most recently applied group and returns its names.
func (r *Runner) Rollback(ctx context.Context) ([]string, error) {
	if err := r.migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("migrations: init: %w", err)
	}
	if err := r.migrator.Lock(ctx); err != nil {
		return nil, fmt.Errorf("migrations: lock: %w", err)
	}
	defer func() {
		if err := r.migrator.Unlock(ctx); err != nil {
			r.logger.Warn("migrations.unlock.failed", "error", err)
		}
	}()

	group, err := r.migrator.Rollback(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations: rollback: %w", err)
	}
	if group.IsZero() {
		return []string{}, nil
	}

	names := make([]string, 0, len(group.Migrations))
	for _, m := range group.Migrations {
		names = append(names, m.Name)
	}
	r.logger.Info("migrations.rolled_back", "group", group.ID, "count", len(names))
	return names, nil
}

// Status lists every known migration in version order.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	if err := r.migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("migrations: init: %w", err)
	}
	ms, err := r.migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations: status: %w", err)
	}

	out := make([]Status, 0, len(ms))
	for _, m := range ms {
		out = append(out, Status{Name: m.Name, Applied: m.IsApplied(), GroupID: m.GroupID})
	}
	return out, nil
}
