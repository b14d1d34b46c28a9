package mdshelf

import (
	"context"
	"net/http"

	"github.com/goliatone/go-mdshelf/internal/di"
	"github.com/goliatone/go-mdshelf/internal/directories"
	"github.com/goliatone/go-mdshelf/internal/library"
	"github.com/goliatone/go-mdshelf/internal/migrations"
	"github.com/goliatone/go-mdshelf/internal/progress"
	"github.com/goliatone/go-mdshelf/internal/tree"
)

// LibraryService exports the scan, read and render contract.
type LibraryService = library.Service

// DirectoryService exports the directory registry contract.
type DirectoryService = directories.Service

// ProgressService exports the read status and bookmark contract.
type ProgressService = progress.Service

// Node exports the tree node returned by scans.
type Node = tree.Node

// MigrationStatus exports the migration status row.
type MigrationStatus = migrations.Status

// Module is the top level runtime of the learning library.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg. The embedded SQL migrations are always
// available to Migrate; options may override storage, logging or metrics.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	opts = append([]di.Option{di.WithMigrations(MigrationFiles())}, opts...)
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Library returns the library service.
func (m *Module) Library() LibraryService {
	return m.container.LibraryService()
}

// Directories returns the directory registry.
func (m *Module) Directories() DirectoryService {
	return m.container.DirectoryService()
}

// Progress returns the progress service.
func (m *Module) Progress() ProgressService {
	return m.container.ProgressService()
}

// Commands returns the command handlers.
func (m *Module) Commands() *di.Commands {
	return m.container.Commands()
}

// Migrate applies pending schema migrations.
func (m *Module) Migrate(ctx context.Context) ([]string, error) {
	return m.container.Migrate(ctx)
}

// Rollback reverts the most recently applied migration group.
func (m *Module) Rollback(ctx context.Context) ([]string, error) {
	runner, err := m.container.Migrator()
	if err != nil {
		return nil, err
	}
	return runner.Rollback(ctx)
}

// MigrationStatus reports every known migration.
func (m *Module) MigrationStatus(ctx context.Context) ([]MigrationStatus, error) {
	runner, err := m.container.Migrator()
	if err != nil {
		return nil, err
	}
	return runner.Status(ctx)
}

// Bootstrap runs auto migration and built-in directory sync.
func (m *Module) Bootstrap(ctx context.Context) error {
	return m.container.Bootstrap(ctx)
}

// HTTPHandler returns the JSON API handler.
func (m *Module) HTTPHandler() (http.Handler, error) {
	return m.container.HTTPHandler()
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
