package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"

	directoriescmd "github.com/goliatone/go-mdshelf/internal/commands/directories"
	progresscmd "github.com/goliatone/go-mdshelf/internal/commands/progress"
	"github.com/goliatone/go-mdshelf/internal/directories"
	httpapi "github.com/goliatone/go-mdshelf/internal/http"
	"github.com/goliatone/go-mdshelf/internal/library"
	"github.com/goliatone/go-mdshelf/internal/logging"
	"github.com/goliatone/go-mdshelf/internal/logging/gologger"
	"github.com/goliatone/go-mdshelf/internal/markdown"
	"github.com/goliatone/go-mdshelf/internal/metrics"
	"github.com/goliatone/go-mdshelf/internal/migrations"
	"github.com/goliatone/go-mdshelf/internal/progress"
	"github.com/goliatone/go-mdshelf/internal/runtimeconfig"
	"github.com/goliatone/go-mdshelf/internal/tree"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

// ErrMigrationsUnavailable is returned by Migrate when the container runs on
// in-memory repositories or no migration files were supplied.
var ErrMigrationsUnavailable = errors.New("di: migrations unavailable")

// Commands groups the command handlers built by the container.
type Commands struct {
	RegisterDirectory      *directoriescmd.RegisterDirectoryHandler
	ActivateDirectory      *directoriescmd.ActivateDirectoryHandler
	DeleteDirectory        *directoriescmd.DeleteDirectoryHandler
	SyncBuiltInDirectories *directoriescmd.SyncBuiltInDirectoriesHandler
	SetReadStatus          *progresscmd.SetReadStatusHandler
	SetBookmark            *progresscmd.SetBookmarkHandler
}

// Container wires module dependencies from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	memoryStorage  bool

	bunDB      *bun.DB
	ownsDB     bool
	migrations fs.FS

	registry *prometheus.Registry
	recorder *metrics.Recorder

	directoryRepo  directories.DirectoryRepository
	readStatusRepo progress.ReadStatusRepository
	bookmarkRepo   progress.BookmarkRepository

	librarySvc   library.Service
	directorySvc directories.Service
	progressSvc  progress.Service
	commands     *Commands
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithMemoryStorage backs directories and progress with in-memory
// repositories instead of a database.
func WithMemoryStorage() Option {
	return func(c *Container) {
		c.memoryStorage = true
	}
}

// WithMigrations sets the SQL migration files applied by Migrate.
func WithMigrations(files fs.FS) Option {
	return func(c *Container) {
		c.migrations = files
	}
}

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMetricsRegistry overrides the prometheus registry used when metrics
// are enabled.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureMetrics()
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	c.configureServices()
	c.configureCommands()

	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil || !c.Config.Logging.Enabled {
		return nil
	}
	provider, err := gologger.NewProvider(c.Config.Logging)
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureMetrics() {
	if !c.Config.Metrics.Enabled {
		return
	}
	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	c.recorder = metrics.New(c.registry)
}

func (c *Container) configureRepositories() error {
	if c.memoryStorage {
		store := progress.NewMemoryStore()
		c.directoryRepo = directories.NewMemoryRepository()
		c.readStatusRepo = store.ReadStatuses()
		c.bookmarkRepo = store.Bookmarks()
		return nil
	}

	if c.bunDB == nil {
		db, err := OpenDatabase(c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	c.directoryRepo = directories.NewBunDirectoryRepository(c.bunDB)
	c.readStatusRepo = progress.NewBunReadStatusRepository(c.bunDB)
	c.bookmarkRepo = progress.NewBunBookmarkRepository(c.bunDB)
	return nil
}

func (c *Container) configureServices() {
	libCfg := c.Config.Library
	scanner := tree.NewScanner(tree.Options{
		SkipDirs:         libCfg.SkipDirs,
		Extension:        libCfg.Extension,
		CaseSensitiveExt: libCfg.CaseSensitiveExt,
		Locale:           libCfg.CollationLocale,
		MaxDepth:         libCfg.MaxDepth,
		FollowSymlinks:   libCfg.FollowSymlinks,
	})

	mdCfg := c.Config.Markdown
	renderer := markdown.NewGoldmarkRenderer(interfaces.RenderOptions{
		Extensions:     mdCfg.Extensions,
		HardWraps:      mdCfg.HardWraps,
		SafeMode:       mdCfg.SafeMode,
		Highlight:      mdCfg.Highlight,
		HighlightStyle: mdCfg.HighlightStyle,
	})

	libOpts := []library.ServiceOption{
		library.WithLogger(logging.LibraryLogger(c.loggerProvider)),
		library.WithRenderer(renderer),
	}
	if c.recorder != nil {
		libOpts = append(libOpts, library.WithMetrics(c.recorder))
	}
	c.librarySvc = library.NewService(scanner, markdown.NewReader(), libOpts...)

	c.directorySvc = directories.NewService(c.directoryRepo,
		directories.WithBuiltInRoot(libCfg.BuiltInDir),
		directories.WithLogger(logging.DirectoriesLogger(c.loggerProvider)),
	)

	dirSvc := c.directorySvc
	c.progressSvc = progress.NewService(c.readStatusRepo, c.bookmarkRepo,
		progress.WithLogger(logging.ProgressLogger(c.loggerProvider)),
		progress.WithDirectoryLookup(func(ctx context.Context, id uuid.UUID) error {
			_, err := dirSvc.Get(ctx, id)
			return err
		}),
	)
}

func (c *Container) configureCommands() {
	dirLogger := logging.CommandLogger(c.loggerProvider, "directories")
	progressLogger := logging.CommandLogger(c.loggerProvider, "progress")

	c.commands = &Commands{
		RegisterDirectory:      directoriescmd.NewRegisterDirectoryHandler(c.directorySvc, dirLogger),
		ActivateDirectory:      directoriescmd.NewActivateDirectoryHandler(c.directorySvc, dirLogger),
		DeleteDirectory:        directoriescmd.NewDeleteDirectoryHandler(c.directorySvc, dirLogger),
		SyncBuiltInDirectories: directoriescmd.NewSyncBuiltInDirectoriesHandler(c.directorySvc, dirLogger),
		SetReadStatus:          progresscmd.NewSetReadStatusHandler(c.progressSvc, progressLogger),
		SetBookmark:            progresscmd.NewSetBookmarkHandler(c.progressSvc, progressLogger),
	}
}

// Migrator returns a migration runner over the container database.
func (c *Container) Migrator() (*migrations.Runner, error) {
	if c.bunDB == nil || c.migrations == nil {
		return nil, ErrMigrationsUnavailable
	}
	return migrations.NewRunner(c.bunDB, c.migrations,
		migrations.WithLogger(logging.ModuleLogger(c.loggerProvider, "mdshelf.migrations")))
}

// Migrate applies pending migrations and returns their names.
func (c *Container) Migrate(ctx context.Context) ([]string, error) {
	runner, err := c.Migrator()
	if err != nil {
		return nil, err
	}
	return runner.Migrate(ctx)
}

// Bootstrap runs the startup tasks enabled by the configuration: migrations
// when Storage.AutoMigrate is set, then built-in directory sync.
func (c *Container) Bootstrap(ctx context.Context) error {
	if c.Config.Storage.AutoMigrate && !c.memoryStorage {
		if _, err := c.Migrate(ctx); err != nil && !errors.Is(err, ErrMigrationsUnavailable) {
			return fmt.Errorf("di: migrate: %w", err)
		}
	}
	return c.commands.SyncBuiltInDirectories.Execute(ctx, directoriescmd.SyncBuiltInDirectoriesCommand{})
}

// HTTPHandler builds the JSON API handler.
func (c *Container) HTTPHandler() (http.Handler, error) {
	opts := []httpapi.Option{
		httpapi.WithBasePath(c.Config.HTTP.BasePath),
		httpapi.WithLibraryService(c.librarySvc),
		httpapi.WithDirectoryService(c.directorySvc),
		httpapi.WithProgressService(c.progressSvc),
		httpapi.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		httpapi.WithDirectoryCommands(httpapi.DirectoryCommands{
			Register: c.commands.RegisterDirectory,
			Activate: c.commands.ActivateDirectory,
			Delete:   c.commands.DeleteDirectory,
		}),
		httpapi.WithProgressCommands(httpapi.ProgressCommands{
			SetReadStatus: c.commands.SetReadStatus,
			SetBookmark:   c.commands.SetBookmark,
		}),
	}
	if c.recorder != nil {
		opts = append(opts, httpapi.WithMetrics(c.recorder, c.registry, c.Config.Metrics.Path))
	}
	return httpapi.NewAPI(opts...).Handler()
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c.ownsDB && c.bunDB != nil {
		return c.bunDB.Close()
	}
	return nil
}

// DB exposes the bun handle, nil with in-memory storage.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// LoggerProvider exposes the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MetricsRegistry exposes the prometheus registry, nil when metrics are off.
func (c *Container) MetricsRegistry() *prometheus.Registry {
	return c.registry
}

// LibraryService returns the scan, read and render service.
func (c *Container) LibraryService() library.Service {
	return c.librarySvc
}

// DirectoryService returns the directory registry.
func (c *Container) DirectoryService() directories.Service {
	return c.directorySvc
}

// ProgressService returns the read status and bookmark service.
func (c *Container) ProgressService() progress.Service {
	return c.progressSvc
}

// Commands returns the command handlers.
func (c *Container) Commands() *Commands {
	return c.commands
}
