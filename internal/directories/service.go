package directories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-mdshelf/internal/identity"
	"github.com/goliatone/go-mdshelf/internal/logging"
	"github.com/goliatone/go-mdshelf/internal/markdown"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

// Service describes the directory registry.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Directory, error)
	List(ctx context.Context) (*Listing, error)
	Get(ctx context.Context, id uuid.UUID) (*Directory, error)
	// Active returns the active directory or ErrNoActiveDirectory.
	Active(ctx context.Context) (*Directory, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Directory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SyncBuiltIns registers every built-in directory not yet known and
	// returns the ones it created.
	SyncBuiltIns(ctx context.Context) ([]*Directory, error)
	IsBuiltInPath(path string) bool
}

var (
	ErrDirectoryRepositoryRequired = errors.New("directories: repository required")
	ErrDirectoryNameRequired       = errors.New("directories: name is required")
	ErrDirectoryPathRequired       = errors.New("directories: path is required")
	ErrDirectoryPathInvalid        = errors.New("directories: path is invalid")
	ErrDirectoryPathExists         = errors.New("directories: a directory with this path already exists")
	ErrDirectoryNotFound           = errors.New("directories: directory not found")
	ErrNoActiveDirectory           = errors.New("directories: no active directory")
)

// IDDeriver produces directory IDs from cleaned absolute paths.
type IDDeriver func(path string) uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithIDDeriver overrides directory ID derivation.
func WithIDDeriver(deriver IDDeriver) ServiceOption {
	return func(s *service) {
		if deriver != nil {
			s.id = deriver
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithBuiltInRoot sets the folder whose sub-directories are registered by
// SyncBuiltIns.
func WithBuiltInRoot(root string) ServiceOption {
	return func(s *service) {
		s.builtInRoot = strings.TrimSpace(root)
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo        DirectoryRepository
	id          IDDeriver
	now         func() time.Time
	builtInRoot string
	logger      interfaces.Logger
}

// NewService constructs a directory service instance.
func NewService(repo DirectoryRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrDirectoryRepositoryRequired)
	}

	s := &service{
		repo:   repo,
		id:     identity.DirectoryUUID,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Directory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrDirectoryNameRequired
	}
	path, err := normalizePath(input.Path)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByPath(ctx, path); err == nil && existing != nil {
		return nil, ErrDirectoryPathExists
	} else if err != nil {
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &Directory{
		ID:        s.id(path),
		Name:      name,
		Path:      path,
		IsActive:  count == 0 && !input.BuiltIn,
		IsBuiltIn: input.BuiltIn,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	logging.WithDirectory(s.logger, created.ID.String(), created.Path).
		Info("directories.registered", "active", created.IsActive, "built_in", created.IsBuiltIn)
	return cloneDirectory(created), nil
}

func (s *service) List(ctx context.Context) (*Listing, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	listing := &Listing{Directories: summaries}
	for _, summary := range summaries {
		if summary.IsActive {
			listing.Active = cloneDirectory(summary.Directory)
			break
		}
	}
	return listing, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Directory, error) {
	if id == uuid.Nil {
		return nil, ErrDirectoryNotFound
	}
	dir, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, ErrDirectoryNotFound)
	}
	return cloneDirectory(dir), nil
}

func (s *service) Active(ctx context.Context) (*Directory, error) {
	dir, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, translateRepoError(err, ErrNoActiveDirectory)
	}
	return cloneDirectory(dir), nil
}

func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Directory, error) {
	if id == uuid.Nil {
		return nil, ErrDirectoryNotFound
	}

	now := s.now().UTC()
	var (
		dir *Directory
		err error
	)
	if active {
		dir, err = s.repo.Activate(ctx, id, now)
	} else {
		dir, err = s.repo.Deactivate(ctx, id, now)
	}
	if err != nil {
		return nil, translateRepoError(err, ErrDirectoryNotFound)
	}

	logging.WithDirectory(s.logger, dir.ID.String(), dir.Path).Info("directories.active.updated", "active", active)
	return cloneDirectory(dir), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrDirectoryNotFound
	}

	reactivated, err := s.repo.Delete(ctx, id, s.now().UTC())
	if err != nil {
		return translateRepoError(err, ErrDirectoryNotFound)
	}

	logger := logging.WithDirectory(s.logger, id.String(), "")
	if reactivated != nil {
		logger.Info("directories.deleted", "reactivated", reactivated.ID.String())
	} else {
		logger.Info("directories.deleted")
	}
	return nil
}

func (s *service) SyncBuiltIns(ctx context.Context) ([]*Directory, error) {
	if s.builtInRoot == "" {
		return []*Directory{}, nil
	}

	root, err := normalizePath(s.builtInRoot)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("directories.builtin.missing", "root", root)
			return []*Directory{}, nil
		}
		return nil, err
	}

	created := []*Directory{}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		dir, err := s.Register(ctx, RegisterInput{
			Name:    FormatName(name),
			Path:    filepath.Join(root, name),
			BuiltIn: true,
		})
		if errors.Is(err, ErrDirectoryPathExists) {
			continue
		}
		if err != nil {
			return created, err
		}
		created = append(created, dir)
	}

	if len(created) > 0 {
		s.logger.Info("directories.builtin.synced", "registered", len(created))
	}
	return created, nil
}

func (s *service) IsBuiltInPath(path string) bool {
	if s.builtInRoot == "" || strings.TrimSpace(path) == "" {
		return false
	}
	root, err := normalizePath(s.builtInRoot)
	if err != nil {
		return false
	}
	target, err := normalizePath(path)
	if err != nil {
		return false
	}
	return markdown.IsWithin(root, target)
}

// FormatName derives a display name from a folder name by splitting on "-"
// and upper casing the first letter of each word ("ai-ml-dl" -> "Ai Ml Dl").
func FormatName(folder string) string {
	words := strings.Split(folder, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
	return strings.Join(words, " ")
}

func normalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", ErrDirectoryPathRequired
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", ErrDirectoryPathInvalid
	}
	return abs, nil
}

func translateRepoError(err error, fallback error) error {
	if err == nil {
		return nil
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return fallback
	}
	return err
}
