package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/goliatone/go-mdshelf/internal/logging"
	"github.com/goliatone/go-mdshelf/internal/markdown"
	"github.com/goliatone/go-mdshelf/internal/metrics"
	"github.com/goliatone/go-mdshelf/internal/tree"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

// Service exposes the read-only operations over markdown directories.
type Service interface {
	Scan(ctx context.Context, path string) (*ScanResult, error)
	Read(ctx context.Context, basePath, filePath string) (*FileResult, error)
	Render(ctx context.Context, basePath, filePath string) (*RenderedFile, error)
}

// ScanResult is the tree of a scanned directory.
type ScanResult struct {
	Tree     []*tree.Node `json:"tree"`
	BasePath string       `json:"basePath"`
}

// FileResult is a loaded markdown file plus a checksum of its raw bytes.
type FileResult struct {
	*markdown.File
	Checksum string `json:"-"`
}

// ETag returns the checksum as a strong HTTP entity tag.
func (f *FileResult) ETag() string {
	if f == nil || f.Checksum == "" {
		return ""
	}
	return `"` + f.Checksum + `"`
}

// RenderedFile is a FileResult with the HTML rendering of its body.
type RenderedFile struct {
	*FileResult
	HTML string `json:"html"`
}

var ErrPathRequired = errors.New("library: path is required")

// Scanner produces a directory tree.
type Scanner interface {
	Scan(ctx context.Context, root string) ([]*tree.Node, error)
}

// Reader loads a file relative to a base path.
type Reader interface {
	Read(ctx context.Context, basePath, filePath string) (*markdown.File, error)
}

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithLogger sets the logger used for operation events.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m interfaces.LibraryMetrics) ServiceOption {
	return func(s *service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithRenderer overrides the markdown renderer.
func WithRenderer(renderer interfaces.MarkdownRenderer) ServiceOption {
	return func(s *service) {
		if renderer != nil {
			s.renderer = renderer
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

type service struct {
	scanner  Scanner
	reader   Reader
	renderer interfaces.MarkdownRenderer
	logger   interfaces.Logger
	metrics  interfaces.LibraryMetrics
	now      func() time.Time
}

// NewService wires a library service. Nil scanner or reader fall back to the
// defaults of the tree and markdown packages.
func NewService(scanner Scanner, reader Reader, opts ...ServiceOption) Service {
	if scanner == nil {
		scanner = tree.NewScanner(tree.DefaultOptions())
	}
	if reader == nil {
		reader = markdown.NewReader()
	}

	s := &service{
		scanner:  scanner,
		reader:   reader,
		renderer: markdown.NewGoldmarkRenderer(interfaces.RenderOptions{}),
		logger:   logging.NoOp(),
		metrics:  metrics.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Scan(ctx context.Context, path string) (*ScanResult, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}

	logger := logging.WithDirectory(logging.FromContext(ctx, s.logger), "", path)
	started := s.now()

	nodes, err := s.scanner.Scan(ctx, path)
	elapsed := s.now().Sub(started)
	if err != nil {
		s.metrics.ObserveScan(metrics.ResultLabel(err), elapsed, 0, 0)
		logger.Warn("library.scan.failed", "error", err)
		return nil, err
	}

	folders, files := tree.Counts(nodes)
	s.metrics.ObserveScan(metrics.ResultOK, elapsed, folders, files)
	logger.Debug("library.scan.completed", "folders", folders, "files", files, "duration", elapsed)

	return &ScanResult{Tree: nodes, BasePath: path}, nil
}

func (s *service) Read(ctx context.Context, basePath, filePath string) (*FileResult, error) {
	result, err := s.read(ctx, basePath, filePath)
	s.metrics.IncrementRead(metrics.ResultLabel(err))
	return result, err
}

func (s *service) read(ctx context.Context, basePath, filePath string) (*FileResult, error) {
	if strings.TrimSpace(basePath) == "" || strings.TrimSpace(filePath) == "" {
		return nil, ErrPathRequired
	}

	logger := logging.WithFile(logging.FromContext(ctx, s.logger), basePath, filePath)

	file, err := s.reader.Read(ctx, basePath, filePath)
	if err != nil {
		logger.Warn("library.read.failed", "error", err)
		return nil, err
	}

	logger.Debug("library.read.completed", "bytes", len(file.Source))
	return &FileResult{File: file, Checksum: Checksum(file.Source)}, nil
}

func (s *service) Render(ctx context.Context, basePath, filePath string) (*RenderedFile, error) {
	file, err := s.read(ctx, basePath, filePath)
	if err != nil {
		s.metrics.IncrementRender(metrics.ResultLabel(err))
		return nil, err
	}

	html, err := s.renderer.Render([]byte(file.Content))
	if err != nil {
		s.metrics.IncrementRender(metrics.ResultError)
		logging.WithFile(s.logger, basePath, filePath).Error("library.render.failed", "error", err)
		return nil, fmt.Errorf("library: render %s: %w", filePath, err)
	}

	s.metrics.IncrementRender(metrics.ResultOK)
	return &RenderedFile{FileResult: file, HTML: string(html)}, nil
}

// Checksum returns the hex encoded xxh3 hash of data.
func Checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(data))
}
