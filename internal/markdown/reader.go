package markdown

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-mdshelf/internal/domain"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

const readOperation = "read"

// ErrBasePathRequired is returned by Read when no base directory is given.
var ErrBasePathRequired = errors.New("markdown: base path is required")

// File is a markdown file loaded from inside a base directory.
type File struct {
	// Content is the raw body text with the frontmatter block removed.
	Content string `json:"content"`
	// FrontMatter holds the decoded metadata block, empty when absent.
	FrontMatter interfaces.FrontMatter `json:"frontmatter"`
	// FilePath echoes the relative path the caller asked for.
	FilePath string `json:"filePath"`
	// FileName is the base name of FilePath, extension included.
	FileName string `json:"fileName"`

	Source       []byte    `json:"-"`
	LastModified time.Time `json:"-"`
}

// Reader loads markdown files relative to a caller supplied base path.
// It never writes to the filesystem and keeps no state between calls.
type Reader struct{}

// NewReader constructs a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read resolves filePath against basePath and loads the file. Paths that
// escape the base after normalisation fail with domain.ErrForbidden whether
// or not the target exists. Symlinks are followed only while their target
// stays inside the real base directory.
func (r *Reader) Read(ctx context.Context, basePath, filePath string) (*File, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(basePath) == "" {
		return nil, ErrBasePathRequired
	}

	fullPath, ok := ResolveWithin(basePath, filePath)
	if !ok {
		return nil, domain.NewPathError(readOperation, domain.ErrForbidden, filePath, nil)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, domain.NewPathError(readOperation, domain.ErrNotFound, filePath, err)
	}
	if !info.Mode().IsRegular() || hasTrailingSeparator(filePath) {
		return nil, domain.NewPathError(readOperation, domain.ErrNotAFile, filePath, nil)
	}

	inside, err := resolvesWithin(basePath, fullPath)
	if err != nil {
		return nil, domain.NewPathError(readOperation, domain.ErrInternal, filePath, err)
	}
	if !inside {
		return nil, domain.NewPathError(readOperation, domain.ErrForbidden, filePath, nil)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, domain.NewPathError(readOperation, domain.ErrInternal, filePath, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, domain.NewPathError(readOperation, domain.ErrInternal, filePath, err)
	}

	return &File{
		Content:      string(body),
		FrontMatter:  meta,
		FilePath:     filePath,
		FileName:     baseName(filePath),
		Source:       data,
		LastModified: info.ModTime(),
	}, nil
}

// resolvesWithin compares the symlink free locations of base and target.
func resolvesWithin(basePath, target string) (bool, error) {
	realBase, err := filepath.EvalSymlinks(basePath)
	if err != nil {
		return false, err
	}
	realTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		return false, err
	}
	return IsWithin(realBase, realTarget), nil
}

// hasTrailingSeparator reports a path naming a directory ("a.md/"), which
// Clean would otherwise fold onto the file.
func hasTrailingSeparator(filePath string) bool {
	return strings.HasSuffix(filePath, "/") || strings.HasSuffix(filePath, `\`)
}

func baseName(filePath string) string {
	slashed := strings.ReplaceAll(filepath.ToSlash(filePath), `\`, "/")
	return path.Base(slashed)
}
