package identity

import (
	"path"
	"path/filepath"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	return derive(key, true)
}

// PathUUID is UUID without key normalisation, so keys that differ only in
// letter case (file paths on case sensitive filesystems) stay distinct.
func PathUUID(key string) uuid.UUID {
	return derive(key, false)
}

func derive(key string, normalize bool) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(normalize))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DirectoryUUID keys a registered directory by its cleaned absolute path.
func DirectoryUUID(dirPath string) uuid.UUID {
	trimmed := strings.TrimSpace(dirPath)
	if trimmed == "" {
		return uuid.Nil
	}
	return PathUUID("mdshelf:directory:" + filepath.Clean(trimmed))
}

func ReadStatusUUID(directoryID uuid.UUID, filePath string) uuid.UUID {
	return PathUUID("mdshelf:read_status:" + directoryID.String() + ":" + NormalizeFilePath(filePath))
}

func BookmarkUUID(directoryID uuid.UUID, filePath string) uuid.UUID {
	return PathUUID("mdshelf:bookmark:" + directoryID.String() + ":" + NormalizeFilePath(filePath))
}

// NormalizeFilePath returns the slash separated, cleaned form of a path
// relative to a directory root. Empty input stays empty.
func NormalizeFilePath(filePath string) string {
	trimmed := strings.TrimSpace(filePath)
	if trimmed == "" {
		return ""
	}
	slashed := strings.ReplaceAll(filepath.ToSlash(trimmed), `\`, "/")
	return strings.TrimPrefix(path.Clean(slashed), "./")
}
