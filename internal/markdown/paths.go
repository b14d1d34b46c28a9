package markdown

import (
	"path/filepath"
	"strings"
)

// ResolveWithin joins filePath onto basePath and reports whether the
// normalised result stays inside the normalised base. Both sides are cleaned
// before the comparison, and the prefix check is segment aware so
// "/notes-old" is not considered inside "/notes". Comparison is case
// sensitive on every platform.
func ResolveWithin(basePath, filePath string) (string, bool) {
	base := filepath.Clean(basePath)
	candidate := filepath.Clean(filepath.Join(basePath, filepath.FromSlash(filePath)))
	return candidate, IsWithin(base, candidate)
}

// IsWithin reports whether target equals base or lies below it. Both paths
// are expected to be cleaned.
func IsWithin(base, target string) bool {
	if target == base {
		return true
	}
	prefix := base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(target, prefix)
}
