package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

var byteOrderMark = []byte("\ufeff")

var frontMatterDelimiters = [][]byte{
	[]byte("---"),
	[]byte("+++"),
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. Without a leading metadata block the metadata is an
// empty mapping and the body is the source unchanged.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	if !hasFrontMatter(source) {
		return interfaces.FrontMatter{}, source, nil
	}

	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(bytes.TrimPrefix(source, byteOrderMark)), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	out := make(interfaces.FrontMatter, len(meta))
	for key, value := range meta {
		out[key] = normalizeValue(value)
	}
	return out, body, nil
}

func hasFrontMatter(source []byte) bool {
	source = bytes.TrimPrefix(source, byteOrderMark)
	line := source
	if idx := bytes.IndexByte(source, '\n'); idx >= 0 {
		line = source[:idx]
	}
	line = bytes.TrimRight(line, " \t\r")
	for _, delim := range frontMatterDelimiters {
		if bytes.Equal(line, delim) {
			return true
		}
	}
	return false
}

// normalizeValue rewrites YAML mappings decoded with interface keys into
// string keyed maps so metadata survives JSON encoding.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
