package interfaces

// MarkdownRenderer converts a markdown body (frontmatter already removed)
// into HTML.
type MarkdownRenderer interface {
	// Render converts Markdown into HTML using the renderer's default settings.
	Render(markdown []byte) ([]byte, error)
	// RenderWithOptions converts Markdown into HTML using the supplied overrides.
	RenderWithOptions(markdown []byte, opts RenderOptions) ([]byte, error)
}

// RenderOptions customises Markdown rendering, keeping option names readable
// for configuration unmarshalling and CLI flags.
type RenderOptions struct {
	Extensions     []string
	HardWraps      bool
	SafeMode       bool
	Highlight      bool
	HighlightStyle string
}

// FrontMatter is the decoded metadata block of a markdown file. Nested
// mappings always use string keys so the value is JSON encodable.
type FrontMatter map[string]any
