package interfaces

// ParseOptions influence Markdown to HTML conversion.
type ParseOptions struct {
	// Extensions selects goldmark extensions by name (defaults to GFM).
	Extensions []string
	// Sanitize strips raw HTML from the rendered output.
	Sanitize bool
	// HardWraps renders soft line breaks as <br> elements.
	HardWraps bool
	// SafeMode disables raw HTML passthrough.
	SafeMode bool
}

// MarkdownParser converts Markdown source into HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// LoadOptions provide call-specific overrides when loading documents.
type LoadOptions struct {
	Pattern   string
	Recursive *bool
	Parser    ParseOptions
}
