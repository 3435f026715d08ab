// Package markdown provides frontmatter parsing, document loading, and fence
// scanning primitives shared by the rules compiler, validator, and extractor.
package markdown
