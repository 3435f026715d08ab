package rules

import (
	"path/filepath"
	"strings"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-rules/internal/identity"
	"github.com/goliatone/go-rules/pkg/interfaces"
)

// Rule wraps a parsed document with its derived identity and grouping key.
type Rule struct {
	ID       uuid.UUID
	Slug     string
	Category string
	Document *interfaces.Document
}

// Title returns the frontmatter title, or an empty string when the document
// does not declare one. Sorting relies on this never panicking.
func (r *Rule) Title() string {
	if r == nil || r.Document == nil {
		return ""
	}
	return r.Document.FrontMatter.Title
}

// NewRule derives identity and category for the supplied document.
func NewRule(doc *interfaces.Document) *Rule {
	stem := fileStem(doc.FilePath)
	ruleSlug := normalizeSlug(stem)
	return &Rule{
		ID:       identity.RuleUUID(ruleSlug, doc.Locale),
		Slug:     ruleSlug,
		Category: CategoryKey(doc.FilePath),
		Document: doc,
	}
}

// CategoryKey derives the grouping key from a rule file name: the leading
// token of the stem up to the first "-", with extension and locale suffix
// stripped. "bundle-dynamic-imports.zh.md" yields "bundle".
func CategoryKey(path string) string {
	stem := fileStem(path)
	if idx := strings.Index(stem, "."); idx >= 0 {
		stem = stem[:idx]
	}
	if idx := strings.Index(stem, "-"); idx >= 0 {
		return stem[:idx]
	}
	return stem
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func normalizeSlug(value string) string {
	normalized, err := slug.Normalize(strings.ReplaceAll(value, ".", "-"))
	if err != nil || normalized == "" {
		return strings.ToLower(value)
	}
	return normalized
}
