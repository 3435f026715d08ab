package interfaces

import (
	"strings"
	"time"
)

// Impact level tokens, ordered by descending severity. A rule document must
// declare exactly one of these in its frontmatter.
const (
	ImpactCritical   = "CRITICAL"
	ImpactHigh       = "HIGH"
	ImpactMediumHigh = "MEDIUM-HIGH"
	ImpactMedium     = "MEDIUM"
	ImpactLowMedium  = "LOW-MEDIUM"
	ImpactLow        = "LOW"
)

// ImpactLevels returns the recognised impact tokens in severity order.
func ImpactLevels() []string {
	return []string{
		ImpactCritical,
		ImpactHigh,
		ImpactMediumHigh,
		ImpactMedium,
		ImpactLowMedium,
		ImpactLow,
	}
}

// IsImpactLevel reports whether value is one of the recognised impact tokens.
// Matching is exact; authors must use the canonical uppercase form.
func IsImpactLevel(value string) bool {
	for _, level := range ImpactLevels() {
		if value == level {
			return true
		}
	}
	return false
}

// FrontMatter captures the metadata block of a rule document.
type FrontMatter struct {
	Title             string
	Impact            string
	ImpactDescription string
	// Tags is the raw comma separated tag list as authored.
	Tags   string
	Custom map[string]any
	// Raw preserves every key/value pair for round-tripping.
	Raw map[string]any
}

// TagList splits the raw tag string into trimmed, non-empty entries.
func (fm FrontMatter) TagList() []string {
	if strings.TrimSpace(fm.Tags) == "" {
		return nil
	}
	parts := strings.Split(fm.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// Document represents a parsed rule file. Documents are read fresh from disk
// on every pipeline run and are immutable once parsed.
type Document struct {
	FilePath     string
	Locale       string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	Checksum     []byte
	LastModified time.Time
}
