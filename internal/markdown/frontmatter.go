package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-rules/pkg/interfaces"
)

const delimiter = "---"

var (
	// ErrMissingFrontmatter indicates the document does not open with a
	// delimiter line. Nothing else can be checked for such a document.
	ErrMissingFrontmatter = errors.New("markdown: document does not start with frontmatter delimiter")
	// ErrUnclosedFrontmatter indicates the opening delimiter has no matching
	// closing line.
	ErrUnclosedFrontmatter = errors.New("markdown: frontmatter closing delimiter not found")
)

// IsStructuralError reports whether err marks a document that cannot be
// parsed at all (missing or unclosed frontmatter block).
func IsStructuralError(err error) bool {
	return errors.Is(err, ErrMissingFrontmatter) || errors.Is(err, ErrUnclosedFrontmatter)
}

// CheckDelimiters verifies the structural frontmatter contract without
// decoding the metadata block.
func CheckDelimiters(source []byte) error {
	lines := strings.Split(string(source), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != delimiter {
		return ErrMissingFrontmatter
	}
	for _, line := range lines[1:] {
		if strings.TrimRight(line, "\r") == delimiter {
			return nil
		}
	}
	return ErrUnclosedFrontmatter
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered. Duplicate keys follow
// YAML semantics: the last occurrence wins.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	if err := CheckDelimiters(source); err != nil {
		return interfaces.FrontMatter{}, nil, err
	}

	var meta frontMatterEnvelope
	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// locale, raw content, and modification time. BodyHTML stays empty so callers
// can render lazily.
func BuildDocument(path string, locale string, source []byte, modified time.Time) (*interfaces.Document, error) {
	frontmatter, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		Locale:       locale,
		FrontMatter:  frontmatter,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title             string         `yaml:"title"`
	Impact            string         `yaml:"impact"`
	ImpactDescription string         `yaml:"impactDescription"`
	Tags              string         `yaml:"tags"`
	Custom            map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+4)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Impact != "" {
		raw["impact"] = env.Impact
	}
	if env.ImpactDescription != "" {
		raw["impactDescription"] = env.ImpactDescription
	}
	if env.Tags != "" {
		raw["tags"] = env.Tags
	}

	return interfaces.FrontMatter{
		Title:             env.Title,
		Impact:            env.Impact,
		ImpactDescription: env.ImpactDescription,
		Tags:              env.Tags,
		Custom:            cloneMap(env.Custom),
		Raw:               raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
