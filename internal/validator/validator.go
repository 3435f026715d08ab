// Package validator checks rule documents against the authoring convention:
// frontmatter fields, category prefix, example markers, and code fences.
package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-rules/internal/catalog"
	"github.com/goliatone/go-rules/internal/logging"
	"github.com/goliatone/go-rules/internal/markdown"
	"github.com/goliatone/go-rules/internal/rules"
	"github.com/goliatone/go-rules/pkg/interfaces"
)

// Violation codes recorded by CheckDocument.
const (
	CodeMissingFrontmatter  = "missing_frontmatter"
	CodeUnclosedFrontmatter = "unclosed_frontmatter"
	CodeInvalidFrontmatter  = "invalid_frontmatter"
	CodeMissingTitle        = "missing_title"
	CodeMissingImpact       = "missing_impact"
	CodeInvalidImpact       = "invalid_impact"
	CodeUnknownCategory     = "unknown_category"
	CodeMissingIncorrect    = "missing_incorrect_marker"
	CodeMissingCorrect      = "missing_correct_marker"
	CodeMissingCodeBlocks   = "missing_code_blocks"
	CodeUnclosedCodeBlock   = "unclosed_code_block"
)

// Config wires the validator's collaborators.
type Config struct {
	Loader *markdown.Loader
	Logger interfaces.Logger
}

// Service implements interfaces.ValidatorService.
type Service struct {
	loader *markdown.Loader
	logger interfaces.Logger
}

var _ interfaces.ValidatorService = (*Service)(nil)

// NewService constructs a validator Service.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		loader: cfg.Loader,
		logger: logger,
	}
}

// CheckDocument runs every convention check against a document's raw text and
// its identifier, returning the recorded violations (empty means valid). The
// two structural checks short-circuit; everything after them is independent.
func CheckDocument(source []byte, path string) []interfaces.Violation {
	var violations []interfaces.Violation
	add := func(code, message string) {
		violations = append(violations, interfaces.Violation{Code: code, Message: message})
	}

	if err := markdown.CheckDelimiters(source); err != nil {
		if errors.Is(err, markdown.ErrMissingFrontmatter) {
			add(CodeMissingFrontmatter, "missing frontmatter: document must start with ---")
		} else {
			add(CodeUnclosedFrontmatter, "frontmatter block is not closed with ---")
		}
		return violations
	}

	fm, body, err := markdown.ParseFrontMatter(source)
	if err != nil {
		add(CodeInvalidFrontmatter, fmt.Sprintf("frontmatter could not be parsed: %v", err))
		return violations
	}

	if strings.TrimSpace(fm.Title) == "" {
		add(CodeMissingTitle, "missing required field: title")
	}

	if strings.TrimSpace(fm.Impact) == "" {
		add(CodeMissingImpact, "missing required field: impact")
	} else if !interfaces.IsImpactLevel(fm.Impact) {
		add(CodeInvalidImpact, fmt.Sprintf("invalid impact value %q (expected one of %s)",
			fm.Impact, strings.Join(interfaces.ImpactLevels(), ", ")))
	}

	if key := rules.CategoryKey(path); !catalog.IsKnownCategory(key) {
		add(CodeUnknownCategory, fmt.Sprintf("unrecognized category prefix %q", key))
	}

	if markdown.FindIncorrectMarker(body) < 0 {
		add(CodeMissingIncorrect, "body is missing an incorrect-example section marker")
	}
	if markdown.FindCorrectMarker(body) < 0 {
		add(CodeMissingCorrect, "body is missing a correct-example section marker")
	}

	fences := markdown.FenceDelimiterCount(body)
	if fences < 2 {
		add(CodeMissingCodeBlocks, "body must contain at least one fenced code block")
	}
	if fences%2 != 0 {
		add(CodeUnclosedCodeBlock, "code blocks not properly closed (odd number of ``` delimiters)")
	}

	return violations
}

// ValidateFile checks a single rule document.
func (s *Service) ValidateFile(ctx context.Context, path string) ([]interfaces.Violation, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	source, err := s.loader.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return CheckDocument(source, path), nil
}

// ValidateDirectory checks every non-reserved rule file under dir, collecting
// per-file violation lists. Broken files never abort the run; the report
// covers the whole directory.
func (s *Service) ValidateDirectory(ctx context.Context, dir string) (*interfaces.ValidationReport, error) {
	paths, err := s.loader.ListFiles(ctx, dir, markdown.LoadParams{})
	if err != nil {
		return nil, err
	}

	report := &interfaces.ValidationReport{}
	for _, path := range paths {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		source, err := s.loader.ReadFile(path)
		if err != nil {
			report.Invalid = append(report.Invalid, interfaces.FileReport{
				File: path,
				Violations: []interfaces.Violation{
					{Code: "unreadable", Message: err.Error()},
				},
			})
			report.Checked++
			continue
		}

		report.Checked++
		if violations := CheckDocument(source, path); len(violations) > 0 {
			report.Invalid = append(report.Invalid, interfaces.FileReport{
				File:       path,
				Violations: violations,
			})
		}
	}

	s.logger.Info("rules.validator.completed",
		"checked", report.Checked,
		"invalid", len(report.Invalid),
	)

	return report, nil
}
