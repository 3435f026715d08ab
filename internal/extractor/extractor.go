// Package extractor pulls paired incorrect/correct code snippets out of rule
// documents for use as test fixtures.
package extractor

import (
	"context"
	"strings"

	"github.com/goliatone/go-rules/internal/logging"
	"github.com/goliatone/go-rules/internal/markdown"
	"github.com/goliatone/go-rules/internal/rules"
	"github.com/goliatone/go-rules/pkg/interfaces"
)

// Config wires the extractor's collaborators.
type Config struct {
	Loader *markdown.Loader
	Logger interfaces.Logger
}

// Service implements interfaces.ExtractorService.
type Service struct {
	loader *markdown.Loader
	logger interfaces.Logger
}

var _ interfaces.ExtractorService = (*Service)(nil)

// NewService constructs an extractor Service.
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

// SnippetPair locates the representative incorrect/correct code pair in a
// rule body. The incorrect span runs from the incorrect marker to the first
// correct marker (or end of body); the correct span runs from the correct
// marker to the end. Only the first fence in each span is retained; extra
// fences, such as alternative-language examples, are discarded.
func SnippetPair(body []byte) (incorrect, correct string, ok bool) {
	incorrectIdx := markdown.FindIncorrectMarker(body)
	correctIdx := markdown.FindCorrectMarker(body)
	if incorrectIdx < 0 || correctIdx < 0 {
		return "", "", false
	}

	fences := markdown.Fences(body)

	incorrectFences := markdown.FencesBetween(fences, incorrectIdx, correctIdx)
	correctFences := markdown.FencesBetween(fences, correctIdx, -1)
	if len(incorrectFences) == 0 || len(correctFences) == 0 {
		return "", "", false
	}

	return strings.TrimSpace(incorrectFences[0].Code), strings.TrimSpace(correctFences[0].Code), true
}

// ExtractDirectory walks every rule file under dir and produces one record per
// document that carries both an incorrect and a correct snippet. Documents
// that fail to parse or lack either snippet are skipped, never fatal: the
// dataset always covers whatever the directory can yield.
func (s *Service) ExtractDirectory(ctx context.Context, dir string) ([]interfaces.SnippetRecord, error) {
	paths, err := s.loader.ListFiles(ctx, dir, markdown.LoadParams{})
	if err != nil {
		return nil, err
	}

	records := make([]interfaces.SnippetRecord, 0, len(paths))
	for _, path := range paths {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		result, err := s.loader.LoadFile(ctx, path, markdown.LoadParams{})
		if err != nil {
			s.logger.Debug("rules.extractor.skip_unparseable", "path", path, "error", err)
			continue
		}

		rule := rules.NewRule(result.Document)
		incorrect, correct, ok := SnippetPair(result.Document.Body)
		if !ok {
			s.logger.Debug("rules.extractor.skip_no_pair",
				"path", path,
				"rule_id", rule.ID,
			)
			continue
		}

		records = append(records, interfaces.SnippetRecord{
			ID:            rule.Slug,
			Title:         rule.Title(),
			Category:      rule.Category,
			Impact:        result.Document.FrontMatter.Impact,
			IncorrectCode: incorrect,
			CorrectCode:   correct,
		})
	}

	s.logger.Info("rules.extractor.completed",
		"scanned", len(paths),
		"records", len(records),
	)

	return records, nil
}
