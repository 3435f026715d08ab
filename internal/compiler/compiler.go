// Package compiler renders the aggregate rules document from grouped rule
// files and the project manifest.
package compiler

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-rules/internal/catalog"
	"github.com/goliatone/go-rules/internal/logging"
	"github.com/goliatone/go-rules/internal/rules"
	"github.com/goliatone/go-rules/pkg/interfaces"
)

// Config wires the compiler's collaborators.
type Config struct {
	Repository *rules.Repository
	Manifest   *catalog.Manifest
	Logger     interfaces.Logger
}

// Service implements interfaces.CompilerService.
type Service struct {
	repo     *rules.Repository
	manifest *catalog.Manifest
	logger   interfaces.Logger
}

var _ interfaces.CompilerService = (*Service)(nil)

// NewService constructs a compiler Service. A nil manifest falls back to the
// built-in category table.
func NewService(cfg Config) *Service {
	manifest := cfg.Manifest
	if manifest == nil {
		manifest = catalog.Default()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		repo:     cfg.Repository,
		manifest: manifest,
		logger:   logger,
	}
}

// Compile loads every rule document under opts.Directory and assembles the
// aggregate output in memory before a single write. The first structurally
// broken document aborts the run; documents with unknown category keys are
// excluded and surfaced in the result.
func (s *Service) Compile(ctx context.Context, opts interfaces.CompileOptions) (*interfaces.CompileResult, error) {
	grouped, err := s.repo.Load(ctx, opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}

	output, count := Render(grouped, s.manifest)

	result := &interfaces.CompileResult{
		Output:    output,
		RuleCount: count,
	}
	for _, rule := range grouped.Unknown {
		result.SkippedFiles = append(result.SkippedFiles, rule.Document.FilePath)
	}

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, output, 0o644); err != nil {
			return nil, fmt.Errorf("compile rules: write %s: %w", opts.OutputPath, err)
		}
	}

	s.logger.Info("rules.compiler.completed",
		"rules", count,
		"skipped", len(result.SkippedFiles),
		"output", opts.OutputPath,
	)

	return result, nil
}

// Render is a pure function of the grouped rules and the manifest: it returns
// the aggregate document text plus the number of rules it contains. Categories
// are emitted in the fixed priority order; empty categories produce no section.
func Render(grouped *rules.Grouped, manifest *catalog.Manifest) ([]byte, int) {
	var b strings.Builder

	writeHeader(&b, manifest)

	count := 0
	sectionIndex := 0
	for _, key := range catalog.CategoryOrder() {
		group := grouped.Categories[key]
		if len(group) == 0 {
			continue
		}
		sectionIndex++
		writeCategory(&b, manifest.Category(key), sectionIndex, group)
		count += len(group)
	}

	return []byte(b.String()), count
}

func writeHeader(b *strings.Builder, manifest *catalog.Manifest) {
	fmt.Fprintf(b, "# %s\n\n", manifest.Title)
	if manifest.Version != "" {
		fmt.Fprintf(b, "> Version: %s", manifest.Version)
		if manifest.LastUpdated != "" {
			fmt.Fprintf(b, " · Last updated: %s", manifest.LastUpdated)
		}
		b.WriteString("\n\n")
	}
	if manifest.Abstract != "" {
		fmt.Fprintf(b, "%s\n\n", manifest.Abstract)
	}
}

func writeCategory(b *strings.Builder, category catalog.Category, index int, group []*rules.Rule) {
	fmt.Fprintf(b, "## %d. %s\n\n", index, category.Name)
	if category.Impact != "" || category.Description != "" {
		b.WriteString(">")
		if category.Impact != "" {
			fmt.Fprintf(b, " Impact: %s.", category.Impact)
		}
		if category.Description != "" {
			fmt.Fprintf(b, " %s", category.Description)
		}
		b.WriteString("\n\n")
	}

	for i, rule := range group {
		writeRule(b, index, i+1, rule)
	}
}

func writeRule(b *strings.Builder, sectionIndex, ruleIndex int, rule *rules.Rule) {
	fm := rule.Document.FrontMatter

	fmt.Fprintf(b, "### %d.%d. %s\n\n", sectionIndex, ruleIndex, fm.Title)

	if fm.Impact != "" {
		fmt.Fprintf(b, "**Impact: %s**", fm.Impact)
		if fm.ImpactDescription != "" {
			fmt.Fprintf(b, " (%s)", fm.ImpactDescription)
		}
		b.WriteString("\n\n")
	}

	if tags := fm.TagList(); len(tags) > 0 {
		fmt.Fprintf(b, "Tags: `%s`\n\n", strings.Join(tags, "`, `"))
	}

	body := strings.TrimSpace(string(rule.Document.Body))
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	b.WriteString("---\n\n")
}
