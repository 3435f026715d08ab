// Package rules loads rule documents from disk and groups them by category.
package rules

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goliatone/go-rules/internal/logging"
	"github.com/goliatone/go-rules/internal/markdown"
	"github.com/goliatone/go-rules/pkg/interfaces"
)

// RepositoryConfig wires the loader and the known category keys.
type RepositoryConfig struct {
	Loader *markdown.Loader
	// KnownCategories is the fixed set of recognised category keys. Documents
	// outside this set are reported separately rather than silently dropped.
	KnownCategories []string
	Logger          interfaces.Logger
}

// Repository produces grouped, deterministically ordered rule sets.
type Repository struct {
	loader *markdown.Loader
	known  map[string]struct{}
	logger interfaces.Logger
}

// Grouped is the result of a repository load: rules keyed by category, plus
// the documents whose derived category key is not recognised.
type Grouped struct {
	Categories map[string][]*Rule
	Unknown    []*Rule
}

// Total returns the number of rules across all recognised categories.
func (g *Grouped) Total() int {
	if g == nil {
		return 0
	}
	total := 0
	for _, group := range g.Categories {
		total += len(group)
	}
	return total
}

// NewRepository constructs a Repository from the supplied configuration.
func NewRepository(cfg RepositoryConfig) *Repository {
	known := make(map[string]struct{}, len(cfg.KnownCategories))
	for _, key := range cfg.KnownCategories {
		known[key] = struct{}{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Repository{
		loader: cfg.Loader,
		known:  known,
		logger: logger,
	}
}

// Load reads every rule document under dir, groups the results by category
// key, and orders each group by title. A structural parse failure in any file
// aborts the load; the validator is the tool for diagnosing broken documents.
func (r *Repository) Load(ctx context.Context, dir string) (*Grouped, error) {
	results, err := r.loader.LoadDirectory(ctx, dir, markdown.LoadParams{})
	if err != nil {
		return nil, err
	}

	grouped := &Grouped{
		Categories: map[string][]*Rule{},
	}

	for _, result := range results {
		rule := NewRule(result.Document)
		if _, ok := r.known[rule.Category]; !ok {
			r.logger.Warn("rules.repository.unknown_category",
				"path", rule.Document.FilePath,
				"category", rule.Category,
			)
			grouped.Unknown = append(grouped.Unknown, rule)
			continue
		}
		grouped.Categories[rule.Category] = append(grouped.Categories[rule.Category], rule)
	}

	collator := collate.New(language.Und)
	for _, group := range grouped.Categories {
		sortRules(collator, group)
	}
	sortRules(collator, grouped.Unknown)

	r.logger.Debug("rules.repository.loaded",
		"directory", dir,
		"rules", grouped.Total(),
		"unknown", len(grouped.Unknown),
	)

	return grouped, nil
}

// sortRules orders rules by locale-aware title comparison with the source
// path as tie breaker, so repeated loads of an unchanged directory are
// byte-for-byte identical.
func sortRules(collator *collate.Collator, group []*Rule) {
	sort.SliceStable(group, func(i, j int) bool {
		if cmp := collator.CompareString(group[i].Title(), group[j].Title()); cmp != 0 {
			return cmp < 0
		}
		return group[i].Document.FilePath < group[j].Document.FilePath
	})
}
