package bootstrap

import (
	"fmt"
	"strings"

	rules "github.com/goliatone/go-rules"
)

// Options captures configuration for rules CLI bootstraps.
type Options struct {
	RulesDir      string
	ManifestPath  string
	Pattern       string
	Recursive     bool
	DefaultLocale string
	Locales       []string
	LogLevel      string
	LogFormat     string
}

// BuildModule constructs a rules module configured for CLI operations.
func BuildModule(opts Options) (*rules.Module, error) {
	cfg := rules.DefaultConfig()

	if trimmed := strings.TrimSpace(opts.RulesDir); trimmed != "" {
		cfg.RulesDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.ManifestPath); trimmed != "" {
		cfg.ManifestPath = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Pattern = trimmed
	}
	cfg.Recursive = opts.Recursive

	if trimmed := strings.TrimSpace(opts.DefaultLocale); trimmed != "" {
		cfg.DefaultLocale = trimmed
	}
	if len(opts.Locales) > 0 {
		cfg.Locales = cloneStrings(opts.Locales)
	}

	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogFormat); trimmed != "" {
		cfg.Logging.Format = trimmed
	}

	module, err := rules.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise rules module: %w", err)
	}
	return module, nil
}

// SplitLocales parses a comma separated locale list into a trimmed slice.
func SplitLocales(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	locales := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locales = append(locales, trimmed)
		}
	}
	return locales
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
