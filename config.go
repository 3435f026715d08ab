package rules

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-rules/pkg/interfaces"
)

// Config controls how the rules toolchain discovers, parses, and emits rule
// documents.
type Config struct {
	// RulesDir is the root directory containing rule Markdown files.
	RulesDir string
	// ManifestPath points at the project metadata record (rules.json). When
	// the file is absent the built-in category table is used.
	ManifestPath string
	// DefaultLocale applies to rule files without a locale suffix.
	DefaultLocale string
	// Locales enumerates the recognised locale suffixes (e.g. ["en", "zh"]).
	Locales []string
	// Pattern limits discovery to matching files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories of RulesDir are traversed.
	Recursive bool
	// Output fixes the default destinations of the batch pipelines.
	Output OutputConfig
	// Parser provides the default Markdown rendering options for previews.
	Parser interfaces.ParseOptions
	// Logging configures the go-logger provider backing every module logger.
	Logging LoggingConfig
}

// OutputConfig names the files written by the compile and extract pipelines.
type OutputConfig struct {
	// AggregatePath receives the combined rules document.
	AggregatePath string
	// TestCasesPath receives the extracted snippet fixture list.
	TestCasesPath string
}

// LoggingConfig mirrors the options of the go-logger adapter.
type LoggingConfig struct {
	// Provider selects the logging backend: "gologger" or "noop".
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the conventional layout: rule files under "rules",
// manifest alongside them, aggregate output at AGENTS.md.
func DefaultConfig() Config {
	return Config{
		RulesDir:      "rules",
		ManifestPath:  "rules.json",
		DefaultLocale: "en",
		Locales:       []string{"en", "zh"},
		Pattern:       "*.md",
		Recursive:     false,
		Output: OutputConfig{
			AggregatePath: "AGENTS.md",
			TestCasesPath: "test-cases.json",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate checks the configuration before the module is constructed.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.RulesDir, validation.Required),
		validation.Field(&c.Logging),
	)
}

// Validate checks the logging block independently so ozzo reports a precise path.
func (c LoggingConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Provider, validation.In("", "gologger", "noop")),
		validation.Field(&c.Format, validation.In("", "json", "console", "pretty")),
		validation.Field(&c.Level, validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal")),
	)
}
