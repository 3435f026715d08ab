package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-rules/pkg/interfaces"
)

const (
	rootModule       = "rules"
	repositoryModule = "rules.repository"
	compilerModule   = "rules.compiler"
	validatorModule  = "rules.validator"
	extractorModule  = "rules.extractor"
	catalogModule    = "rules.catalog"
)

const (
	fieldRulePath     = "rule_path"
	fieldRuleLocale   = "locale"
	fieldRuleCategory = "category"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RepositoryLogger returns the logger namespace reserved for the rule repository.
func RepositoryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, repositoryModule)
}

// CompilerLogger returns the logger namespace reserved for aggregate compiles.
func CompilerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, compilerModule)
}

// ValidatorLogger returns the logger namespace reserved for validation runs.
func ValidatorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, validatorModule)
}

// ExtractorLogger returns the logger namespace reserved for snippet extraction.
func ExtractorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, extractorModule)
}

// CatalogLogger returns the logger namespace reserved for manifest loading.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// WithRuleContext enriches the provided logger with common rule fields such as
// file path, locale, and category. Empty values are ignored.
func WithRuleContext(logger interfaces.Logger, path, locale, category string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldRulePath] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldRuleLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		fields[fieldRuleCategory] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
