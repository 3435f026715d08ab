// Package rules assembles the Vue/Nuxt performance rule toolchain: a
// filesystem-backed rule repository, an aggregate document compiler, a
// convention validator, and a snippet extractor sharing one document model.
package rules

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-rules/internal/catalog"
	"github.com/goliatone/go-rules/internal/compiler"
	"github.com/goliatone/go-rules/internal/extractor"
	"github.com/goliatone/go-rules/internal/logging"
	"github.com/goliatone/go-rules/internal/logging/gologger"
	"github.com/goliatone/go-rules/internal/markdown"
	rulesrepo "github.com/goliatone/go-rules/internal/rules"
	"github.com/goliatone/go-rules/internal/validator"
	"github.com/goliatone/go-rules/pkg/interfaces"
)

// Module wires the toolchain services around a shared loader and manifest.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	loader   *markdown.Loader
	parser   *markdown.GoldmarkParser

	repository *rulesrepo.Repository
	compiler   *compiler.Service
	validator  *validator.Service
	extractor  *extractor.Service
}

// New constructs a Module from the supplied configuration. Every pipeline run
// performed through the module reads the rule directory fresh; there is no
// shared cache between runs.
func New(cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rules: invalid configuration: %w", err)
	}

	provider, err := buildLoggerProvider(cfg.Logging)
	if err != nil {
		return nil, err
	}

	filesystem, err := prepareFilesystem(cfg.RulesDir)
	if err != nil {
		return nil, err
	}

	loader := markdown.NewLoader(filesystem, markdown.LoaderConfig{
		BasePath:      cfg.RulesDir,
		DefaultLocale: cfg.DefaultLocale,
		Locales:       cfg.Locales,
		Pattern:       cfg.Pattern,
		Recursive:     cfg.Recursive,
	})

	manifest, err := catalog.Load(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}

	repository := rulesrepo.NewRepository(rulesrepo.RepositoryConfig{
		Loader:          loader,
		KnownCategories: catalog.CategoryOrder(),
		Logger:          logging.RepositoryLogger(provider),
	})

	return &Module{
		cfg:        cfg,
		provider:   provider,
		loader:     loader,
		parser:     markdown.NewGoldmarkParser(cfg.Parser),
		repository: repository,
		compiler: compiler.NewService(compiler.Config{
			Repository: repository,
			Manifest:   manifest,
			Logger:     logging.CompilerLogger(provider),
		}),
		validator: validator.NewService(validator.Config{
			Loader: loader,
			Logger: logging.ValidatorLogger(provider),
		}),
		extractor: extractor.NewService(extractor.Config{
			Loader: loader,
			Logger: logging.ExtractorLogger(provider),
		}),
	}, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// LoggerProvider exposes the configured logging backend for host integrations.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Compiler returns the aggregate document service.
func (m *Module) Compiler() interfaces.CompilerService {
	return m.compiler
}

// Validator returns the convention checking service.
func (m *Module) Validator() interfaces.ValidatorService {
	return m.validator
}

// Extractor returns the snippet extraction service.
func (m *Module) Extractor() interfaces.ExtractorService {
	return m.extractor
}

// Parser returns the Markdown renderer used for previews.
func (m *Module) Parser() interfaces.MarkdownParser {
	return m.parser
}

// LoadDocument reads a single rule file relative to the rules root and
// renders its body to HTML for preview purposes.
func (m *Module) LoadDocument(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := m.loader.LoadFile(ctx, path, markdown.LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		return nil, err
	}

	html, err := m.parser.ParseWithOptions(result.Document.Body, opts.Parser)
	if err != nil {
		return nil, fmt.Errorf("rules: render document %s: %w", path, err)
	}
	result.Document.BodyHTML = html

	return result.Document, nil
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "noop":
		return noopProvider{}, nil
	case "", "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
		})
		if err != nil {
			return nil, fmt.Errorf("rules: configure logging: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("rules: unknown logging provider %q", cfg.Provider)
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("rules: stat rules dir %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
