package rulescmd

import (
	"errors"

	"github.com/goliatone/go-rules/internal/commands"
	"github.com/goliatone/go-rules/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the rule command handlers produced by RegisterRuleCommands.
type HandlerSet struct {
	Compile  *CompileDirectoryHandler
	Validate *ValidateDirectoryHandler
	Extract  *ExtractTestsHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	compileHandlerOpts  []commands.HandlerOption[CompileDirectoryCommand]
	validateHandlerOpts []commands.HandlerOption[ValidateDirectoryCommand]
	extractHandlerOpts  []commands.HandlerOption[ExtractTestsCommand]
	reportSink          ReportSink
}

// WithCompileHandlerOptions forwards options to the CompileDirectoryHandler constructor.
func WithCompileHandlerOptions(opts ...commands.HandlerOption[CompileDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.compileHandlerOpts = append(cfg.compileHandlerOpts, opts...)
	}
}

// WithValidateHandlerOptions forwards options to the ValidateDirectoryHandler constructor.
func WithValidateHandlerOptions(opts ...commands.HandlerOption[ValidateDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.validateHandlerOpts = append(cfg.validateHandlerOpts, opts...)
	}
}

// WithExtractHandlerOptions forwards options to the ExtractTestsHandler constructor.
func WithExtractHandlerOptions(opts ...commands.HandlerOption[ExtractTestsCommand]) Option {
	return func(cfg *options) {
		cfg.extractHandlerOpts = append(cfg.extractHandlerOpts, opts...)
	}
}

// WithReportSink forwards the validation report sink to the validate handler.
func WithReportSink(sink ReportSink) Option {
	return func(cfg *options) {
		cfg.reportSink = sink
	}
}

// Services bundles the pipeline services consumed by the rule command handlers.
type Services struct {
	Compiler  interfaces.CompilerService
	Validator interfaces.ValidatorService
	Extractor interfaces.ExtractorService
}

// RegisterRuleCommands builds the rule command handlers and registers them
// with the provided registry. A HandlerSet containing the constructed
// handlers is returned so callers can wire additional integrations as needed.
func RegisterRuleCommands(reg CommandRegistry, services Services, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if services.Compiler == nil || services.Validator == nil || services.Extractor == nil {
		return nil, errors.New("rules command registration: services are incomplete")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "rules")

	set := &HandlerSet{
		Compile:  NewCompileDirectoryHandler(services.Compiler, logger, cfg.compileHandlerOpts...),
		Validate: NewValidateDirectoryHandler(services.Validator, logger, cfg.reportSink, cfg.validateHandlerOpts...),
		Extract:  NewExtractTestsHandler(services.Extractor, logger, cfg.extractHandlerOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Compile); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Validate); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Extract); err != nil {
			return nil, err
		}
	}

	return set, nil
}
