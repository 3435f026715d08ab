package rulescmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-rules/internal/commands"
	"github.com/goliatone/go-rules/internal/logging"
	"github.com/goliatone/go-rules/pkg/interfaces"
)

const (
	compileOperation  = "rules.compile_directory"
	validateOperation = "rules.validate_directory"
	extractOperation  = "rules.extract_tests"
)

// ErrValidationFailed is returned by the validate handler when at least one
// file recorded a violation, so callers can exit non-zero for CI gating.
var ErrValidationFailed = errors.New("rules command: validation failed")

var (
	_ command.Commander[CompileDirectoryCommand]  = (*CompileDirectoryHandler)(nil)
	_ command.Commander[ValidateDirectoryCommand] = (*ValidateDirectoryHandler)(nil)
	_ command.Commander[ExtractTestsCommand]      = (*ExtractTestsHandler)(nil)
)

// CompileDirectoryHandler orchestrates aggregate compiles via the shared command foundation.
type CompileDirectoryHandler struct {
	inner *commands.Handler[CompileDirectoryCommand]
}

// NewCompileDirectoryHandler creates a handler bound to the supplied compiler service.
func NewCompileDirectoryHandler(service interfaces.CompilerService, logger interfaces.Logger, opts ...commands.HandlerOption[CompileDirectoryCommand]) *CompileDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CompileDirectoryCommand) error {
		result, err := service.Compile(ctx, interfaces.CompileOptions{
			Directory:  msg.Directory,
			OutputPath: msg.OutputPath,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"rule_count":    result.RuleCount,
			"skipped_count": len(result.SkippedFiles),
			"output_bytes":  len(result.Output),
		}).Info("rules.command.compile_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[CompileDirectoryCommand]{
		commands.WithLogger[CompileDirectoryCommand](baseLogger),
		commands.WithOperation[CompileDirectoryCommand](compileOperation),
		commands.WithMessageFields(func(msg CompileDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.OutputPath != "" {
				fields["output_path"] = msg.OutputPath
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CompileDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CompileDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CompileDirectoryCommand].
func (h *CompileDirectoryHandler) Execute(ctx context.Context, msg CompileDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ReportSink receives the validation report before the handler decides the
// command outcome. CLIs use it to print the per-file breakdown.
type ReportSink func(*interfaces.ValidationReport)

// ValidateDirectoryHandler orchestrates validation runs via the shared command foundation.
type ValidateDirectoryHandler struct {
	inner *commands.Handler[ValidateDirectoryCommand]
}

// NewValidateDirectoryHandler creates a handler bound to the supplied validator service.
// The sink may be nil when callers only need the pass/fail outcome.
func NewValidateDirectoryHandler(service interfaces.ValidatorService, logger interfaces.Logger, sink ReportSink, opts ...commands.HandlerOption[ValidateDirectoryCommand]) *ValidateDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ValidateDirectoryCommand) error {
		report, err := service.ValidateDirectory(ctx, msg.Directory)
		if err != nil {
			return err
		}
		if sink != nil {
			sink(report)
		}
		logging.WithFields(baseLogger, map[string]any{
			"checked_count": report.Checked,
			"invalid_count": len(report.Invalid),
		}).Info("rules.command.validate_directory.completed")

		if !report.Valid() {
			return fmt.Errorf("%w: %d of %d files have violations", ErrValidationFailed, len(report.Invalid), report.Checked)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateDirectoryCommand]{
		commands.WithLogger[ValidateDirectoryCommand](baseLogger),
		commands.WithOperation[ValidateDirectoryCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateDirectoryCommand) map[string]any {
			return map[string]any{
				"directory": msg.Directory,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateDirectoryCommand].
func (h *ValidateDirectoryHandler) Execute(ctx context.Context, msg ValidateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExtractTestsHandler orchestrates snippet extraction via the shared command foundation.
type ExtractTestsHandler struct {
	inner *commands.Handler[ExtractTestsCommand]
}

// NewExtractTestsHandler creates a handler bound to the supplied extractor service.
func NewExtractTestsHandler(service interfaces.ExtractorService, logger interfaces.Logger, opts ...commands.HandlerOption[ExtractTestsCommand]) *ExtractTestsHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ExtractTestsCommand) error {
		records, err := service.ExtractDirectory(ctx, msg.Directory)
		if err != nil {
			return err
		}

		payload, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("rules command: encode snippet records: %w", err)
		}
		payload = append(payload, '\n')

		if err := os.WriteFile(msg.OutputPath, payload, 0o644); err != nil {
			return fmt.Errorf("rules command: write %s: %w", msg.OutputPath, err)
		}

		logging.WithFields(baseLogger, map[string]any{
			"record_count": len(records),
			"output_path":  msg.OutputPath,
		}).Info("rules.command.extract_tests.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExtractTestsCommand]{
		commands.WithLogger[ExtractTestsCommand](baseLogger),
		commands.WithOperation[ExtractTestsCommand](extractOperation),
		commands.WithMessageFields(func(msg ExtractTestsCommand) map[string]any {
			return map[string]any{
				"directory":   msg.Directory,
				"output_path": msg.OutputPath,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExtractTestsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExtractTestsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExtractTestsCommand].
func (h *ExtractTestsHandler) Execute(ctx context.Context, msg ExtractTestsCommand) error {
	return h.inner.Execute(ctx, msg)
}
