package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-rules/cmd/rules/internal/bootstrap"
	"github.com/goliatone/go-rules/internal/commands"
	rulescmd "github.com/goliatone/go-rules/internal/commands/rules"
	"github.com/goliatone/go-rules/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	err := runValidate(os.Args[1:])
	if err == nil {
		return
	}
	if errors.Is(err, rulescmd.ErrValidationFailed) {
		// The per-file breakdown has already been printed; signal CI.
		os.Exit(1)
	}
	log.Fatalf("rules validate: %v", err)
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("rules-validate", flag.ExitOnError)
	rulesDir := fs.String("rules-dir", "rules", "Path to the rule documents root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering rule files")
	locales := fs.String("locales", "", "Comma separated list of locale suffixes (defaults to en,zh)")
	defaultLocale := fs.String("default-locale", "en", "Locale assumed for files without a suffix")
	logLevel := fs.String("log-level", "", "Override the logging level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		RulesDir:      *rulesDir,
		Pattern:       *pattern,
		DefaultLocale: *defaultLocale,
		Locales:       bootstrap.SplitLocales(*locales),
		LogLevel:      *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	logger := commands.CommandLogger(module.LoggerProvider(), "rules")
	handler := rulescmd.NewValidateDirectoryHandler(module.Validator(), logger, printReport)

	cmd := rulescmd.ValidateDirectoryCommand{Directory: "."}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return err
	}

	return nil
}

func printReport(report *interfaces.ValidationReport) {
	if report.Valid() {
		fmt.Fprintf(os.Stdout, "all %d rule files are valid\n", report.Checked)
		return
	}

	for _, file := range report.Invalid {
		fmt.Fprintf(os.Stdout, "INVALID %s\n", file.File)
		for _, violation := range file.Violations {
			fmt.Fprintf(os.Stdout, "  - %s\n", violation.Message)
		}
	}
	fmt.Fprintf(os.Stdout, "%d of %d rule files have violations\n", len(report.Invalid), report.Checked)
}
