package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-rules/cmd/rules/internal/bootstrap"
	"github.com/goliatone/go-rules/internal/commands"
	rulescmd "github.com/goliatone/go-rules/internal/commands/rules"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runExtract(os.Args[1:]); err != nil {
		log.Fatalf("rules extract: %v", err)
	}
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("rules-extract", flag.ExitOnError)
	rulesDir := fs.String("rules-dir", "rules", "Path to the rule documents root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering rule files")
	locales := fs.String("locales", "", "Comma separated list of locale suffixes (defaults to en,zh)")
	defaultLocale := fs.String("default-locale", "en", "Locale assumed for files without a suffix")
	output := fs.String("output", "test-cases.json", "Destination for the snippet fixture list")
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
	handler := rulescmd.NewExtractTestsHandler(module.Extractor(), logger)

	cmd := rulescmd.ExtractTestsCommand{
		Directory:  ".",
		OutputPath: *output,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute extract command: %w", err)
	}

	fmt.Fprintf(os.Stdout, "snippet fixtures written to %s\n", *output)
	return nil
}
