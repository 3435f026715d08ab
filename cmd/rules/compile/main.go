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
	if err := runCompile(os.Args[1:]); err != nil {
		log.Fatalf("rules compile: %v", err)
	}
}

func runCompile(args []string) error {
	fs := flag.NewFlagSet("rules-compile", flag.ExitOnError)
	rulesDir := fs.String("rules-dir", "rules", "Path to the rule documents root")
	manifest := fs.String("manifest", "rules.json", "Path to the project manifest")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering rule files")
	locales := fs.String("locales", "", "Comma separated list of locale suffixes (defaults to en,zh)")
	defaultLocale := fs.String("default-locale", "en", "Locale assumed for files without a suffix")
	output := fs.String("output", "AGENTS.md", "Destination for the aggregate document")
	logLevel := fs.String("log-level", "", "Override the logging level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		RulesDir:      *rulesDir,
		ManifestPath:  *manifest,
		Pattern:       *pattern,
		DefaultLocale: *defaultLocale,
		Locales:       bootstrap.SplitLocales(*locales),
		LogLevel:      *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	logger := commands.CommandLogger(module.LoggerProvider(), "rules")
	handler := rulescmd.NewCompileDirectoryHandler(module.Compiler(), logger)

	cmd := rulescmd.CompileDirectoryCommand{
		Directory:  ".",
		OutputPath: *output,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute compile command: %w", err)
	}

	fmt.Fprintf(os.Stdout, "aggregate document written to %s\n", *output)
	return nil
}
