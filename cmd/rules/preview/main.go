package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-rules/cmd/rules/internal/bootstrap"
	"github.com/goliatone/go-rules/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		rulesDir      = flag.String("rules-dir", "rules", "Path to the rule documents root")
		locales       = flag.String("locales", "", "Comma separated list of locale suffixes (defaults to en,zh)")
		defaultLocale = flag.String("default-locale", "en", "Locale assumed for files without a suffix")
		filePath      = flag.String("file", "", "Rule file to preview (relative to the rules root)")
		renderHTML    = flag.Bool("render-html", true, "Render the rule body into HTML as part of the preview")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		RulesDir:      *rulesDir,
		DefaultLocale: *defaultLocale,
		Locales:       bootstrap.SplitLocales(*locales),
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	doc, err := module.LoadDocument(context.Background(), *filePath, interfaces.LoadOptions{})
	if err != nil {
		log.Fatalf("load rule document: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Path: %s\nLocale: %s\nChecksum: %x\n\n", doc.FilePath, doc.Locale, doc.Checksum)

	if doc.FrontMatter.Raw != nil {
		frontmatter, err := json.MarshalIndent(doc.FrontMatter.Raw, "", "  ")
		if err == nil {
			fmt.Fprintf(os.Stdout, "Frontmatter:\n%s\n\n", frontmatter)
		}
	}

	if *renderHTML {
		fmt.Fprintf(os.Stdout, "Rendered HTML:\n%s\n", string(doc.BodyHTML))
	} else {
		fmt.Fprintf(os.Stdout, "Markdown Body:\n%s\n", string(doc.Body))
	}
}
