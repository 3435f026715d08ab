package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-rules/pkg/interfaces"
)

func writeRule(t *testing.T, dir, name, title, impact string) {
	t.Helper()
	content := strings.Join([]string{
		"---",
		"title: " + title,
		"impact: " + impact,
		"---",
		"",
		"Guidance.",
		"",
		"**Incorrect**:",
		"",
		"```js",
		"bad()",
		"```",
		"",
		"**Correct**:",
		"",
		"```js",
		"good()",
		"```",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestRunExtractWritesFixtures(t *testing.T) {
	dir := t.TempDir()
	writeRule(t, dir, "bundle-imports.md", "Dynamic Imports", "HIGH")
	writeRule(t, dir, "async-parallel.md", "Parallel Fetching", "CRITICAL")
	if err := os.WriteFile(filepath.Join(dir, "js-prose-only.md"), []byte(strings.Join([]string{
		"---",
		"title: Prose Only",
		"impact: LOW",
		"---",
		"",
		"No examples here.",
		"",
	}, "\n")), 0o644); err != nil {
		t.Fatalf("write prose file: %v", err)
	}

	output := filepath.Join(t.TempDir(), "test-cases.json")
	err := runExtract([]string{
		"-rules-dir", dir,
		"-output", output,
		"-log-level", "error",
	})
	if err != nil {
		t.Fatalf("runExtract returned error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read fixtures: %v", err)
	}

	var records []interfaces.SnippetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("decode fixtures: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, record := range records {
		if record.ID == "js-prose-only" {
			t.Error("document without snippets must not produce a record")
		}
		if record.IncorrectCode != "bad()" || record.CorrectCode != "good()" {
			t.Errorf("unexpected snippet pair %+v", record)
		}
	}
}
