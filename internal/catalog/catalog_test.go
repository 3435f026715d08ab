package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCategoryOrderIsFixed(t *testing.T) {
	want := []string{
		"async", "bundle", "server", "client", "reactivity",
		"rendering", "vue2", "vue3", "js", "advanced",
	}

	got := CategoryOrder()
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	// Returned slice is a copy; mutating it must not corrupt the order.
	got[0] = "mutated"
	if CategoryOrder()[0] != "async" {
		t.Error("CategoryOrder must return a copy")
	}
}

func TestIsKnownCategory(t *testing.T) {
	if !IsKnownCategory("bundle") {
		t.Error("bundle should be known")
	}
	if IsKnownCategory("mystery") {
		t.Error("mystery should not be known")
	}
	if IsKnownCategory("") {
		t.Error("empty key should not be known")
	}
}

func TestDefaultManifestCoversEveryCategory(t *testing.T) {
	manifest := Default()
	for _, key := range CategoryOrder() {
		entry, ok := manifest.Categories[key]
		if !ok {
			t.Errorf("default manifest missing category %q", key)
			continue
		}
		if entry.Name == "" {
			t.Errorf("category %q has empty name", key)
		}
		if entry.Impact == "" {
			t.Errorf("category %q has empty impact", key)
		}
	}
}

func TestManifestCategoryFallback(t *testing.T) {
	manifest := &Manifest{Categories: map[string]Category{
		"bundle": {Name: "Bundle Size", Impact: "CRITICAL"},
	}}

	entry := manifest.Category("bundle")
	if entry.Key != "bundle" || entry.Name != "Bundle Size" {
		t.Errorf("unexpected entry %+v", entry)
	}

	fallback := manifest.Category("vue3")
	if fallback.Key != "vue3" || fallback.Name != "vue3" {
		t.Errorf("expected key fallback, got %+v", fallback)
	}
}

func TestParseValidManifest(t *testing.T) {
	data := []byte(`{
		"title": "Test Rules",
		"abstract": "Rules used in tests.",
		"version": "2.1.0",
		"lastUpdated": "2025-01-15",
		"categories": {
			"async": {
				"name": "Async Operations",
				"description": "Waterfall elimination.",
				"impact": "CRITICAL"
			}
		}
	}`)

	manifest, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if manifest.Title != "Test Rules" {
		t.Errorf("unexpected title %q", manifest.Title)
	}
	if manifest.Version != "2.1.0" {
		t.Errorf("unexpected version %q", manifest.Version)
	}
	if manifest.Categories["async"].Impact != "CRITICAL" {
		t.Errorf("unexpected impact %q", manifest.Categories["async"].Impact)
	}
}

func TestParseRejectsInvalidImpact(t *testing.T) {
	data := []byte(`{
		"title": "Test Rules",
		"abstract": "Rules used in tests.",
		"version": "1.0.0",
		"categories": {
			"async": {"name": "Async Operations", "impact": "SUPER-HIGH"}
		}
	}`)

	if _, err := Parse(data); err == nil {
		t.Fatal("expected schema validation to reject invalid impact level")
	}
}

func TestParseRejectsMissingRequiredFields(t *testing.T) {
	data := []byte(`{"title": "Only a title"}`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected schema validation to reject missing fields")
	}
}

func TestParseRejectsUnknownCategoryKey(t *testing.T) {
	data := []byte(`{
		"title": "Test Rules",
		"abstract": "Rules used in tests.",
		"version": "1.0.0",
		"categories": {
			"mystery": {"name": "Mystery Category"}
		}
	}`)

	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected unknown category key to be rejected")
	}
	if !strings.Contains(err.Error(), "mystery") {
		t.Errorf("error should name the offending key, got %v", err)
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"title": `)); err == nil {
		t.Fatal("expected malformed JSON to be rejected")
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	manifest, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if manifest.Title != Default().Title {
		t.Errorf("expected default manifest, got title %q", manifest.Title)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	manifest, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if manifest.Title != Default().Title {
		t.Errorf("expected default manifest, got title %q", manifest.Title)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	data := []byte(`{
		"title": "On Disk",
		"abstract": "Loaded from a file.",
		"version": "3.0.0",
		"categories": {
			"js": {"name": "JavaScript", "impact": "LOW-MEDIUM"}
		}
	}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	manifest, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if manifest.Title != "On Disk" {
		t.Errorf("unexpected title %q", manifest.Title)
	}
}
