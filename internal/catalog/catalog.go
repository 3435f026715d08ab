// Package catalog holds the category table and the project manifest that
// seed the aggregate document header.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goliatone/go-rules/pkg/interfaces"
)

// Category describes one performance topic grouping.
type Category struct {
	Key         string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// Manifest is the project metadata record rendered at the top of the
// aggregate document.
type Manifest struct {
	Title       string              `json:"title"`
	Abstract    string              `json:"abstract"`
	Version     string              `json:"version"`
	LastUpdated string              `json:"lastUpdated"`
	Categories  map[string]Category `json:"categories"`
}

// categoryOrder fixes the emission order of the aggregate document. The order
// is a policy decision (severity descending) and must be preserved exactly.
var categoryOrder = []string{
	"async",
	"bundle",
	"server",
	"client",
	"reactivity",
	"rendering",
	"vue2",
	"vue3",
	"js",
	"advanced",
}

// CategoryOrder returns the fixed category emission order.
func CategoryOrder() []string {
	return append([]string(nil), categoryOrder...)
}

// IsKnownCategory reports whether key belongs to the fixed category set.
func IsKnownCategory(key string) bool {
	for _, known := range categoryOrder {
		if key == known {
			return true
		}
	}
	return false
}

// Category resolves the display metadata for key, falling back to the key
// itself as the name when the manifest does not describe it.
func (m *Manifest) Category(key string) Category {
	if m != nil {
		if entry, ok := m.Categories[key]; ok {
			entry.Key = key
			return entry
		}
	}
	return Category{Key: key, Name: key}
}

// Default returns the built-in manifest used when no rules.json is present.
func Default() *Manifest {
	return &Manifest{
		Title:    "Vue.js & Nuxt Performance Best Practices",
		Abstract: "Curated performance rules for Vue and Nuxt applications, ordered by impact.",
		Version:  "1.0.0",
		Categories: map[string]Category{
			"async": {
				Name:        "Async Operations",
				Description: "Eliminating request waterfalls and parallelizing asynchronous work.",
				Impact:      interfaces.ImpactCritical,
			},
			"bundle": {
				Name:        "Bundle Size Optimization",
				Description: "Keeping the client bundle lean via code splitting and import hygiene.",
				Impact:      interfaces.ImpactCritical,
			},
			"server": {
				Name:        "Server-Side Rendering",
				Description: "SSR and Nitro server patterns that keep time-to-first-byte low.",
				Impact:      interfaces.ImpactHigh,
			},
			"client": {
				Name:        "Client-Side Performance",
				Description: "Hydration, lazy loading, and main-thread friendly client code.",
				Impact:      interfaces.ImpactHigh,
			},
			"reactivity": {
				Name:        "Reactivity System",
				Description: "Using Vue's reactivity primitives without accidental overhead.",
				Impact:      interfaces.ImpactMediumHigh,
			},
			"rendering": {
				Name:        "Rendering Performance",
				Description: "Template and render-path patterns that avoid wasted re-renders.",
				Impact:      interfaces.ImpactMediumHigh,
			},
			"vue2": {
				Name:        "Vue 2 Pitfalls",
				Description: "Performance traps specific to the Vue 2 options API and runtime.",
				Impact:      interfaces.ImpactMedium,
			},
			"vue3": {
				Name:        "Vue 3 Optimizations",
				Description: "Composition API and compiler features that unlock faster apps.",
				Impact:      interfaces.ImpactMedium,
			},
			"js": {
				Name:        "JavaScript Fundamentals",
				Description: "Language-level habits that keep hot paths cheap.",
				Impact:      interfaces.ImpactLowMedium,
			},
			"advanced": {
				Name:        "Advanced Patterns",
				Description: "Specialised techniques for teams squeezing out the last milliseconds.",
				Impact:      interfaces.ImpactLow,
			},
		},
	}
}

// Load reads and validates a manifest file. A missing path yields the
// built-in default; a malformed or schema-violating file is an error.
func Load(path string) (*Manifest, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("catalog: read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes manifest bytes after checking them against the embedded
// schema, so authoring mistakes surface with a location instead of a partial
// zero-valued struct.
func Parse(data []byte) (*Manifest, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("catalog: decode manifest: %w", err)
	}

	for key := range manifest.Categories {
		if !IsKnownCategory(key) {
			return nil, fmt.Errorf("catalog: manifest references unknown category %q", key)
		}
	}

	return &manifest, nil
}
