package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-rules/pkg/interfaces"
)

// ReservedPrefix marks template and index files that are excluded from every
// pipeline (e.g. "_template.md").
const ReservedPrefix = "_"

// LoaderConfig configures how rule files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where rule documents live.
	BasePath string
	// DefaultLocale is used when no locale can be inferred from the file name.
	DefaultLocale string
	// Locales enumerates the known locale suffixes (e.g. ["en", "zh"]).
	Locales []string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into rule documents with metadata.
type Loader struct {
	fs            fs.FS
	basePath      string
	defaultLocale string
	locales       []string
	pattern       string
	recursive     bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	defaultLocale := cfg.DefaultLocale
	if strings.TrimSpace(defaultLocale) == "" {
		defaultLocale = "en"
	}

	return &Loader{
		fs:            filesystem,
		basePath:      filepath.Clean(cfg.BasePath),
		defaultLocale: defaultLocale,
		locales:       append([]string(nil), cfg.Locales...),
		pattern:       pattern,
		recursive:     cfg.Recursive,
	}
}

// LoadFile reads and parses a single rule document.
func (l *Loader) LoadFile(ctx context.Context, path string, opts LoadParams) (*DocumentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("rules loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("rules loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, l.detectLocale(rel), data, info.ModTime())
	if err != nil {
		return nil, fmt.Errorf("rules loader parse %s: %w", rel, err)
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	return &DocumentResult{
		Document: doc,
		Source:   data,
	}, nil
}

// LoadDirectory discovers rule files under dir and returns parsed documents.
// Files whose base name starts with the reserved prefix are skipped.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]*DocumentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	var results []*DocumentResult

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if strings.HasPrefix(filepath.Base(rel), ReservedPrefix) {
			return nil
		}
		if !l.matchesPattern(rel, opts.Pattern) {
			return nil
		}

		result, err := l.LoadFile(ctx, rel, opts)
		if err != nil {
			return err
		}
		results = append(results, result)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Document.FilePath < results[j].Document.FilePath
	})

	return results, nil
}

// ListFiles enumerates the rule files under dir without parsing them, applying
// the same pattern and reserved-prefix filters as LoadDirectory. The validator
// uses this to report on structurally broken documents instead of aborting.
func (l *Loader) ListFiles(ctx context.Context, dir string, opts LoadParams) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	var paths []string

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}
		rel := filepath.ToSlash(path)
		if strings.HasPrefix(filepath.Base(rel), ReservedPrefix) {
			return nil
		}
		if !l.matchesPattern(rel, opts.Pattern) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(paths)
	return paths, nil
}

// ReadFile exposes raw file content for callers that re-parse documents with
// their own error policy.
func (l *Loader) ReadFile(path string) ([]byte, error) {
	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("rules loader read %s: %w", rel, err)
	}
	return data, nil
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	cleanRoot := filepath.Clean(root)
	cleanCurrent := filepath.Clean(current)
	return cleanRoot == cleanCurrent
}

func (l *Loader) matchesPattern(path string, override string) bool {
	pattern := override
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	// Normalise to slash as fs.WalkDir returns slash-separated paths for DirFS.
	pattern = filepath.ToSlash(pattern)
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

// detectLocale inspects the file stem for a locale suffix, e.g.
// "async-parallel.zh.md" resolves to "zh". Files without a suffix use the
// default locale, so the same logical rule can ship in multiple languages.
func (l *Loader) detectLocale(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if idx := strings.LastIndex(stem, "."); idx >= 0 {
		suffix := stem[idx+1:]
		for _, locale := range l.locales {
			if suffix == locale {
				return locale
			}
		}
	}
	return l.defaultLocale
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("rules loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("rules loader: make relative %s: %w", path, err)
	}
	return rel, nil
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}

// LoadParams provide call-specific overrides for pattern matching and recursion.
type LoadParams struct {
	Pattern   string
	Recursive *bool
}
