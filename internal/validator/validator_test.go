package validator

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-rules/internal/markdown"
)

func doc(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n"))
}

func validDoc(title, impact string) []byte {
	return doc(
		"---",
		"title: "+title,
		"impact: "+impact,
		"---",
		"",
		"Guidance text.",
		"",
		"**Incorrect**:",
		"",
		"```js",
		"const a = await one()",
		"const b = await two()",
		"```",
		"",
		"**Correct**:",
		"",
		"```js",
		"const [a, b] = await Promise.all([one(), two()])",
		"```",
	)
}

func violationCodes(t *testing.T, source []byte, path string) []string {
	t.Helper()
	violations := CheckDocument(source, path)
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Code)
	}
	return out
}

func hasCode(codes []string, want string) bool {
	for _, code := range codes {
		if code == want {
			return true
		}
	}
	return false
}

func TestCheckDocumentValid(t *testing.T) {
	got := violationCodes(t, validDoc("Test Rule", "HIGH"), "rules/bundle-test.md")
	if len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestCheckDocumentInvalidImpact(t *testing.T) {
	got := violationCodes(t, validDoc("Test Rule", "SUPER-HIGH"), "rules/bundle-test.md")
	if len(got) != 1 || got[0] != CodeInvalidImpact {
		t.Fatalf("expected exactly one invalid_impact violation, got %v", got)
	}

	violations := CheckDocument(validDoc("Test Rule", "SUPER-HIGH"), "rules/bundle-test.md")
	if !strings.Contains(violations[0].Message, "SUPER-HIGH") {
		t.Errorf("message should name the offending value, got %q", violations[0].Message)
	}
	if !strings.Contains(violations[0].Message, "CRITICAL") {
		t.Errorf("message should enumerate accepted values, got %q", violations[0].Message)
	}
}

func TestCheckDocumentMissingFrontmatterShortCircuits(t *testing.T) {
	source := doc(
		"# No metadata",
		"",
		"**Incorrect**: also missing everything else.",
	)

	got := violationCodes(t, source, "rules/bundle-test.md")
	if len(got) != 1 || got[0] != CodeMissingFrontmatter {
		t.Fatalf("expected only missing_frontmatter, got %v", got)
	}
}

func TestCheckDocumentUnclosedFrontmatter(t *testing.T) {
	source := doc(
		"---",
		"title: Broken",
		"impact: HIGH",
	)

	got := violationCodes(t, source, "rules/bundle-test.md")
	if len(got) != 1 || got[0] != CodeUnclosedFrontmatter {
		t.Fatalf("expected only unclosed_frontmatter, got %v", got)
	}
}

func TestCheckDocumentIndependentViolationsAccumulate(t *testing.T) {
	source := doc(
		"---",
		"impact: SUPER-HIGH",
		"---",
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
	)

	got := violationCodes(t, source, "rules/bundle-test.md")
	if len(got) != 2 {
		t.Fatalf("expected 2 violations, got %v", got)
	}
	if !hasCode(got, CodeMissingTitle) || !hasCode(got, CodeInvalidImpact) {
		t.Errorf("expected missing_title and invalid_impact, got %v", got)
	}
}

func TestCheckDocumentUnknownCategory(t *testing.T) {
	got := violationCodes(t, validDoc("Test Rule", "HIGH"), "rules/mystery-test.md")
	if len(got) != 1 || got[0] != CodeUnknownCategory {
		t.Fatalf("expected only unknown_category, got %v", got)
	}
}

func TestCheckDocumentMissingMarkers(t *testing.T) {
	source := doc(
		"---",
		"title: Test Rule",
		"impact: HIGH",
		"---",
		"",
		"Text with code but no markers.",
		"",
		"```js",
		"code()",
		"```",
		"",
		"```js",
		"moreCode()",
		"```",
	)

	got := violationCodes(t, source, "rules/bundle-test.md")
	if !hasCode(got, CodeMissingIncorrect) || !hasCode(got, CodeMissingCorrect) {
		t.Errorf("expected both marker violations, got %v", got)
	}
}

func TestCheckDocumentUnclosedCodeBlock(t *testing.T) {
	source := doc(
		"---",
		"title: Test Rule",
		"impact: HIGH",
		"---",
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
	)

	got := violationCodes(t, source, "rules/bundle-test.md")
	if !hasCode(got, CodeUnclosedCodeBlock) {
		t.Errorf("expected unclosed_code_block, got %v", got)
	}
}

func TestCheckDocumentMissingCodeBlocks(t *testing.T) {
	source := doc(
		"---",
		"title: Test Rule",
		"impact: HIGH",
		"---",
		"",
		"**Incorrect**: prose only.",
		"",
		"**Correct**: still prose only.",
	)

	got := violationCodes(t, source, "rules/bundle-test.md")
	if len(got) != 1 || got[0] != CodeMissingCodeBlocks {
		t.Fatalf("expected only missing_code_blocks, got %v", got)
	}
}

func TestCheckDocumentChineseMarkers(t *testing.T) {
	source := doc(
		"---",
		"title: 并行请求",
		"impact: HIGH",
		"---",
		"",
		"**错误示例**：",
		"",
		"```js",
		"bad()",
		"```",
		"",
		"**正确示例**：",
		"",
		"```js",
		"good()",
		"```",
	)

	got := violationCodes(t, source, "rules/async-parallel.zh.md")
	if len(got) != 0 {
		t.Fatalf("expected Chinese markers to satisfy the checks, got %v", got)
	}
}

func TestValidateDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"rules/bundle-good.md":   {Data: validDoc("Good Rule", "HIGH")},
		"rules/async-good.md":    {Data: validDoc("Also Good", "CRITICAL")},
		"rules/bundle-broken.md": {Data: []byte("no frontmatter at all")},
		"rules/mystery-rule.md":  {Data: validDoc("Odd Category", "LOW")},
		"rules/_template.md":     {Data: []byte("reserved, never checked")},
	}

	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{DefaultLocale: "en"})
	service := NewService(Config{Loader: loader})

	report, err := service.ValidateDirectory(context.Background(), "rules")
	if err != nil {
		t.Fatalf("ValidateDirectory returned error: %v", err)
	}

	if report.Checked != 4 {
		t.Errorf("expected 4 checked files, got %d", report.Checked)
	}
	if len(report.Invalid) != 2 {
		t.Fatalf("expected 2 invalid files, got %d: %+v", len(report.Invalid), report.Invalid)
	}
	if report.Valid() {
		t.Error("report with violations must not be valid")
	}

	byFile := map[string][]string{}
	for _, fr := range report.Invalid {
		for _, v := range fr.Violations {
			byFile[fr.File] = append(byFile[fr.File], v.Code)
		}
	}
	if !hasCode(byFile["rules/bundle-broken.md"], CodeMissingFrontmatter) {
		t.Errorf("expected missing_frontmatter for broken file, got %v", byFile["rules/bundle-broken.md"])
	}
	if !hasCode(byFile["rules/mystery-rule.md"], CodeUnknownCategory) {
		t.Errorf("expected unknown_category for mystery file, got %v", byFile["rules/mystery-rule.md"])
	}
}

func TestValidateDirectoryAllValid(t *testing.T) {
	fsys := fstest.MapFS{
		"rules/bundle-good.md": {Data: validDoc("Good Rule", "HIGH")},
	}

	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{DefaultLocale: "en"})
	service := NewService(Config{Loader: loader})

	report, err := service.ValidateDirectory(context.Background(), "rules")
	if err != nil {
		t.Fatalf("ValidateDirectory returned error: %v", err)
	}
	if !report.Valid() {
		t.Errorf("expected valid report, got %+v", report.Invalid)
	}
	if report.Checked != 1 {
		t.Errorf("expected 1 checked file, got %d", report.Checked)
	}
}

func TestValidateFile(t *testing.T) {
	fsys := fstest.MapFS{
		"rules/bundle-good.md": {Data: validDoc("Good Rule", "HIGH")},
	}

	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{DefaultLocale: "en"})
	service := NewService(Config{Loader: loader})

	violations, err := service.ValidateFile(context.Background(), "rules/bundle-good.md")
	if err != nil {
		t.Fatalf("ValidateFile returned error: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("expected no violations, got %v", violations)
	}
}
