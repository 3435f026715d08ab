package interfaces

import "context"

// CompileOptions configure an aggregate compile run.
type CompileOptions struct {
	// Directory to load rule documents from, relative to the configured base path.
	Directory string
	// OutputPath receives the aggregate document. Empty means in-memory only.
	OutputPath string
}

// CompileResult carries the aggregate document plus run statistics.
type CompileResult struct {
	Output []byte
	// RuleCount is the number of documents included in the aggregate output.
	RuleCount int
	// SkippedFiles lists documents excluded because their category key is not
	// part of the known category table.
	SkippedFiles []string
}

// CompilerService builds the aggregate rules document.
type CompilerService interface {
	Compile(ctx context.Context, opts CompileOptions) (*CompileResult, error)
}

// Violation describes a single convention failure for a rule document.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FileReport groups the violations recorded for one file.
type FileReport struct {
	File       string      `json:"file"`
	Violations []Violation `json:"violations"`
}

// ValidationReport aggregates per-file results for a directory run.
type ValidationReport struct {
	Checked int          `json:"checked"`
	Invalid []FileReport `json:"invalid"`
}

// Valid reports whether every checked file passed.
func (r *ValidationReport) Valid() bool {
	return r != nil && len(r.Invalid) == 0
}

// ValidatorService checks rule documents against the authoring convention.
type ValidatorService interface {
	ValidateFile(ctx context.Context, path string) ([]Violation, error)
	ValidateDirectory(ctx context.Context, dir string) (*ValidationReport, error)
}

// SnippetRecord is one incorrect/correct code pair extracted from a rule.
type SnippetRecord struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Impact        string `json:"impact"`
	IncorrectCode string `json:"incorrectCode"`
	CorrectCode   string `json:"correctCode"`
}

// ExtractorService pulls snippet pairs out of rule documents.
type ExtractorService interface {
	ExtractDirectory(ctx context.Context, dir string) ([]SnippetRecord, error)
}
