package rulescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	compileMessageType  = "rules.compile_directory"
	validateMessageType = "rules.validate_directory"
	extractMessageType  = "rules.extract_tests"
)

// CompileDirectoryCommand assembles the aggregate document from every rule
// file under Directory. OutputPath is optional; when empty the result stays
// in memory for the caller to inspect.
type CompileDirectoryCommand struct {
	// Directory selects the filesystem path (relative to the rules root) to load rule files from.
	Directory string `json:"directory"`
	// OutputPath receives the aggregate Markdown document.
	OutputPath string `json:"output_path,omitempty"`
}

// Type implements command.Message.
func (CompileDirectoryCommand) Type() string { return compileMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd CompileDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("rules.compile_directory.directory_required", "directory is required"))),
	)
}

// ValidateDirectoryCommand runs the convention checks across every rule file
// under Directory and reports per-file violations.
type ValidateDirectoryCommand struct {
	// Directory selects the filesystem path (relative to the rules root) to check.
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (ValidateDirectoryCommand) Type() string { return validateMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ValidateDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("rules.validate_directory.directory_required", "directory is required"))),
	)
}

// ExtractTestsCommand pulls snippet pairs from every rule file under
// Directory and serializes them as one JSON fixture array at OutputPath.
type ExtractTestsCommand struct {
	// Directory selects the filesystem path (relative to the rules root) to scan.
	Directory string `json:"directory"`
	// OutputPath receives the serialized snippet records.
	OutputPath string `json:"output_path"`
}

// Type implements command.Message.
func (ExtractTestsCommand) Type() string { return extractMessageType }

// Validate ensures directory and output inputs are present before handlers execute.
func (cmd ExtractTestsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("rules.extract_tests.directory_required", "directory is required"))),
		validation.Field(&cmd.OutputPath, validation.Required, validation.By(requireNonBlank("rules.extract_tests.output_required", "output path is required"))),
	)
}

func requireNonBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if str, ok := value.(string); !ok || strings.TrimSpace(str) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
