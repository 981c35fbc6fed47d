package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/sortflow/internal/compiler"
)

// LoadResult contains a loaded document and where it came from.
type LoadResult struct {
	Document  *compiler.Document
	FileCount int // Number of CUE files found (1 for a single file)
}

// LoadError represents an error that occurred while loading a document.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	Line    int       // text-format line if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSource loads a workflow document from a text file, a .cue file or a
// directory of CUE files. Every failure is a *LoadError.
func LoadSource(path string) (*LoadResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing path: %v", err)}
	}

	fileCount := 1
	if info.IsDir() {
		cueFiles, err := FindCUEFiles(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		if len(cueFiles) == 0 {
			return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
		}
		fileCount = len(cueFiles)
	}

	doc, err := compiler.LoadPath(path)
	if err != nil {
		return nil, convertCompileError(err)
	}

	return &LoadResult{Document: doc, FileCount: fileCount}, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
			Line:    compileErr.Line,
		}
	}
	return &LoadError{
		Code:    ErrCodeLoadFailed,
		Message: err.Error(),
	}
}

// Error code constants - unified across all CLI commands.
// Graph validation codes (E101-E121) come from the compiler package.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // Load or parse failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeWriteFailed = "E007" // File write error

	// Parse errors
	ErrCodeMalformedWorkflow = "E130" // Workflow line or CUE list malformed
	ErrCodeMalformedRule     = "E131" // Rule malformed
	ErrCodeMalformedPart     = "E132" // Part malformed
)

// MapFieldToErrorCode maps a compiler error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch {
	case strings.HasSuffix(field, "attribute"), strings.HasSuffix(field, ".attr"):
		if strings.HasPrefix(field, "part") {
			return ErrCodeMalformedPart
		}
		return compiler.ErrUnknownAttribute
	case strings.HasSuffix(field, "comparator"), strings.HasSuffix(field, ".op"):
		return compiler.ErrUnknownComparator
	case strings.HasPrefix(field, "part"):
		return ErrCodeMalformedPart
	case strings.HasPrefix(field, "rule"), strings.Contains(field, "]"):
		return ErrCodeMalformedRule
	case strings.HasPrefix(field, "workflow"):
		return ErrCodeMalformedWorkflow
	default:
		return ErrCodeLoadFailed
	}
}

// loadErrorCode returns the code of err if it is a LoadError.
func loadErrorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}
