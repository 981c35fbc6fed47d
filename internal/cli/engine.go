package cli

import (
	"errors"

	"github.com/roach88/sortflow/internal/compiler"
	"github.com/roach88/sortflow/internal/engine"
)

// loadEngine loads the document at path and builds an engine over it.
// Failures are written through formatter and returned as ExitErrors.
func loadEngine(opts *RootOptions, path string, formatter *OutputFormatter) (*compiler.Document, *engine.Engine, error) {
	loadResult, err := LoadSource(path)
	if err != nil {
		_ = formatter.Error(loadErrorCode(err), err.Error(), nil)
		return nil, nil, WrapExitError(ExitCommandError, "failed to load "+path, err)
	}
	formatter.VerboseLog("Loaded %d file(s) from %s", loadResult.FileCount, path)

	doc := loadResult.Document
	eng, err := engine.New(doc.Graph, engineOptions(opts)...)
	if err != nil {
		g := doc.Graph
		if opts.Entry != "" {
			g.Entry = opts.Entry
		}
		return nil, nil, reportEngineError(formatter, err, compiler.Validate(g))
	}

	return doc, eng, nil
}

// reportEngineError writes an engine failure and maps it to exit code 1.
func reportEngineError(formatter *OutputFormatter, err error, details interface{}) error {
	code := ErrCodeGeneric

	var re *engine.RuntimeError
	var se *engine.StepsExceededError
	switch {
	case errors.As(err, &re):
		code = string(re.Code)
	case errors.As(err, &se):
		code = string(engine.ErrCodeQuotaExceeded)
	}

	_ = formatter.Error(code, err.Error(), details)
	return WrapExitError(ExitFailure, code, err)
}
