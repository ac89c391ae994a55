package structura

import "fmt"

// ProcessingError reports a pipeline stage failure. It wraps the underlying
// cause, so errors.As and errors.Is see through it; callers that only need
// the failing stage can match on the ProcessingError itself.
type ProcessingError struct {
	// Stage names the pipeline stage that failed, such as "extract" or
	// "render"
	Stage string

	// Path is the file the stage was working on, when known
	Path string

	// Err is the underlying cause
	Err error
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// stageError wraps err with stage and path context. A nil err returns nil.
func stageError(stage, path string, err error) error {
	if err == nil {
		return nil
	}
	return &ProcessingError{Stage: stage, Path: path, Err: err}
}
