package doclayout

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrMalformedDocument indicates the input is not a readable DOCX package or
// lacks a required part.
var ErrMalformedDocument = errors.New("malformed document")

// ErrTimeout indicates a batch worker gave up on a document.
var ErrTimeout = errors.New("analysis timed out")

// AnalysisError represents an error during the analysis of one document.
type AnalysisError struct {
	File  string
	Stage string // "open", "parse", "config"
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error in %q (%s): %v", e.File, e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError.
func NewAnalysisError(file, stage string, err error) *AnalysisError {
	return &AnalysisError{
		File:  file,
		Stage: stage,
		Err:   err,
	}
}
