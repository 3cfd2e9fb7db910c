package bomerr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput indicates the source bytes are not well-formed XML or JSON.
	ErrMalformedInput = errors.New("malformed input")

	// ErrSchemaViolation indicates well-formed input that does not fit the document schema (a missing required
	// field, a value outside of a closed enumeration, a value of the wrong type).
	ErrSchemaViolation = errors.New("schema violation")

	// ErrWriteFailure indicates the destination stream rejected bytes.
	ErrWriteFailure = errors.New("write failure")

	// ErrReadFailure indicates the source stream returned an error other than end of input.
	ErrReadFailure = errors.New("read failure")

	// ErrMissingField refines ErrSchemaViolation: a required field was not present.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownEnumValue refines ErrSchemaViolation: a string did not match any variant of a closed enumeration.
	ErrUnknownEnumValue = errors.New("unknown enumeration value")

	// ErrInvalidValue refines ErrSchemaViolation: a value could not be parsed as the field's type.
	ErrInvalidValue = errors.New("invalid value")
)

// SyntaxError describes input that could not be tokenized. Only the position and the parser's message text are
// kept, the parser's own error value is not part of the chain.
type SyntaxError struct {
	Format string
	Line   int
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed %s input on line %d: %s", e.Format, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed %s input: %s", e.Format, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformedInput
}

// SchemaError describes a schema violation at a specific field path (e.g. "bom.components[2].name").
type SchemaError struct {
	Path string
	Err  error
}

// NewSchemaError creates a SchemaError for the given field path.
func NewSchemaError(path string, err error) *SchemaError {
	return &SchemaError{
		Path: path,
		Err:  err,
	}
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("schema violation: %v", e.Err)
	}
	return fmt.Sprintf("schema violation at %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() []error {
	return []error{ErrSchemaViolation, e.Err}
}

// WriteError wraps an error returned by the destination stream.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("unable to write document: %v", e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWriteFailure, e.Err}
}

// ReadError wraps an error returned by the source stream.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("unable to read document: %v", e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrReadFailure, e.Err}
}
