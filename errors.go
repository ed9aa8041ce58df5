package csvsql

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per failure class. Each typed error below unwraps to
// its sentinel as well as to its cause.
var (
	// ErrConfiguration indicates an invalid combination of options
	ErrConfiguration = errors.New("csvsql: invalid configuration")

	// ErrConnection indicates the target database could not be reached
	ErrConnection = errors.New("csvsql: connection failed")

	// ErrDecoding indicates an input could not be decoded
	ErrDecoding = errors.New("csvsql: input could not be decoded")

	// ErrExecution indicates a statement failed against the database
	ErrExecution = errors.New("csvsql: statement failed")

	// ErrFileNotFound indicates an input path does not exist
	ErrFileNotFound = errors.New("csvsql: file not found")

	// ErrNoInputs indicates a directory or filesystem yielded no input files
	ErrNoInputs = errors.New("csvsql: no input files found")
)

// ConfigurationError reports an invalid option combination. It is raised
// before any input is read or any connection is made.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("csvsql: %s: %v", e.Msg, e.Err)
	}
	return "csvsql: " + e.Msg
}

// Unwrap returns ErrConfiguration and the cause.
func (e *ConfigurationError) Unwrap() []error {
	return unwrapWith(ErrConfiguration, e.Err)
}

// ConnectionError reports a target database that could not be opened.
type ConnectionError struct {
	// Descriptor is the connection descriptor with its password masked.
	Descriptor string
	Err        error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("csvsql: cannot connect to %s: %v", e.Descriptor, e.Err)
}

// Unwrap returns ErrConnection and the cause.
func (e *ConnectionError) Unwrap() []error {
	return unwrapWith(ErrConnection, e.Err)
}

// DecodingError reports an input that could not be decoded. The run skips
// the input and continues.
type DecodingError struct {
	// Source is the input name, or "stdin".
	Source string
	Err    error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("csvsql: cannot decode %s: %v", e.Source, e.Err)
}

// Unwrap returns ErrDecoding and the cause.
func (e *DecodingError) Unwrap() []error {
	return unwrapWith(ErrDecoding, e.Err)
}

// ExecutionError reports a statement rejected by the database.
type ExecutionError struct {
	// Statement is the SQL text that failed, when known.
	Statement string
	Err       error
}

func (e *ExecutionError) Error() string {
	if e.Statement == "" {
		return fmt.Sprintf("csvsql: %v", e.Err)
	}
	return fmt.Sprintf("csvsql: statement failed: %v\n%s", e.Err, e.Statement)
}

// Unwrap returns ErrExecution and the cause.
func (e *ExecutionError) Unwrap() []error {
	return unwrapWith(ErrExecution, e.Err)
}

func unwrapWith(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	TableName string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	parts := []string{ec.Operation + " failed"}
	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}
	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return errors.New(context)
}
