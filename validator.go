package csvsql

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nao1215/csvsql/ddl"
)

// validator holds the checks run by Options.Validate and Builder.Build.
type validator struct{}

// newValidator creates a new validator instance
func newValidator() *validator {
	return &validator{}
}

// validateOptions checks the effective options. The first violated rule wins.
func (v *validator) validateOptions(o Options) error {
	if o.Dialect != "" && o.DB != "" {
		return &ConfigurationError{Msg: "a dialect may only be given when neither a database nor a query is"}
	}
	if o.Insert && o.DB == "" {
		return &ConfigurationError{Msg: "insert requires a database or a query"}
	}
	if o.NoCreate && !o.Insert {
		return &ConfigurationError{Msg: "no-create is only valid together with insert"}
	}
	if _, err := ddl.ParseDialect(o.Dialect); err != nil {
		return &ConfigurationError{Msg: "unsupported dialect", Err: err}
	}
	if err := o.inferOptions().Validate(); err != nil {
		return &ConfigurationError{Msg: "invalid reader options", Err: err}
	}
	return nil
}

// validatePath checks that a file or directory input exists. "-" is stdin.
func (v *validator) validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path cannot be empty")
	}
	if path == stdinPath {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to stat path %s: %w", path, err)
	}
	return nil
}

// validateReader checks a reader input.
func (v *validator) validateReader(r io.Reader) error {
	if r == nil {
		return errors.New("reader cannot be nil")
	}
	return nil
}
