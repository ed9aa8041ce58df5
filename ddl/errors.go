package ddl

import "errors"

var (
	// ErrUnknownDialect is returned when a dialect name is not recognized
	ErrUnknownDialect = errors.New("ddl: unknown dialect")

	// ErrDuplicateTable is returned when a table is defined twice in one catalog
	ErrDuplicateTable = errors.New("ddl: table already defined")

	// ErrNoColumns is returned when a table definition has no columns
	ErrNoColumns = errors.New("ddl: table has no columns")
)
