package csvsql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rs/zerolog"
)

// SplitQueries splits a ';'-separated statement sequence, dropping
// statements that are empty after trimming.
//
// Semicolons are not recognized as part of string literals; a literal
// containing ';' is split like any other.
func SplitQueries(query string) []string {
	var statements []string
	for part := range strings.SplitSeq(query, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// queryRunner executes a statement sequence inside the run's transaction.
type queryRunner struct {
	tx     *sql.Tx
	out    *OutputWriter
	logger zerolog.Logger
}

// run executes every statement in order. Only the final statement's result
// set is written; if it returns no columns nothing is written.
func (r *queryRunner) run(ctx context.Context, query string) error {
	statements := SplitQueries(query)
	if len(statements) == 0 {
		return nil
	}

	last := len(statements) - 1
	for _, stmt := range statements[:last] {
		r.logger.Debug().Str("statement", stmt).Msg("executing")
		if _, err := r.tx.ExecContext(ctx, stmt); err != nil {
			return &ExecutionError{Statement: stmt, Err: err}
		}
	}

	stmt := statements[last]
	r.logger.Debug().Str("statement", stmt).Msg("querying")
	rows, err := r.tx.QueryContext(ctx, stmt)
	if err != nil {
		return &ExecutionError{Statement: stmt, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return &ExecutionError{Statement: stmt, Err: err}
	}
	if len(columns) == 0 {
		if err := rows.Err(); err != nil {
			return &ExecutionError{Statement: stmt, Err: err}
		}
		return nil
	}
	if err := r.out.WriteRows(rows); err != nil {
		return &ExecutionError{Statement: stmt, Err: err}
	}
	return nil
}
