package csvsql

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// OutputWriter writes DDL statements and query results to one stream.
type OutputWriter struct {
	w    io.Writer
	opts WriterOptions
}

// NewOutputWriter returns a writer targeting w.
func NewOutputWriter(w io.Writer, opts WriterOptions) *OutputWriter {
	return &OutputWriter{w: w, opts: opts}
}

// WriteStatement writes stmt followed by a newline.
func (o *OutputWriter) WriteStatement(stmt string) error {
	if _, err := io.WriteString(o.w, stmt+"\n"); err != nil {
		return fmt.Errorf("failed to write statement: %w", err)
	}
	return nil
}

// resultRows is the part of *sql.Rows the writer consumes.
type resultRows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

var _ resultRows = (*sql.Rows)(nil)

// WriteRows writes a header of column names followed by every row as CSV.
func (o *OutputWriter) WriteRows(rows resultRows) error {
	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read result columns: %w", err)
	}

	cw := csv.NewWriter(o.w)
	if o.opts.Delimiter != 0 {
		cw.Comma = o.opts.Delimiter
	}
	cw.UseCRLF = o.opts.UseCRLF

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	record := make([]string, len(columns))

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			record[i] = formatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read rows: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// formatValue renders a scanned database value as CSV text.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format("2006-01-02 15:04:05.999999999")
	default:
		return fmt.Sprint(val)
	}
}
