package csvsql

import (
	"github.com/nao1215/csvsql/driver"
	"github.com/nao1215/csvsql/infer"
)

// WriterOptions configure the CSV written for query results.
type WriterOptions struct {
	// Delimiter is the output field delimiter. Zero means ','.
	Delimiter rune
	// UseCRLF terminates records with \r\n instead of \n.
	UseCRLF bool
}

// Options are the run options of a pipeline.
type Options struct {
	// Dialect renders DDL for a SQL dialect when no database is targeted.
	Dialect string
	// DB is the connection descriptor of the target database.
	DB string
	// Query is a ';'-separated sequence of statements run after ingestion.
	// Only the result of the last statement is written.
	Query string
	// Insert loads rows after creating each table.
	Insert bool
	// Tables are explicit table names, consumed one per input in order.
	Tables []string
	// NoConstraints omits lengths and NOT NULL markers.
	NoConstraints bool
	// NoCreate skips CREATE TABLE; rows are inserted into existing tables.
	NoCreate bool
	// Blanks keeps empty strings instead of treating them as NULL.
	Blanks bool
	// DBSchema qualifies created tables with a database schema.
	DBSchema string
	// SniffLimit bounds delimiter sniffing in bytes. infer.NoSniffLimit reads
	// everything and 0 disables sniffing.
	SniffLimit int
	// NoInference makes every column text.
	NoInference bool
	// NoHeaderRow treats the first row of each input as data.
	NoHeaderRow bool
	// Reader holds input format options.
	Reader infer.ReaderOptions
	// Writer holds query result output options.
	Writer WriterOptions
}

// DefaultOptions returns the options used when nothing is configured:
// static DDL output with unbounded delimiter sniffing.
func DefaultOptions() Options {
	return Options{SniffLimit: infer.NoSniffLimit}
}

// Validate checks option combinations without touching any input or
// database. It returns the effective options: a query without a database
// targets a private in-memory database and implies Insert.
func (o Options) Validate() (Options, error) {
	if o.Query != "" && o.DB == "" {
		o.DB = driver.MemoryDescriptor
		o.Insert = true
	}
	if err := newValidator().validateOptions(o); err != nil {
		return Options{}, err
	}
	return o, nil
}

// liveMode reports whether statements run against a database.
func (o Options) liveMode() bool {
	return o.DB != ""
}

func (o Options) inferOptions() infer.Options {
	return infer.Options{
		SniffLimit:    o.SniffLimit,
		BlanksAsNulls: !o.Blanks,
		InferTypes:    !o.NoInference,
		NoHeaderRow:   o.NoHeaderRow,
		Reader:        o.Reader,
	}
}
