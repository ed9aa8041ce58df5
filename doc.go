// Package csvsql turns delimited text files into SQL.
//
// Each input becomes one table. csvsql infers a type for every column
// (boolean, integer, real, date, datetime, time or text), then either prints
// a CREATE TABLE statement for a SQL dialect or creates the table in a live
// database, optionally loads its rows, and runs a query over the result.
//
// # Features
//
//   - Read CSV, TSV, LTSV, Parquet, and Excel (XLSX) inputs
//   - Automatic handling of compressed inputs (gzip, bzip2, xz, zstandard)
//   - Delimiter sniffing and input encodings other than UTF-8
//   - DDL for generic SQL, SQLite, PostgreSQL, MySQL, MSSQL, Oracle, DuckDB and more
//   - Load into SQLite, DuckDB, PostgreSQL or SQL Server
//   - One transaction per run: nothing is committed unless every step succeeds
//
// # Basic Usage
//
// Print a CREATE TABLE statement for a file:
//
//	err := csvsql.Run(ctx, os.Stdout, csvsql.DefaultOptions(), "users.csv")
//
// Query files without a database. They are loaded into a private in-memory
// SQLite database that is discarded when the run ends:
//
//	opts := csvsql.DefaultOptions()
//	opts.Query = "SELECT name FROM users WHERE age > 25"
//	err := csvsql.Run(ctx, os.Stdout, opts, "users.csv")
//
// # Advanced Usage
//
// For more complex scenarios, use the Builder pattern:
//
//	opts := csvsql.DefaultOptions()
//	opts.DB = "postgresql://app@localhost/warehouse"
//	opts.Insert = true
//	opts.Tables = []string{"customers"}
//
//	pipeline, err := csvsql.NewBuilder().
//	    AddPath("export.csv.gz").
//	    AddReader(ordersReader, "orders.tsv").
//	    WithOptions(opts).
//	    WithLogger(logger).
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := pipeline.Run(ctx, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// # Table Naming
//
// Explicit table names are used one per input, in input order. Once they run
// out, names derive from the file name with compression and format extensions
// removed ("sales.csv.gz" becomes "sales"). Standard input becomes "stdin".
//
// # Errors
//
// Option conflicts are ConfigurationErrors and are reported before anything
// is read. An unreachable database is a ConnectionError. An input that cannot
// be decoded is logged and skipped. A statement rejected by the database is an
// ExecutionError and ends the run with the transaction discarded.
//
//	if errors.Is(err, csvsql.ErrConfiguration) {
//	    // usage problem
//	}
package csvsql
