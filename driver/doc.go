// Package driver resolves connection descriptors to database/sql drivers.
//
// Descriptors use the URL form backend[+dbapi]://user:password@host:port/database.
// SQLite (modernc.org/sqlite), PostgreSQL (pgx), SQL Server (go-mssqldb) and
// DuckDB targets can be opened; other backends are recognized but reported as
// unavailable.
package driver
