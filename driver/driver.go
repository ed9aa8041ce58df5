package driver

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"  // registers "duckdb"
	_ "github.com/jackc/pgx/v5/stdlib"  // registers "pgx"
	_ "github.com/microsoft/go-mssqldb" // registers "sqlserver"
	_ "modernc.org/sqlite"              // registers "sqlite"

	"github.com/nao1215/csvsql/ddl"
)

// Engine is an open, reachable database together with the dialect used to
// talk to it and the catalog of tables defined through it.
type Engine struct {
	db         *sql.DB
	descriptor *Descriptor
	catalog    *ddl.Catalog
}

// Connect parses descriptor, opens the database and pings it. It does not retry.
func Connect(ctx context.Context, descriptor string) (*Engine, error) {
	d, err := ParseDescriptor(descriptor)
	if err != nil {
		return nil, err
	}
	return Open(ctx, d)
}

// Open opens and pings the database named by d.
func Open(ctx context.Context, d *Descriptor) (*Engine, error) {
	db, err := sql.Open(d.DriverName, d.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDriverUnavailable, d.DriverName, err)
	}
	if d.InMemory {
		// every connection to an in-memory database sees a different database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreachable, d, err)
	}

	return &Engine{
		db:         db,
		descriptor: d,
		catalog:    ddl.NewCatalog(),
	}, nil
}

// DB returns the database handle.
func (e *Engine) DB() *sql.DB {
	return e.db
}

// Dialect returns the dialect of the connected backend.
func (e *Engine) Dialect() ddl.Dialect {
	return e.descriptor.Dialect
}

// Catalog returns the tables defined through this engine.
func (e *Engine) Catalog() *ddl.Catalog {
	return e.catalog
}

// Descriptor returns the parsed descriptor the engine was opened with.
func (e *Engine) Descriptor() *Descriptor {
	return e.descriptor
}

// Close closes the database.
func (e *Engine) Close() error {
	return e.db.Close()
}
