package ddl

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nao1215/csvsql/domain/model"
)

// Execer executes a statement. *sql.Tx and *sql.DB satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Preparer prepares a statement. *sql.Tx and *sql.DB satisfy it.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// ColumnDef is one column of a table definition.
type ColumnDef struct {
	Name     string
	Type     model.ColumnType
	Length   int
	Nullable bool
}

// TableDef is a renderable table definition.
type TableDef struct {
	Name    string
	Schema  string
	Columns []ColumnDef
}

// BuildTableDef derives a table definition from an inferred schema.
// With noConstraints, text lengths and NOT NULL markers are dropped.
// When catalog is non-nil the definition is registered in it.
func BuildTableDef(table *model.Table, name string, noConstraints bool, dbSchema string, catalog *Catalog) (*TableDef, error) {
	columns := table.ColumnInfo()
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoColumns, name)
	}

	def := &TableDef{
		Name:    name,
		Schema:  dbSchema,
		Columns: make([]ColumnDef, 0, len(columns)),
	}
	for _, col := range columns {
		cd := ColumnDef{Name: col.Name, Type: col.Type, Nullable: true}
		if !noConstraints {
			cd.Nullable = col.Nullable
			switch col.Type {
			case model.ColumnTypeNull:
				cd.Length = nullColumnLength
			case model.ColumnTypeText:
				cd.Length = max(col.MaxLength, 1)
			}
		}
		def.Columns = append(def.Columns, cd)
	}

	if catalog != nil {
		if err := catalog.Define(def); err != nil {
			return nil, err
		}
	}
	return def, nil
}

// QualifiedName returns the quoted table name, prefixed with its schema if set.
func (t *TableDef) QualifiedName(d Dialect) string {
	return d.QualifiedName(t.Schema, t.Name)
}

// CreateStatement renders the CREATE TABLE statement for the dialect.
func (t *TableDef) CreateStatement(d Dialect) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(t.QualifiedName(d))
	b.WriteString(" (\n")
	for i, col := range t.Columns {
		b.WriteString("\t")
		b.WriteString(d.QuoteIdentifier(col.Name))
		b.WriteString(" ")
		b.WriteString(d.TypeName(col.Type, col.Length))
		if !col.Nullable {
			b.WriteString(" NOT NULL")
		}
		if i < len(t.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");")
	return b.String()
}

// InsertStatement renders a parameterized INSERT with an explicit column list.
func (t *TableDef) InsertStatement(d Dialect) string {
	names := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = d.QuoteIdentifier(col.Name)
		marks[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.QualifiedName(d), strings.Join(names, ", "), strings.Join(marks, ", "))
}

// Create executes the CREATE TABLE statement.
func (t *TableDef) Create(ctx context.Context, ex Execer, d Dialect) error {
	if _, err := ex.ExecContext(ctx, t.CreateStatement(d)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", t.Name, err)
	}
	return nil
}

// Insert writes rows through one prepared statement and returns the number
// of rows inserted. Columns absent from a row are inserted as NULL.
func (t *TableDef) Insert(ctx context.Context, p Preparer, d Dialect, rows []map[string]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	stmt, err := p.PrepareContext(ctx, t.InsertStatement(d))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert for table %s: %w", t.Name, err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	var inserted int64
	for i, row := range rows {
		for j, col := range t.Columns {
			args[j] = d.BindValue(col, row[col.Name])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return inserted, fmt.Errorf("failed to insert row %d into table %s: %w", i+1, t.Name, err)
		}
		inserted++
	}
	return inserted, nil
}
