// Package ddl renders inferred schemas as SQL table definitions and
// materializes them against a live database.
package ddl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nao1215/csvsql/domain/model"
)

// Dialect is a SQL dialect used to render statements.
// The zero value renders generic SQL.
type Dialect string

// Supported dialects.
const (
	DialectGeneric    Dialect = ""
	DialectAccess     Dialect = "access"
	DialectDuckDB     Dialect = "duckdb"
	DialectFirebird   Dialect = "firebird"
	DialectInformix   Dialect = "informix"
	DialectMaxDB      Dialect = "maxdb"
	DialectMSSQL      Dialect = "mssql"
	DialectMySQL      Dialect = "mysql"
	DialectOracle     Dialect = "oracle"
	DialectPostgreSQL Dialect = "postgresql"
	DialectSQLite     Dialect = "sqlite"
	DialectSybase     Dialect = "sybase"
)

var knownDialects = []Dialect{
	DialectAccess,
	DialectDuckDB,
	DialectFirebird,
	DialectInformix,
	DialectMaxDB,
	DialectMSSQL,
	DialectMySQL,
	DialectOracle,
	DialectPostgreSQL,
	DialectSQLite,
	DialectSybase,
}

// Dialects returns the names accepted by ParseDialect.
func Dialects() []string {
	names := make([]string, 0, len(knownDialects))
	for _, d := range knownDialects {
		names = append(names, string(d))
	}
	return names
}

// ParseDialect resolves a dialect name. An empty name is the generic dialect.
func ParseDialect(name string) (Dialect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DialectGeneric, nil
	}
	if name == "postgres" {
		return DialectPostgreSQL, nil
	}
	for _, d := range knownDialects {
		if string(d) == name {
			return d, nil
		}
	}
	return DialectGeneric, fmt.Errorf("%w: %q (choose from %s)", ErrUnknownDialect, name, strings.Join(Dialects(), ", "))
}

// typeNames is the SQL type per logical column type, indexed in the order
// boolean, integer, biginteger, real, date, datetime, time, text.
type typeNames [8]string

var genericTypes = typeNames{"BOOLEAN", "INTEGER", "BIGINT", "FLOAT", "DATE", "DATETIME", "TIME", "VARCHAR"}

var dialectTypes = map[Dialect]typeNames{
	DialectAccess:     {"YESNO", "INTEGER", "DECIMAL(19)", "DOUBLE", "DATETIME", "DATETIME", "DATETIME", "VARCHAR"},
	DialectDuckDB:     {"BOOLEAN", "INTEGER", "BIGINT", "DOUBLE", "DATE", "TIMESTAMP", "TIME", "VARCHAR"},
	DialectFirebird:   {"SMALLINT", "INTEGER", "BIGINT", "FLOAT", "DATE", "TIMESTAMP", "TIME", "VARCHAR"},
	DialectInformix:   {"BOOLEAN", "INTEGER", "BIGINT", "FLOAT", "DATE", "DATETIME YEAR TO SECOND", "DATETIME HOUR TO SECOND", "VARCHAR"},
	DialectMaxDB:      {"BOOLEAN", "INTEGER", "FIXED(19)", "FLOAT", "DATE", "TIMESTAMP", "TIME", "VARCHAR"},
	DialectMSSQL:      {"BIT", "INTEGER", "BIGINT", "FLOAT", "DATE", "DATETIME", "TIME", "VARCHAR"},
	DialectMySQL:      {"BOOL", "INTEGER", "BIGINT", "FLOAT", "DATE", "DATETIME", "TIME", "VARCHAR"},
	DialectOracle:     {"SMALLINT", "INTEGER", "NUMBER(19)", "FLOAT", "DATE", "DATE", "DATE", "VARCHAR2"},
	DialectPostgreSQL: {"BOOLEAN", "INTEGER", "BIGINT", "FLOAT", "DATE", "TIMESTAMP WITHOUT TIME ZONE", "TIME WITHOUT TIME ZONE", "VARCHAR"},
	DialectSQLite:     genericTypes,
	DialectSybase:     {"BIT", "INTEGER", "BIGINT", "FLOAT", "DATE", "DATETIME", "TIME", "VARCHAR"},
}

// nullColumnLength is the VARCHAR length used for columns without any value.
const nullColumnLength = 32

// TypeName returns the SQL type for a column. Lengths are omitted when
// length is zero.
func (d Dialect) TypeName(t model.ColumnType, length int) string {
	names, ok := dialectTypes[d]
	if !ok {
		names = genericTypes
	}

	switch t {
	case model.ColumnTypeBoolean:
		return names[0]
	case model.ColumnTypeInteger:
		return names[1]
	case model.ColumnTypeBigInteger:
		return names[2]
	case model.ColumnTypeReal:
		return names[3]
	case model.ColumnTypeDate:
		return names[4]
	case model.ColumnTypeDatetime:
		return names[5]
	case model.ColumnTypeTime:
		return names[6]
	default:
		if length > 0 {
			return names[7] + "(" + strconv.Itoa(length) + ")"
		}
		return names[7]
	}
}

// Placeholder returns the bind parameter marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	switch d {
	case DialectPostgreSQL, DialectDuckDB:
		return "$" + strconv.Itoa(n)
	case DialectMSSQL:
		return "@p" + strconv.Itoa(n)
	case DialectOracle:
		return ":" + strconv.Itoa(n)
	default:
		return "?"
	}
}

var plainIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_$]*$`)

// reservedWords are identifiers that must always be quoted.
var reservedWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`all alter and any as asc between by case cast check collate
		column constraint create cross current_date current_time current_timestamp
		default delete desc distinct drop else end except exists false fetch for foreign
		from full grant group having in index inner insert intersect into is join key
		left like limit natural not null offset on or order outer primary references
		right select set some table then to true union unique update user using values
		when where with`) {
		reservedWords[w] = struct{}{}
	}
}

// QuoteIdentifier quotes name when it is not a plain lower-case identifier
// or collides with a reserved word.
func (d Dialect) QuoteIdentifier(name string) string {
	if plainIdentifier.MatchString(name) {
		if _, reserved := reservedWords[name]; !reserved {
			return name
		}
	}

	switch d {
	case DialectPostgreSQL, DialectDuckDB:
		return pgx.Identifier{name}.Sanitize()
	case DialectMySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	case DialectMSSQL, DialectSybase, DialectAccess:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// sqliteDatetimeLayout keeps microseconds only when present.
const sqliteDatetimeLayout = "2006-01-02 15:04:05.999999"

// BindValue converts a parsed value into the argument bound for col.
// SQLite has no temporal storage class, so dates and timestamps are bound as
// ISO 8601 text that compares equal to date literals.
func (d Dialect) BindValue(col ColumnDef, v any) any {
	t, ok := v.(time.Time)
	if !ok || d != DialectSQLite {
		return v
	}
	if col.Type == model.ColumnTypeDate {
		return t.Format(time.DateOnly)
	}
	return t.Format(sqliteDatetimeLayout)
}

// QualifiedName returns the optionally schema-qualified, quoted table name.
func (d Dialect) QualifiedName(schema, table string) string {
	if schema == "" {
		return d.QuoteIdentifier(table)
	}
	return d.QuoteIdentifier(schema) + "." + d.QuoteIdentifier(table)
}
