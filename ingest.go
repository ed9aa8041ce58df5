package csvsql

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/nao1215/csvsql/ddl"
	"github.com/nao1215/csvsql/domain/model"
	"github.com/nao1215/csvsql/infer"
)

// ingester turns each input into a CREATE TABLE statement (static mode) or
// into a created and optionally populated table (live mode).
type ingester struct {
	opts    Options
	dialect ddl.Dialect
	session *Session // nil in static mode
	names   *TableNameQueue
	out     *OutputWriter
	logger  zerolog.Logger
}

func newIngester(opts Options, session *Session, out *OutputWriter, logger zerolog.Logger) (*ingester, error) {
	dialect, err := ddl.ParseDialect(opts.Dialect)
	if err != nil {
		return nil, &ConfigurationError{Msg: "unsupported dialect", Err: err}
	}
	if session != nil {
		dialect = session.Dialect()
	}
	return &ingester{
		opts:    opts,
		dialect: dialect,
		session: session,
		names:   NewTableNameQueue(opts.Tables),
		out:     out,
		logger:  logger,
	}, nil
}

// ingest processes one input. Empty and undecodable inputs are logged and
// skipped; any other failure ends the run.
func (g *ingester) ingest(ctx context.Context, src source) error {
	input, err := openInput(src)
	if err != nil {
		var decodeErr *DecodingError
		if errors.As(err, &decodeErr) {
			g.skip(decodeErr.Source, decodeErr)
			// the input still claims its table name
			g.names.resolve(src.name)
			return nil
		}
		return err
	}

	tableName := g.names.Resolve(input)
	table, err := infer.Infer(input, tableName, input.Name(), g.opts.inferOptions())
	if closeErr := input.Close(); closeErr != nil {
		g.logger.Warn().Err(closeErr).Str("source", sourceLabel(input.Name())).Msg("failed to close input")
	}
	if err != nil {
		g.skip(sourceLabel(input.Name()), &DecodingError{Source: sourceLabel(input.Name()), Err: err})
		return nil
	}
	if table == nil {
		g.logger.Warn().Str("source", sourceLabel(input.Name())).Msg("skipping empty input")
		return nil
	}

	if g.session == nil {
		def, err := ddl.BuildTableDef(table, tableName, g.opts.NoConstraints, "", nil)
		if err != nil {
			return NewErrorContext("render table", input.Name()).WithTable(tableName).Error(err)
		}
		return g.out.WriteStatement(def.CreateStatement(g.dialect))
	}
	return g.materialize(ctx, table, tableName)
}

func (g *ingester) skip(sourceName string, err error) {
	g.logger.Warn().Err(err).Str("source", sourceName).Msg("skipping input that could not be decoded")
}

// materialize creates the table inside the session's transaction and bulk
// inserts its rows when requested.
func (g *ingester) materialize(ctx context.Context, table *model.Table, tableName string) error {
	tx := g.session.Tx()
	def, err := ddl.BuildTableDef(table, tableName, g.opts.NoConstraints, g.opts.DBSchema, g.session.Catalog())
	if err != nil {
		return &ExecutionError{Err: NewErrorContext("define table", "").WithTable(tableName).Error(err)}
	}

	if !g.opts.NoCreate {
		stmt := def.CreateStatement(g.dialect)
		g.logger.Debug().Str("table", def.QualifiedName(g.dialect)).Msg("creating table")
		if err := def.Create(ctx, tx, g.dialect); err != nil {
			return &ExecutionError{Statement: stmt, Err: err}
		}
	}

	if !g.opts.Insert || table.RowCount() == 0 {
		return nil
	}

	rows, err := table.NamedRows()
	if err != nil {
		return &ExecutionError{Err: NewErrorContext("convert rows", "").WithTable(tableName).Error(err)}
	}
	inserted, err := def.Insert(ctx, tx, g.dialect, rows)
	if err != nil {
		return &ExecutionError{Statement: def.InsertStatement(g.dialect), Err: err}
	}
	g.logger.Debug().Str("table", def.QualifiedName(g.dialect)).Int64("rows", inserted).Msg("inserted rows")
	return nil
}
