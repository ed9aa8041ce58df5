package csvsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nao1215/csvsql/ddl"
	"github.com/nao1215/csvsql/driver"
)

// Session is an open database connection with the single transaction that
// every statement of a run executes in.
type Session struct {
	engine    *driver.Engine
	tx        *sql.Tx
	committed bool
	logger    zerolog.Logger
}

// OpenSession connects to the database named by descriptor and begins the
// run's transaction. Failures are ConnectionErrors and are not retried.
func OpenSession(ctx context.Context, descriptor string, logger zerolog.Logger) (*Session, error) {
	engine, err := driver.Connect(ctx, descriptor)
	if err != nil {
		return nil, &ConnectionError{Descriptor: redactedDescriptor(descriptor), Err: err}
	}

	tx, err := engine.DB().BeginTx(ctx, nil)
	if err != nil {
		_ = engine.Close()
		return nil, &ConnectionError{Descriptor: engine.Descriptor().String(), Err: fmt.Errorf("begin transaction: %w", err)}
	}

	logger.Debug().
		Str("backend", engine.Descriptor().Backend).
		Str("db", engine.Descriptor().String()).
		Msg("connected")

	return &Session{engine: engine, tx: tx, logger: logger}, nil
}

func redactedDescriptor(descriptor string) string {
	if d, err := driver.ParseDescriptor(descriptor); err == nil {
		return d.String()
	}
	return "the configured database"
}

// Tx returns the run's transaction.
func (s *Session) Tx() *sql.Tx {
	return s.tx
}

// Dialect returns the dialect of the connected database.
func (s *Session) Dialect() ddl.Dialect {
	return s.engine.Dialect()
}

// Catalog returns the tables defined during this session.
func (s *Session) Catalog() *ddl.Catalog {
	return s.engine.Catalog()
}

// Commit commits the run's transaction. It may be called once.
func (s *Session) Commit() error {
	if s.committed {
		return &ExecutionError{Err: errors.New("transaction already committed")}
	}
	if err := s.tx.Commit(); err != nil {
		return &ExecutionError{Err: fmt.Errorf("commit: %w", err)}
	}
	s.committed = true
	s.logger.Debug().Strs("tables", s.Catalog().Tables()).Msg("committed")
	return nil
}

// Close closes the connection. A transaction that was never committed is
// discarded with it.
func (s *Session) Close() error {
	var errs []error
	if !s.committed {
		if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			errs = append(errs, err)
		}
		s.logger.Debug().Msg("closed without commit, changes discarded")
	}
	errs = append(errs, s.engine.Close())
	return errors.Join(errs...)
}
