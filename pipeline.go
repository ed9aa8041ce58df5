package csvsql

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
)

// Pipeline is a validated run: options plus inputs in processing order.
type Pipeline struct {
	opts    Options
	sources []source
	logger  zerolog.Logger
}

// Options returns the effective options of the run.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Run processes every input in order and writes DDL or the final query
// result to w.
//
// In live mode the connection is opened before any input is read, all
// statements share one transaction, and that transaction is committed only
// after every input and the query succeeded. On failure nothing is committed.
func (p *Pipeline) Run(ctx context.Context, w io.Writer) (err error) {
	out := NewOutputWriter(w, p.opts.Writer)

	var session *Session
	if p.opts.liveMode() {
		session, err = OpenSession(ctx, p.opts.DB, p.logger)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := session.Close(); closeErr != nil {
				err = errors.Join(err, closeErr)
			}
		}()
	}

	g, err := newIngester(p.opts, session, out, p.logger)
	if err != nil {
		return err
	}
	for _, src := range p.sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.ingest(ctx, src); err != nil {
			return err
		}
	}

	if session == nil {
		return nil
	}
	if p.opts.Query != "" {
		runner := &queryRunner{tx: session.Tx(), out: out, logger: p.logger}
		if err := runner.run(ctx, p.opts.Query); err != nil {
			return err
		}
	}
	return session.Commit()
}

// Run builds a pipeline over paths with opts and runs it, writing to w.
func Run(ctx context.Context, w io.Writer, opts Options, paths ...string) error {
	pipeline, err := NewBuilder().AddPaths(paths...).WithOptions(opts).Build(ctx)
	if err != nil {
		return err
	}
	return pipeline.Run(ctx, w)
}
