// Command csvsql generates SQL statements for delimited text files, or loads
// them into a database and runs queries over them.
//
//	csvsql data.csv                                  # print CREATE TABLE
//	csvsql --db sqlite:///out.db --insert data.csv   # create and load
//	csvsql --query "SELECT count(*) FROM data" data.csv
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/nao1215/csvsql"
	"github.com/nao1215/csvsql/internal/config"
	"github.com/nao1215/csvsql/internal/logging"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns its exit code.
func run(ctx context.Context, args []string, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csvsql", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: csvsql [flags] [FILE ...]")
		fs.PrintDefaults()
	}

	cfg, err := config.LoadFromArgs(fs, getenv, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return usageError(stderr, err)
	}

	logger, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		return usageError(stderr, err)
	}
	opts, err := cfg.Options()
	if err != nil {
		return usageError(stderr, err)
	}

	pipeline, err := csvsql.NewBuilder().
		AddPaths(cfg.InputPaths(isTerminal(stdin))...).
		WithOptions(opts).
		WithLogger(logger).
		WithStdin(stdin).
		Build(ctx)
	if err != nil {
		if errors.Is(err, csvsql.ErrConfiguration) {
			return usageError(stderr, err)
		}
		fmt.Fprintln(stderr, err)
		return exitError
	}

	out := bufio.NewWriter(stdout)
	runErr := pipeline.Run(ctx, out)
	if err := errors.Join(runErr, out.Flush()); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	return exitOK
}

func usageError(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, err)
	fmt.Fprintln(stderr, "run 'csvsql -h' for usage")
	return exitUsage
}

// isTerminal reports whether r is an interactive terminal. Inputs that are
// not files are never terminals.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
