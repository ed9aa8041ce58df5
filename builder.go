package csvsql

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
)

// inputKind tells which field of a pendingInput is set.
type inputKind int

const (
	inputPath inputKind = iota
	inputReader
	inputFS
)

// pendingInput is one input as added to the builder.
type pendingInput struct {
	kind   inputKind
	path   string
	reader io.Reader
	name   string
	fsys   fs.FS
}

// Builder collects inputs and options for a Pipeline.
// Use NewBuilder to create a new instance, then chain method calls to configure it.
//
// The typical usage pattern is:
//
//	pipeline, err := csvsql.NewBuilder().
//		AddPath("users.csv").
//		WithOptions(opts).
//		Build(ctx)
//	if err != nil {
//		return err
//	}
//	err = pipeline.Run(ctx, os.Stdout)
type Builder struct {
	inputs []pendingInput
	opts   Options
	logger zerolog.Logger
	stdin  io.Reader
}

// NewBuilder creates a builder with DefaultOptions, a disabled logger and
// os.Stdin as standard input.
func NewBuilder() *Builder {
	return &Builder{
		inputs: make([]pendingInput, 0),
		opts:   DefaultOptions(),
		logger: zerolog.Nop(),
		stdin:  os.Stdin,
	}
}

// AddPath adds a file or directory input. "-" reads standard input.
// A directory contributes every supported file below it, in lexical order.
//
// Supported file extensions: .csv, .tsv, .ltsv, .xlsx, .parquet
// Supported compression: .gz, .bz2, .xz, .zst
//
// Files with other extensions are read as delimited text when named directly.
//
// Returns the builder for method chaining.
func (b *Builder) AddPath(path string) *Builder {
	b.inputs = append(b.inputs, pendingInput{kind: inputPath, path: path})
	return b
}

// AddPaths adds multiple file or directory inputs.
//
// Returns the builder for method chaining.
func (b *Builder) AddPaths(paths ...string) *Builder {
	for _, path := range paths {
		b.AddPath(path)
	}
	return b
}

// AddReader adds a stream input. name is used like a file name: it derives
// the table name and selects the format, e.g. "users.tsv.gz". An empty name
// behaves like standard input. The reader is not closed.
//
// Returns the builder for method chaining.
func (b *Builder) AddReader(r io.Reader, name string) *Builder {
	b.inputs = append(b.inputs, pendingInput{kind: inputReader, reader: r, name: name})
	return b
}

// AddFS adds every supported file of fsys, in lexical path order. This is
// useful with embedded filesystems:
//
//	//go:embed data/*.csv
//	var dataFS embed.FS
//
//	subFS, _ := fs.Sub(dataFS, "data")
//	builder := csvsql.NewBuilder().AddFS(subFS)
//
// Returns the builder for method chaining.
func (b *Builder) AddFS(fsys fs.FS) *Builder {
	b.inputs = append(b.inputs, pendingInput{kind: inputFS, fsys: fsys})
	return b
}

// WithOptions replaces the run options.
func (b *Builder) WithOptions(opts Options) *Builder {
	b.opts = opts
	return b
}

// WithLogger sets the logger used for skipped inputs and progress events.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithStdin replaces the stream read for "-".
func (b *Builder) WithStdin(r io.Reader) *Builder {
	b.stdin = r
	return b
}

// Build validates the options, then checks and expands the inputs. Option
// errors are ConfigurationErrors and are reported before any path is checked.
// Inputs are not opened.
func (b *Builder) Build(ctx context.Context) (*Pipeline, error) {
	opts, err := b.opts.Validate()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := newValidator()
	sources := make([]source, 0, len(b.inputs))
	for _, in := range b.inputs {
		switch in.kind {
		case inputPath:
			collected, err := b.collectPath(v, in.path)
			if err != nil {
				return nil, err
			}
			sources = append(sources, collected...)
		case inputReader:
			if err := v.validateReader(in.reader); err != nil {
				return nil, err
			}
			sources = append(sources, readerSource(in.reader, in.name))
		case inputFS:
			if in.fsys == nil {
				return nil, fmt.Errorf("%w: nil filesystem", ErrNoInputs)
			}
			files, err := collectFS(in.fsys)
			if err != nil {
				return nil, err
			}
			if len(files) == 0 {
				return nil, fmt.Errorf("%w: filesystem has no supported files", ErrNoInputs)
			}
			for _, file := range files {
				sources = append(sources, fsSource(in.fsys, file))
			}
		}
	}

	return &Pipeline{
		opts:    opts,
		sources: sources,
		logger:  b.logger,
	}, nil
}

func (b *Builder) collectPath(v *validator, path string) ([]source, error) {
	if err := v.validatePath(path); err != nil {
		return nil, err
	}
	if path == stdinPath {
		if err := v.validateReader(b.stdin); err != nil {
			return nil, err
		}
		return []source{readerSource(b.stdin, "")}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []source{fileSource(path)}, nil
	}

	files, err := collectDirectory(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputs, path)
	}
	sources := make([]source, 0, len(files))
	for _, file := range files {
		sources = append(sources, fileSource(file))
	}
	return sources, nil
}
