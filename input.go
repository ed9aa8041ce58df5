package csvsql

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nao1215/csvsql/domain/model"
)

// stdinPath is the path that names standard input.
const stdinPath = "-"

// source is an input that has not been opened yet.
type source struct {
	// name is the file name used for table naming and format detection.
	// It is empty for standard input and unnamed readers.
	name string
	open func() (io.ReadCloser, error)
}

func fileSource(path string) source {
	return source{
		name: path,
		open: func() (io.ReadCloser, error) {
			return os.Open(path) //nolint:gosec // User-provided path is necessary for file operations
		},
	}
}

func readerSource(r io.Reader, name string) source {
	return source{
		name: name,
		// the caller owns r; closing the source leaves it open
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		},
	}
}

func fsSource(fsys fs.FS, path string) source {
	return source{
		name: path,
		open: func() (io.ReadCloser, error) {
			return fsys.Open(path)
		},
	}
}

// InputSource is an open input stream with its optional file name.
// Compressed inputs are decompressed transparently.
type InputSource struct {
	name   string
	reader io.Reader
	closer func() error
}

// Name returns the file name of the input, or "" for standard input.
func (s *InputSource) Name() string {
	return s.name
}

// Read reads decompressed input bytes.
func (s *InputSource) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Close releases the decompressor and the underlying stream.
func (s *InputSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer()
	s.closer = nil
	return err
}

// openInput opens src. Failing to open the underlying stream is returned as
// is; an unreadable compression header is a DecodingError.
func openInput(src source) (*InputSource, error) {
	rc, err := src.open()
	if err != nil {
		return nil, NewErrorContext("open input", src.name).Error(err)
	}

	reader, cleanup, err := NewCompressionFactory().CreateReader(src.name, rc)
	if err != nil {
		_ = rc.Close()
		return nil, &DecodingError{Source: sourceLabel(src.name), Err: err}
	}

	return &InputSource{
		name:   src.name,
		reader: reader,
		closer: func() error {
			return errors.Join(cleanup(), rc.Close())
		},
	}, nil
}

func sourceLabel(name string) string {
	if name == "" {
		return stdinTableName
	}
	return name
}

// supportedExtensions are the formats collected from directories and filesystems.
var supportedExtensions = []string{model.ExtCSV, model.ExtTSV, model.ExtLTSV, model.ExtXLSX, model.ExtParquet}

// isSupportedFile reports whether a directory entry looks like a tabular input.
func isSupportedFile(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(model.TrimCompressionExt(fileName)))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// collectDirectory returns the supported files below dir in lexical order.
func collectDirectory(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isSupportedFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// collectFS returns the supported files in fsys in lexical order.
func collectFS(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isSupportedFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk filesystem: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
