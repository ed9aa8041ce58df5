package csvsql

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/nao1215/csvsql/domain/model"
)

// CompressionType is the compression applied to an input stream.
type CompressionType int

const (
	// CompressionNone represents no compression
	CompressionNone CompressionType = iota
	// CompressionGZ represents gzip compression
	CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD
)

// String returns the string representation of CompressionType
func (c CompressionType) String() string {
	switch c {
	case CompressionGZ:
		return "gz"
	case CompressionBZ2:
		return "bz2"
	case CompressionXZ:
		return "xz"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

// magic numbers of the supported compression formats
var (
	magicGZ   = []byte{0x1f, 0x8b}
	magicXZ   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicZSTD = []byte{0x28, 0xb5, 0x2f, 0xfd}
	// "BZh", a block size digit, then the block header magic
	magicBZ2Block = []byte{0x31, 0x41, 0x59, 0x26, 0x53, 0x59}
)

// decompressor wraps r with a decompressing reader and returns its cleanup.
type decompressor func(r io.Reader) (io.Reader, func() error, error)

func noCleanup() error { return nil }

var decompressors = map[CompressionType]decompressor{
	CompressionNone: func(r io.Reader) (io.Reader, func() error, error) {
		return r, noCleanup, nil
	},
	CompressionGZ: func(r io.Reader) (io.Reader, func() error, error) {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip header: %w", err)
		}
		return zr, zr.Close, nil
	},
	CompressionBZ2: func(r io.Reader) (io.Reader, func() error, error) {
		return bzip2.NewReader(r), noCleanup, nil
	},
	CompressionXZ: func(r io.Reader) (io.Reader, func() error, error) {
		zr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("xz header: %w", err)
		}
		return zr, noCleanup, nil
	},
	CompressionZSTD: func(r io.Reader) (io.Reader, func() error, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd header: %w", err)
		}
		return zr, func() error {
			zr.Close()
			return nil
		}, nil
	},
}

// CompressionFactory picks the decompressor for an input.
type CompressionFactory struct{}

// NewCompressionFactory creates a new compression factory
func NewCompressionFactory() *CompressionFactory {
	return &CompressionFactory{}
}

// DetectCompressionType detects the compression type from a file path
func (f *CompressionFactory) DetectCompressionType(path string) CompressionType {
	path = strings.ToLower(path)

	switch {
	case strings.HasSuffix(path, model.ExtGZ):
		return CompressionGZ
	case strings.HasSuffix(path, model.ExtBZ2):
		return CompressionBZ2
	case strings.HasSuffix(path, model.ExtXZ):
		return CompressionXZ
	case strings.HasSuffix(path, model.ExtZSTD):
		return CompressionZSTD
	default:
		return CompressionNone
	}
}

// DetectCompressionMagic detects the compression type from the first bytes of a stream.
func (f *CompressionFactory) DetectCompressionMagic(head []byte) CompressionType {
	switch {
	case bytes.HasPrefix(head, magicGZ):
		return CompressionGZ
	case bytes.HasPrefix(head, magicXZ):
		return CompressionXZ
	case bytes.HasPrefix(head, magicZSTD):
		return CompressionZSTD
	case len(head) >= 10 && bytes.HasPrefix(head, []byte("BZh")) &&
		head[3] >= '1' && head[3] <= '9' && bytes.Equal(head[4:10], magicBZ2Block):
		return CompressionBZ2
	default:
		return CompressionNone
	}
}

// CreateReader returns a reader that decompresses r. The compression type
// comes from the name's extension, or from the stream's magic bytes when the
// name carries no compression extension.
func (f *CompressionFactory) CreateReader(name string, r io.Reader) (io.Reader, func() error, error) {
	compressionType := f.DetectCompressionType(name)
	if compressionType == CompressionNone {
		buffered := bufio.NewReader(r)
		head, _ := buffered.Peek(10) // short streams return what they have
		compressionType = f.DetectCompressionMagic(head)
		r = buffered
	}
	decompress, ok := decompressors[compressionType]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported compression: %v", compressionType)
	}
	return decompress(r)
}
