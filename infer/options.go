package infer

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// NoSniffLimit lets the sniffer read the whole input.
const NoSniffLimit = -1

// ReaderOptions describe how delimited text and workbooks are read.
type ReaderOptions struct {
	// Delimiter overrides the field delimiter. Zero means sniff or ','.
	Delimiter rune
	// Tabs forces a tab delimiter.
	Tabs bool
	// SkipInitialSpace ignores whitespace immediately following the delimiter.
	SkipInitialSpace bool
	// LazyQuotes tolerates quotes appearing inside unquoted fields.
	LazyQuotes bool
	// Encoding is the character encoding of text inputs. Empty means UTF-8.
	Encoding string
	// SkipLines drops this many lines before the header row.
	SkipLines int
	// Sheet selects the XLSX worksheet. Empty means the first sheet.
	Sheet string
}

// Options configure Infer.
type Options struct {
	// SniffLimit is the number of bytes inspected to detect the delimiter.
	// NoSniffLimit inspects everything and 0 disables sniffing.
	SniffLimit int
	// BlanksAsNulls treats empty strings as null values.
	BlanksAsNulls bool
	// InferTypes enables column type inference.
	InferTypes bool
	// NoHeaderRow treats the first row as data and names columns column1..N.
	NoHeaderRow bool
	// Reader holds format-level reader options.
	Reader ReaderOptions
}

// DefaultOptions returns the options used when no flags are given.
func DefaultOptions() Options {
	return Options{
		SniffLimit:    NoSniffLimit,
		BlanksAsNulls: true,
		InferTypes:    true,
	}
}

// LookupEncoding resolves an encoding name such as "latin1" or "shift_jis".
// An empty name resolves to UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return unicode.UTF8, nil
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
}

// Validate checks reader options that do not depend on input content.
func (o Options) Validate() error {
	var errs []error
	if o.SniffLimit < NoSniffLimit {
		errs = append(errs, fmt.Errorf("%w: sniff limit %d", ErrInvalidOption, o.SniffLimit))
	}
	if o.Reader.SkipLines < 0 {
		errs = append(errs, fmt.Errorf("%w: skip lines %d", ErrInvalidOption, o.Reader.SkipLines))
	}
	if o.Reader.Delimiter == '\n' || o.Reader.Delimiter == '\r' || o.Reader.Delimiter == '"' {
		errs = append(errs, fmt.Errorf("%w: delimiter %q", ErrInvalidOption, o.Reader.Delimiter))
	}
	if _, err := LookupEncoding(o.Reader.Encoding); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
