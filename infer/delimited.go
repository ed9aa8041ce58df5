package infer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	csvDelimiter = ','
	tsvDelimiter = '\t'
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText reads all of r and converts it to UTF-8 from the named encoding.
// A leading byte order mark is dropped.
func decodeText(r io.Reader, encodingName string) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return "", err
	}
	if enc == unicode.UTF8 {
		content = bytes.TrimPrefix(content, utf8BOM)
		if !utf8.Valid(content) {
			return "", fmt.Errorf("%w: invalid UTF-8 (try a different encoding)", ErrMalformedInput)
		}
		return string(content), nil
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), content)
	if err != nil {
		return "", fmt.Errorf("%w: decode %s: %w", ErrMalformedInput, encodingName, err)
	}
	return string(decoded), nil
}

// skipLines drops the first n lines of text.
func skipLines(text string, n int) string {
	for ; n > 0 && text != ""; n-- {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return ""
		}
		text = text[i+1:]
	}
	return text
}

// delimiterFor picks the field delimiter from explicit options or by sniffing.
func delimiterFor(text string, opts Options) rune {
	switch {
	case opts.Reader.Delimiter != 0:
		return opts.Reader.Delimiter
	case opts.Reader.Tabs:
		return tsvDelimiter
	case opts.SniffLimit == 0:
		return csvDelimiter
	}
	sample, truncated := sniffSample(text, opts.SniffLimit)
	if d, ok := sniffDelimiter(sample, truncated); ok {
		return d
	}
	return csvDelimiter
}

// readDelimited parses delimited text into a header and data rows.
func readDelimited(r io.Reader, opts Options) ([]string, [][]string, error) {
	text, err := decodeText(r, opts.Reader.Encoding)
	if err != nil {
		return nil, nil, err
	}
	text = skipLines(text, opts.Reader.SkipLines)
	if strings.TrimSpace(text) == "" {
		return nil, nil, nil
	}

	csvReader := csv.NewReader(strings.NewReader(text))
	csvReader.Comma = delimiterFor(text, opts)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = opts.Reader.LazyQuotes
	csvReader.TrimLeadingSpace = opts.Reader.SkipInitialSpace
	csvReader.ReuseRecord = false

	var raw [][]string
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		raw = append(raw, record)
	}

	header, records := shapeRows(raw, opts.NoHeaderRow)
	return header, records, nil
}
