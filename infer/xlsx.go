package infer

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads one worksheet. Leading empty rows are skipped before the header.
func readXLSX(r io.Reader, opts Options) ([]string, [][]string, error) {
	xlsxFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open XLSX file: %w", ErrMalformedInput, err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, nil, nil
	}
	sheetName := sheetNames[0]
	if opts.Reader.Sheet != "" {
		if !slices.Contains(sheetNames, opts.Reader.Sheet) {
			return nil, nil, fmt.Errorf("%w: sheet %q not found", ErrMalformedInput, opts.Reader.Sheet)
		}
		sheetName = opts.Reader.Sheet
	}

	iter, err := xlsxFile.Rows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open rows iterator for sheet %s: %w", ErrMalformedInput, sheetName, err)
	}
	defer iter.Close()

	var raw [][]string
	skip := opts.Reader.SkipLines
	for iter.Next() {
		row, err := iter.Columns()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to read row in sheet %s: %w", ErrMalformedInput, sheetName, err)
		}
		if skip > 0 {
			skip--
			continue
		}
		if len(raw) == 0 && len(row) == 0 {
			continue
		}
		raw = append(raw, row)
	}
	if err := iter.Error(); err != nil {
		return nil, nil, fmt.Errorf("%w: sheet %s: %w", ErrMalformedInput, sheetName, err)
	}

	header, records := shapeRows(raw, opts.NoHeaderRow)
	return header, records, nil
}
