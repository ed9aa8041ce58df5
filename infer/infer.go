// Package infer decodes a tabular input and infers its column schema.
//
// Delimited text, LTSV, XLSX and Parquet inputs are supported. The format is
// chosen from the input name; unnamed inputs are read as delimited text.
package infer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/csvsql/domain/model"
)

// Infer reads r to the end and returns its inferred schema and rows. name is
// the table name to assign; fileName selects the format and may be empty.
// Empty inputs yield a nil table and a nil error.
func Infer(r io.Reader, name, fileName string, opts Options) (*model.Table, error) {
	var (
		header  []string
		records [][]string
		err     error
	)

	fileType := model.DetectFileType(fileName)
	switch fileType {
	case model.FileTypeLTSV:
		header, records, err = readLTSV(r, opts.Reader)
	case model.FileTypeXLSX:
		header, records, err = readXLSX(r, opts)
	case model.FileTypeParquet:
		header, records, err = readParquet(r)
	case model.FileTypeTSV:
		o := opts
		if o.Reader.Delimiter == 0 {
			o.Reader.Tabs = true
		}
		header, records, err = readDelimited(r, o)
	default:
		header, records, err = readDelimited(r, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s input %s: %w", fileType, displayName(fileName), err)
	}
	if len(header) == 0 {
		return nil, nil
	}

	header = model.UniqueColumnNames(header)

	rows := make([]model.Record, len(records))
	for i, rec := range records {
		if len(rec) > len(header) {
			rec = rec[:len(header)]
		}
		rows[i] = model.NewRecord(rec)
	}

	return model.NewTable(name, model.NewHeader(header), rows, model.InferenceOptions{
		BlanksAsNulls: opts.BlanksAsNulls,
		InferTypes:    opts.InferTypes,
	}), nil
}

func displayName(fileName string) string {
	if fileName == "" {
		return "<stdin>"
	}
	return fileName
}

// shapeRows applies header handling to raw rows: it returns the header
// (generated when noHeaderRow is set) and the data rows. Blank header cells
// get a positional name.
func shapeRows(raw [][]string, noHeaderRow bool) ([]string, [][]string) {
	if len(raw) == 0 {
		return nil, nil
	}

	if noHeaderRow {
		width := 0
		for _, row := range raw {
			width = max(width, len(row))
		}
		return generatedHeader(width), raw
	}

	header := make([]string, len(raw[0]))
	for i, cell := range raw[0] {
		if strings.TrimSpace(cell) == "" {
			cell = columnName(i)
		}
		header[i] = cell
	}
	return header, raw[1:]
}

func generatedHeader(width int) []string {
	header := make([]string, width)
	for i := range header {
		header[i] = columnName(i)
	}
	return header
}

func columnName(i int) string {
	return "column" + strconv.Itoa(i+1)
}
