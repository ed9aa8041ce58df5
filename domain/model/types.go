// Package model provides the domain model for csvsql: the header, records and
// inferred column schema of one tabular input.
package model

import (
	"fmt"
	"strings"
)

// Header is file header.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Record is one data row of a file.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// ColumnType is the logical type inferred for a column. The SQL type name is
// chosen per dialect by the ddl package.
type ColumnType int

const (
	// ColumnTypeText is free text
	ColumnTypeText ColumnType = iota
	// ColumnTypeBoolean holds true/false style values
	ColumnTypeBoolean
	// ColumnTypeInteger holds integers within the 32-bit signed range
	ColumnTypeInteger
	// ColumnTypeBigInteger holds integers outside the 32-bit signed range
	ColumnTypeBigInteger
	// ColumnTypeReal holds floating point numbers
	ColumnTypeReal
	// ColumnTypeDate holds calendar dates without a time of day
	ColumnTypeDate
	// ColumnTypeDatetime holds timestamps
	ColumnTypeDatetime
	// ColumnTypeTime holds a time of day
	ColumnTypeTime
	// ColumnTypeNull is a column in which every value is null
	ColumnTypeNull
)

// String returns the logical type name.
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeBoolean:
		return "boolean"
	case ColumnTypeInteger:
		return "integer"
	case ColumnTypeBigInteger:
		return "biginteger"
	case ColumnTypeReal:
		return "real"
	case ColumnTypeDate:
		return "date"
	case ColumnTypeDatetime:
		return "datetime"
	case ColumnTypeTime:
		return "time"
	case ColumnTypeNull:
		return "null"
	default:
		return "text"
	}
}

// ColumnInfo is the inferred schema of one column.
type ColumnInfo struct {
	// Name is the column name taken from the header.
	Name string
	// Type is the inferred logical type.
	Type ColumnType
	// Nullable reports whether at least one value in the column is null.
	Nullable bool
	// MaxLength is the longest non-null value, in characters.
	MaxLength int
}

// UniqueColumnNames returns columns with repeated names suffixed by their
// occurrence, e.g. "a", "a_2", "a_3". Names are compared after trimming
// surrounding whitespace. A suffixed name never collides with another column.
func UniqueColumnNames(columns []string) []string {
	taken := make(map[string]bool, len(columns))
	for _, col := range columns {
		taken[strings.TrimSpace(col)] = true
	}

	seen := make(map[string]int, len(columns))
	unique := make([]string, len(columns))
	for i, col := range columns {
		key := strings.TrimSpace(col)
		seen[key]++
		if seen[key] == 1 {
			unique[i] = col
			continue
		}
		n := seen[key]
		name := fmt.Sprintf("%s_%d", key, n)
		for taken[name] {
			n++
			name = fmt.Sprintf("%s_%d", key, n)
		}
		seen[key] = n
		taken[name] = true
		unique[i] = name
	}
	return unique
}
