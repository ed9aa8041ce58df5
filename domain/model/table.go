package model

// Table is the inferred schema of one input together with its rows.
type Table struct {
	// name is the table name assigned to the input.
	name string
	// header is table header.
	header Header
	// records is table records.
	records []Record
	// columnInfo contains inferred type information for each column
	columnInfo []ColumnInfo
	// opts are the options the schema was inferred with
	opts InferenceOptions
}

// NewTable create new Table, inferring the column schema from records.
func NewTable(
	name string,
	header Header,
	records []Record,
	opts InferenceOptions,
) *Table {
	return &Table{
		name:       name,
		header:     header,
		records:    records,
		columnInfo: InferColumnsInfo(header, records, opts),
		opts:       opts,
	}
}

// Name return table name.
func (t *Table) Name() string {
	return t.name
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Records return table records.
func (t *Table) Records() []Record {
	return t.records
}

// ColumnInfo returns column information with inferred types
func (t *Table) ColumnInfo() []ColumnInfo {
	return t.columnInfo
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.records)
}

// NamedRows converts every record into a column name to typed value map.
// Cells missing from short records map to nil.
func (t *Table) NamedRows() ([]map[string]any, error) {
	rows := make([]map[string]any, 0, len(t.records))
	for _, record := range t.records {
		row := make(map[string]any, len(t.columnInfo))
		for i, col := range t.columnInfo {
			if i >= len(record) {
				row[col.Name] = nil
				continue
			}
			v, err := ParseValue(col, record[i], t.opts)
			if err != nil {
				return nil, err
			}
			row[col.Name] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
