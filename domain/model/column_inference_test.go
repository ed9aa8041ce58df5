package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferColumnInfo(t *testing.T) {
	t.Parallel()

	opts := DefaultInferenceOptions()

	tests := []struct {
		name     string
		values   []string
		wantType ColumnType
		nullable bool
		maxLen   int
	}{
		{name: "integers", values: []string{"1", "2", "-3"}, wantType: ColumnTypeInteger, maxLen: 2},
		{name: "big integers", values: []string{"1", "3000000000"}, wantType: ColumnTypeBigInteger, maxLen: 10},
		{name: "reals", values: []string{"1.5", "2", "3e2"}, wantType: ColumnTypeReal, maxLen: 3},
		{name: "reals with bare decimal point", values: []string{"1.", ".5", "-2.e3"}, wantType: ColumnTypeReal, maxLen: 5},
		{name: "leading zero real stays text", values: []string{"01.5", "2.5"}, wantType: ColumnTypeText, maxLen: 4},
		{name: "booleans", values: []string{"true", "False", "yes", "N"}, wantType: ColumnTypeBoolean, maxLen: 5},
		{name: "dates", values: []string{"2024-01-02", "1/2/2006"}, wantType: ColumnTypeDate, maxLen: 10},
		{name: "dates mixed with datetimes", values: []string{"2024-01-02", "2024-01-02 10:00:00"}, wantType: ColumnTypeDatetime, maxLen: 19},
		{name: "times", values: []string{"10:00", "23:59:59"}, wantType: ColumnTypeTime, maxLen: 8},
		{name: "leading zeros stay text", values: []string{"007", "123"}, wantType: ColumnTypeText, maxLen: 3},
		{name: "text", values: []string{"alice", "1"}, wantType: ColumnTypeText, maxLen: 5},
		{name: "nulls are skipped", values: []string{"1", "", "NULL", "n/a"}, wantType: ColumnTypeInteger, nullable: true, maxLen: 1},
		{name: "only nulls", values: []string{"", "na"}, wantType: ColumnTypeNull, nullable: true},
		{name: "no values", values: nil, wantType: ColumnTypeNull},
		{name: "multibyte length", values: []string{"日本語"}, wantType: ColumnTypeText, maxLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := InferColumnInfo("col", tt.values, opts)
			assert.Equal(t, "col", got.Name)
			assert.Equal(t, tt.wantType, got.Type, "type was %s", got.Type)
			assert.Equal(t, tt.nullable, got.Nullable)
			assert.Equal(t, tt.maxLen, got.MaxLength)
		})
	}
}

func TestInferColumnInfo_Options(t *testing.T) {
	t.Parallel()

	t.Run("blanks kept as text", func(t *testing.T) {
		t.Parallel()

		got := InferColumnInfo("c", []string{"1", ""}, InferenceOptions{BlanksAsNulls: false, InferTypes: true})
		assert.Equal(t, ColumnTypeText, got.Type)
		assert.False(t, got.Nullable)
	})

	t.Run("null tokens still null with blanks kept", func(t *testing.T) {
		t.Parallel()

		got := InferColumnInfo("c", []string{"1", "NULL"}, InferenceOptions{BlanksAsNulls: false, InferTypes: true})
		assert.Equal(t, ColumnTypeInteger, got.Type)
		assert.True(t, got.Nullable)
	})

	t.Run("inference disabled", func(t *testing.T) {
		t.Parallel()

		got := InferColumnInfo("c", []string{"1", "2"}, InferenceOptions{BlanksAsNulls: true, InferTypes: false})
		assert.Equal(t, ColumnTypeText, got.Type)
		assert.Equal(t, 1, got.MaxLength)
	})
}

func TestInferColumnsInfo(t *testing.T) {
	t.Parallel()

	header := NewHeader([]string{"id", "name", "score"})
	records := []Record{
		NewRecord([]string{"1", "alice", "1.5"}),
		NewRecord([]string{"2", "bob"}),
	}

	got := InferColumnsInfo(header, records, DefaultInferenceOptions())
	require.Len(t, got, 3)

	assert.Equal(t, ColumnInfo{Name: "id", Type: ColumnTypeInteger, MaxLength: 1}, got[0])
	assert.Equal(t, ColumnInfo{Name: "name", Type: ColumnTypeText, MaxLength: 5}, got[1])
	assert.Equal(t, ColumnInfo{Name: "score", Type: ColumnTypeReal, Nullable: true, MaxLength: 3}, got[2])

	assert.Nil(t, InferColumnsInfo(nil, records, DefaultInferenceOptions()))
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	opts := DefaultInferenceOptions()

	tests := []struct {
		name  string
		col   ColumnType
		value string
		want  any
	}{
		{name: "null", col: ColumnTypeInteger, value: "", want: nil},
		{name: "boolean", col: ColumnTypeBoolean, value: "Yes", want: true},
		{name: "integer", col: ColumnTypeInteger, value: " 42 ", want: int64(42)},
		{name: "big integer", col: ColumnTypeBigInteger, value: "3000000000", want: int64(3000000000)},
		{name: "real", col: ColumnTypeReal, value: "2.5", want: 2.5},
		{name: "date", col: ColumnTypeDate, value: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "datetime from date", col: ColumnTypeDatetime, value: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "datetime", col: ColumnTypeDatetime, value: "2024-03-01 12:30:00", want: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
		{name: "time", col: ColumnTypeTime, value: "9:05", want: "09:05:00"},
		{name: "text keeps spaces", col: ColumnTypeText, value: " a ", want: " a "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseValue(ColumnInfo{Name: "c", Type: tt.col}, tt.value, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("mismatched value", func(t *testing.T) {
		t.Parallel()

		_, err := ParseValue(ColumnInfo{Name: "c", Type: ColumnTypeInteger}, "abc", opts)
		require.ErrorIs(t, err, ErrInvalidValue)
	})
}
