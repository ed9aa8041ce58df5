package model

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// temporalKind tells which temporal types a pattern satisfies.
type temporalKind int

const (
	kindDate temporalKind = iota
	kindDatetime
	kindTime
)

// Common date, datetime and time patterns to detect
var temporalPatterns = []struct {
	pattern *regexp.Regexp
	kind    temporalKind
	formats []string // Multiple formats for the same pattern
}{
	// ISO8601 formats with timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		kindDatetime,
		[]string{time.RFC3339, time.RFC3339Nano},
	},
	// ISO8601 formats without timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		kindDatetime,
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999"},
	},
	// ISO8601 date and time with space
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}(:\d{2}(\.\d+)?)?$`),
		kindDatetime,
		[]string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.999999999", "2006-01-02 15:04"},
	},
	// ISO8601 date only
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		kindDate,
		[]string{"2006-01-02"},
	},
	// US formats
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}:\d{2}( (AM|PM))?$`),
		kindDatetime,
		[]string{"1/2/2006 15:04:05", "1/2/2006 3:04:05 PM", "01/02/2006 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		kindDate,
		[]string{"1/2/2006", "01/02/2006"},
	},
	// European formats
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4} \d{1,2}:\d{2}:\d{2}$`),
		kindDatetime,
		[]string{"2.1.2006 15:04:05", "02.01.2006 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		kindDate,
		[]string{"2.1.2006", "02.01.2006"},
	},
	// Time only
	{
		regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}(\.\d+)?$`),
		kindTime,
		[]string{"15:04:05", "15:04:05.999999999", "3:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}:\d{2}$`),
		kindTime,
		[]string{"15:04", "3:04"},
	},
}

var (
	// integerPattern rejects leading zeros so identifiers such as zip codes stay text.
	integerPattern = regexp.MustCompile(`^[-+]?(0|[1-9][0-9]*)$`)

	// realPattern accepts "1.", ".5" and exponents but, like integerPattern,
	// no leading zeros: "01.5" stays text.
	realPattern = regexp.MustCompile(`^[-+]?((0|[1-9][0-9]*)(\.[0-9]*)?|\.[0-9]+)([eE][-+]?[0-9]+)?$`)

	nullTokens  = []string{"na", "n/a", "none", "null", "."}
	trueTokens  = []string{"true", "t", "yes", "y"}
	falseTokens = []string{"false", "f", "no", "n"}
)

// InferenceOptions controls how raw values are classified.
type InferenceOptions struct {
	// BlanksAsNulls treats empty strings as null values.
	BlanksAsNulls bool
	// InferTypes enables type inference. When false every column is text.
	InferTypes bool
}

// DefaultInferenceOptions returns options with blanks as nulls and type inference enabled.
func DefaultInferenceOptions() InferenceOptions {
	return InferenceOptions{BlanksAsNulls: true, InferTypes: true}
}

// IsNull reports whether value is a null token.
func (o InferenceOptions) IsNull(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return o.BlanksAsNulls
	}
	return containsFold(nullTokens, trimmed)
}

func containsFold(tokens []string, value string) bool {
	for _, token := range tokens {
		if strings.EqualFold(token, value) {
			return true
		}
	}
	return false
}

// candidate bits, one per typed interpretation a value can have
const (
	candBoolean = 1 << iota
	candInteger
	candReal
	candDate
	candDatetime
	candTime

	candAll = candBoolean | candInteger | candReal | candDate | candDatetime | candTime
)

// classify returns every typed interpretation a non-null value admits.
func classify(value string) int {
	value = strings.TrimSpace(value)
	var c int
	if containsFold(trueTokens, value) || containsFold(falseTokens, value) {
		c |= candBoolean
	}
	if integerPattern.MatchString(value) {
		if _, err := strconv.ParseInt(value, 10, 64); err == nil {
			c |= candInteger | candReal
		}
	}
	if c&candReal == 0 && isReal(value) {
		c |= candReal
	}
	if kind, ok := temporalKindOf(value); ok {
		switch kind {
		case kindDate:
			// a date is also a valid timestamp at midnight
			c |= candDate | candDatetime
		case kindDatetime:
			c |= candDatetime
		case kindTime:
			c |= candTime
		}
	}
	return c
}

func isReal(value string) bool {
	if !realPattern.MatchString(value) || !strings.ContainsAny(value, "0123456789") {
		return false
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

func temporalKindOf(value string) (temporalKind, bool) {
	for _, tp := range temporalPatterns {
		if !tp.pattern.MatchString(value) {
			continue
		}
		for _, format := range tp.formats {
			if _, err := time.Parse(format, value); err == nil {
				return tp.kind, true
			}
		}
	}
	return 0, false
}

func parseTemporal(value string, want temporalKind) (time.Time, bool) {
	for _, tp := range temporalPatterns {
		if !tp.pattern.MatchString(value) {
			continue
		}
		if tp.kind != want && !(want == kindDatetime && tp.kind == kindDate) {
			continue
		}
		for _, format := range tp.formats {
			if t, err := time.Parse(format, value); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// InferColumnInfo infers the schema of a single column from its values.
func InferColumnInfo(name string, values []string, opts InferenceOptions) ColumnInfo {
	info := ColumnInfo{Name: name, Type: ColumnTypeText}

	candidates := candAll
	nonNull := 0
	var minInt, maxInt int64

	for _, value := range values {
		if opts.IsNull(value) {
			info.Nullable = true
			continue
		}
		nonNull++
		if l := utf8.RuneCountInString(value); l > info.MaxLength {
			info.MaxLength = l
		}
		if !opts.InferTypes || candidates == 0 {
			continue
		}
		candidates &= classify(value)
		if candidates&candInteger != 0 {
			n, _ := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if nonNull == 1 || n < minInt {
				minInt = n
			}
			if nonNull == 1 || n > maxInt {
				maxInt = n
			}
		}
	}

	switch {
	case nonNull == 0:
		info.Type = ColumnTypeNull
	case !opts.InferTypes:
		info.Type = ColumnTypeText
	case candidates&candBoolean != 0:
		info.Type = ColumnTypeBoolean
	case candidates&candInteger != 0:
		info.Type = ColumnTypeInteger
		if minInt < math.MinInt32 || maxInt > math.MaxInt32 {
			info.Type = ColumnTypeBigInteger
		}
	case candidates&candReal != 0:
		info.Type = ColumnTypeReal
	case candidates&candDate != 0:
		info.Type = ColumnTypeDate
	case candidates&candDatetime != 0:
		info.Type = ColumnTypeDatetime
	case candidates&candTime != 0:
		info.Type = ColumnTypeTime
	}
	return info
}

// InferColumnsInfo infers column information from header and data records.
// Records shorter than the header contribute nulls for the missing cells.
func InferColumnsInfo(header Header, records []Record, opts InferenceOptions) []ColumnInfo {
	columnCount := len(header)
	if columnCount == 0 {
		return nil
	}

	columns := make([]ColumnInfo, columnCount)
	values := make([]string, 0, len(records))
	for i, name := range header {
		values = values[:0]
		short := false
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			} else {
				short = true
			}
		}
		columns[i] = InferColumnInfo(name, values, opts)
		if short {
			columns[i].Nullable = true
		}
	}
	return columns
}

// ParseValue converts a raw value into the Go value stored for its column.
// Null tokens become nil.
func ParseValue(column ColumnInfo, value string, opts InferenceOptions) (any, error) {
	if opts.IsNull(value) {
		return nil, nil
	}

	trimmed := strings.TrimSpace(value)
	switch column.Type {
	case ColumnTypeBoolean:
		switch {
		case containsFold(trueTokens, trimmed):
			return true, nil
		case containsFold(falseTokens, trimmed):
			return false, nil
		}
	case ColumnTypeInteger, ColumnTypeBigInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n, nil
		}
	case ColumnTypeReal:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f, nil
		}
	case ColumnTypeDate:
		if t, ok := parseTemporal(trimmed, kindDate); ok {
			return t, nil
		}
	case ColumnTypeDatetime:
		if t, ok := parseTemporal(trimmed, kindDatetime); ok {
			return t, nil
		}
	case ColumnTypeTime:
		if t, ok := parseTemporal(trimmed, kindTime); ok {
			return t.Format("15:04:05.999999999"), nil
		}
	default:
		return value, nil
	}
	return nil, fmt.Errorf("%w: column %q (%s): %q", ErrInvalidValue, column.Name, column.Type, value)
}
