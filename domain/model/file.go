package model

import (
	"path/filepath"
	"strings"
)

// File extensions recognized on input names.
const (
	ExtCSV     = ".csv"
	ExtTSV     = ".tsv"
	ExtLTSV    = ".ltsv"
	ExtXLSX    = ".xlsx"
	ExtParquet = ".parquet"
	ExtGZ      = ".gz"
	ExtBZ2     = ".bz2"
	ExtXZ      = ".xz"
	ExtZSTD    = ".zst"
)

// FileType is the tabular format of an input.
type FileType int

const (
	// FileTypeCSV is delimited text; also the fallback for unknown names
	FileTypeCSV FileType = iota
	// FileTypeTSV is tab separated text
	FileTypeTSV
	// FileTypeLTSV is labeled tab separated values
	FileTypeLTSV
	// FileTypeXLSX is an Excel workbook
	FileTypeXLSX
	// FileTypeParquet is an Apache Parquet file
	FileTypeParquet
)

// String returns the format name.
func (ft FileType) String() string {
	switch ft {
	case FileTypeTSV:
		return "TSV"
	case FileTypeLTSV:
		return "LTSV"
	case FileTypeXLSX:
		return "XLSX"
	case FileTypeParquet:
		return "Parquet"
	default:
		return "CSV"
	}
}

// CompressionExtensions lists the compression suffixes handled transparently.
func CompressionExtensions() []string {
	return []string{ExtGZ, ExtBZ2, ExtXZ, ExtZSTD}
}

// TrimCompressionExt removes a trailing compression extension from name.
func TrimCompressionExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range CompressionExtensions() {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// DetectFileType determines the format from a file name, ignoring any
// compression extension. Unknown or empty names are CSV.
func DetectFileType(name string) FileType {
	switch strings.ToLower(filepath.Ext(TrimCompressionExt(name))) {
	case ExtTSV:
		return FileTypeTSV
	case ExtLTSV:
		return FileTypeLTSV
	case ExtXLSX:
		return FileTypeXLSX
	case ExtParquet:
		return FileTypeParquet
	default:
		return FileTypeCSV
	}
}

// TableFromFilePath creates a table name from a file path: the base name with
// the compression extension removed first, then the format extension.
func TableFromFilePath(filePath string) string {
	fileName := TrimCompressionExt(filepath.Base(filePath))
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
