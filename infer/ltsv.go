package infer

import (
	"fmt"
	"io"
	"strings"
)

// readLTSV parses labeled tab separated values. Labels form the header in
// order of first appearance; records missing a label get an empty value.
func readLTSV(r io.Reader, opts ReaderOptions) ([]string, [][]string, error) {
	text, err := decodeText(r, opts.Encoding)
	if err != nil {
		return nil, nil, err
	}
	text = skipLines(text, opts.SkipLines)

	var (
		header   []string
		position = make(map[string]int)
		labeled  []map[string]string
	)
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		record := make(map[string]string)
		for pair := range strings.SplitSeq(line, "\t") {
			label, value, ok := strings.Cut(pair, ":")
			if !ok {
				return nil, nil, fmt.Errorf("%w: line %d: field %q has no label", ErrMalformedInput, lineNo+1, pair)
			}
			label = strings.TrimSpace(label)
			if _, seen := position[label]; !seen {
				position[label] = len(header)
				header = append(header, label)
			}
			record[label] = value
		}
		labeled = append(labeled, record)
	}
	if len(labeled) == 0 {
		return nil, nil, nil
	}

	records := make([][]string, 0, len(labeled))
	for _, rec := range labeled {
		row := make([]string, len(header))
		for label, value := range rec {
			row[position[label]] = value
		}
		records = append(records, row)
	}
	return header, records, nil
}
