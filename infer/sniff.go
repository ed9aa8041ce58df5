package infer

import "strings"

// sniffCandidates are tried in order; earlier candidates win ties.
var sniffCandidates = []rune{',', '\t', ';', '|', ':'}

// sniffSample returns the prefix of content the sniffer may inspect and
// whether it was cut short.
func sniffSample(content string, limit int) (string, bool) {
	if limit == NoSniffLimit || limit >= len(content) {
		return content, false
	}
	return content[:limit], true
}

// sniffConsistency is the share of sampled lines that must carry the same
// non-zero count of a candidate for it to be accepted.
const sniffConsistency = 0.9

// sniffDelimiter guesses the field delimiter of a delimited text sample. A
// candidate is accepted only when the header line and at least
// sniffConsistency of all lines contain it the same, non-zero number of times
// outside quotes. Among accepted candidates the most consistent one wins.
func sniffDelimiter(sample string, truncated bool) (rune, bool) {
	lines := strings.Split(strings.ReplaceAll(sample, "\r\n", "\n"), "\n")
	if truncated && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}

	nonEmpty := lines[:0:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonEmpty = append(nonEmpty, line)
		}
	}
	if len(nonEmpty) == 0 {
		return 0, false
	}

	var (
		best      rune
		bestScore float64
		bestMode  int
	)
	for _, candidate := range sniffCandidates {
		mode, hits := modeCount(nonEmpty, candidate)
		if mode == 0 || countOutsideQuotes(nonEmpty[0], candidate) != mode {
			continue
		}
		score := float64(hits) / float64(len(nonEmpty))
		if score < sniffConsistency {
			continue
		}
		if score > bestScore || (score == bestScore && mode > bestMode) {
			best, bestScore, bestMode = candidate, score, mode
		}
	}
	return best, bestScore > 0
}

// modeCount returns the most frequent non-zero per-line count of delim and
// on how many lines it occurs.
func modeCount(lines []string, delim rune) (int, int) {
	freq := make(map[int]int)
	for _, line := range lines {
		if n := countOutsideQuotes(line, delim); n > 0 {
			freq[n]++
		}
	}
	mode, hits := 0, 0
	for n, f := range freq {
		if f > hits || (f == hits && n > mode) {
			mode, hits = n, f
		}
	}
	return mode, hits
}

func countOutsideQuotes(line string, delim rune) int {
	inQuotes := false
	n := 0
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			n++
		}
	}
	return n
}
