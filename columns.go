package main

import (
	"bufio"
	"io"
	"strings"
)

// Record is one data line of a columnar listing, keyed by normalised column
// name.
type Record map[string]string

// ParseColumns reads a whitespace-aligned table such as the output of top.
//
// Lines before the header are skipped; the header is the first line whose
// tokens include every entry of expected, in any order. Each following
// non-blank line is split on runs of whitespace and zipped with the header.
// Surplus tokens belong to the last column, which in tools like top holds
// free text. Only columns named in rename are kept, under their new names.
func ParseColumns(r io.Reader, expected []string, rename map[string]string) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var header []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if coversColumns(fields, expected) {
			header = fields
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if header == nil {
		return nil, &HeaderNotFoundError{Expected: expected}
	}

	var records []Record
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < len(header) {
			return nil, &MalformedRowError{Line: lineNo, Text: line, Reason: "too few columns"}
		}

		rec := make(Record, len(rename))
		for i, col := range header {
			key, ok := rename[col]
			if !ok {
				continue
			}
			if i == len(header)-1 {
				rec[key] = strings.Join(fields[i:], " ")
			} else {
				rec[key] = fields[i]
			}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// coversColumns reports whether tokens contains every expected column.
func coversColumns(tokens, expected []string) bool {
	if len(tokens) < len(expected) {
		return false
	}
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		seen[t] = true
	}
	for _, e := range expected {
		if !seen[e] {
			return false
		}
	}
	return true
}
