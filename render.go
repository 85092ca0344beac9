package main

import (
	"fmt"
	"io"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Column widths of the fixed part of a line.
const (
	pidW  = 5
	tidW  = 5
	userW = 10
	cpuW  = 5
	memW  = 5

	// fixedWidth is everything before the THREAD column, separators included.
	fixedWidth = pidW + tidW + userW + cpuW + memW + 5
)

// RenderOptions controls Format and Print.
type RenderOptions struct {
	// Suffix is appended verbatim to every line, header included.
	Suffix string
	// MaxWidth fits each line into this many columns by truncating thread
	// names, or the whole line when its prefix leaves no room. Zero means
	// unconstrained.
	MaxWidth int
}

// Format renders rows as a header line followed by one aligned line per row.
func Format(rows []ThreadRow, opts RenderOptions) ([]string, error) {
	threadW := -1
	if opts.MaxWidth > 0 {
		threadW = opts.MaxWidth - fixedWidth
		if threadW <= 0 {
			return nil, &TerminalTooSmallError{Width: opts.MaxWidth, Need: fixedWidth}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	header := fmt.Sprintf("%*s %*s %-*s %-*s %-*s %s",
		pidW, "PID",
		tidW, "TID",
		userW, "USER",
		cpuW, "%CPU",
		memW, "%MEM",
		fitString("THREAD", threadW))
	lines = append(lines, header+opts.Suffix)

	for _, r := range rows {
		prefix := fmt.Sprintf("%*d %*d %s %-*.1f %-*.1f ",
			pidW, r.PID,
			tidW, r.TID,
			runewidth.FillRight(displayText(r.User), userW),
			cpuW, r.CPU,
			memW, r.Mem)
		lines = append(lines, fitLine(prefix, displayText(r.Name), opts.MaxWidth)+opts.Suffix)
	}
	return lines, nil
}

// Print writes the formatted rows to w, one line each.
func Print(w io.Writer, rows []ThreadRow, opts RenderOptions) error {
	lines, err := Format(rows, opts)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return &OutputError{Err: err}
		}
	}
	return nil
}

// fitString truncates s to maxLen columns; a negative maxLen leaves s as is.
func fitString(s string, maxLen int) string {
	if maxLen < 0 {
		return s
	}
	return truncateString(s, maxLen)
}

// fitLine joins a row prefix and its thread name within maxWidth columns.
// Ids wider than their column or long user names push the prefix past
// fixedWidth, so the name gets whatever this row leaves over. When nothing
// is left the whole line is cut instead.
func fitLine(prefix, name string, maxWidth int) string {
	if maxWidth <= 0 {
		return prefix + name
	}
	if rest := maxWidth - runewidth.StringWidth(prefix); rest > 0 {
		return prefix + truncateString(name, rest)
	}
	return truncateString(prefix+name, maxWidth)
}

// displayText removes combining characters, which can mess with width
// calculations and cell-by-cell drawing.
func displayText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)
	return s
}

// truncateString shortens s to at most maxLen terminal columns, marking the
// cut with "..." when there is room for it.
func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > maxLen {
		if maxLen > 3 {
			return runewidth.Truncate(s, maxLen, "...")
		}
		return runewidth.Truncate(s, maxLen, "")
	}
	return s
}
