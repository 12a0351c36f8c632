// Package lines turns pasted text into copy units: one trimmed, non-empty
// fragment per clipboard copy.
//
// Each non-blank input line yields one unit, or two when it contains a '.'
// followed by more text: everything up to and including the first '.', then
// the remainder.
package lines

import "strings"

// Process splits raw into copy units. It never fails; blank input yields an
// empty (nil) slice.
func Process(raw string) []string {
	var units []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, part := range splitLine(line) {
			if part = strings.TrimSpace(part); part != "" {
				units = append(units, part)
			}
		}
	}
	return units
}

// Count returns the number of units Process would produce for raw.
func Count(raw string) int {
	return len(Process(raw))
}

// splitLine applies the first-dot rule. A dot that ends the untrimmed line
// does not split it.
func splitLine(line string) []string {
	dot := strings.IndexByte(line, '.')
	if dot == -1 || dot == len(line)-1 {
		return []string{strings.TrimSpace(line)}
	}
	before := strings.TrimSpace(line[:dot+1])
	after := strings.TrimSpace(line[dot+1:])

	parts := make([]string, 0, 2)
	if before != "" {
		parts = append(parts, before)
	}
	if after != "" {
		parts = append(parts, after)
	}
	return parts
}
