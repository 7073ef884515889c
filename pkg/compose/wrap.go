package compose

import "strings"

// LineMeasurer measures a line in a single fixed style.
type LineMeasurer interface {
	MeasureString(s string) float64
}

// Wrap breaks text into lines no wider than maxWidth using a greedy fill.
// Words are split on runs of whitespace and joined by single spaces. The break
// test measures the candidate line with a trailing space. A word is moved to a
// new line only when the current line is non-empty, so a single word wider
// than maxWidth occupies a line of its own.
func Wrap(text string, maxWidth float64, m LineMeasurer) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if line != "" && m.MeasureString(candidate+" ") > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
