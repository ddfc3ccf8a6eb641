package mailheader

import "strings"

const maxHeaderLineLength = 78

// Format renders meta as header lines in RecognizedKeys order.
// Values that would exceed maxHeaderLineLength are folded onto tab-indented lines.
func Format(meta Metadata) string {
	var folded strings.Builder

	for _, name := range RecognizedKeys {
		value, ok := meta[name]
		if !ok {
			continue
		}
		lines := foldValue(value, maxHeaderLineLength-len(name)-2)
		folded.WriteString(name + ": " + lines[0] + "\n")
		for _, l := range lines[1:] {
			folded.WriteString("\t" + l + "\n")
		}
	}

	return folded.String()
}

// foldValue breaks value at spaces so that the first line fits in first columns and
// the rest in maxHeaderLineLength-1. Words longer than a line are kept whole.
func foldValue(value string, first int) []string {
	words := strings.Fields(value)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	limit := first
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > limit {
			lines = append(lines, line)
			line = w
			limit = maxHeaderLineLength - 1
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
