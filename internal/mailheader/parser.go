package mailheader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoBoundary is returned when no line carries BoundaryMarker.
	ErrNoBoundary = errors.New("header boundary marker not found")
	// ErrOrphanContinuation is returned when a continuation line appears before any field.
	ErrOrphanContinuation = errors.New("continuation line without a preceding field")
)

// ParseError reports the line at which header parsing failed.
type ParseError struct {
	Line int // 0-based line index
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Boundary returns the index one past the first line containing BoundaryMarker.
// Lines from that index onward form the message body.
func Boundary(lines []string) (int, error) {
	for i, line := range lines {
		if strings.Contains(line, BoundaryMarker) {
			return i + 1, nil
		}
	}
	return 0, ErrNoBoundary
}

// Parse extracts the recognized header fields from the lines of one message and
// returns them with the body boundary index.
func Parse(lines []string) (Metadata, int, error) {
	end, err := Boundary(lines)
	if err != nil {
		return nil, 0, err
	}

	meta := Metadata{}
	current := ""
	for i, line := range lines[:end] {
		current, err = parseLine(meta, current, line)
		if err != nil {
			return nil, 0, &ParseError{Line: i, Text: line, Err: err}
		}
	}
	return meta, end, nil
}

// parseLine folds one header line into meta and returns the key that subsequent
// continuation lines extend.
func parseLine(meta Metadata, current, line string) (string, error) {
	if key, value, ok := newField(meta, line); ok {
		meta[key] = value
		return key, nil
	}

	text := strings.TrimSpace(line)
	// blank lines carry no text, so they neither extend a value nor count as orphans
	if text == "" {
		return current, nil
	}
	if current == "" {
		return "", ErrOrphanContinuation
	}
	meta[current] += " " + text
	return current, nil
}

// newField reports whether line starts a field that is recognized and not yet recorded.
// A repeated key such as "Date:" inside a Subject value is not a new field.
func newField(meta Metadata, line string) (string, string, bool) {
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return "", "", false
	}
	name, value, found := strings.Cut(line, ":")
	if !found || !IsRecognized(name) {
		return "", "", false
	}
	if _, exists := meta[name]; exists {
		return "", "", false
	}
	return name, strings.TrimSpace(value), true
}
