// Package corpus reads raw email archives into ordered message line sequences.
package corpus

import (
	"fmt"
	"os"
	"strings"
)

// Archive formats accepted by Load.
const (
	FormatMaildir = "maildir"
	FormatMbox    = "mbox"
)

// Message is one raw email. Lines carry no line terminators.
type Message struct {
	Source string   // file the message was read from
	Folder string   // decoded folder name relative to the archive root
	Lines  []string // raw lines, header first
}

// Text returns the message lines joined with newlines.
func (m Message) Text() string {
	return strings.Join(m.Lines, "\n")
}

// Load reads every message under path. An empty format picks maildir for
// directories and mbox for regular files.
func Load(path, format string) ([]Message, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}

	if format == "" {
		format = FormatMbox
		if fi.IsDir() {
			format = FormatMaildir
		}
	}

	switch strings.ToLower(format) {
	case FormatMaildir:
		if !fi.IsDir() {
			return nil, fmt.Errorf("maildir corpus %s is not a directory", path)
		}
		return ReadMaildir(path)
	case FormatMbox:
		if fi.IsDir() {
			return nil, fmt.Errorf("mbox corpus %s is a directory", path)
		}
		return ReadMbox(path)
	}
	return nil, fmt.Errorf("unknown corpus format %q", format)
}

// SplitLines splits raw message text into lines, dropping "\r" before each "\n".
// A trailing newline does not produce an empty last line.
func SplitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
