// Package mailbody turns the lines after a message header into a single plain-text body.
package mailbody

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespace = regexp.MustCompile(`\s+`)

// Extract joins lines[boundary:], strips any markup and collapses whitespace.
// A boundary past the end yields an empty body.
func Extract(lines []string, boundary int) string {
	if boundary >= len(lines) {
		return ""
	}
	if boundary < 0 {
		boundary = 0
	}
	msg := strings.Join(lines[boundary:], "\n")
	return CollapseSpace(StripMarkup(msg))
}

// CollapseSpace replaces every whitespace run with one space and trims the ends.
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// StripMarkup returns the human-readable text of s. It tolerates arbitrary tag soup:
// unbalanced or unknown tags are dropped and the text around them is kept.
// Contents of script, style, head and title elements are not text.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var text strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := atom.Atom(0)
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, or a read error we cannot get from a strings.Reader
			if z.Err() != io.EOF {
				text.Write(z.Raw())
			}
			return text.String()
		case html.TextToken:
			if skip == 0 {
				text.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); isHidden(a) && skip == 0 {
				skip = a
			}
			text.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if skip != 0 && atom.Lookup(name) == skip {
				skip = 0
			}
			text.WriteByte(' ')
		case html.SelfClosingTagToken:
			text.WriteByte(' ')
		}
	}
}

func isHidden(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Head, atom.Title:
		return true
	}
	return false
}
