// Package textnorm cleans email bodies for bag-of-words modeling.
//
// The Strip filters are independent string transforms, but their order matters:
// links and addresses must be redacted before punctuation is removed, or their
// patterns no longer match.
package textnorm

import (
	"regexp"
	"strings"
)

const (
	LinkPlaceholder    = "web_link"
	AddressPlaceholder = "email_address"
)

// asciiPunctuation is the ASCII punctuation set removed by RemovePunctuation.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	linkLinePattern = regexp.MustCompile(`(?m)^https?://.*[\r\n]*`)
	linkPattern     = regexp.MustCompile(`https?://\S+`)
	addressPattern  = regexp.MustCompile(`\S*@\S*\s?`)
	imagePattern    = regexp.MustCompile(`\[IMAGE\]`)
	numberPattern   = regexp.MustCompile(`\d+`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

// Filter transforms one message.
type Filter func(string) string

// StripFilters is the fixed filter order applied by Strip.
var StripFilters = []Filter{
	RedactLinks,
	RedactAddresses,
	RemoveImageTags,
	RemovePunctuation,
	RemoveNumbers,
	CollapseWhitespace,
}

// RedactLinks replaces web links with LinkPlaceholder. A link that starts a line
// takes the rest of that line and its line break with it; any other link
// replaces only its own token.
func RedactLinks(s string) string {
	s = linkLinePattern.ReplaceAllLiteralString(s, LinkPlaceholder+" ")
	return linkPattern.ReplaceAllLiteralString(s, LinkPlaceholder)
}

// RedactAddresses replaces every whitespace-delimited token containing "@".
func RedactAddresses(s string) string {
	return addressPattern.ReplaceAllLiteralString(s, AddressPlaceholder+" ")
}

// RemoveImageTags replaces "[IMAGE]" markers with a space.
func RemoveImageTags(s string) string {
	return imagePattern.ReplaceAllLiteralString(s, " ")
}

// RemovePunctuation deletes ASCII punctuation without inserting spaces.
func RemovePunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, s)
}

// RemoveNumbers replaces each run of digits with a space.
func RemoveNumbers(s string) string {
	return numberPattern.ReplaceAllLiteralString(s, " ")
}

// CollapseWhitespace replaces each whitespace run with a single space.
func CollapseWhitespace(s string) string {
	return spacePattern.ReplaceAllLiteralString(s, " ")
}

// Apply runs filters in order over every message. The result has the same length
// and order as msgs.
func Apply(msgs []string, filters ...Filter) []string {
	f := Chain(filters...)
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = f(m)
	}
	return out
}

// Chain composes filters left to right.
func Chain(filters ...Filter) Filter {
	return func(s string) string {
		for _, f := range filters {
			s = f(s)
		}
		return s
	}
}

// Strip redacts links and addresses and removes image markers, punctuation and numbers.
func Strip(msgs []string) []string {
	return Apply(msgs, StripFilters...)
}
