package mailheader

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// trailing zone comments such as "(PDT)"
var zoneComment = regexp.MustCompile(`\s*\([^()]*\)\s*$`)

// ParseDate parses common email Date header formats.
// If parsing fails, it returns zero time.
func ParseDate(dateStr string) time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}
	}
	if t, err := mail.ParseDate(dateStr); err == nil {
		return t
	}
	dateStr = zoneComment.ReplaceAllString(dateStr, "")
	if t, err := mail.ParseDate(dateStr); err == nil {
		return t
	}
	layouts := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC822Z,
		time.RFC822,
		time.RFC850,
		time.RFC3339,
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, dateStr); err == nil {
			return t
		}
	}
	return time.Time{}
}
