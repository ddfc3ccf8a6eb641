package textnorm

import (
	"strings"
	"testing"

	"github.com/emurenMRz/mailprep/internal/mailbody"
)

func TestFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter Filter
		in     string
		want   string
	}{
		{"link mid line", RedactLinks, "Check http://example.com now", "Check web_link now"},
		{"two links mid line", RedactLinks, "a https://x.io/p?q=1, b http://y.org c", "a web_link b web_link c"},
		{"link at line start", RedactLinks, "https://a.b/c?d=1\nnext", "web_link next"},
		{"link only on its line", RedactLinks, "see\nhttp://x.org\nbye", "see\nweb_link bye"},
		{"no scheme", RedactLinks, "www.example.com", "www.example.com"},
		{"address", RedactAddresses, "contact a@b.com please", "contact email_address please"},
		{"address at end", RedactAddresses, "mail me@x.org", "mail email_address "},
		{"image", RemoveImageTags, "look [IMAGE] here", "look   here"},
		{"other brackets", RemoveImageTags, "[image]", "[image]"},
		{"punctuation", RemovePunctuation, "Hello, world!", "Hello world"},
		{"punctuation fuses", RemovePunctuation, "e-mail don't", "email dont"},
		{"non-ascii kept", RemovePunctuation, "café—ok", "café—ok"},
		{"numbers", RemoveNumbers, "call 555 1234x", "call    x"},
		{"whitespace", CollapseWhitespace, "a \t\n b  c", "a b c"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.filter(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFiltersIdempotent(t *testing.T) {
	t.Parallel()

	in := "Visit http://x.com or mail a@b.com 42 times, 7 days"
	for name, f := range map[string]Filter{
		"links":     RedactLinks,
		"addresses": RedactAddresses,
		"numbers":   RemoveNumbers,
	} {
		once := f(in)
		if twice := f(once); twice != once {
			t.Errorf("%s: second pass changed %q to %q", name, once, twice)
		}
	}
}

func TestStrip(t *testing.T) {
	t.Parallel()

	msgs := []string{
		"Hi Tim,\nhttp://www.enron.com/report.html\nSee [IMAGE] 3 charts from j.doe@enron.com!",
		"",
		"Plain words only",
	}
	got := Strip(msgs)

	if len(got) != len(msgs) {
		t.Fatalf("got %d messages, want %d", len(got), len(msgs))
	}
	want := "Hi Tim weblink See charts from emailaddress "
	if got[0] != want {
		t.Errorf("got %q, want %q", got[0], want)
	}
	if got[1] != "" {
		t.Errorf("empty message: got %q", got[1])
	}
	if got[2] != "Plain words only" {
		t.Errorf("got %q, want %q", got[2], "Plain words only")
	}
}

func TestStripKeepsTextAfterBodyLink(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Subject: report",
		"X-FileName: f",
		"Hi team, the report is at http://enron.com/r.html",
		"",
		"Gas prices rose sharply in California this week. Please review the contracts.",
	}
	body := mailbody.Extract(lines, 2)

	got := Strip([]string{body})[0]
	want := "Hi team the report is at weblink Gas prices rose sharply in California this week Please review the contracts"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStripOrderMatters(t *testing.T) {
	t.Parallel()

	in := "go to http://example.com"
	reordered := Chain(RemovePunctuation, RedactLinks)(in)
	if strings.Contains(reordered, LinkPlaceholder) {
		t.Errorf("punctuation removal first should break link matching, got %q", reordered)
	}
	if got := Chain(StripFilters...)(in); !strings.Contains(got, "weblink") {
		t.Errorf("got %q, want redacted link", got)
	}
}

func TestStem(t *testing.T) {
	t.Parallel()

	msgs := []string{"Running meetings happily", ""}

	tokens := Stem(msgs, StemTokens)
	if tokens[0] != "run meet happili" {
		t.Errorf("token mode: got %q, want %q", tokens[0], "run meet happili")
	}
	if tokens[1] != "" {
		t.Errorf("empty message: got %q", tokens[1])
	}

	whole := Stem(msgs, StemWhole)
	if !strings.HasPrefix(whole[0], "running meetings ") {
		t.Errorf("whole mode should only touch the final suffix, got %q", whole[0])
	}
}

func TestParseStemMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]StemMode{"": StemTokens, "TOKEN": StemTokens, "whole": StemWhole} {
		got, err := ParseStemMode(in)
		if err != nil || got != want {
			t.Errorf("ParseStemMode(%q): got %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseStemMode("snowball"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
