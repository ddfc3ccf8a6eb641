package corpus

import (
	"bufio"
	"bytes"
	"log/slog"
	"mime"
	"strings"

	"github.com/emersion/go-message/textproto"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// decodeCharset converts raw to UTF-8 using the charset declared in its
// Content-Type header. Messages without a usable declaration are returned unchanged.
func decodeCharset(raw []byte, source string) string {
	charset := declaredCharset(raw)
	switch charset {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return string(raw)
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		slog.Debug("unsupported charset, keeping raw bytes", "source", source, "charset", charset)
		return string(raw)
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		slog.Warn("failed to decode message charset", "source", source, "charset", charset, "error", err)
		return string(raw)
	}
	return string(decoded)
}

// declaredCharset returns the lowercase charset parameter of the top-level
// Content-Type header, or "" when there is none.
func declaredCharset(raw []byte) string {
	h, err := textproto.ReadHeader(bufio.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return ""
	}
	ct := h.Get("Content-Type")
	if ct == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(params["charset"]))
}
