package mailheader

// BoundaryMarker is the last header field guaranteed to be present in every message.
const BoundaryMarker = "X-FileName:"

// RecognizedKeys lists the header fields kept in Metadata, in canonical order.
var RecognizedKeys = [...]string{
	"Bcc",
	"Cc",
	"Content-Transfer-Encoding",
	"Content-Type",
	"Date",
	"From",
	"Message-ID",
	"Mime-Version",
	"Subject",
	"To",
	"X-FileName",
	"X-Folder",
	"X-From",
	"X-Origin",
	"X-To",
	"X-bcc",
	"X-cc",
}

var recognized = func() map[string]bool {
	m := make(map[string]bool, len(RecognizedKeys))
	for _, k := range RecognizedKeys {
		m[k] = true
	}
	return m
}()

// IsRecognized reports whether name is one of RecognizedKeys. Matching is case-sensitive.
func IsRecognized(name string) bool {
	return recognized[name]
}

// Metadata maps recognized header field names to their unfolded values.
type Metadata map[string]string

// Get returns the value for key and whether it was present.
func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ValidationResult represents the result of validating a message's metadata
type ValidationResult struct {
	MsgIndex int    `json:"msgIndex"`
	Field    string `json:"field"`
	Status   string `json:"status"` // "missing", "invalid"
	Detail   string `json:"detail,omitempty"`
}
