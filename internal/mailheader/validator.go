package mailheader

import (
	"net/mail"
	"regexp"
	"strings"
)

const (
	StatusMissing = "missing"
	StatusInvalid = "invalid"
)

var (
	// Fields every archived message is expected to carry
	requiredFields = []string{"From", "Date", "Message-ID"}

	// Regular expression for valid message ID format
	messageIDRegex = regexp.MustCompile(`^<[^<>@]+@[^<>@]+>$`)
)

// Validate checks the extracted metadata of one message against RFC 5322.
// It never fails; problems are reported as results.
func Validate(meta Metadata, msgIndex int) []ValidationResult {
	var results []ValidationResult

	for _, name := range requiredFields {
		if _, exists := meta[name]; !exists {
			results = append(results, ValidationResult{
				MsgIndex: msgIndex,
				Field:    name,
				Status:   StatusMissing,
			})
		}
	}

	if from, exists := meta["From"]; exists && !isValidAddressList(from) {
		results = append(results, ValidationResult{
			MsgIndex: msgIndex,
			Field:    "From",
			Status:   StatusInvalid,
			Detail:   "Invalid From address format",
		})
	}

	if date, exists := meta["Date"]; exists && ParseDate(date).IsZero() {
		results = append(results, ValidationResult{
			MsgIndex: msgIndex,
			Field:    "Date",
			Status:   StatusInvalid,
			Detail:   "Invalid Date format",
		})
	}

	if msgID, exists := meta["Message-ID"]; exists && !isValidMessageID(msgID) {
		results = append(results, ValidationResult{
			MsgIndex: msgIndex,
			Field:    "Message-ID",
			Status:   StatusInvalid,
			Detail:   "Invalid Message-ID format",
		})
	}

	return results
}

func isValidAddressList(list string) bool {
	_, err := mail.ParseAddressList(list)
	return err == nil
}

// isValidMessageID checks a Message-ID with or without surrounding <>
func isValidMessageID(msgID string) bool {
	msgID = strings.Trim(msgID, "<>")
	return messageIDRegex.MatchString("<" + msgID + ">")
}
