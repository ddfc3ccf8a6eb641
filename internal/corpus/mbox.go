package corpus

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/emersion/go-mbox"
)

// ReadMbox reads every message of an mbox file. The folder is the file name
// decoded from IMAP UTF-7.
func ReadMbox(path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mbox: %w", err)
	}
	defer f.Close()

	folder := decodeMailboxName(filepath.Base(path))
	var messages []Message
	reader := mbox.NewReader(f)
	for i := 0; ; i++ {
		r, err := reader.NextMessage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read message %d in %s: %w", i, path, err)
		}
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read message %d in %s: %w", i, path, err)
		}
		source := fmt.Sprintf("%s#%d", path, i)
		messages = append(messages, Message{
			Source: source,
			Folder: folder,
			Lines:  SplitLines(decodeCharset(raw, source)),
		})
	}

	slog.Debug("mbox read", "path", path, "messages", len(messages))
	return messages, nil
}
