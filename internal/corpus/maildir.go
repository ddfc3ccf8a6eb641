package corpus

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-imap/utf7"
)

// ReadMaildir reads every regular file under root as one message, walking the
// tree in lexical order. Hidden files and directories are skipped.
func ReadMaildir(root string) ([]Message, error) {
	var messages []Message

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		messages = append(messages, Message{
			Source: path,
			Folder: folderName(rel),
			Lines:  SplitLines(decodeCharset(raw, path)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk maildir %s: %w", root, err)
	}

	slog.Debug("maildir read", "root", root, "messages", len(messages))
	return messages, nil
}

// folderName decodes each element of a relative directory path from IMAP UTF-7.
// Elements that are not valid UTF-7 are kept as they are.
func folderName(rel string) string {
	if rel == "." {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i, p := range parts {
		parts[i] = decodeMailboxName(p)
	}
	return strings.Join(parts, "/")
}

func decodeMailboxName(name string) string {
	decoded, err := utf7.Encoding.NewDecoder().String(name)
	if err != nil {
		return name
	}
	return decoded
}
