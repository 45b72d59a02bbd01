package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteJSON writes value as two-space indented JSON. HTML characters are not
// escaped so playbook descriptions stay readable.
func WriteJSON(path string, value interface{}) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
		return err
	}
	return nil
}
