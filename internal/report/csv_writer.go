package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
)

// WriteCSV writes a header row followed by rows. Every row must have the
// header's width.
func WriteCSV(path string, header []string, rows [][]string) error {
	for i, r := range rows {
		if len(r) != len(header) {
			return fmt.Errorf("csv row %d has %d fields, header has %d", i, len(r), len(header))
		}
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
