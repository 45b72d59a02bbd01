package policy

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTable = errors.New("invalid mapping table")

// LoadTable reads a YAML mapping table override and returns it together with
// the sha256 of the file contents.
func LoadTable(path string) (Table, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, "", err
	}
	sum := sha256.Sum256(b)
	hash := hex.EncodeToString(sum[:])

	t, err := ParseTable(path, b)
	if err != nil {
		return Table{}, hash, err
	}
	return t, hash, nil
}

func ParseTable(path string, payload []byte) (Table, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(payload, &root); err != nil {
		return Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if errs := validateTableYAML(&root); len(errs) > 0 {
		return Table{}, fmt.Errorf("%w: %s", ErrInvalidTable, formatSchemaErrors(path, errs))
	}
	var t Table
	if err := root.Content[0].Decode(&t); err != nil {
		return Table{}, fmt.Errorf("decode %s: %w", path, err)
	}
	for i := range t.Categories {
		t.Categories[i].Tier = strings.ToLower(strings.TrimSpace(t.Categories[i].Tier))
	}
	if errs := ValidateTable(t); len(errs) > 0 {
		return Table{}, fmt.Errorf("%w: %s: %s", ErrInvalidTable, path, strings.Join(errs, "; "))
	}
	return t, nil
}
