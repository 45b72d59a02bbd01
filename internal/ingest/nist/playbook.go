package nist

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one NIST AI RMF playbook item.
type Entry struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Topics      Topics `json:"Topic"`
}

// Topics accepts either a single string or an array of strings.
type Topics []string

func (t *Topics) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*t = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*t = Topics{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("playbook Topic must be a string or an array of strings: %w", err)
	}
	*t = many
	return nil
}

// ParsePlaybook decodes the playbook JSON array.
func ParsePlaybook(source string, payload []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("parse nist playbook %s: %w", source, err)
	}
	for i := range entries {
		if entries[i].Topics == nil {
			entries[i].Topics = Topics{}
		}
	}
	return entries, nil
}
