package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	DefaultMappingJSON = "helm_to_nist_mapping.json"
	DefaultMappingCSV  = "helm_to_nist_mapping.csv"
)

func DefaultChecksumsPath(outJSONPath string) string {
	if strings.TrimSpace(outJSONPath) == "" {
		outJSONPath = DefaultMappingJSON
	}
	return filepath.Join(filepath.Dir(outJSONPath), "checksums.sha256")
}

func DefaultRunLogPath(outJSONPath string) string {
	if strings.TrimSpace(outJSONPath) == "" {
		outJSONPath = DefaultMappingJSON
	}
	return filepath.Join(filepath.Dir(outJSONPath), "crosswalk.run.log")
}

// WriteChecksums writes "<sha256>  <basename>" lines for every artifact,
// sorted by path.
func WriteChecksums(checksumsPath string, artifactPaths []string) error {
	clean := make([]string, 0, len(artifactPaths))
	for _, p := range artifactPaths {
		if strings.TrimSpace(p) != "" {
			clean = append(clean, p)
		}
	}
	sort.Strings(clean)

	lines := make([]string, 0, len(clean))
	for _, p := range clean {
		sum, err := FileSHA256(p)
		if err != nil {
			return fmt.Errorf("checksum read failed for %s: %w", p, err)
		}
		lines = append(lines, fmt.Sprintf("%s  %s", sum, filepath.Base(p)))
	}
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}

	if err := ensureDir(checksumsPath); err != nil {
		return err
	}
	return os.WriteFile(checksumsPath, []byte(content), 0o644)
}

func FileSHA256(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
