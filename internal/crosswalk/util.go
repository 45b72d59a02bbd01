package crosswalk

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
)

func fileSHA256(path string) (string, []byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:]), b, nil
}

// stableRunID derives a name-based UUID from the input digests so identical
// inputs always produce the same id.
func stableRunID(inputs []InputDigest, helmVersion string) string {
	parts := make([]string, 0, len(inputs)+1)
	for _, in := range inputs {
		parts = append(parts, in.Kind+":"+in.Path+":"+in.SHA256)
	}
	parts = append(parts, "helm:"+helmVersion)
	sort.Strings(parts)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.Join(parts, "|"))).String()
}

func addTrace(state *EngineState, phase, result string, details map[string]interface{}) {
	state.Trace = append(state.Trace, TraceEntry{
		Order:   len(state.Trace) + 1,
		Phase:   phase,
		Result:  result,
		Details: details,
	})
}
