package nist

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source describes where the playbook entries came from.
type Source struct {
	URL       string
	CachePath string
	CacheHit  bool
	Insecure  bool
	SHA256    string
}

// Load returns the playbook from cachePath when present, otherwise fetches
// url and stores a pretty-printed copy at cachePath.
func Load(ctx context.Context, f *Fetcher, url, cachePath string) ([]Entry, Source, error) {
	src := Source{URL: url, CachePath: cachePath}

	b, err := os.ReadFile(cachePath)
	if err == nil {
		src.CacheHit = true
		src.SHA256 = digest(b)
		entries, err := ParsePlaybook(cachePath, b)
		if err != nil {
			return nil, src, err
		}
		return entries, src, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, src, fmt.Errorf("read playbook cache %s: %w", cachePath, err)
	}

	res, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, src, err
	}
	src.Insecure = res.Insecure
	entries, err := ParsePlaybook(url, res.Body)
	if err != nil {
		return nil, src, err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, res.Body, "", "  "); err != nil {
		return nil, src, fmt.Errorf("format playbook: %w", err)
	}
	pretty.WriteByte('\n')
	if err := writeCache(cachePath, pretty.Bytes()); err != nil {
		return nil, src, err
	}
	src.SHA256 = digest(pretty.Bytes())
	return entries, src, nil
}

func writeCache(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
		return fmt.Errorf("create playbook cache dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write playbook cache: %w", err)
	}
	return nil
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
