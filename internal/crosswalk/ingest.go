package crosswalk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/solardome/helm-nist-crosswalk/internal/ingest/helm"
	"github.com/solardome/helm-nist-crosswalk/internal/ingest/nist"
	"github.com/solardome/helm-nist-crosswalk/internal/policy"
)

// loadRequired reads the inputs whose absence aborts the run: the mapping
// table and the HELM schema. Nothing is written before this succeeds.
func loadRequired(state *EngineState, cfg Config) error {
	state.Table = policy.DefaultTable()
	if cfg.MappingConfigPath != "" {
		t, hash, err := policy.LoadTable(cfg.MappingConfigPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: mapping config %s", ErrMissingInput, cfg.MappingConfigPath)
			}
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		state.Table = t
		state.InputDigests = append(state.InputDigests, InputDigest{Kind: "mapping_yaml", Path: cfg.MappingConfigPath, SHA256: hash, ReadOK: true})
	}

	info, err := os.Stat(cfg.HELMDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: HELM data directory not found: %s", ErrMissingInput, cfg.HELMDir)
	}
	hash, b, err := fileSHA256(cfg.SchemaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: HELM schema not found: %s", ErrMissingInput, cfg.SchemaPath)
		}
		return fmt.Errorf("read HELM schema: %w", err)
	}
	groups, err := helm.ParseSchema(cfg.SchemaPath, b)
	if err != nil {
		return err
	}
	state.Groups = groups
	state.InputDigests = append(state.InputDigests, InputDigest{Kind: "helm_schema", Path: cfg.SchemaPath, SHA256: hash, ReadOK: true})
	addTrace(state, "load_schema", "ok", map[string]interface{}{
		"path":          cfg.SchemaPath,
		"metric_groups": len(groups),
	})
	return nil
}

// loadGroupsMetadata counts entries in the optional groups metadata file. A
// missing file is not an error.
func loadGroupsMetadata(state *EngineState, path string) error {
	hash, b, err := fileSHA256(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			addTrace(state, "load_groups_metadata", "absent", map[string]interface{}{"path": path})
			return nil
		}
		return fmt.Errorf("read groups metadata: %w", err)
	}
	n, err := helm.CountGroupsMetadata(path, b)
	if err != nil {
		return err
	}
	state.GroupsMetadataEntries = n
	state.InputDigests = append(state.InputDigests, InputDigest{Kind: "helm_groups_metadata", Path: path, SHA256: hash, ReadOK: true})
	addTrace(state, "load_groups_metadata", "ok", map[string]interface{}{"path": path, "entries": n})
	return nil
}

func loadPlaybook(ctx context.Context, state *EngineState, cfg Config) error {
	f := cfg.Fetcher
	if f == nil {
		f = nist.NewFetcher(cfg.FetchTimeout, nist.DefaultUserAgent)
	}
	entries, src, err := nist.Load(ctx, f, cfg.PlaybookURL, cfg.PlaybookCachePath)
	if err != nil {
		return err
	}
	state.Playbook = entries
	state.PlaybookSource = src
	state.InputDigests = append(state.InputDigests, InputDigest{Kind: "nist_playbook", Path: cfg.PlaybookCachePath, SHA256: src.SHA256, ReadOK: true})
	addTrace(state, "load_playbook", "ok", map[string]interface{}{
		"entries":   len(entries),
		"cache_hit": src.CacheHit,
		"insecure":  src.Insecure,
	})
	return nil
}

// loadRuns expands the runs pattern and merges every matching file. No match
// leaves the run list empty.
func loadRuns(state *EngineState, pattern string) error {
	if pattern == "" {
		addTrace(state, "load_runs", "absent", nil)
		return nil
	}
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("%w: runs pattern %q: %v", ErrInvalidConfig, pattern, err)
	}
	sort.Strings(paths)
	for _, p := range paths {
		hash, b, err := fileSHA256(p)
		if err != nil {
			return fmt.Errorf("read HELM runs: %w", err)
		}
		runs, err := helm.ParseRuns(p, b)
		if err != nil {
			return err
		}
		state.Runs = append(state.Runs, runs...)
		state.RunsFiles = append(state.RunsFiles, p)
		state.InputDigests = append(state.InputDigests, InputDigest{Kind: "helm_runs", Path: p, SHA256: hash, ReadOK: true})
	}
	result := "ok"
	if len(paths) == 0 {
		result = "absent"
	}
	addTrace(state, "load_runs", result, map[string]interface{}{
		"pattern": pattern,
		"files":   len(paths),
		"runs":    len(state.Runs),
	})
	return nil
}
