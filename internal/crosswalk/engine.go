package crosswalk

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/solardome/helm-nist-crosswalk/internal/ingest/nist"
	"github.com/solardome/helm-nist-crosswalk/internal/report"
	"github.com/solardome/helm-nist-crosswalk/internal/scoring"
	"github.com/solardome/helm-nist-crosswalk/internal/signals"
)

func applyDefaults(cfg Config) Config {
	if strings.TrimSpace(cfg.HELMDir) == "" {
		cfg.HELMDir = DefaultHELMDir
	}
	if strings.TrimSpace(cfg.SchemaPath) == "" {
		cfg.SchemaPath = filepath.Join(cfg.HELMDir, "schema.json")
	}
	if strings.TrimSpace(cfg.GroupsMetadataPath) == "" {
		cfg.GroupsMetadataPath = filepath.Join(cfg.HELMDir, "groups_metadata.json")
	}
	if strings.TrimSpace(cfg.RunsPattern) == "" {
		cfg.RunsPattern = filepath.Join(cfg.HELMDir, "runs.json")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = DefaultDataDir
	}
	if strings.TrimSpace(cfg.PlaybookURL) == "" {
		cfg.PlaybookURL = nist.DefaultURL
	}
	if strings.TrimSpace(cfg.PlaybookCachePath) == "" {
		cfg.PlaybookCachePath = filepath.Join(cfg.DataDir, "playbook.json")
	}
	if strings.TrimSpace(cfg.OutJSONPath) == "" {
		cfg.OutJSONPath = filepath.Join(cfg.DataDir, report.DefaultMappingJSON)
	}
	if strings.TrimSpace(cfg.OutCSVPath) == "" {
		cfg.OutCSVPath = filepath.Join(cfg.DataDir, report.DefaultMappingCSV)
	}
	if strings.TrimSpace(cfg.ChecksumsPath) == "" {
		cfg.ChecksumsPath = report.DefaultChecksumsPath(cfg.OutJSONPath)
	}
	if strings.TrimSpace(cfg.RunLogPath) == "" {
		cfg.RunLogPath = report.DefaultRunLogPath(cfg.OutJSONPath)
	}
	if strings.TrimSpace(cfg.HELMVersion) == "" {
		cfg.HELMVersion = DefaultHELMVersion
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = nist.DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return cfg
}

// Run loads the HELM and NIST inputs, builds the weighted crosswalk and writes
// the JSON document, the flat CSV table, checksums and the optional metrics
// textfile. Missing required inputs abort the run before anything is written.
// Later failures leave only the run log, which records the error event.
func Run(ctx context.Context, cfg Config) (Document, error) {
	cfg = applyDefaults(cfg)
	logger := cfg.Logger

	state := EngineState{Now: cfg.Now().UTC()}
	logger.Info("[1/5] loading HELM schema", "path", cfg.SchemaPath)
	if err := loadRequired(&state, cfg); err != nil {
		return Document{}, err
	}

	log, logErr := report.NewAuditLogger(cfg.RunLogPath)
	if logErr != nil {
		logger.Warn("run log unavailable", "path", cfg.RunLogPath, "error", logErr)
	} else {
		defer log.Close()
	}
	log.Info("run.start", map[string]interface{}{
		"helm_dir":       cfg.HELMDir,
		"schema":         cfg.SchemaPath,
		"runs_pattern":   cfg.RunsPattern,
		"playbook_url":   cfg.PlaybookURL,
		"playbook_cache": cfg.PlaybookCachePath,
		"mapping_config": cfg.MappingConfigPath,
		"out_json":       cfg.OutJSONPath,
		"out_csv":        cfg.OutCSVPath,
		"checksums":      cfg.ChecksumsPath,
		"metrics":        cfg.MetricsPath,
	})

	if err := loadGroupsMetadata(&state, cfg.GroupsMetadataPath); err != nil {
		log.Warn("run.load_inputs.error", map[string]interface{}{"error": err.Error()})
		return Document{}, err
	}
	logger.Info("loaded HELM metric groups", "groups", len(state.Groups), "groups_metadata_entries", state.GroupsMetadataEntries)

	logger.Info("[2/5] loading NIST AI RMF playbook", "url", cfg.PlaybookURL, "cache", cfg.PlaybookCachePath)
	if err := loadPlaybook(ctx, &state, cfg); err != nil {
		log.Warn("run.playbook.error", map[string]interface{}{"error": err.Error()})
		return Document{}, err
	}
	if state.PlaybookSource.Insecure {
		logger.Warn("playbook fetched without certificate validation", "url", cfg.PlaybookURL)
	}
	logger.Info("loaded playbook", "entries", len(state.Playbook), "cache_hit", state.PlaybookSource.CacheHit)
	log.Info("run.playbook.ok", map[string]interface{}{
		"entries":   len(state.Playbook),
		"cache_hit": state.PlaybookSource.CacheHit,
		"insecure":  state.PlaybookSource.Insecure,
	})

	if err := loadRuns(&state, cfg.RunsPattern); err != nil {
		log.Warn("run.load_inputs.error", map[string]interface{}{"error": err.Error()})
		return Document{}, err
	}
	if len(state.RunsFiles) == 0 {
		logger.Info("no HELM runs found, every category counts as passed", "pattern", cfg.RunsPattern)
	}
	log.Info("run.load_inputs.ok", map[string]interface{}{
		"input_count":   len(state.InputDigests),
		"metric_groups": len(state.Groups),
		"runs_files":    len(state.RunsFiles),
		"runs":          len(state.Runs),
	})

	logger.Info("[3/5] matching HELM categories to NIST indicators")
	categories := toScoringCategories(state.Table, state.Groups)
	state.Mappings = scoring.AllocateWeights(categories, toScoringEntries(state.Playbook))
	state.TypeWeights = scoring.RollupTypeWeights(state.Mappings)
	scoring.ApplyTypeWeights(state.Mappings, state.TypeWeights)
	state.TotalTierValue = scoring.TotalTierValue(state.Mappings)
	pairs := 0
	for _, m := range state.Mappings {
		pairs += len(m.Indicators)
		if len(m.Indicators) == 0 {
			logger.Warn("no NIST indicators matched", "category", m.Category)
		}
	}
	addTrace(&state, "match", "ok", map[string]interface{}{
		"categories":       len(state.Mappings),
		"pairs":            pairs,
		"total_tier_value": scoring.Round(state.TotalTierValue, 4),
	})
	log.Info("run.match.ok", map[string]interface{}{"categories": len(state.Mappings), "pairs": pairs})

	logger.Info("[4/5] classifying HELM run signals", "runs", len(state.Runs))
	state.Signals = signals.Classify(toSignalRuns(state.Runs), toSignalRules(state.Table))
	failedPairs := 0
	for _, model := range state.Signals.Models {
		for _, m := range state.Mappings {
			if state.Signals.Failed(model, m.Category) {
				failedPairs++
			}
		}
	}
	state.ModelTypeWeights = scoring.RollupModelTypeWeights(state.Mappings, reportModels(state), state.TypeWeights.Types(), state.Signals.Failed)
	addTrace(&state, "signals", "ok", map[string]interface{}{
		"models":       len(state.Signals.Models),
		"failed_pairs": failedPairs,
	})
	log.Info("run.signals.ok", map[string]interface{}{"models": len(state.Signals.Models), "failed_pairs": failedPairs})

	runID := stableRunID(state.InputDigests, cfg.HELMVersion)
	doc := buildDocument(state, cfg, runID)
	for _, tr := range state.Trace {
		logger.Debug("trace", "order", tr.Order, "phase", tr.Phase, "result", tr.Result, "details", tr.Details)
	}

	logger.Info("[5/5] writing outputs", "json", cfg.OutJSONPath, "csv", cfg.OutCSVPath)
	if err := report.WriteJSON(cfg.OutJSONPath, doc); err != nil {
		log.Warn("run.write.error", map[string]interface{}{"error": err.Error(), "path": cfg.OutJSONPath})
		return Document{}, err
	}
	rows := buildRows(state)
	if err := report.WriteCSV(cfg.OutCSVPath, csvHeader, rows); err != nil {
		log.Warn("run.write.error", map[string]interface{}{"error": err.Error(), "path": cfg.OutCSVPath})
		return Document{}, err
	}
	artifacts := []string{cfg.OutJSONPath, cfg.OutCSVPath}
	if cfg.MetricsPath != "" {
		if err := report.WriteMetricsTextfile(cfg.MetricsPath, metricsSnapshot(state)); err != nil {
			log.Warn("run.write.error", map[string]interface{}{"error": err.Error(), "path": cfg.MetricsPath})
			return Document{}, err
		}
		artifacts = append(artifacts, cfg.MetricsPath)
	}
	if err := report.WriteChecksums(cfg.ChecksumsPath, artifacts); err != nil {
		log.Warn("run.checksums.error", map[string]interface{}{"error": err.Error()})
		return Document{}, err
	}
	log.Info("run.write.ok", map[string]interface{}{"artifacts": artifacts, "csv_rows": len(rows)})

	doc.Outputs = Outputs{
		JSON:      cfg.OutJSONPath,
		CSV:       cfg.OutCSVPath,
		Checksums: cfg.ChecksumsPath,
		RunLog:    cfg.RunLogPath,
		Metrics:   cfg.MetricsPath,
	}

	if cfg.Summary != nil {
		report.PrintSummary(cfg.Summary, summaryRows(state))
	}
	log.Info("run.complete", map[string]interface{}{
		"run_id":     runID,
		"categories": len(doc.Mappings),
		"pairs":      pairs,
		"models":     len(doc.Models),
	})
	return doc, nil
}
