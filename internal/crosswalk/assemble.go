package crosswalk

import (
	"github.com/solardome/helm-nist-crosswalk/internal/report"
	"github.com/solardome/helm-nist-crosswalk/internal/scoring"
	"github.com/solardome/helm-nist-crosswalk/internal/signals"
)

const generatedLayout = "2006-01-02T15:04:05.000000-07:00"

// reportModels lists the models that get table rows. Without run data a
// single pseudo-model stands in and every category counts as passed.
func reportModels(state EngineState) []string {
	if len(state.Signals.Models) == 0 {
		return []string{AllModels}
	}
	return append([]string{}, state.Signals.Models...)
}

func signalStatus(state EngineState, model, category string) string {
	if state.Signals.Failed(model, category) {
		return signals.StatusFailed
	}
	return signals.StatusPassed
}

func buildDocument(state EngineState, cfg Config, runID string) Document {
	doc := Document{
		Metadata: Metadata{
			HELMVersion:           cfg.HELMVersion,
			NISTSource:            cfg.PlaybookURL,
			Generated:             state.Now.Format(generatedLayout),
			Description:           description,
			SchemaVersion:         SchemaVersion,
			RunID:                 runID,
			GroupsMetadataEntries: state.GroupsMetadataEntries,
			TotalTierValue:        scoring.Round(state.TotalTierValue, 4),
			Inputs:                append([]InputDigest{}, state.InputDigests...),
		},
		TypeWeights: map[string]string{},
		Mappings:    make([]MappingRecord, 0, len(state.Mappings)),
		Models:      []ModelRecord{},
		Trace:       append([]TraceEntry{}, state.Trace...),
	}
	for t, v := range state.TypeWeights.Percent {
		doc.TypeWeights[t] = scoring.FormatPercent(v)
	}

	for _, m := range state.Mappings {
		rec := MappingRecord{
			HELMCategory:    m.Category,
			HELMDisplayName: m.DisplayName,
			HELMMetrics:     append([]string{}, m.Metrics...),
			HELMMetricCount: m.MetricCount,
			WeightTier:      m.Tier,
			NISTIndicators:  make([]IndicatorRecord, 0, len(m.Indicators)),
		}
		for _, ind := range m.Indicators {
			rec.NISTIndicators = append(rec.NISTIndicators, IndicatorRecord{
				Title:         ind.Title,
				Type:          ind.Type,
				Category:      ind.Category,
				Description:   ind.Description,
				Topics:        append([]string{}, ind.Topics...),
				MappingWeight: ind.MappingWeight,
				TypeWeight:    ind.TypeWeight,
			})
		}
		doc.Mappings = append(doc.Mappings, rec)
	}

	for _, model := range state.Signals.Models {
		mr := ModelRecord{
			Model:        model,
			SignalStatus: map[string]string{},
			TypeWeights:  map[string]string{},
		}
		for _, m := range state.Mappings {
			mr.SignalStatus[m.Category] = signalStatus(state, model, m.Category)
		}
		for t, v := range state.ModelTypeWeights[model] {
			mr.TypeWeights[t] = scoring.FormatPercent(v)
		}
		doc.Models = append(doc.Models, mr)
	}
	return doc
}

// buildRows flattens the crosswalk into one row per (model, category,
// indicator). A failed category, or one without indicators, gets a single
// Do Not Use row with blank type columns.
func buildRows(state EngineState) [][]string {
	var rows [][]string
	for _, model := range reportModels(state) {
		for _, m := range state.Mappings {
			weight := scoring.FormatPercent(scoring.CategoryShare(m, state.TotalTierValue))
			label := state.Table.Label(m.Category, m.DisplayName)
			if state.Signals.Failed(model, m.Category) || len(m.Indicators) == 0 {
				rows = append(rows, []string{model, m.DisplayName, weight, label, DoNotUse, "", ""})
				continue
			}
			for _, ind := range m.Indicators {
				tw := scoring.FormatPercent(state.ModelTypeWeights[model][ind.Type])
				rows = append(rows, []string{model, m.DisplayName, weight, label, ind.Title, ind.Type, tw})
			}
		}
	}
	return rows
}

func summaryRows(state EngineState) []report.SummaryRow {
	out := make([]report.SummaryRow, 0, len(state.Mappings))
	for _, m := range state.Mappings {
		row := report.SummaryRow{
			DisplayName:    m.DisplayName,
			Tier:           m.Tier,
			IndicatorCount: len(m.Indicators),
		}
		if len(m.Indicators) > 0 {
			row.TopMatch = m.Indicators[0].Title
		}
		out = append(out, row)
	}
	return out
}

func metricsSnapshot(state EngineState) report.MetricsSnapshot {
	s := report.MetricsSnapshot{
		TypeWeights:        map[string]float64{},
		ModelTypeWeights:   map[string]map[string]float64{},
		SignalStatus:       map[string]map[string]string{},
		CategoryIndicators: map[string]int{},
	}
	for t, v := range state.TypeWeights.Percent {
		s.TypeWeights[t] = v
	}
	for _, m := range state.Mappings {
		s.CategoryIndicators[m.Category] = len(m.Indicators)
	}
	for _, model := range reportModels(state) {
		byType := map[string]float64{}
		for t, v := range state.ModelTypeWeights[model] {
			byType[t] = v
		}
		s.ModelTypeWeights[model] = byType
		status := map[string]string{}
		for _, m := range state.Mappings {
			status[m.Category] = signalStatus(state, model, m.Category)
		}
		s.SignalStatus[model] = status
	}
	return s
}
