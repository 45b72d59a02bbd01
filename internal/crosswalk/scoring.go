package crosswalk

import (
	"github.com/solardome/helm-nist-crosswalk/internal/ingest/helm"
	"github.com/solardome/helm-nist-crosswalk/internal/ingest/nist"
	"github.com/solardome/helm-nist-crosswalk/internal/policy"
	"github.com/solardome/helm-nist-crosswalk/internal/scoring"
	"github.com/solardome/helm-nist-crosswalk/internal/signals"
)

func toScoringEntries(in []nist.Entry) []scoring.Entry {
	out := make([]scoring.Entry, 0, len(in))
	for _, e := range in {
		out = append(out, scoring.Entry{
			Title:       e.Title,
			Type:        e.Type,
			Category:    e.Category,
			Description: e.Description,
			Topics:      append([]string{}, e.Topics...),
		})
	}
	return out
}

// toScoringCategories joins the mapping table with the schema in table order.
// Tracked categories absent from the schema are skipped.
func toScoringCategories(t policy.Table, groups map[string]helm.MetricGroup) []scoring.Category {
	out := make([]scoring.Category, 0, len(t.Categories))
	for _, rule := range t.Categories {
		g, ok := groups[rule.Name]
		if !ok {
			continue
		}
		tv, _ := policy.TierValue(rule.Tier)
		out = append(out, scoring.Category{
			Name:        g.Name,
			DisplayName: g.DisplayName,
			Metrics:     append([]string{}, g.Metrics...),
			MetricCount: g.MetricCount,
			Tier:        rule.Tier,
			TierValue:   tv,
			Keywords:    append([]string{}, rule.Keywords...),
		})
	}
	return out
}

func toSignalRules(t policy.Table) []signals.Rule {
	out := make([]signals.Rule, 0, len(t.Categories))
	for _, c := range t.Categories {
		if !c.Signal.Configured() {
			continue
		}
		out = append(out, signals.Rule{
			Category:         c.Name,
			StatName:         c.Signal.StatName,
			Prefix:           c.Signal.Prefix(),
			PerturbationName: c.Signal.PerturbationName,
		})
	}
	return out
}

func toSignalRuns(in []helm.Run) []signals.Run {
	out := make([]signals.Run, 0, len(in))
	for _, r := range in {
		stats := make([]signals.Stat, 0, len(r.Stats))
		for _, s := range r.Stats {
			stats = append(stats, signals.Stat{Name: s.Name, Perturbation: s.Perturbation, Count: s.Count})
		}
		out = append(out, signals.Run{Model: r.Model, Stats: stats})
	}
	return out
}
