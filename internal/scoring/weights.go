package scoring

import (
	"sort"
	"strconv"
)

// Category is a tracked metric group joined with its configured tier and
// keywords.
type Category struct {
	Name        string
	DisplayName string
	Metrics     []string
	MetricCount int
	Tier        string
	TierValue   float64
	Keywords    []string
}

type Mapping struct {
	Category    string
	DisplayName string
	Metrics     []string
	MetricCount int
	Tier        string
	TierValue   float64
	Indicators  []Indicator
}

// TypeWeights is the global share of matched weight per indicator type.
type TypeWeights struct {
	Totals  map[string]float64
	Percent map[string]float64
}

// Types returns the observed indicator types in sorted order.
func (tw TypeWeights) Types() []string {
	out := make([]string, 0, len(tw.Totals))
	for t := range tw.Totals {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// AllocateWeights matches every category against the playbook and spreads
// its tier value evenly over the matched indicators. A category without
// matches keeps an empty indicator list.
func AllocateWeights(categories []Category, entries []Entry) []Mapping {
	mappings := make([]Mapping, 0, len(categories))
	for _, c := range categories {
		indicators := MatchIndicators(entries, c.Keywords)
		n := len(indicators)
		if n == 0 {
			n = 1
		}
		per := Round(c.TierValue/float64(n), 4)
		for i := range indicators {
			indicators[i].MappingWeight = per
		}
		mappings = append(mappings, Mapping{
			Category:    c.Name,
			DisplayName: c.DisplayName,
			Metrics:     append([]string{}, c.Metrics...),
			MetricCount: c.MetricCount,
			Tier:        c.Tier,
			TierValue:   c.TierValue,
			Indicators:  indicators,
		})
	}
	return mappings
}

// RollupTypeWeights sums per-indicator weights by indicator type across all
// mappings and converts the totals to percentages of their grand total.
func RollupTypeWeights(mappings []Mapping) TypeWeights {
	tw := TypeWeights{
		Totals:  map[string]float64{},
		Percent: map[string]float64{},
	}
	for _, m := range mappings {
		for _, ind := range m.Indicators {
			tw.Totals[ind.Type] += ind.MappingWeight
		}
	}
	grand := 0.0
	for _, v := range tw.Totals {
		grand += v
	}
	for t, v := range tw.Totals {
		if grand == 0 {
			tw.Percent[t] = 0
			continue
		}
		tw.Percent[t] = Round(v/grand*100, 1)
	}
	return tw
}

// ApplyTypeWeights stamps each matched indicator with its type's global
// percentage.
func ApplyTypeWeights(mappings []Mapping, tw TypeWeights) {
	for mi := range mappings {
		for ii := range mappings[mi].Indicators {
			ind := &mappings[mi].Indicators[ii]
			ind.TypeWeight = FormatPercent(tw.Percent[ind.Type])
		}
	}
}

// TotalTierValue is the fixed denominator for per-model rollups and category
// shares: the tier value of every mapped category, matched or not.
func TotalTierValue(mappings []Mapping) float64 {
	total := 0.0
	for _, m := range mappings {
		total += m.TierValue
	}
	return total
}

// CategoryShare is a category's percentage of the total tier value.
func CategoryShare(m Mapping, total float64) float64 {
	if total == 0 {
		return 0
	}
	return Round(m.TierValue/total*100, 1)
}

// Round rounds the exact binary value of v to places decimals, ties to even.
func Round(v float64, places int) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	return r
}

func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
