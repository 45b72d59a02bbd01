package scoring

// FailedFunc reports whether a model's signal for a category failed.
type FailedFunc func(model, category string) bool

// RollupModelTypeWeights computes, per model, each indicator type's share of
// the fixed total tier value. Failed categories contribute nothing but stay
// in the denominator, so every model is scored against the same total.
// Every type in types is present for every model, zero when nothing passed.
func RollupModelTypeWeights(mappings []Mapping, models []string, types []string, failed FailedFunc) map[string]map[string]float64 {
	total := TotalTierValue(mappings)
	out := make(map[string]map[string]float64, len(models))
	for _, model := range models {
		sums := make(map[string]float64, len(types))
		for _, t := range types {
			sums[t] = 0
		}
		for _, m := range mappings {
			if failed != nil && failed(model, m.Category) {
				continue
			}
			for _, ind := range m.Indicators {
				sums[ind.Type] += ind.MappingWeight
			}
		}
		pct := make(map[string]float64, len(sums))
		for t, v := range sums {
			if total == 0 {
				pct[t] = 0
				continue
			}
			pct[t] = Round(v/total*100, 1)
		}
		out[model] = pct
	}
	return out
}
