package signals

import (
	"sort"
	"strings"
)

const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

type Stat struct {
	Name         string
	Perturbation string
	Count        int
}

type Run struct {
	Model string
	Stats []Stat
}

// Rule attributes statistics to one category. PerturbationName, when set,
// takes precedence over StatName.
type Rule struct {
	Category         string
	StatName         string
	Prefix           bool
	PerturbationName string
}

func (r Rule) Matches(s Stat) bool {
	if r.PerturbationName != "" {
		return s.Perturbation == r.PerturbationName
	}
	if r.StatName == "" || s.Perturbation != "" {
		return false
	}
	if r.Prefix {
		return strings.HasPrefix(s.Name, r.StatName)
	}
	return s.Name == r.StatName
}

type Result struct {
	// Models is deduplicated and sorted.
	Models     []string
	Status     map[string]map[string]string
	Attributed map[string]map[string]int
	Succeeded  map[string]map[string]int
}

// Failed reports whether the (model, category) signal failed. Pairs with no
// rule, and every pair when no runs were supplied, are not failed.
func (r Result) Failed(model, category string) bool {
	return r.Status[model][category] == StatusFailed
}

// Classify attributes every statistic of every run to each category whose
// rule it satisfies, then marks a (model, category) pair passed only when at
// least one attributed statistic has a positive count.
func Classify(runs []Run, rules []Rule) Result {
	res := Result{
		Models:     []string{},
		Status:     map[string]map[string]string{},
		Attributed: map[string]map[string]int{},
		Succeeded:  map[string]map[string]int{},
	}
	seen := map[string]bool{}
	for _, run := range runs {
		if !seen[run.Model] {
			seen[run.Model] = true
			res.Models = append(res.Models, run.Model)
			res.Attributed[run.Model] = map[string]int{}
			res.Succeeded[run.Model] = map[string]int{}
		}
		for _, s := range run.Stats {
			for _, rule := range rules {
				if !rule.Matches(s) {
					continue
				}
				res.Attributed[run.Model][rule.Category]++
				if s.Count > 0 {
					res.Succeeded[run.Model][rule.Category]++
				}
			}
		}
	}
	sort.Strings(res.Models)

	for _, model := range res.Models {
		status := make(map[string]string, len(rules))
		for _, rule := range rules {
			if res.Attributed[model][rule.Category] == 0 || res.Succeeded[model][rule.Category] == 0 {
				status[rule.Category] = StatusFailed
			} else {
				status[rule.Category] = StatusPassed
			}
		}
		res.Status[model] = status
	}
	return res
}
