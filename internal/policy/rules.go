package policy

import (
	"fmt"
	"strings"
)

const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

const (
	MatchExact  = "exact"
	MatchPrefix = "prefix"
)

var tierValues = map[string]float64{
	TierHigh:   1.0,
	TierMedium: 0.6,
	TierLow:    0.3,
}

// Table is the ordered set of tracked HELM metric groups. Order drives the
// order of mappings, summary rows and CSV rows.
type Table struct {
	Categories []CategoryRule `json:"categories" yaml:"categories"`
}

type CategoryRule struct {
	Name     string     `json:"name" yaml:"name"`
	Tier     string     `json:"weight_tier" yaml:"weight_tier"`
	Keywords []string   `json:"keywords" yaml:"keywords"`
	Label    string     `json:"label" yaml:"label"`
	Signal   SignalRule `json:"signal" yaml:"signal"`
}

// SignalRule attributes HELM run statistics to a category. A rule with a
// PerturbationName matches on the perturbation only; otherwise StatName is
// compared against unperturbed statistics using Match.
type SignalRule struct {
	StatName         string `json:"stat_name" yaml:"stat_name"`
	Match            string `json:"match" yaml:"match"`
	PerturbationName string `json:"perturbation_name" yaml:"perturbation_name"`
}

func (r SignalRule) Configured() bool {
	return strings.TrimSpace(r.StatName) != "" || strings.TrimSpace(r.PerturbationName) != ""
}

func (r SignalRule) Prefix() bool {
	return normalizeToken(r.Match) == MatchPrefix
}

// TierValue maps a weight tier to its base weight.
func TierValue(tier string) (float64, bool) {
	v, ok := tierValues[normalizeToken(tier)]
	return v, ok
}

func (t Table) Lookup(name string) (CategoryRule, bool) {
	for _, c := range t.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryRule{}, false
}

// Label returns the human-readable signal label for a category, falling back
// to the display name when the table has none.
func (t Table) Label(name, displayName string) string {
	if c, ok := t.Lookup(name); ok && strings.TrimSpace(c.Label) != "" {
		return c.Label
	}
	return displayName
}

func ValidateTable(t Table) []string {
	var errs []string
	if len(t.Categories) == 0 {
		errs = append(errs, "mapping table has no categories")
	}
	seen := map[string]bool{}
	for i, c := range t.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			errs = append(errs, fmt.Sprintf("categories[%d]: name required", i))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Sprintf("category %s: duplicate name", name))
		}
		seen[name] = true
		if _, ok := TierValue(c.Tier); !ok {
			errs = append(errs, fmt.Sprintf("category %s: weight_tier %q must be high, medium or low", name, c.Tier))
		}
		if len(c.Keywords) == 0 {
			errs = append(errs, fmt.Sprintf("category %s: keywords required", name))
		}
		for _, kw := range c.Keywords {
			if strings.TrimSpace(kw) == "" {
				errs = append(errs, fmt.Sprintf("category %s: empty keyword", name))
				break
			}
		}
		if c.Signal.StatName != "" && strings.TrimSpace(c.Signal.Match) != "" {
			switch normalizeToken(c.Signal.Match) {
			case MatchExact, MatchPrefix:
			default:
				errs = append(errs, fmt.Sprintf("category %s: signal match %q must be exact or prefix", name, c.Signal.Match))
			}
		}
	}
	return errs
}

func normalizeToken(s string) string {
	t := strings.TrimSpace(strings.ToLower(s))
	if t == "" {
		return "unknown"
	}
	return t
}
