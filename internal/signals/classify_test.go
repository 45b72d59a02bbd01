package signals

import "testing"

var testRules = []Rule{
	{Category: "toxicity", StatName: "toxic_frac"},
	{Category: "bias", StatName: "bias_metric:", Prefix: true},
	{Category: "robustness", PerturbationName: "robustness"},
	{Category: "accuracy", StatName: "exact_match"},
}

func TestRuleMatches(t *testing.T) {
	cases := []struct {
		name string
		rule Rule
		stat Stat
		want bool
	}{
		{"exact", testRules[0], Stat{Name: "toxic_frac"}, true},
		{"exact_rejects_longer", testRules[0], Stat{Name: "toxic_frac_v2"}, false},
		{"prefix", testRules[1], Stat{Name: "bias_metric:mode=associations"}, true},
		{"prefix_miss", testRules[1], Stat{Name: "bbq_bias"}, false},
		{"perturbed_stat_rejected", testRules[3], Stat{Name: "exact_match", Perturbation: "typos"}, false},
		{"perturbation", testRules[2], Stat{Name: "exact_match", Perturbation: "robustness"}, true},
		{"perturbation_other", testRules[2], Stat{Name: "exact_match", Perturbation: "fairness"}, false},
		{"perturbation_wins", Rule{StatName: "exact_match", PerturbationName: "fairness"}, Stat{Name: "exact_match"}, false},
		{"empty_rule", Rule{Category: "x"}, Stat{Name: "anything"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.rule.Matches(c.stat); got != c.want {
				t.Fatalf("Matches(%+v)=%v want=%v", c.stat, got, c.want)
			}
		})
	}
}

func TestClassifyZeroCountFails(t *testing.T) {
	runs := []Run{{Model: "m1", Stats: []Stat{{Name: "toxic_frac", Count: 0}}}}
	res := Classify(runs, testRules)
	if res.Status["m1"]["toxicity"] != StatusFailed {
		t.Fatalf("toxicity status=%q want failed", res.Status["m1"]["toxicity"])
	}
	if res.Attributed["m1"]["toxicity"] != 1 || res.Succeeded["m1"]["toxicity"] != 0 {
		t.Fatalf("unexpected counters: %+v %+v", res.Attributed, res.Succeeded)
	}
	if !res.Failed("m1", "toxicity") {
		t.Fatalf("expected Failed(m1, toxicity)")
	}
}

func TestClassifyNoAttributionFails(t *testing.T) {
	runs := []Run{{Model: "m1", Stats: []Stat{{Name: "toxic_frac", Count: 4}}}}
	res := Classify(runs, testRules)
	if res.Status["m1"]["toxicity"] != StatusPassed {
		t.Fatalf("toxicity status=%q want passed", res.Status["m1"]["toxicity"])
	}
	for _, c := range []string{"bias", "robustness", "accuracy"} {
		if res.Status["m1"][c] != StatusFailed {
			t.Fatalf("%s status=%q want failed", c, res.Status["m1"][c])
		}
	}
}

func TestClassifyAnyPositiveCountPasses(t *testing.T) {
	runs := []Run{
		{Model: "m1", Stats: []Stat{{Name: "bias_metric:mode=a", Count: 0}}},
		{Model: "m1", Stats: []Stat{{Name: "bias_metric:mode=b", Count: 3}}},
	}
	res := Classify(runs, testRules)
	if res.Status["m1"]["bias"] != StatusPassed {
		t.Fatalf("bias status=%q want passed", res.Status["m1"]["bias"])
	}
	if res.Attributed["m1"]["bias"] != 2 || res.Succeeded["m1"]["bias"] != 1 {
		t.Fatalf("unexpected counters: attributed=%d succeeded=%d", res.Attributed["m1"]["bias"], res.Succeeded["m1"]["bias"])
	}
}

func TestClassifyStatCountsForEveryMatchingRule(t *testing.T) {
	rules := []Rule{
		{Category: "calibration", StatName: "ece_", Prefix: true},
		{Category: "calibration_detailed", StatName: "ece_10_bin"},
	}
	res := Classify([]Run{{Model: "m1", Stats: []Stat{{Name: "ece_10_bin", Count: 1}}}}, rules)
	if res.Status["m1"]["calibration"] != StatusPassed || res.Status["m1"]["calibration_detailed"] != StatusPassed {
		t.Fatalf("expected both categories passed: %+v", res.Status["m1"])
	}
}

func TestClassifyModelsSortedAndDeduplicated(t *testing.T) {
	runs := []Run{{Model: "zeta"}, {Model: "alpha"}, {Model: "zeta"}, {Model: "mid"}}
	res := Classify(runs, testRules)
	want := []string{"alpha", "mid", "zeta"}
	if len(res.Models) != len(want) {
		t.Fatalf("models=%v want=%v", res.Models, want)
	}
	for i := range want {
		if res.Models[i] != want[i] {
			t.Fatalf("models=%v want=%v", res.Models, want)
		}
	}
	if len(res.Status["alpha"]) != len(testRules) {
		t.Fatalf("expected a status per rule, got %+v", res.Status["alpha"])
	}
}

func TestClassifyWithoutRuns(t *testing.T) {
	res := Classify(nil, testRules)
	if len(res.Models) != 0 || len(res.Status) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
	if res.Failed("m1", "toxicity") {
		t.Fatalf("no run data must not fail any category")
	}
}
