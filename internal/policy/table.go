package policy

// DefaultTable returns the built-in HELM Classic v0.4.0 -> NIST AI RMF table.
func DefaultTable() Table {
	return Table{Categories: []CategoryRule{
		{
			Name:     "accuracy",
			Tier:     TierHigh,
			Keywords: []string{"Validity and Reliability"},
			Label:    "Task accuracy (exact match)",
			Signal:   SignalRule{StatName: "exact_match", Match: MatchExact},
		},
		{
			Name:     "calibration",
			Tier:     TierMedium,
			Keywords: []string{"Validity and Reliability"},
			Label:    "Calibration error (ECE)",
			Signal:   SignalRule{StatName: "ece_", Match: MatchPrefix},
		},
		{
			Name:     "calibration_detailed",
			Tier:     TierMedium,
			Keywords: []string{"Validity and Reliability"},
			Label:    "Calibration detail (Platt scaling)",
			Signal:   SignalRule{StatName: "platt_", Match: MatchPrefix},
		},
		{
			Name:     "robustness",
			Tier:     TierHigh,
			Keywords: []string{"Secure and Resilient", "Safety"},
			Label:    "Worst-case accuracy under perturbation",
			Signal:   SignalRule{PerturbationName: "robustness"},
		},
		{
			Name:     "robustness_detailed",
			Tier:     TierHigh,
			Keywords: []string{"Secure and Resilient", "Safety"},
			Label:    "Accuracy under typo perturbation",
			Signal:   SignalRule{PerturbationName: "typos"},
		},
		{
			Name:     "fairness",
			Tier:     TierHigh,
			Keywords: []string{"Fairness and Bias"},
			Label:    "Worst-case accuracy across demographic perturbations",
			Signal:   SignalRule{PerturbationName: "fairness"},
		},
		{
			Name:     "fairness_detailed",
			Tier:     TierHigh,
			Keywords: []string{"Fairness and Bias"},
			Label:    "Accuracy under dialect perturbation",
			Signal:   SignalRule{PerturbationName: "dialect"},
		},
		{
			Name:     "bias",
			Tier:     TierHigh,
			Keywords: []string{"Fairness and Bias"},
			Label:    "Demographic representation and association bias",
			Signal:   SignalRule{StatName: "bias_metric:", Match: MatchPrefix},
		},
		{
			Name:     "toxicity",
			Tier:     TierHigh,
			Keywords: []string{"Safety"},
			Label:    "Toxic output fraction",
			Signal:   SignalRule{StatName: "toxic_frac", Match: MatchExact},
		},
		{
			Name:     "efficiency",
			Tier:     TierMedium,
			Keywords: []string{"Accountability and Transparency"},
			Label:    "Inference runtime",
			Signal:   SignalRule{StatName: "inference_", Match: MatchPrefix},
		},
		{
			Name:     "efficiency_detailed",
			Tier:     TierMedium,
			Keywords: []string{"Accountability and Transparency"},
			Label:    "Training cost and emissions",
			Signal:   SignalRule{StatName: "training_", Match: MatchPrefix},
		},
		{
			Name:     "summarization_metrics",
			Tier:     TierMedium,
			Keywords: []string{"Validity and Reliability"},
			Label:    "Summary faithfulness (SummaC)",
			Signal:   SignalRule{StatName: "summac", Match: MatchPrefix},
		},
		{
			Name:     "copyright_metrics",
			Tier:     TierMedium,
			Keywords: []string{"Legal and Regulatory"},
			Label:    "Verbatim reproduction of copyrighted text",
			Signal:   SignalRule{StatName: "longest_common_prefix_length", Match: MatchExact},
		},
		{
			Name:     "disinformation_metrics",
			Tier:     TierHigh,
			Keywords: []string{"Safety", "Risky Emergent Behavior"},
			Label:    "Disinformation generation diversity",
			Signal:   SignalRule{StatName: "self_bleu", Match: MatchExact},
		},
		{
			Name:     "bbq_metrics",
			Tier:     TierHigh,
			Keywords: []string{"Fairness and Bias"},
			Label:    "BBQ social bias accuracy",
			Signal:   SignalRule{StatName: "bbq_", Match: MatchPrefix},
		},
		{
			Name:     "classification_metrics",
			Tier:     TierMedium,
			Keywords: []string{"Validity and Reliability"},
			Label:    "Classification F1",
			Signal:   SignalRule{StatName: "classification_", Match: MatchPrefix},
		},
	}}
}
