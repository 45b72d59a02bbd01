package helm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Run is one HELM run reduced to what signal classification needs.
type Run struct {
	Model string
	Stats []Stat
}

type Stat struct {
	Name         string
	Perturbation string
	Count        int
}

type runRecord struct {
	RunSpec struct {
		AdapterSpec adapterSpec `json:"adapter_spec"`
	} `json:"run_spec"`
	AdapterSpec adapterSpec  `json:"adapter_spec"`
	Stats       []statRecord `json:"stats"`
}

type adapterSpec struct {
	Model string `json:"model"`
}

type statRecord struct {
	Name  statName `json:"name"`
	Count int      `json:"count"`
}

type statName struct {
	Name             string `json:"name"`
	PerturbationName string `json:"perturbation_name"`
	Perturbation     *struct {
		Name string `json:"name"`
	} `json:"perturbation"`
}

// ParseRuns decodes a HELM runs.json array. The model is read from
// run_spec.adapter_spec.model, falling back to a top-level adapter_spec.
func ParseRuns(path string, payload []byte) ([]Run, error) {
	var records []runRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("parse helm runs %s: %w", path, err)
	}
	out := make([]Run, 0, len(records))
	for idx, r := range records {
		model := strings.TrimSpace(firstNonEmpty(r.RunSpec.AdapterSpec.Model, r.AdapterSpec.Model))
		if model == "" {
			return nil, fmt.Errorf("helm runs %s: run %d: missing adapter_spec.model", path, idx)
		}
		stats := make([]Stat, 0, len(r.Stats))
		for _, s := range r.Stats {
			pert := s.Name.PerturbationName
			if pert == "" && s.Name.Perturbation != nil {
				pert = s.Name.Perturbation.Name
			}
			stats = append(stats, Stat{
				Name:         s.Name.Name,
				Perturbation: pert,
				Count:        s.Count,
			})
		}
		out = append(out, Run{Model: model, Stats: stats})
	}
	return out, nil
}

func firstNonEmpty(v ...string) string {
	for _, s := range v {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
