package helm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MetricGroup is a normalized HELM metric group.
type MetricGroup struct {
	Name        string
	DisplayName string
	Description string
	Metrics     []string
	MetricCount int
}

type schemaDoc struct {
	MetricGroups []metricGroupRecord `json:"metric_groups"`
}

type metricGroupRecord struct {
	Name        *string        `json:"name"`
	DisplayName *string        `json:"display_name"`
	Description *string        `json:"description"`
	Metrics     []metricRecord `json:"metrics"`
}

type metricRecord struct {
	Name *string `json:"name"`
}

// ParseSchema extracts metric groups from a HELM schema.json keyed by group
// name. A group or metric without a name is a structural error.
func ParseSchema(path string, payload []byte) (map[string]MetricGroup, error) {
	var doc schemaDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("parse helm schema %s: %w", path, err)
	}

	groups := make(map[string]MetricGroup, len(doc.MetricGroups))
	for idx, mg := range doc.MetricGroups {
		if mg.Name == nil {
			return nil, fmt.Errorf("helm schema %s: metric_groups[%d]: %w", path, idx, errMissingName)
		}
		name := *mg.Name
		metrics := make([]string, 0, len(mg.Metrics))
		for mi, m := range mg.Metrics {
			if m.Name == nil {
				return nil, fmt.Errorf("helm schema %s: metric_groups[%d].metrics[%d]: %w", path, idx, mi, errMissingName)
			}
			metrics = append(metrics, *m.Name)
		}
		group := MetricGroup{
			Name:        name,
			DisplayName: name,
			Metrics:     metrics,
			MetricCount: len(metrics),
		}
		if mg.DisplayName != nil {
			group.DisplayName = *mg.DisplayName
		}
		if mg.Description != nil {
			group.Description = *mg.Description
		}
		groups[name] = group
	}
	return groups, nil
}

var errMissingName = errors.New("missing required field name")

// CountGroupsMetadata returns the number of entries in groups_metadata.json,
// which HELM emits as an object keyed by group name.
func CountGroupsMetadata(path string, payload []byte) (int, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err == nil {
		return len(obj), nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(payload, &arr); err != nil {
		return 0, fmt.Errorf("parse groups metadata %s: expected object or array", path)
	}
	return len(arr), nil
}
