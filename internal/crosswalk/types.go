package crosswalk

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/solardome/helm-nist-crosswalk/internal/ingest/helm"
	"github.com/solardome/helm-nist-crosswalk/internal/ingest/nist"
	"github.com/solardome/helm-nist-crosswalk/internal/policy"
	"github.com/solardome/helm-nist-crosswalk/internal/scoring"
	"github.com/solardome/helm-nist-crosswalk/internal/signals"
)

const (
	DefaultHELMVersion = "v0.4.0"
	DefaultHELMDir     = "../helm_download/data/v0.4.0"
	DefaultDataDir     = "data"

	SchemaVersion = "1.0.0"

	// DoNotUse replaces the indicator title in table rows whose category
	// failed or matched nothing.
	DoNotUse = "Do Not Use"
	// AllModels labels table rows when no run data was supplied.
	AllModels = "(all models)"

	description = "Mapping from HELM Classic benchmark metric categories " +
		"to NIST AI RMF playbook indicators, weighted by category " +
		"importance and normalized by match count."
)

var csvHeader = []string{"Model", "Category", "weight", "stanford HELM signal", "NIST AI RMF", "type", "type_weight"}

var (
	ErrMissingInput  = errors.New("required input missing")
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	HELMDir            string
	SchemaPath         string
	GroupsMetadataPath string
	// RunsPattern is a path or doublestar glob of HELM runs.json files.
	RunsPattern string

	DataDir           string
	PlaybookURL       string
	PlaybookCachePath string
	MappingConfigPath string

	OutJSONPath   string
	OutCSVPath    string
	ChecksumsPath string
	RunLogPath    string
	MetricsPath   string

	HELMVersion  string
	FetchTimeout time.Duration

	Logger  *slog.Logger
	Summary io.Writer
	Fetcher *nist.Fetcher
	Now     func() time.Time
}

type EngineState struct {
	Now   time.Time
	Table policy.Table

	Groups                map[string]helm.MetricGroup
	GroupsMetadataEntries int
	Playbook              []nist.Entry
	PlaybookSource        nist.Source
	Runs                  []helm.Run
	RunsFiles             []string
	InputDigests          []InputDigest

	Mappings         []scoring.Mapping
	TypeWeights      scoring.TypeWeights
	TotalTierValue   float64
	Signals          signals.Result
	ModelTypeWeights map[string]map[string]float64

	Trace []TraceEntry
}

type InputDigest struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	ReadOK bool   `json:"read_ok"`
}

type TraceEntry struct {
	Order   int                    `json:"order"`
	Phase   string                 `json:"phase"`
	Result  string                 `json:"result"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type Document struct {
	Metadata    Metadata          `json:"metadata"`
	TypeWeights map[string]string `json:"type_weights"`
	Mappings    []MappingRecord   `json:"mappings"`
	Models      []ModelRecord     `json:"models"`
	Trace       []TraceEntry      `json:"trace"`

	Outputs Outputs `json:"-"`
}

// Outputs holds the resolved artifact paths of a run.
type Outputs struct {
	JSON      string
	CSV       string
	Checksums string
	RunLog    string
	Metrics   string
}

type Metadata struct {
	HELMVersion           string        `json:"helm_version"`
	NISTSource            string        `json:"nist_source"`
	Generated             string        `json:"generated"`
	Description           string        `json:"description"`
	SchemaVersion         string        `json:"schema_version"`
	RunID                 string        `json:"run_id"`
	GroupsMetadataEntries int           `json:"groups_metadata_entries"`
	TotalTierValue        float64       `json:"total_tier_value"`
	Inputs                []InputDigest `json:"inputs"`
}

type MappingRecord struct {
	HELMCategory    string            `json:"helm_category"`
	HELMDisplayName string            `json:"helm_display_name"`
	HELMMetrics     []string          `json:"helm_metrics"`
	HELMMetricCount int               `json:"helm_metric_count"`
	WeightTier      string            `json:"weight_tier"`
	NISTIndicators  []IndicatorRecord `json:"nist_indicators"`
}

type IndicatorRecord struct {
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Topics        []string `json:"topics"`
	MappingWeight float64  `json:"mapping_weight"`
	TypeWeight    string   `json:"type_weight"`
}

type ModelRecord struct {
	Model        string            `json:"model"`
	SignalStatus map[string]string `json:"signal_status"`
	TypeWeights  map[string]string `json:"type_weights"`
}
