package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableIsValid(t *testing.T) {
	table := DefaultTable()
	assert.Empty(t, ValidateTable(table))
	assert.Len(t, table.Categories, 16)

	for _, c := range table.Categories {
		assert.True(t, c.Signal.Configured(), "category %s has no signal rule", c.Name)
	}
}

func TestTierValue(t *testing.T) {
	cases := []struct {
		tier string
		want float64
		ok   bool
	}{
		{"high", 1.0, true},
		{"medium", 0.6, true},
		{"low", 0.3, true},
		{" HIGH ", 1.0, true},
		{"critical", 0, false},
	}
	for _, c := range cases {
		got, ok := TierValue(c.tier)
		assert.Equal(t, c.ok, ok, c.tier)
		assert.InDelta(t, c.want, got, 1e-9, c.tier)
	}
}

func TestTableLabelFallsBackToDisplayName(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, "Toxic output fraction", table.Label("toxicity", "Toxicity"))
	assert.Equal(t, "Language", table.Label("language", "Language"))
}

func TestValidateTableReportsProblems(t *testing.T) {
	table := Table{Categories: []CategoryRule{
		{Name: "toxicity", Tier: "high", Keywords: []string{"Safety"}},
		{Name: "toxicity", Tier: "extreme", Keywords: nil},
		{Name: "", Tier: "low", Keywords: []string{"x"}},
		{Name: "bias", Tier: "low", Keywords: []string{" "}, Signal: SignalRule{StatName: "bias", Match: "regex"}},
	}}
	errs := ValidateTable(table)
	assert.Contains(t, errs, "category toxicity: duplicate name")
	assert.Contains(t, errs, `category toxicity: weight_tier "extreme" must be high, medium or low`)
	assert.Contains(t, errs, "category toxicity: keywords required")
	assert.Contains(t, errs, "categories[2]: name required")
	assert.Contains(t, errs, "category bias: empty keyword")
	assert.Contains(t, errs, `category bias: signal match "regex" must be exact or prefix`)
}

func TestValidateTableSignalMatch(t *testing.T) {
	rule := func(match string) Table {
		return Table{Categories: []CategoryRule{
			{Name: "toxicity", Tier: "high", Keywords: []string{"Safety"}, Signal: SignalRule{StatName: "toxic_frac", Match: match}},
		}}
	}
	assert.Empty(t, ValidateTable(rule("")))
	assert.Empty(t, ValidateTable(rule("Prefix")))
	assert.Equal(t, []string{`category toxicity: signal match "unknown" must be exact or prefix`}, ValidateTable(rule("unknown")))
}

func TestLoadTableOverride(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "mapping.yaml")
	content := `categories:
  - name: toxicity
    weight_tier: High
    keywords: [Safety]
    label: Toxic output fraction
    signal:
      stat_name: toxic_frac
      match: exact
  - name: robustness
    weight_tier: high
    keywords: ["Secure and Resilient", Safety]
    signal:
      perturbation_name: robustness
`
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	table, hash, err := LoadTable(p)
	require.NoError(t, err)
	assert.Len(t, hash, 64)
	require.Len(t, table.Categories, 2)
	assert.Equal(t, "high", table.Categories[0].Tier)
	assert.Equal(t, "toxic_frac", table.Categories[0].Signal.StatName)
	assert.False(t, table.Categories[0].Signal.Prefix())
	assert.Equal(t, []string{"Secure and Resilient", "Safety"}, table.Categories[1].Keywords)
	assert.Equal(t, "robustness", table.Categories[1].Signal.PerturbationName)
}

func TestParseTableRejectsUnknownMatchMode(t *testing.T) {
	content := `categories:
  - name: toxicity
    weight_tier: high
    keywords: [Safety]
    signal:
      stat_name: toxic_frac
      match: unknown
`
	_, err := ParseTable("mapping.yaml", []byte(content))
	require.ErrorIs(t, err, ErrInvalidTable)
	assert.Contains(t, err.Error(), `signal match "unknown" must be exact or prefix`)
}

func TestParseTableStrictUnknownField(t *testing.T) {
	content := `categories:
  - name: toxicity
    weight_tier: high
    keywords: [Safety]
    weight: 2
`
	_, err := ParseTable("mapping.yaml", []byte(content))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTable)
	assert.Contains(t, err.Error(), "line 5 field mapping.categories[0].weight: unknown field")
}

func TestParseTableStrictDuplicateAndMissing(t *testing.T) {
	content := `categories:
  - name: toxicity
    name: bias
    keywords: [Safety]
`
	_, err := ParseTable("mapping.yaml", []byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
	assert.Contains(t, err.Error(), "mapping.categories[0].weight_tier: missing required field")
}

func TestParseTableRejectsBadTier(t *testing.T) {
	content := `categories:
  - name: toxicity
    weight_tier: extreme
    keywords: [Safety]
`
	_, err := ParseTable("mapping.yaml", []byte(content))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTable)
	assert.Contains(t, err.Error(), "weight_tier")
}
