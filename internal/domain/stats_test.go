package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

func TestSummarizeProperty(t *testing.T) {
	empty := domain.SummarizeProperty(nil)
	assert.Equal(t, 0, empty.Count)
	assert.Nil(t, empty.Min)
	assert.Nil(t, empty.Mean)

	odd := domain.SummarizeProperty([]float64{5, 1, 3})
	require.Equal(t, 3, odd.Count)
	assert.Equal(t, 1.0, *odd.Min)
	assert.Equal(t, 5.0, *odd.Max)
	assert.InDelta(t, 3.0, *odd.Mean, 1e-9)
	assert.Equal(t, 3.0, *odd.Median)

	even := domain.SummarizeProperty([]float64{4, 1, 3, 2})
	require.Equal(t, 4, even.Count)
	assert.InDelta(t, 2.5, *even.Median, 1e-9)
}

func TestSummarizePropertyDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	domain.SummarizeProperty(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestAnalyzeCompounds(t *testing.T) {
	props := []domain.CompoundProperties{
		{MolecularWeight: fptr(180), ALogP: fptr(1.3), NumRo5Violations: fptr(0)},
		{MolecularWeight: fptr(250), ALogP: fptr(2.1), NumRo5Violations: fptr(1)},
		{MolecularWeight: fptr(320), NumRo5Violations: fptr(3)},
		{ALogP: fptr(4.5)}, // no violation count, excluded from the rate
	}

	analytics := domain.AnalyzeCompounds(props)

	assert.Equal(t, 4, analytics.TotalCompounds)

	mw := analytics.Properties["molecular_weight"]
	require.Equal(t, 3, mw.Count)
	assert.Equal(t, 180.0, *mw.Min)
	assert.Equal(t, 320.0, *mw.Max)
	assert.Equal(t, 250.0, *mw.Median)

	logp := analytics.Properties["alogp"]
	assert.Equal(t, 3, logp.Count)

	hbd := analytics.Properties["hbd"]
	assert.Equal(t, 0, hbd.Count)
	assert.Nil(t, hbd.Mean)

	// Two of the three records carrying a violation count have at most one.
	require.NotNil(t, analytics.LipinskiComplianceRate)
	assert.InDelta(t, 2.0/3.0, *analytics.LipinskiComplianceRate, 1e-9)
}

func TestAnalyzeCompoundsNoViolationCounts(t *testing.T) {
	analytics := domain.AnalyzeCompounds([]domain.CompoundProperties{
		{MolecularWeight: fptr(180)},
	})
	assert.Nil(t, analytics.LipinskiComplianceRate)
}

func TestAnalyzeCompoundsInsights(t *testing.T) {
	// A tight, fully compliant set triggers the compliance, weight-span and
	// donor-count insights.
	props := []domain.CompoundProperties{
		{MolecularWeight: fptr(200), HBD: fptr(1), NumRo5Violations: fptr(0)},
		{MolecularWeight: fptr(260), HBD: fptr(2), NumRo5Violations: fptr(0)},
	}
	analytics := domain.AnalyzeCompounds(props)
	require.Len(t, analytics.Insights, 3)
	assert.Contains(t, analytics.Insights[0], "Lipinski-compliant")
	assert.Contains(t, analytics.Insights[1], "molecular weight")
	assert.Contains(t, analytics.Insights[2], "donor")
}
