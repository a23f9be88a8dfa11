package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

func TestClassifySolubility(t *testing.T) {
	testCases := []struct {
		logS float64
		want string
	}{
		{0.5, "very soluble"},
		{-0.99, "very soluble"},
		{-1, "soluble"}, // breakpoints are strict, so -1 falls into the next bin
		{-1.5, "soluble"},
		{-2, "moderately soluble"},
		{-2.9, "moderately soluble"},
		{-3, "slightly soluble"},
		{-3.9, "slightly soluble"},
		{-4, "poorly soluble"},
		{-8, "poorly soluble"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, domain.ClassifySolubility(tc.logS), "logS=%v", tc.logS)
	}
}

func TestEstimateSolubilityModels(t *testing.T) {
	p := domain.CompoundProperties{
		MolecularWeight: fptr(180.16),
		ALogP:           fptr(1.31),
		HBD:             fptr(1),
		RotatableBonds:  fptr(2),
	}
	est := domain.EstimateSolubility(p)

	assert.InDelta(t, 0.5-1.31, est.LogSYalkowsky, 1e-9)
	assert.InDelta(t, 0.25-1.0377*1.31-0.0035*180.16+0.25*1, est.LogSAli, 1e-9)
	assert.InDelta(t, 0.16-0.63*1.31-0.0062*180.16+0.066*2, est.LogSESOL, 1e-9)
	assert.InDelta(t, (est.LogSYalkowsky+est.LogSAli+est.LogSESOL)/3, est.LogS, 1e-9)
	assert.Equal(t, domain.ClassifySolubility(est.LogS), est.Class)
}

func TestEstimateSolubilityMassNeedsMolecularWeight(t *testing.T) {
	withMW := domain.EstimateSolubility(domain.CompoundProperties{
		MolecularWeight: fptr(200),
		ALogP:           fptr(2),
	})
	require.NotNil(t, withMW.MassSolubility)
	assert.InDelta(t, withMW.MolarSolubility*200, *withMW.MassSolubility, 1e-9)

	withoutMW := domain.EstimateSolubility(domain.CompoundProperties{ALogP: fptr(2)})
	assert.Nil(t, withoutMW.MassSolubility)
	assert.Positive(t, withoutMW.MolarSolubility)
}

func TestEstimateSolubilityExplanations(t *testing.T) {
	est := domain.EstimateSolubility(domain.CompoundProperties{})
	assert.Equal(t, "Unknown", est.Explanations.Lipophilicity)
	assert.Equal(t, "Unknown", est.Explanations.HydrogenBonding)
	assert.Equal(t, "Unknown", est.Explanations.Size)
	assert.Equal(t, "Unknown", est.Explanations.Flexibility)

	est = domain.EstimateSolubility(domain.CompoundProperties{
		ALogP:           fptr(6),
		MolecularWeight: fptr(600),
		HBD:             fptr(6),
		HBA:             fptr(8),
		RotatableBonds:  fptr(12),
	})
	assert.Contains(t, est.Explanations.Lipophilicity, "Very high lipophilicity")
	assert.Contains(t, est.Explanations.HydrogenBonding, "Extensive hydrogen bonding")
	assert.Contains(t, est.Explanations.Size, "Large molecular size")
	assert.Contains(t, est.Explanations.Flexibility, "High flexibility")
}

func TestEstimateSolubilityRecommendations(t *testing.T) {
	// Drug-like input with decent predicted solubility yields only the
	// hydrogen-bonding note when donors plus acceptors stay under three.
	mild := domain.EstimateSolubility(domain.CompoundProperties{
		MolecularWeight: fptr(150),
		ALogP:           fptr(0.5),
		HBD:             fptr(2),
		HBA:             fptr(3),
	})
	assert.Empty(t, mild.Recommendations)

	poor := domain.EstimateSolubility(domain.CompoundProperties{
		MolecularWeight: fptr(650),
		ALogP:           fptr(6),
		HBD:             fptr(1),
		HBA:             fptr(1),
	})
	require.NotEmpty(t, poor.Recommendations)
	assert.Len(t, poor.Recommendations, 4)
}
