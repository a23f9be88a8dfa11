package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

func fptr(f float64) *float64 { return &f }

func drugLikeProperties() domain.CompoundProperties {
	return domain.CompoundProperties{
		MolecularWeight: fptr(180.16),
		ALogP:           fptr(1.31),
		HBD:             fptr(1),
		HBA:             fptr(3),
		PSA:             fptr(63.6),
		RotatableBonds:  fptr(2),
	}
}

func TestScoreBioavailabilityAllRulesPass(t *testing.T) {
	score := domain.ScoreBioavailability(drugLikeProperties())

	assert.Equal(t, 6, score.RulesPassed)
	assert.Equal(t, 6, score.RulesTotal)
	assert.Equal(t, 1.0, score.Score)
	assert.Equal(t, "High", score.Category)
	require.Len(t, score.Checks, 6)
	for _, c := range score.Checks {
		assert.True(t, c.Pass, "rule %s should pass", c.Rule)
	}
}

func TestScoreBioavailabilityThresholdsAreInclusive(t *testing.T) {
	// Every value sits exactly on its threshold.
	p := domain.CompoundProperties{
		MolecularWeight: fptr(500),
		ALogP:           fptr(5),
		HBD:             fptr(5),
		HBA:             fptr(10),
		PSA:             fptr(140),
		RotatableBonds:  fptr(10),
	}
	score := domain.ScoreBioavailability(p)
	assert.Equal(t, 6, score.RulesPassed)
	assert.Equal(t, "High", score.Category)
}

func TestScoreBioavailabilityMissingPropertyFails(t *testing.T) {
	p := drugLikeProperties()
	p.PSA = nil
	score := domain.ScoreBioavailability(p)

	assert.Equal(t, 5, score.RulesPassed)
	for _, c := range score.Checks {
		if c.Rule == "psa" {
			assert.False(t, c.Pass)
			assert.Nil(t, c.Value)
		}
	}
}

func TestScoreBioavailabilityCategories(t *testing.T) {
	testCases := []struct {
		name  string
		props domain.CompoundProperties
		want  string
	}{
		{
			name:  "all absent is Low",
			props: domain.CompoundProperties{},
			want:  "Low",
		},
		{
			name: "three passes is Medium",
			props: domain.CompoundProperties{
				MolecularWeight: fptr(450),
				ALogP:           fptr(4),
				HBD:             fptr(3),
			},
			want: "Medium",
		},
		{
			name: "five passes is High",
			props: domain.CompoundProperties{
				MolecularWeight: fptr(450),
				ALogP:           fptr(4),
				HBD:             fptr(3),
				HBA:             fptr(8),
				PSA:             fptr(100),
			},
			want: "High",
		},
		{
			name: "heavy greasy molecule is Low",
			props: domain.CompoundProperties{
				MolecularWeight: fptr(900),
				ALogP:           fptr(8),
				HBD:             fptr(9),
				HBA:             fptr(14),
				PSA:             fptr(220),
				RotatableBonds:  fptr(18),
			},
			want: "Low",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := domain.ScoreBioavailability(tc.props)
			assert.Equal(t, tc.want, score.Category)
		})
	}
}

func TestScoreBioavailabilityScoreIsFraction(t *testing.T) {
	p := domain.CompoundProperties{
		MolecularWeight: fptr(300),
		ALogP:           fptr(2),
		HBD:             fptr(1),
	}
	score := domain.ScoreBioavailability(p)
	assert.Equal(t, 3, score.RulesPassed)
	assert.InDelta(t, 0.5, score.Score, 1e-9)
}
