package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/rulebook"
	"github.com/mythostools/investigator-api/internal/rules"
)

func TestAgeRangesPartition(t *testing.T) {
	// Exactly one band matches every age in [15, 89].
	for age := coc.AgeMin; age <= coc.AgeMax; age++ {
		matches := 0
		for _, r := range rulebook.AgeRanges() {
			if r.Contains(age) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "age %d", age)
	}
}

func TestResolveAgeModification(t *testing.T) {
	t.Run("rejects ages outside range", func(t *testing.T) {
		_, err := rules.ResolveAgeModification(14)
		assert.True(t, errors.IsOutOfRange(err))

		_, err = rules.ResolveAgeModification(90)
		assert.True(t, errors.IsOutOfRange(err))
	})

	t.Run("young band", func(t *testing.T) {
		mod, err := rules.ResolveAgeModification(17)
		require.NoError(t, err)

		assert.True(t, mod.Young)
		assert.Equal(t, 0, mod.EDUImprovementChecks)
		assert.Equal(t, 5, mod.DeductionPoints)
		assert.ElementsMatch(t, []coc.Stat{coc.StatSTR, coc.StatSIZ}, mod.DeductibleStats)
		assert.Equal(t, 0, mod.AppearanceReduction)
		assert.Equal(t, 0, mod.MoveReduction)
	})

	t.Run("prime band has no deductions", func(t *testing.T) {
		mod, err := rules.ResolveAgeModification(25)
		require.NoError(t, err)

		assert.False(t, mod.Young)
		assert.Equal(t, 1, mod.EDUImprovementChecks)
		assert.Equal(t, 0, mod.DeductionPoints)
	})

	t.Run("oldest band", func(t *testing.T) {
		mod, err := rules.ResolveAgeModification(89)
		require.NoError(t, err)

		assert.Equal(t, 4, mod.EDUImprovementChecks)
		assert.Equal(t, 80, mod.DeductionPoints)
		assert.ElementsMatch(t, []coc.Stat{coc.StatSTR, coc.StatCON, coc.StatDEX}, mod.DeductibleStats)
		assert.Equal(t, 25, mod.AppearanceReduction)
		assert.Equal(t, 5, mod.MoveReduction)
	})
}

func TestValidateDeductions(t *testing.T) {
	c := &coc.Characteristics{STR: 60, CON: 65, SIZ: 45, DEX: 50, APP: 30, INT: 40, POW: 60, EDU: 67}
	mod := coc.AgeModification{
		DeductionPoints: 5,
		DeductibleStats: []coc.Stat{coc.StatSTR, coc.StatSIZ},
	}

	t.Run("exact sum accepted", func(t *testing.T) {
		err := rules.ValidateDeductions(c, mod, map[coc.Stat]int{coc.StatSTR: 3, coc.StatSIZ: 2})
		assert.NoError(t, err)
	})

	t.Run("sum below requirement rejected", func(t *testing.T) {
		err := rules.ValidateDeductions(c, mod, map[coc.Stat]int{coc.StatSTR: 2, coc.StatSIZ: 2})
		assert.True(t, errors.IsFailedPrecondition(err))
	})

	t.Run("sum above requirement rejected", func(t *testing.T) {
		err := rules.ValidateDeductions(c, mod, map[coc.Stat]int{coc.StatSTR: 4, coc.StatSIZ: 2})
		assert.True(t, errors.IsFailedPrecondition(err))
	})

	t.Run("ineligible stat rejected", func(t *testing.T) {
		err := rules.ValidateDeductions(c, mod, map[coc.Stat]int{coc.StatDEX: 5})
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("negative value rejected", func(t *testing.T) {
		err := rules.ValidateDeductions(c, mod, map[coc.Stat]int{coc.StatSTR: -1, coc.StatSIZ: 6})
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("cannot reduce below 1", func(t *testing.T) {
		weak := &coc.Characteristics{STR: 3, CON: 65, SIZ: 45, DEX: 50, APP: 30, INT: 40, POW: 60, EDU: 67}
		err := rules.ValidateDeductions(weak, mod, map[coc.Stat]int{coc.StatSTR: 3, coc.StatSIZ: 2})
		assert.True(t, errors.IsInvalidArgument(err))
	})
}

func TestApplyAgeEffects(t *testing.T) {
	c := &coc.Characteristics{STR: 60, CON: 65, SIZ: 45, DEX: 50, APP: 30, INT: 40, POW: 60, EDU: 67}
	mod := coc.AgeModification{
		DeductionPoints:     10,
		DeductibleStats:     []coc.Stat{coc.StatSTR, coc.StatCON, coc.StatDEX},
		AppearanceReduction: 10,
	}

	result, err := rules.ApplyAgeEffects(c, mod, map[coc.Stat]int{coc.StatSTR: 5, coc.StatDEX: 5})
	require.NoError(t, err)

	assert.Equal(t, 55, result.STR)
	assert.Equal(t, 45, result.DEX)
	assert.Equal(t, 65, result.CON)
	assert.Equal(t, 20, result.APP)
	// original untouched
	assert.Equal(t, 60, c.STR)
	assert.Equal(t, 30, c.APP)
}

func TestApplyAgeEffectsAppearanceFloor(t *testing.T) {
	c := &coc.Characteristics{STR: 60, CON: 65, SIZ: 45, DEX: 50, APP: 5, INT: 40, POW: 60, EDU: 67}
	mod := coc.AgeModification{AppearanceReduction: 25}

	result, err := rules.ApplyAgeEffects(c, mod, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.APP)
}
