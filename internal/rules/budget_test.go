package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/rules"
)

func TestOccupationBudget(t *testing.T) {
	c := &coc.Characteristics{STR: 60, CON: 65, SIZ: 45, DEX: 50, APP: 30, INT: 40, POW: 60, EDU: 67}

	t.Run("single stat formula", func(t *testing.T) {
		occ := &coc.Occupation{SkillPoints: coc.SkillPointsFormula{Stats: []coc.Stat{coc.StatEDU}, Multiplier: 4}}
		assert.Equal(t, 268, rules.OccupationBudget(occ, c))
	})

	t.Run("multi stat formula", func(t *testing.T) {
		occ := &coc.Occupation{SkillPoints: coc.SkillPointsFormula{Stats: []coc.Stat{coc.StatEDU, coc.StatDEX}, Multiplier: 2}}
		assert.Equal(t, 234, rules.OccupationBudget(occ, c))
	})
}

func TestPersonalBudget(t *testing.T) {
	c := &coc.Characteristics{INT: 40}
	assert.Equal(t, 80, rules.PersonalBudget(c))
}

func TestPoolTotals(t *testing.T) {
	allocations := map[string]coc.PointPool{
		"spot_hidden":       {Occupation: 40, Personal: 10},
		"library_use":       {Occupation: 30},
		"science:biology":   {Occupation: 25},
		"fighting:brawl":    {Personal: 20},
		coc.CreditRatingSkillID: {Occupation: 35},
	}

	occupation, personal := rules.PoolTotals(allocations)
	assert.Equal(t, 130, occupation)
	assert.Equal(t, 30, personal)
}

func TestClampToRemaining(t *testing.T) {
	assert.Equal(t, 20, rules.ClampToRemaining(20, 50))
	assert.Equal(t, 50, rules.ClampToRemaining(80, 50))
	assert.Equal(t, 0, rules.ClampToRemaining(10, 0))
	assert.Equal(t, 0, rules.ClampToRemaining(-5, 50))
}

func TestCheckSkillCap(t *testing.T) {
	assert.NoError(t, rules.CheckSkillCap(25, coc.PointPool{Occupation: 40, Personal: 15}, 80))

	err := rules.CheckSkillCap(25, coc.PointPool{Occupation: 40, Personal: 16}, 80)
	assert.True(t, errors.IsFailedPrecondition(err))

	// session override below the default
	err = rules.CheckSkillCap(25, coc.PointPool{Occupation: 40}, 60)
	assert.True(t, errors.IsFailedPrecondition(err))
}
