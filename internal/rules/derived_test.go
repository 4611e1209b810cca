package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/rulebook"
	"github.com/mythostools/investigator-api/internal/rules"
)

func TestCalculateHP(t *testing.T) {
	for con := 1; con <= 99; con += 7 {
		for siz := 1; siz <= 99; siz += 7 {
			assert.Equal(t, (con+siz)/10, rules.CalculateHP(con, siz))
		}
	}
	assert.Equal(t, 11, rules.CalculateHP(65, 45))
}

func TestCalculateMP(t *testing.T) {
	assert.Equal(t, 12, rules.CalculateMP(60))
	assert.Equal(t, 0, rules.CalculateMP(4))
	assert.Equal(t, 19, rules.CalculateMP(99))
}

func TestCalculateDodge(t *testing.T) {
	assert.Equal(t, 25, rules.CalculateDodge(50))
	assert.Equal(t, 24, rules.CalculateDodge(49))
}

func TestCalculateMoveRate(t *testing.T) {
	tests := []struct {
		name          string
		str, dex, siz int
		want          int
	}{
		{"both below siz", 40, 40, 60, 7},
		{"both above siz", 60, 70, 45, 9},
		{"str above dex below", 60, 40, 50, 8},
		{"dex above str below", 40, 60, 50, 8},
		{"dex equals siz", 50, 50, 50, 8},
		{"str equals siz both high dex", 50, 80, 50, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.CalculateMoveRate(tt.str, tt.dex, tt.siz))
		})
	}
}

func TestDamageBonusTotality(t *testing.T) {
	// Every combined value must hit a band; above 524 the top band applies.
	for combined := 2; combined <= 1200; combined++ {
		db, build := rulebook.DamageBonus(combined)
		assert.NotEmpty(t, db, "combined %d", combined)
		assert.GreaterOrEqual(t, build, -2)
		assert.LessOrEqual(t, build, 6)
	}

	db, build := rulebook.DamageBonus(100000)
	assert.Equal(t, "+5d6", db)
	assert.Equal(t, 6, build)

	db, build = rulebook.DamageBonus(105)
	assert.Equal(t, "0", db)
	assert.Equal(t, 0, build)
}

func TestCalculateDerived(t *testing.T) {
	c := &coc.Characteristics{STR: 60, CON: 65, SIZ: 45, DEX: 50, APP: 30, INT: 40, POW: 60, EDU: 67}

	derived := rules.CalculateDerived(c, coc.AgeModification{})

	assert.Equal(t, 11, derived.HitPoints)
	assert.Equal(t, 12, derived.MagicPoints)
	assert.Equal(t, 60, derived.Sanity)
	assert.Equal(t, 25, derived.Dodge)
	assert.Equal(t, 9, derived.MoveRate)
	assert.Equal(t, "0", derived.DamageBonus)
	assert.Equal(t, 0, derived.Build)
}

func TestCalculateDerivedAppliesMoveReduction(t *testing.T) {
	c := &coc.Characteristics{STR: 60, CON: 65, SIZ: 45, DEX: 50, APP: 30, INT: 40, POW: 60, EDU: 67}

	derived := rules.CalculateDerived(c, coc.AgeModification{MoveReduction: 3})

	assert.Equal(t, 6, derived.MoveRate)
}
