// Package rules implements the pure creation calculators: characteristic
// generation, age effects, derived attributes, skill budgets, occupation
// slot resolution, and wealth allocation. Everything here is synchronous
// and side-effect free; randomness comes in through the dice.Roller.
package rules

import (
	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/rulebook"
)

// CalculateHP returns hit points: floor((CON+SIZ)/10)
func CalculateHP(con, siz int) int {
	return (con + siz) / 10
}

// CalculateMP returns magic points: floor(POW/5)
func CalculateMP(pow int) int {
	return pow / 5
}

// CalculateSanity returns starting sanity, equal to POW
func CalculateSanity(pow int) int {
	return pow
}

// CalculateDodge returns the dodge base: floor(DEX/2)
func CalculateDodge(dex int) int {
	return dex / 2
}

// CalculateMoveRate returns 7 when both DEX and STR are below SIZ, 9 when
// both exceed SIZ, and 8 otherwise.
func CalculateMoveRate(str, dex, siz int) int {
	switch {
	case dex < siz && str < siz:
		return 7
	case dex > siz && str > siz:
		return 9
	default:
		return 8
	}
}

// CalculateDerived computes all derived attributes from characteristics
// already carrying their age deductions. The age modification contributes
// only the move-rate reduction here.
func CalculateDerived(c *coc.Characteristics, mod coc.AgeModification) coc.DerivedAttributes {
	damageBonus, build := rulebook.DamageBonus(c.STR + c.SIZ)

	return coc.DerivedAttributes{
		HitPoints:   CalculateHP(c.CON, c.SIZ),
		MagicPoints: CalculateMP(c.POW),
		Sanity:      CalculateSanity(c.POW),
		Dodge:       CalculateDodge(c.DEX),
		MoveRate:    CalculateMoveRate(c.STR, c.DEX, c.SIZ) - mod.MoveReduction,
		DamageBonus: damageBonus,
		Build:       build,
	}
}
