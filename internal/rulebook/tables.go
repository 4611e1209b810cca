package rulebook

import (
	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
)

// AgeRange is one band of the age modification table. Bands are closed
// intervals and partition [AgeMin, AgeMax] with no gaps or overlaps.
type AgeRange struct {
	Min          int
	Max          int
	Modification coc.AgeModification
}

// Contains reports whether age falls in the band
func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

var youngStats = []coc.Stat{coc.StatSTR, coc.StatSIZ}
var agingStats = []coc.Stat{coc.StatSTR, coc.StatCON, coc.StatDEX}

// ageRanges is the fixed age modification table. Band boundaries are rules
// constants, not derived values.
var ageRanges = []AgeRange{
	{Min: 15, Max: 19, Modification: coc.AgeModification{
		EDUImprovementChecks: 0,
		DeductionPoints:      5,
		DeductibleStats:      youngStats,
		Young:                true,
	}},
	{Min: 20, Max: 39, Modification: coc.AgeModification{
		EDUImprovementChecks: 1,
	}},
	{Min: 40, Max: 49, Modification: coc.AgeModification{
		EDUImprovementChecks: 2,
		DeductionPoints:      5,
		DeductibleStats:      agingStats,
		AppearanceReduction:  5,
		MoveReduction:        1,
	}},
	{Min: 50, Max: 59, Modification: coc.AgeModification{
		EDUImprovementChecks: 3,
		DeductionPoints:      10,
		DeductibleStats:      agingStats,
		AppearanceReduction:  10,
		MoveReduction:        2,
	}},
	{Min: 60, Max: 69, Modification: coc.AgeModification{
		EDUImprovementChecks: 4,
		DeductionPoints:      20,
		DeductibleStats:      agingStats,
		AppearanceReduction:  15,
		MoveReduction:        3,
	}},
	{Min: 70, Max: 79, Modification: coc.AgeModification{
		EDUImprovementChecks: 4,
		DeductionPoints:      40,
		DeductibleStats:      agingStats,
		AppearanceReduction:  20,
		MoveReduction:        4,
	}},
	{Min: 80, Max: 89, Modification: coc.AgeModification{
		EDUImprovementChecks: 4,
		DeductionPoints:      80,
		DeductibleStats:      agingStats,
		AppearanceReduction:  25,
		MoveReduction:        5,
	}},
}

// AgeRanges returns the full age table
func AgeRanges() []AgeRange {
	return ageRanges
}

// AgeRangeFor returns the band containing age, failing outside [15, 89]
func AgeRangeFor(age int) (AgeRange, error) {
	for _, r := range ageRanges {
		if r.Contains(age) {
			return r, nil
		}
	}
	return AgeRange{}, errors.OutOfRangef("age %d must be between %d and %d", age, coc.AgeMin, coc.AgeMax)
}

// damageBonusBand maps a STR+SIZ interval to a damage bonus and build
type damageBonusBand struct {
	min, max    int
	damageBonus string
	build       int
}

// damageBonusTable covers combined STR+SIZ. The top band is open-ended:
// any value above 524 uses it.
var damageBonusTable = []damageBonusBand{
	{2, 64, "-2", -2},
	{65, 84, "-1", -1},
	{85, 124, "0", 0},
	{125, 164, "+1d4", 1},
	{165, 204, "+1d6", 2},
	{205, 284, "+2d6", 3},
	{285, 364, "+3d6", 4},
	{365, 444, "+4d6", 5},
	{445, 524, "+5d6", 6},
}

// DamageBonus returns the damage bonus string and build for a combined
// STR+SIZ value. Values above the table's explicit upper bound fall into
// the highest band.
func DamageBonus(combined int) (string, int) {
	for _, band := range damageBonusTable {
		if combined >= band.min && combined <= band.max {
			return band.damageBonus, band.build
		}
	}
	top := damageBonusTable[len(damageBonusTable)-1]
	return top.damageBonus, top.build
}
