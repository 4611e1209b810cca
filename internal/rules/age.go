package rules

import (
	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/rulebook"
)

// ResolveAgeModification returns the modification ruleset for an age,
// failing outside [15, 89].
func ResolveAgeModification(age int) (coc.AgeModification, error) {
	r, err := rulebook.AgeRangeFor(age)
	if err != nil {
		return coc.AgeModification{}, err
	}
	return r.Modification, nil
}

// ValidateDeductions checks a physical deduction distribution against the
// age modification: the sum must equal the required total exactly, every
// target must be in the eligible set, every value must be non-negative, and
// no deduction may drop its target below 1.
func ValidateDeductions(c *coc.Characteristics, mod coc.AgeModification, deductions map[coc.Stat]int) error {
	allowed := make(map[coc.Stat]bool, len(mod.DeductibleStats))
	for _, stat := range mod.DeductibleStats {
		allowed[stat] = true
	}

	sum := 0
	for stat, value := range deductions {
		if !allowed[stat] {
			return errors.InvalidArgumentf("characteristic %s is not deductible at this age", stat)
		}
		if value < 0 {
			return errors.InvalidArgumentf("deduction for %s cannot be negative", stat)
		}
		if c.Get(stat)-value < coc.StatMin {
			return errors.InvalidArgumentf("deduction would reduce %s below %d", stat, coc.StatMin)
		}
		sum += value
	}

	if sum != mod.DeductionPoints {
		return errors.FailedPreconditionf("deductions total %d, required exactly %d", sum, mod.DeductionPoints).
			WithMeta("allocated", sum).
			WithMeta("required", mod.DeductionPoints)
	}

	return nil
}

// ApplyAgeEffects returns a copy of the characteristics with the validated
// deductions and the appearance reduction applied. Appearance never drops
// below 1.
func ApplyAgeEffects(c *coc.Characteristics, mod coc.AgeModification, deductions map[coc.Stat]int) (coc.Characteristics, error) {
	if err := ValidateDeductions(c, mod, deductions); err != nil {
		return coc.Characteristics{}, err
	}

	result := *c
	for stat, value := range deductions {
		result.Set(stat, result.Get(stat)-value)
	}

	app := result.APP - mod.AppearanceReduction
	if app < coc.StatMin {
		app = coc.StatMin
	}
	result.APP = app

	return result, nil
}
