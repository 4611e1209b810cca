package rules

import (
	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
)

// OccupationBudget returns the occupation skill-point budget for the
// characteristics: the occupation formula's stats summed, times its
// multiplier.
func OccupationBudget(occ *coc.Occupation, c *coc.Characteristics) int {
	return occ.SkillPoints.Budget(c)
}

// PersonalBudget returns the personal-interest budget: INT × 2
func PersonalBudget(c *coc.Characteristics) int {
	return c.INT * 2
}

// PoolTotals sums the points spent from each pool across all allocations
func PoolTotals(allocations map[string]coc.PointPool) (occupation, personal int) {
	for _, pool := range allocations {
		occupation += pool.Occupation
		personal += pool.Personal
	}
	return occupation, personal
}

// ClampToRemaining truncates an allocation request to what the pool can
// still afford. Over-allocation is clamped rather than rejected; remaining
// never goes negative.
func ClampToRemaining(requested, remaining int) int {
	if requested < 0 {
		return 0
	}
	if requested > remaining {
		return remaining
	}
	return requested
}

// CheckSkillCap verifies that base + occupation + personal points on one
// skill do not exceed the session's max skill value.
func CheckSkillCap(base int, pool coc.PointPool, maxSkillValue int) error {
	total := base + pool.Total()
	if total > maxSkillValue {
		return errors.FailedPreconditionf("skill total %d exceeds maximum %d", total, maxSkillValue).
			WithMeta("total", total).
			WithMeta("max", maxSkillValue)
	}
	return nil
}
