package rules

import (
	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/pkg/dice"
)

// RollFormula evaluates a characteristic generation formula:
// (count d sides + add) × multiplier.
func RollFormula(roller dice.Roller, f coc.DiceFormula) (int, error) {
	sum, err := roller.Roll(f.Count, f.Sides)
	if err != nil {
		return 0, err
	}
	return (sum + f.Add) * f.Multiplier, nil
}

// RollCharacteristics rolls all 8 characteristics with their formulas
func RollCharacteristics(roller dice.Roller) (coc.Characteristics, error) {
	var c coc.Characteristics
	for _, stat := range coc.AllStats {
		value, err := RollFormula(roller, coc.FormulaFor(stat))
		if err != nil {
			return coc.Characteristics{}, err
		}
		c.Set(stat, value)
	}
	return c, nil
}

// RollLuck rolls luck with 3d6×5. Young characters roll twice and keep the
// higher result.
func RollLuck(roller dice.Roller, young bool) (int, error) {
	luck, err := RollFormula(roller, coc.FormulaRegular)
	if err != nil {
		return 0, err
	}
	if !young {
		return luck, nil
	}

	second, err := RollFormula(roller, coc.FormulaRegular)
	if err != nil {
		return 0, err
	}
	if second > luck {
		return second, nil
	}
	return luck, nil
}

// RollEDUImprovement performs one improvement check: roll 1-100, and if the
// roll exceeds current EDU, add 1d10 capped at 99. EDU never decreases.
func RollEDUImprovement(roller dice.Roller, edu int) (coc.EDUImprovementRoll, error) {
	check, err := dice.D100(roller)
	if err != nil {
		return coc.EDUImprovementRoll{}, err
	}

	roll := coc.EDUImprovementRoll{Check: check, EDUAfter: edu}
	if check > edu {
		gain, err := roller.Roll(1, 10)
		if err != nil {
			return coc.EDUImprovementRoll{}, err
		}
		roll.Gain = gain
		roll.EDUAfter = edu + gain
		if roll.EDUAfter > coc.StatMax {
			roll.EDUAfter = coc.StatMax
		}
	}

	return roll, nil
}

// ValidateCharacteristics checks a full characteristic set against the
// generation method's constraints.
func ValidateCharacteristics(method coc.Method, c *coc.Characteristics) error {
	vb := errors.NewValidationBuilder()

	switch method {
	case coc.MethodPointBuy:
		for _, stat := range coc.AllStats {
			errors.ValidateRange(string(stat), c.Get(stat), coc.PointBuyMin, coc.PointBuyMax, vb)
		}
		if err := vb.Build(); err != nil {
			return err
		}
		if total := c.Total(); total != coc.PointBuyTotal {
			return errors.FailedPreconditionf("characteristics total %d, point buy requires exactly %d", total, coc.PointBuyTotal).
				WithMeta("allocated", total).
				WithMeta("required", coc.PointBuyTotal)
		}
		return nil
	case coc.MethodDice, coc.MethodDirect:
		for _, stat := range coc.AllStats {
			errors.ValidateRange(string(stat), c.Get(stat), coc.StatMin, coc.StatMax, vb)
		}
		return vb.Build()
	default:
		return errors.InvalidArgumentf("unknown generation method %q", method)
	}
}
