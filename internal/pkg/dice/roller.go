// Package dice provides uniform die rolls on top of the rpg-toolkit dice
// roller. All randomness in the creation flow goes through the Roller
// interface so tests can substitute fixed sequences.
package dice

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/mythostools/investigator-api/internal/errors"
)

//go:generate mockgen -destination=mock/mock_roller.go -package=dicemock github.com/mythostools/investigator-api/internal/pkg/dice Roller

// Roller rolls dice
type Roller interface {
	// Roll returns the sum of count independent uniform dice with the
	// given number of sides.
	Roll(count, sides int) (int, error)
}

// ToolkitRoller implements Roller using rpg-toolkit dice
type ToolkitRoller struct{}

// NewRoller returns a toolkit-backed roller
func NewRoller() *ToolkitRoller {
	return &ToolkitRoller{}
}

// Roll rolls count dice with the given sides and sums them
func (r *ToolkitRoller) Roll(count, sides int) (int, error) {
	roll, err := dice.NewRoll(count, sides)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %dd%d", count, sides)
	}
	return roll.GetValue(), nil
}

// D100 rolls a single percentile die
func D100(r Roller) (int, error) {
	return r.Roll(1, 100)
}
