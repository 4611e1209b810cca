package creation

import (
	"context"
	"log/slog"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/rules"
	"github.com/mythostools/investigator-api/internal/services/creation"
)

// SetAge sets the investigator's age. Changing the age discards any EDU
// improvement rolls and deductions made under the old band, and invalidates
// an unlocked luck roll when the move crosses the young boundary (young
// investigators roll luck twice, so the old roll used the wrong formula).
func (o *Orchestrator) SetAge(ctx context.Context, input *creation.SetAgeInput) (*creation.SetAgeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if d.AgeLocked {
		return nil, errors.FailedPrecondition("age is locked")
	}

	mod, err := rules.ResolveAgeModification(input.Age)
	if err != nil {
		return nil, err
	}

	if d.Age != input.Age {
		d.EDURolls = nil
		d.AgeDeductions = nil
		d.Derived = nil

		wasYoung := false
		if d.Age != 0 {
			if prev, err := rules.ResolveAgeModification(d.Age); err == nil {
				wasYoung = prev.Young
			}
		}
		if !d.CharacteristicsLocked && d.Luck != 0 && wasYoung != mod.Young {
			d.Luck = 0
		}
	}
	d.Age = input.Age

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	return &creation.SetAgeOutput{Draft: d, Modification: mod}, nil
}

// LockAge freezes the age for the remainder of the session. Usable exactly
// once.
func (o *Orchestrator) LockAge(ctx context.Context, input *creation.LockAgeInput) (*creation.LockAgeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if d.AgeLocked {
		return nil, errors.FailedPrecondition("age is already locked")
	}
	if _, err := o.ageModification(d); err != nil {
		return nil, err
	}

	d.AgeLocked = true

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "age locked", "draft_id", d.ID, "age", d.Age)

	return &creation.LockAgeOutput{Draft: d}, nil
}

// RollEDUImprovement makes one of the age band's improvement checks. Gains
// never touch the as-entered characteristics; the improved value is read
// through the roll log, so the generation method's constraints stay
// checkable against what the player actually entered.
func (o *Orchestrator) RollEDUImprovement(ctx context.Context, input *creation.RollEDUImprovementInput) (*creation.RollEDUImprovementOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if !d.AgeLocked {
		return nil, errors.FailedPrecondition("age must be locked before improvement rolls")
	}
	if d.Characteristics == nil {
		return nil, errors.FailedPrecondition("characteristics have not been set")
	}

	mod, err := o.ageModification(d)
	if err != nil {
		return nil, err
	}
	if len(d.EDURolls) >= mod.EDUImprovementChecks {
		return nil, errors.FailedPreconditionf("all %d improvement checks have been made", mod.EDUImprovementChecks)
	}

	roll, err := rules.RollEDUImprovement(o.roller, improvedEDU(d))
	if err != nil {
		return nil, err
	}
	d.EDURolls = append(d.EDURolls, roll)

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "edu improvement rolled",
		"draft_id", d.ID,
		"check", roll.Check,
		"gain", roll.Gain,
		"edu", roll.EDUAfter)

	return &creation.RollEDUImprovementOutput{
		Draft:           d,
		Roll:            roll,
		ChecksRemaining: mod.EDUImprovementChecks - len(d.EDURolls),
	}, nil
}

// SetAgeDeductions stores a deduction distribution. Partial distributions
// are accepted and block progression until the sum is exact; distributions
// over the requirement, on ineligible characteristics, negative, or that
// would drop a target below 1 are rejected outright.
func (o *Orchestrator) SetAgeDeductions(ctx context.Context, input *creation.SetAgeDeductionsInput) (*creation.SetAgeDeductionsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if !d.AgeLocked {
		return nil, errors.FailedPrecondition("age must be locked before deductions")
	}
	if d.Characteristics == nil {
		return nil, errors.FailedPrecondition("characteristics have not been set")
	}

	mod, err := o.ageModification(d)
	if err != nil {
		return nil, err
	}

	allowed := make(map[coc.Stat]bool, len(mod.DeductibleStats))
	for _, stat := range mod.DeductibleStats {
		allowed[stat] = true
	}

	sum := 0
	for stat, value := range input.Deductions {
		if !allowed[stat] {
			return nil, errors.InvalidArgumentf("characteristic %s is not deductible at this age", stat)
		}
		if value < 0 {
			return nil, errors.InvalidArgumentf("deduction for %s cannot be negative", stat)
		}
		if d.Characteristics.Get(stat)-value < coc.StatMin {
			return nil, errors.InvalidArgumentf("deduction would reduce %s below %d", stat, coc.StatMin)
		}
		sum += value
	}
	if sum > mod.DeductionPoints {
		return nil, errors.FailedPreconditionf("deductions total %d, at most %d allowed", sum, mod.DeductionPoints)
	}

	d.AgeDeductions = input.Deductions
	d.Derived = nil

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	return &creation.SetAgeDeductionsOutput{Draft: d}, nil
}
