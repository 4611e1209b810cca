package creation

import (
	"context"
	"log/slog"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/rulebook"
	"github.com/mythostools/investigator-api/internal/rules"
	"github.com/mythostools/investigator-api/internal/services/creation"
)

// SetMethod chooses the generation method for the draft, subject to the
// session's allowed set. Changing method discards any characteristics
// entered under the old one.
func (o *Orchestrator) SetMethod(ctx context.Context, input *creation.SetMethodInput) (*creation.SetMethodOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if d.CharacteristicsLocked {
		return nil, errors.FailedPrecondition("characteristics are locked")
	}

	sess, err := o.loadSession(ctx, d.SessionID)
	if err != nil {
		return nil, err
	}
	if !sess.AllowsMethod(input.Method) {
		return nil, errors.InvalidArgumentf("method %q is not allowed for this session", input.Method)
	}

	if d.Method != input.Method {
		d.Characteristics = nil
		d.Luck = 0
		d.EDURolls = nil
	}
	d.Method = input.Method

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.SetMethodOutput{Draft: d}, nil
}

// RollCharacteristics rolls all 8 characteristics for the dice method
func (o *Orchestrator) RollCharacteristics(ctx context.Context, input *creation.RollCharacteristicsInput) (*creation.RollCharacteristicsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if d.CharacteristicsLocked {
		return nil, errors.FailedPrecondition("characteristics are locked")
	}
	if d.Method != coc.MethodDice {
		return nil, errors.FailedPreconditionf("rolling requires the dice method, draft uses %q", d.Method)
	}

	c, err := rules.RollCharacteristics(o.roller)
	if err != nil {
		return nil, err
	}
	d.Characteristics = &c
	// improvement rolls made against the previous EDU no longer apply
	d.EDURolls = nil

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "characteristics rolled", "draft_id", d.ID, "total", c.Total())

	return &creation.RollCharacteristicsOutput{Draft: d}, nil
}

// SetCharacteristics accepts a full characteristic set for the point-buy
// and direct methods.
func (o *Orchestrator) SetCharacteristics(ctx context.Context, input *creation.SetCharacteristicsInput) (*creation.SetCharacteristicsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Characteristics == nil {
		return nil, errors.InvalidArgument("characteristics are required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if d.CharacteristicsLocked {
		return nil, errors.FailedPrecondition("characteristics are locked")
	}
	if d.Method != coc.MethodPointBuy && d.Method != coc.MethodDirect {
		return nil, errors.FailedPreconditionf("direct entry requires point-buy or direct method, draft uses %q", d.Method)
	}

	if err := rules.ValidateCharacteristics(d.Method, input.Characteristics); err != nil {
		return nil, err
	}

	c := *input.Characteristics
	d.Characteristics = &c
	// improvement rolls made against the previous EDU no longer apply
	d.EDURolls = nil

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.SetCharacteristicsOutput{Draft: d}, nil
}

// RollLuck rolls 3d6x5 luck. Young investigators (age already set in the
// 15-19 band) roll twice and keep the higher result, so rolling after the
// age is entered is what grants the young bonus.
func (o *Orchestrator) RollLuck(ctx context.Context, input *creation.RollLuckInput) (*creation.RollLuckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if d.CharacteristicsLocked {
		return nil, errors.FailedPrecondition("characteristics are locked")
	}

	young := false
	if d.Age != 0 {
		if r, err := rulebook.AgeRangeFor(d.Age); err == nil {
			young = r.Modification.Young
		}
	}

	luck, err := rules.RollLuck(o.roller, young)
	if err != nil {
		return nil, err
	}
	d.Luck = luck

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "luck rolled", "draft_id", d.ID, "luck", luck, "young", young)

	return &creation.RollLuckOutput{Draft: d}, nil
}

// SwapCharacteristics exchanges two characteristic values. A one-time perk
// granted per session, usable only before the characteristics lock.
func (o *Orchestrator) SwapCharacteristics(ctx context.Context, input *creation.SwapCharacteristicsInput) (*creation.SwapCharacteristicsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !coc.IsValidStat(input.A) || !coc.IsValidStat(input.B) {
		return nil, errors.InvalidArgument("both characteristics must be valid")
	}
	if input.A == input.B {
		return nil, errors.InvalidArgument("cannot swap a characteristic with itself")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if d.CharacteristicsLocked {
		return nil, errors.FailedPrecondition("characteristics are locked")
	}
	if d.SwapUsed {
		return nil, errors.FailedPrecondition("the characteristic swap has already been used")
	}
	if d.Characteristics == nil || !d.Characteristics.AllSet() {
		return nil, errors.FailedPrecondition("characteristics have not been set")
	}

	sess, err := o.loadSession(ctx, d.SessionID)
	if err != nil {
		return nil, err
	}
	if !sess.HasPerk(coc.PerkCharacteristicSwap) {
		return nil, errors.FailedPrecondition("this session does not grant the characteristic swap")
	}

	d.Characteristics.Swap(input.A, input.B)
	d.SwapUsed = true

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.SwapCharacteristicsOutput{Draft: d}, nil
}

// LockCharacteristics freezes characteristics and luck for the remainder
// of the session. Usable exactly once; requires a complete, valid set.
func (o *Orchestrator) LockCharacteristics(ctx context.Context, input *creation.LockCharacteristicsInput) (*creation.LockCharacteristicsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if d.CharacteristicsLocked {
		return nil, errors.FailedPrecondition("characteristics are already locked")
	}
	if d.Method == "" {
		return nil, errors.FailedPrecondition("no generation method chosen")
	}
	if d.Characteristics == nil || !d.Characteristics.AllSet() {
		return nil, errors.FailedPrecondition("characteristics have not been set")
	}
	if err := rules.ValidateCharacteristics(d.Method, d.Characteristics); err != nil {
		return nil, err
	}
	if d.Luck == 0 {
		return nil, errors.FailedPrecondition("luck has not been rolled")
	}

	d.CharacteristicsLocked = true

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "characteristics locked", "draft_id", d.ID)

	return &creation.LockCharacteristicsOutput{Draft: d}, nil
}
