package creation

import (
	"context"
	"log/slog"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/rules"
	"github.com/mythostools/investigator-api/internal/services/creation"
)

// occupationRemaining is the occupation budget minus all occupation-pool
// allocations, computed against the age-adjusted characteristics.
func (o *Orchestrator) occupationRemaining(d *coc.Draft, occ *coc.Occupation) (int, error) {
	eff, err := o.effectiveCharacteristics(d)
	if err != nil {
		return 0, err
	}
	occupationTotal, _ := rules.PoolTotals(d.Allocations)
	return rules.OccupationBudget(occ, &eff) - occupationTotal, nil
}

// personalRemaining is the personal budget (INT x 2) minus all
// personal-pool allocations.
func (o *Orchestrator) personalRemaining(d *coc.Draft) (int, error) {
	eff, err := o.effectiveCharacteristics(d)
	if err != nil {
		return 0, err
	}
	_, personalTotal := rules.PoolTotals(d.Allocations)
	return rules.PersonalBudget(&eff) - personalTotal, nil
}

// ChooseOccupation sets the draft's occupation and eagerly resolves its
// fixed slots. Changing occupation forfeits all occupation-pool points and
// prior slot choices; personal-pool points survive.
func (o *Orchestrator) ChooseOccupation(ctx context.Context, input *creation.ChooseOccupationInput) (*creation.ChooseOccupationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	occ, ok := o.rulebook.Occupation(input.OccupationID)
	if !ok {
		return nil, errors.NotFoundf("occupation %q not found", input.OccupationID)
	}
	if !occ.InEra(d.Era) {
		return nil, errors.InvalidArgumentf("occupation %q is not available in era %q", input.OccupationID, d.Era)
	}

	if d.OccupationID != input.OccupationID {
		for key, pool := range d.Allocations {
			d.SetAllocation(coc.ParseSkillRef(key), coc.PointPool{Personal: pool.Personal})
		}
		d.SlotSelections = rules.FixedSelections(&occ)
		d.OccupationID = input.OccupationID
	}

	eff, err := o.effectiveCharacteristics(d)
	if err != nil {
		return nil, err
	}

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "occupation chosen", "draft_id", d.ID, "occupation", occ.ID)

	return &creation.ChooseOccupationOutput{
		Draft:            d,
		OccupationBudget: rules.OccupationBudget(&occ, &eff),
		PersonalBudget:   rules.PersonalBudget(&eff),
	}, nil
}

// SelectSkillSlot fills one occupation slot. Switching away from a prior
// choice forfeits its occupation-pool points; personal points stay with
// the skill.
func (o *Orchestrator) SelectSkillSlot(ctx context.Context, input *creation.SelectSkillSlotInput) (*creation.SelectSkillSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	occ, err := o.occupation(d)
	if err != nil {
		return nil, err
	}

	if d.SlotSelections == nil {
		d.SlotSelections = rules.FixedSelections(&occ)
	}

	previous, err := rules.SelectSlot(o.rulebook, d.Era, &occ, d.SlotSelections, input.SlotIndex, input.Ref)
	if err != nil {
		return nil, err
	}

	forfeited := 0
	if !previous.IsZero() && previous != input.Ref {
		pool := d.Allocation(previous)
		forfeited = pool.Occupation
		d.SetAllocation(previous, coc.PointPool{Personal: pool.Personal})
	}

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	return &creation.SelectSkillSlotOutput{Draft: d, ForfeitedPoints: forfeited}, nil
}

// GetSlotOptions lists the skills one slot can still offer, filtering out
// base skills already used by the other slots.
func (o *Orchestrator) GetSlotOptions(ctx context.Context, input *creation.GetSlotOptionsInput) (*creation.GetSlotOptionsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	occ, err := o.occupation(d)
	if err != nil {
		return nil, err
	}
	if input.SlotIndex < 0 || input.SlotIndex >= len(occ.Slots) {
		return nil, errors.OutOfRangef("slot index %d out of range [0, %d)", input.SlotIndex, len(occ.Slots))
	}

	used := make(map[string]bool, len(d.SlotSelections))
	for index, ref := range d.SlotSelections {
		if index != input.SlotIndex {
			used[ref.BaseID] = true
		}
	}

	options := rules.SlotOptions(o.rulebook, d.Era, occ.Slots[input.SlotIndex], used)
	return &creation.GetSlotOptionsOutput{Options: options}, nil
}

// AllocateOccupationPoints sets one skill's occupation-pool points.
// The target must be a filled slot or Credit Rating; requests beyond the
// remaining budget are clamped, never rejected.
func (o *Orchestrator) AllocateOccupationPoints(ctx context.Context, input *creation.AllocatePointsInput) (*creation.AllocatePointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	occ, err := o.occupation(d)
	if err != nil {
		return nil, err
	}

	if input.Ref.BaseID != coc.CreditRatingSkillID {
		selected := false
		for _, ref := range d.SlotSelections {
			if ref == input.Ref {
				selected = true
				break
			}
		}
		if !selected {
			return nil, errors.InvalidArgumentf("occupation points may only go to filled slots or credit rating, not %q", input.Ref.Canonical())
		}
	}

	return o.allocate(ctx, d, input, func(pool *coc.PointPool, applied int) {
		pool.Occupation = applied
	}, func() (int, error) {
		remaining, err := o.occupationRemaining(d, &occ)
		if err != nil {
			return 0, err
		}
		return remaining + d.Allocation(input.Ref).Occupation, nil
	})
}

// AllocatePersonalPoints sets one skill's personal-pool points. Any valid
// era skill except Credit Rating may receive them.
func (o *Orchestrator) AllocatePersonalPoints(ctx context.Context, input *creation.AllocatePointsInput) (*creation.AllocatePointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	// AnySkillSlot validation covers era availability, specialization
	// shape, and the credit rating exclusion
	if err := rules.ValidateSelection(o.rulebook, d.Era, coc.AnySkillSlot{}, input.Ref); err != nil {
		return nil, err
	}

	return o.allocate(ctx, d, input, func(pool *coc.PointPool, applied int) {
		pool.Personal = applied
	}, func() (int, error) {
		remaining, err := o.personalRemaining(d)
		if err != nil {
			return 0, err
		}
		return remaining + d.Allocation(input.Ref).Personal, nil
	})
}

// allocate applies one pool update: clamp to the available budget, enforce
// the per-skill cap, store, and report the applied value and what is left.
func (o *Orchestrator) allocate(
	ctx context.Context,
	d *coc.Draft,
	input *creation.AllocatePointsInput,
	apply func(pool *coc.PointPool, applied int),
	available func() (int, error),
) (*creation.AllocatePointsOutput, error) {
	sess, err := o.loadSession(ctx, d.SessionID)
	if err != nil {
		return nil, err
	}

	base := 0
	if skill, ok := o.rulebook.Skill(input.Ref.BaseID); ok {
		base = skill.Base
	}

	room, err := available()
	if err != nil {
		return nil, err
	}
	applied := rules.ClampToRemaining(input.Points, room)

	pool := d.Allocation(input.Ref)
	apply(&pool, applied)
	if err := rules.CheckSkillCap(base, pool, sess.SkillCap()); err != nil {
		return nil, err
	}

	d.SetAllocation(input.Ref, pool)

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	return &creation.AllocatePointsOutput{
		Draft:     d,
		Allocated: applied,
		Remaining: room - applied,
	}, nil
}
