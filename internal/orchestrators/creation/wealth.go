package creation

import (
	"context"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/rules"
	"github.com/mythostools/investigator-api/internal/services/creation"
)

// ensureWealth initializes the wealth allocation from the era bracket and
// credit rating, or recomputes it when an allocation from a different
// bracket total is stored. A player's split survives otherwise.
func (o *Orchestrator) ensureWealth(d *coc.Draft) error {
	bracket, err := o.rulebook.BracketFor(d.Era, o.creditRatingTotal(d))
	if err != nil {
		return err
	}

	if d.Wealth == nil || d.Wealth.TotalAssets != bracket.Assets(o.creditRatingTotal(d)) {
		alloc := rules.ComputeWealth(bracket, o.creditRatingTotal(d))
		d.Wealth = &alloc
	}
	return nil
}

// ApplyWealthPreset re-splits remaining assets by a named preset
func (o *Orchestrator) ApplyWealthPreset(ctx context.Context, input *creation.ApplyWealthPresetInput) (*creation.ApplyWealthPresetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if err := o.ensureWealth(d); err != nil {
		return nil, err
	}

	alloc, err := rules.ApplyPreset(*d.Wealth, input.Preset)
	if err != nil {
		return nil, err
	}
	d.Wealth = &alloc

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.ApplyWealthPresetOutput{Draft: d}, nil
}

// EditWealthField sets one cash field and rebalances the other two
func (o *Orchestrator) EditWealthField(ctx context.Context, input *creation.EditWealthFieldInput) (*creation.EditWealthFieldOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if err := o.ensureWealth(d); err != nil {
		return nil, err
	}

	alloc, err := rules.EditField(*d.Wealth, input.Field, input.Value)
	if err != nil {
		return nil, err
	}
	d.Wealth = &alloc

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.EditWealthFieldOutput{Draft: d}, nil
}

// AddEquipment adds a catalog item to the draft. Spending past cash on
// hand is a warning in the output, never a block.
func (o *Orchestrator) AddEquipment(ctx context.Context, input *creation.AddEquipmentInput) (*creation.EquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if err := o.ensureWealth(d); err != nil {
		return nil, err
	}

	def, ok := o.rulebook.EquipmentItem(input.ItemID)
	if !ok {
		return nil, errors.NotFoundf("equipment item %q not found", input.ItemID)
	}
	if !def.InEra(d.Era) {
		return nil, errors.InvalidArgumentf("item %q is not available in era %q", input.ItemID, d.Era)
	}

	for _, item := range d.Equipment {
		if item.ID == input.ItemID {
			return nil, errors.AlreadyExistsf("item %q is already carried", input.ItemID)
		}
	}

	d.Equipment = append(d.Equipment, coc.EquipmentItem{
		ID:    def.ID,
		Name:  def.Name,
		Price: def.Price,
	})

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	return o.equipmentOutput(d), nil
}

// RemoveEquipment removes an item from the draft
func (o *Orchestrator) RemoveEquipment(ctx context.Context, input *creation.RemoveEquipmentInput) (*creation.EquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if err := o.ensureWealth(d); err != nil {
		return nil, err
	}

	found := false
	items := d.Equipment[:0]
	for _, item := range d.Equipment {
		if item.ID == input.ItemID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, errors.NotFoundf("item %q is not carried", input.ItemID)
	}
	d.Equipment = items

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	return o.equipmentOutput(d), nil
}

func (o *Orchestrator) equipmentOutput(d *coc.Draft) *creation.EquipmentOutput {
	return &creation.EquipmentOutput{
		Draft:      d,
		Spent:      rules.EquipmentSpent(d.Equipment, d.Wealth.SpendingLevel),
		OverBudget: rules.OverBudget(*d.Wealth, d.Equipment),
	}
}
