package rules

import (
	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/rulebook"
)

// FixedSelections eagerly resolves the slots that carry no player choice:
// fixed skills and locked specializations. Chosen when the occupation is.
func FixedSelections(occ *coc.Occupation) map[int]coc.SkillRef {
	selections := make(map[int]coc.SkillRef)
	for i, slot := range occ.Slots {
		switch s := slot.(type) {
		case coc.FixedSkillSlot:
			selections[i] = coc.NewSkillRef(s.SkillID)
		case coc.LockedSpecializationSlot:
			selections[i] = coc.NewSpecializedRef(s.SkillID, s.Specialization)
		}
	}
	return selections
}

// validateSkillRef checks that a ref names a real era skill and that its
// specialization (or absence of one) is legal for the catalog entry.
// Custom free-text specializations are permitted only where the catalog
// declares no closed set or explicitly allows free text.
func validateSkillRef(rb *rulebook.Rulebook, era coc.Era, ref coc.SkillRef) error {
	skill, ok := rb.Skill(ref.BaseID)
	if !ok {
		return errors.InvalidArgumentf("unknown skill %q", ref.BaseID)
	}
	if !skill.InEra(era) {
		return errors.InvalidArgumentf("skill %q is not available in era %q", ref.BaseID, era)
	}

	if !skill.Specialized() {
		if ref.Specialization != "" {
			return errors.InvalidArgumentf("skill %q does not take a specialization", ref.BaseID)
		}
		return nil
	}

	if ref.Specialization == "" {
		return errors.InvalidArgumentf("skill %q requires a specialization", ref.BaseID)
	}
	if skill.HasSpecialization(ref.Specialization) {
		return nil
	}
	if skill.AllowCustom {
		return nil
	}
	return errors.InvalidArgumentf("skill %q does not allow specialization %q", ref.BaseID, ref.Specialization)
}

// ValidateSelection checks a player's skill selection against a slot.
// The switch is exhaustive over the closed slot union.
func ValidateSelection(rb *rulebook.Rulebook, era coc.Era, slot coc.SkillSlot, ref coc.SkillRef) error {
	if ref.IsZero() {
		return errors.InvalidArgument("skill selection is required")
	}
	if ref.BaseID == coc.CreditRatingSkillID {
		return errors.InvalidArgument("credit rating cannot be chosen into a skill slot")
	}

	switch s := slot.(type) {
	case coc.FixedSkillSlot:
		if ref != coc.NewSkillRef(s.SkillID) {
			return errors.InvalidArgumentf("slot is fixed to %q", s.SkillID)
		}
		return validateSkillRef(rb, era, ref)

	case coc.LockedSpecializationSlot:
		if ref != coc.NewSpecializedRef(s.SkillID, s.Specialization) {
			return errors.InvalidArgumentf("slot is fixed to %q (%s)", s.SkillID, s.Specialization)
		}
		return validateSkillRef(rb, era, ref)

	case coc.OpenSpecializationSlot:
		if ref.BaseID != s.SkillID {
			return errors.InvalidArgumentf("slot requires skill %q", s.SkillID)
		}
		if len(s.Options) > 0 {
			found := false
			for _, opt := range s.Options {
				if opt == ref.Specialization {
					found = true
					break
				}
			}
			if !found {
				return errors.InvalidArgumentf("specialization %q is not among the slot's options", ref.Specialization)
			}
		}
		return validateSkillRef(rb, era, ref)

	case coc.ChoiceSlot:
		found := false
		for _, opt := range s.Options {
			if opt == ref.BaseID {
				found = true
				break
			}
		}
		if !found {
			return errors.InvalidArgumentf("skill %q is not among the slot's options", ref.BaseID)
		}
		return validateSkillRef(rb, era, ref)

	case coc.AnySkillSlot:
		return validateSkillRef(rb, era, ref)

	case coc.AnyAcademicSlot:
		if err := validateSkillRef(rb, era, ref); err != nil {
			return err
		}
		skill, _ := rb.Skill(ref.BaseID)
		if !skill.Academic {
			return errors.InvalidArgumentf("skill %q is not academic", ref.BaseID)
		}
		return nil

	default:
		return errors.Internalf("unhandled slot kind %T", slot)
	}
}

// CheckUniqueness verifies that no two slots resolve to the same concrete
// or composite skill ref. Fixed slots participate like any other.
func CheckUniqueness(selections map[int]coc.SkillRef) error {
	seen := make(map[string]int, len(selections))
	for index, ref := range selections {
		key := ref.Canonical()
		if other, dup := seen[key]; dup {
			first, second := other, index
			if first > second {
				first, second = second, first
			}
			return errors.InvalidArgumentf("skill %q is already chosen in another slot", key).
				WithMeta("slots", []int{first, second})
		}
		seen[key] = index
	}
	return nil
}

// SelectSlot validates and records a selection for one slot, returning the
// previous selection (zero ref if none). The caller must forfeit any points
// allocated to the previous choice; reassigning them is not supported.
func SelectSlot(
	rb *rulebook.Rulebook,
	era coc.Era,
	occ *coc.Occupation,
	selections map[int]coc.SkillRef,
	index int,
	ref coc.SkillRef,
) (coc.SkillRef, error) {
	if index < 0 || index >= len(occ.Slots) {
		return coc.SkillRef{}, errors.OutOfRangef("slot index %d out of range [0, %d)", index, len(occ.Slots))
	}

	if err := ValidateSelection(rb, era, occ.Slots[index], ref); err != nil {
		return coc.SkillRef{}, err
	}

	candidate := make(map[int]coc.SkillRef, len(selections)+1)
	for other, existing := range selections {
		if other != index {
			candidate[other] = existing
		}
	}
	candidate[index] = ref
	if err := CheckUniqueness(candidate); err != nil {
		return coc.SkillRef{}, err
	}

	previous := selections[index]
	selections[index] = ref
	return previous, nil
}

// SlotOptions returns the era skills a slot can still offer, filtering out
// base skills already used by other selections. Specialized skills remain
// listed; their composite refs are checked at selection time.
func SlotOptions(rb *rulebook.Rulebook, era coc.Era, slot coc.SkillSlot, used map[string]bool) []coc.Skill {
	available := func(skill coc.Skill) bool {
		if skill.ID == coc.CreditRatingSkillID {
			return false
		}
		if skill.Specialized() {
			return true
		}
		return !used[skill.ID]
	}

	var out []coc.Skill
	switch s := slot.(type) {
	case coc.ChoiceSlot:
		for _, id := range s.Options {
			if skill, ok := rb.Skill(id); ok && skill.InEra(era) && available(skill) {
				out = append(out, skill)
			}
		}
	case coc.AnySkillSlot:
		for _, skill := range rb.SkillsForEra(era) {
			if available(skill) {
				out = append(out, skill)
			}
		}
	case coc.AnyAcademicSlot:
		for _, skill := range rb.AcademicSkillsForEra(era) {
			if available(skill) {
				out = append(out, skill)
			}
		}
	}
	return out
}

// AllSlotsResolved reports whether every slot has a selection
func AllSlotsResolved(occ *coc.Occupation, selections map[int]coc.SkillRef) bool {
	for i := range occ.Slots {
		if selections[i].IsZero() {
			return false
		}
	}
	return true
}
