package coc

// SkillSlot is one position in an occupation's skill list. It is a closed
// union: exactly one variant per slot kind, each carrying only the data that
// kind needs. Resolution to a concrete SkillRef happens in the rules layer.
type SkillSlot interface {
	isSkillSlot()
}

// FixedSkillSlot names a concrete skill with no player choice
type FixedSkillSlot struct {
	SkillID string
}

func (FixedSkillSlot) isSkillSlot() {}

// LockedSpecializationSlot names a skill with a fixed specialization,
// e.g. Science (Pharmacy) for a doctor.
type LockedSpecializationSlot struct {
	SkillID        string
	Specialization string
}

func (LockedSpecializationSlot) isSkillSlot() {}

// OpenSpecializationSlot names a skill whose specialization the player
// picks. An empty Options set means any specialization the catalog allows,
// including free text where the skill permits it.
type OpenSpecializationSlot struct {
	SkillID string
	Options []string
}

func (OpenSpecializationSlot) isSkillSlot() {}

// ChoiceSlot lets the player pick one skill from an explicit option set
type ChoiceSlot struct {
	Options []string
}

func (ChoiceSlot) isSkillSlot() {}

// AnySkillSlot lets the player pick any skill from the era catalog
type AnySkillSlot struct{}

func (AnySkillSlot) isSkillSlot() {}

// AnyAcademicSlot lets the player pick any skill tagged academic
type AnyAcademicSlot struct{}

func (AnyAcademicSlot) isSkillSlot() {}
