package coc

// Step identifies one position in the creation flow. The flow is linear;
// Next and Prev move the cursor, never the data.
type Step string

// Creation steps in order
const (
	StepInviteCode       Step = "invite_code"
	StepCharacteristics  Step = "characteristics"
	StepAge              Step = "age"
	StepAgeModifiers     Step = "age_modifiers"
	StepDerived          Step = "derived"
	StepOccupation       Step = "occupation"
	StepOccupationSkills Step = "occupation_skills"
	StepPersonalSkills   Step = "personal_skills"
	StepBackstory        Step = "backstory"
	StepEquipment        Step = "equipment"
	StepBasicInfo        Step = "basic_info"
	StepReview           Step = "review"
)

// StepOrder is the linear creation sequence
var StepOrder = []Step{
	StepInviteCode,
	StepCharacteristics,
	StepAge,
	StepAgeModifiers,
	StepDerived,
	StepOccupation,
	StepOccupationSkills,
	StepPersonalSkills,
	StepBackstory,
	StepEquipment,
	StepBasicInfo,
	StepReview,
}

// Index returns the step's position in StepOrder, or -1 if unknown
func (s Step) Index() int {
	for i, step := range StepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the following step and whether one exists
func (s Step) Next() (Step, bool) {
	i := s.Index()
	if i < 0 || i+1 >= len(StepOrder) {
		return s, false
	}
	return StepOrder[i+1], true
}

// Prev returns the preceding step and whether one exists
func (s Step) Prev() (Step, bool) {
	i := s.Index()
	if i <= 0 {
		return s, false
	}
	return StepOrder[i-1], true
}
