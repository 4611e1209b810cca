package coc

// PointPool tracks points a single skill received from the two independent
// budgets.
type PointPool struct {
	Occupation int `json:"occupation"`
	Personal   int `json:"personal"`
}

// Total returns the combined allocation
func (p PointPool) Total() int {
	return p.Occupation + p.Personal
}

// Backstory holds the free-text character background fields
type Backstory struct {
	Description          string `json:"description,omitempty"`
	Ideology             string `json:"ideology,omitempty"`
	SignificantPeople    string `json:"significant_people,omitempty"`
	MeaningfulLocations  string `json:"meaningful_locations,omitempty"`
	TreasuredPossessions string `json:"treasured_possessions,omitempty"`
	Traits               string `json:"traits,omitempty"`
}

// Draft is the full serializable state of one creation attempt. It is an
// explicit state object passed to each step handler and persisted whole on
// every mutation; there is no ambient wizard state anywhere else.
//
// NOTE: This is a data-only struct. All calculations live in the rules
// packages; the creation orchestrator sequences them.
type Draft struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Era       Era    `json:"era"`

	CurrentStep Step   `json:"current_step"`
	Method      Method `json:"method,omitempty"`

	Characteristics       *Characteristics `json:"characteristics,omitempty"`
	Luck                  int              `json:"luck,omitempty"`
	CharacteristicsLocked bool             `json:"characteristics_locked,omitempty"`
	SwapUsed              bool             `json:"swap_used,omitempty"`

	Age       int  `json:"age,omitempty"`
	AgeLocked bool `json:"age_locked,omitempty"`

	EDURolls      []EDUImprovementRoll `json:"edu_rolls,omitempty"`
	AgeDeductions map[Stat]int         `json:"age_deductions,omitempty"`

	Derived *DerivedAttributes `json:"derived,omitempty"`

	OccupationID string `json:"occupation_id,omitempty"`

	// SlotSelections maps occupation slot index to the chosen skill ref.
	// Fixed and locked-specialization slots are resolved eagerly when the
	// occupation is chosen.
	SlotSelections map[int]SkillRef `json:"slot_selections,omitempty"`

	// Allocations maps canonical skill refs to their point pools. Credit
	// Rating allocates under CreditRatingSkillID.
	Allocations map[string]PointPool `json:"allocations,omitempty"`

	Wealth    *WealthAllocation `json:"wealth,omitempty"`
	Equipment []EquipmentItem   `json:"equipment,omitempty"`

	Backstory Backstory `json:"backstory,omitempty"`

	CharacterName string `json:"character_name,omitempty"`
	PlayerName    string `json:"player_name,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Appearance    string `json:"appearance,omitempty"`

	// ConfirmationOpen is the first phase of the two-phase review confirm
	ConfirmationOpen bool `json:"confirmation_open,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Allocation returns the point pool for a skill ref
func (d *Draft) Allocation(ref SkillRef) PointPool {
	if d.Allocations == nil {
		return PointPool{}
	}
	return d.Allocations[ref.Canonical()]
}

// SetAllocation stores the point pool for a skill ref, dropping the entry
// when both pools are empty.
func (d *Draft) SetAllocation(ref SkillRef, pool PointPool) {
	if d.Allocations == nil {
		d.Allocations = make(map[string]PointPool)
	}
	if pool.Occupation == 0 && pool.Personal == 0 {
		delete(d.Allocations, ref.Canonical())
		return
	}
	d.Allocations[ref.Canonical()] = pool
}

// CreditRatingPoints returns the points allocated to Credit Rating
func (d *Draft) CreditRatingPoints() int {
	return d.Allocation(NewSkillRef(CreditRatingSkillID)).Total()
}

// ResetCharacterData clears all character-scoped fields while keeping the
// session binding. Used by fresh-start and abandon-retry.
func (d *Draft) ResetCharacterData() {
	d.Method = ""
	d.Characteristics = nil
	d.Luck = 0
	d.CharacteristicsLocked = false
	d.SwapUsed = false
	d.Age = 0
	d.AgeLocked = false
	d.EDURolls = nil
	d.AgeDeductions = nil
	d.Derived = nil
	d.OccupationID = ""
	d.SlotSelections = nil
	d.Allocations = nil
	d.Wealth = nil
	d.Equipment = nil
	d.Backstory = Backstory{}
	d.CharacterName = ""
	d.PlayerName = ""
	d.Gender = ""
	d.Appearance = ""
	d.ConfirmationOpen = false
}
