package coc

// DerivedAttributes are the values computed from the 8 characteristics.
// All rounding in their formulas is floor, never round-to-nearest.
type DerivedAttributes struct {
	HitPoints   int    `json:"hit_points"`
	MagicPoints int    `json:"magic_points"`
	Sanity      int    `json:"sanity"`
	Dodge       int    `json:"dodge"`
	MoveRate    int    `json:"move_rate"`
	DamageBonus string `json:"damage_bonus"`
	Build       int    `json:"build"`
}

// AgeModification is the ruleset applied for one age range
type AgeModification struct {
	// EDUImprovementChecks is how many improvement rolls the player makes
	EDUImprovementChecks int `json:"edu_improvement_checks"`

	// DeductionPoints must be distributed exactly among DeductibleStats
	DeductionPoints int    `json:"deduction_points"`
	DeductibleStats []Stat `json:"deductible_stats"`

	AppearanceReduction int `json:"appearance_reduction"`
	MoveReduction       int `json:"move_reduction"`

	// Young characters (15-19) roll luck twice and keep the higher result
	Young bool `json:"young"`
}

// EDUImprovementRoll records one improvement check: the percentile check,
// the 1d10 gain if the check exceeded EDU, and EDU after the roll.
type EDUImprovementRoll struct {
	Check    int `json:"check"`
	Gain     int `json:"gain"`
	EDUAfter int `json:"edu_after"`
}
