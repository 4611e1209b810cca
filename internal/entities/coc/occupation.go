package coc

// SkillPointsFormula computes an occupation's skill-point budget:
// the sum of the listed characteristics times the multiplier.
type SkillPointsFormula struct {
	Stats      []Stat `json:"stats" yaml:"stats"`
	Multiplier int    `json:"multiplier" yaml:"multiplier"`
}

// Budget returns the occupation point budget for the given characteristics
func (f SkillPointsFormula) Budget(c *Characteristics) int {
	total := 0
	for _, stat := range f.Stats {
		total += c.Get(stat)
	}
	return total * f.Multiplier
}

// CreditRange is an occupation's allowed credit rating interval
type CreditRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether value falls inside the closed range
func (r CreditRange) Contains(value int) bool {
	return value >= r.Min && value <= r.Max
}

// Occupation is a catalog entry defining a skill-point budget formula, a
// set of skill slots, and a credit rating range. Credit Rating itself is an
// implicit 9th slot outside the Slots list.
type Occupation struct {
	ID           string
	Name         string
	Category     string
	SkillPoints  SkillPointsFormula
	Slots        []SkillSlot
	CreditRating CreditRange
	Eras         []Era
}

// InEra reports whether the occupation is available in the era. No era tags
// means available everywhere.
func (o *Occupation) InEra(era Era) bool {
	if len(o.Eras) == 0 {
		return true
	}
	for _, e := range o.Eras {
		if e == era {
			return true
		}
	}
	return false
}
