package coc

// Stat identifies one of the 8 core characteristics
type Stat string

// Characteristics
const (
	StatSTR Stat = "str"
	StatCON Stat = "con"
	StatSIZ Stat = "siz"
	StatDEX Stat = "dex"
	StatAPP Stat = "app"
	StatINT Stat = "int"
	StatPOW Stat = "pow"
	StatEDU Stat = "edu"
)

// AllStats lists the characteristics in sheet order
var AllStats = []Stat{StatSTR, StatCON, StatSIZ, StatDEX, StatAPP, StatINT, StatPOW, StatEDU}

// IsValidStat reports whether s names a characteristic
func IsValidStat(s Stat) bool {
	for _, stat := range AllStats {
		if stat == s {
			return true
		}
	}
	return false
}

// DiceFormula describes a characteristic generation roll:
// (count d sides + add) × multiplier.
type DiceFormula struct {
	Count      int `json:"count"`
	Sides      int `json:"sides"`
	Add        int `json:"add"`
	Multiplier int `json:"multiplier"`
}

// Generation formulas. STR, CON, DEX, APP, POW and Luck roll 3d6×5;
// SIZ, INT, EDU roll (2d6+6)×5.
var (
	FormulaRegular  = DiceFormula{Count: 3, Sides: 6, Add: 0, Multiplier: 5}
	FormulaEducated = DiceFormula{Count: 2, Sides: 6, Add: 6, Multiplier: 5}
)

// FormulaFor returns the generation formula for a characteristic
func FormulaFor(stat Stat) DiceFormula {
	switch stat {
	case StatSIZ, StatINT, StatEDU:
		return FormulaEducated
	default:
		return FormulaRegular
	}
}

// Characteristics holds the 8 core attribute values
type Characteristics struct {
	STR int `json:"str"`
	CON int `json:"con"`
	SIZ int `json:"siz"`
	DEX int `json:"dex"`
	APP int `json:"app"`
	INT int `json:"int"`
	POW int `json:"pow"`
	EDU int `json:"edu"`
}

// Get returns the value of the named characteristic
func (c *Characteristics) Get(stat Stat) int {
	switch stat {
	case StatSTR:
		return c.STR
	case StatCON:
		return c.CON
	case StatSIZ:
		return c.SIZ
	case StatDEX:
		return c.DEX
	case StatAPP:
		return c.APP
	case StatINT:
		return c.INT
	case StatPOW:
		return c.POW
	case StatEDU:
		return c.EDU
	default:
		return 0
	}
}

// Set assigns the value of the named characteristic
func (c *Characteristics) Set(stat Stat, value int) {
	switch stat {
	case StatSTR:
		c.STR = value
	case StatCON:
		c.CON = value
	case StatSIZ:
		c.SIZ = value
	case StatDEX:
		c.DEX = value
	case StatAPP:
		c.APP = value
	case StatINT:
		c.INT = value
	case StatPOW:
		c.POW = value
	case StatEDU:
		c.EDU = value
	}
}

// Total returns the sum of all 8 characteristics
func (c *Characteristics) Total() int {
	total := 0
	for _, stat := range AllStats {
		total += c.Get(stat)
	}
	return total
}

// AllSet reports whether every characteristic has a value
func (c *Characteristics) AllSet() bool {
	for _, stat := range AllStats {
		if c.Get(stat) == 0 {
			return false
		}
	}
	return true
}

// Swap exchanges the values of two characteristics
func (c *Characteristics) Swap(a, b Stat) {
	av, bv := c.Get(a), c.Get(b)
	c.Set(a, bv)
	c.Set(b, av)
}
