package coc

// WealthBracket maps a credit rating interval to an era's spending level
// and total assets.
type WealthBracket struct {
	Name          string `json:"name" yaml:"name"`
	MinCredit     int    `json:"min_credit" yaml:"min_credit"`
	MaxCredit     int    `json:"max_credit" yaml:"max_credit"`
	SpendingLevel int    `json:"spending_level" yaml:"spending_level"`

	// AssetsPerCredit: total assets = credit rating × this value
	AssetsPerCredit int `json:"assets_per_credit" yaml:"assets_per_credit"`

	HousingCost  int `json:"housing_cost" yaml:"housing_cost"`
	ClothingCost int `json:"clothing_cost" yaml:"clothing_cost"`
}

// Contains reports whether the credit rating falls in this bracket
func (b WealthBracket) Contains(creditRating int) bool {
	return creditRating >= b.MinCredit && creditRating <= b.MaxCredit
}

// Assets returns the total asset value for a credit rating in this bracket
func (b WealthBracket) Assets(creditRating int) int {
	return creditRating * b.AssetsPerCredit
}

// WealthPreset names a canned three-way cash split
type WealthPreset string

// Wealth presets
const (
	WealthPresetAllCash  WealthPreset = "all_cash"
	WealthPresetBalanced WealthPreset = "balanced"
	WealthPresetInvested WealthPreset = "invested"
)

// WealthAllocation is the split of total assets after lifestyle costs.
// Invariant: CashOnHand + BankSavings + Investments == remaining assets.
type WealthAllocation struct {
	TotalAssets   int `json:"total_assets"`
	SpendingLevel int `json:"spending_level"`
	HousingCost   int `json:"housing_cost"`
	ClothingCost  int `json:"clothing_cost"`
	CashOnHand    int `json:"cash_on_hand"`
	BankSavings   int `json:"bank_savings"`
	Investments   int `json:"investments"`
}

// RemainingAssets returns assets left after lifestyle costs, floored at zero
func (w *WealthAllocation) RemainingAssets() int {
	remaining := w.TotalAssets - w.HousingCost - w.ClothingCost
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Balanced reports whether the three-way split conserves remaining assets
func (w *WealthAllocation) Balanced() bool {
	return w.CashOnHand+w.BankSavings+w.Investments == w.RemainingAssets()
}
