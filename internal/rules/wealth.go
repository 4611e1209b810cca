package rules

import (
	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
)

// WealthField names one of the three free-form cash fields
type WealthField string

// Wealth fields
const (
	FieldCashOnHand  WealthField = "cash_on_hand"
	FieldBankSavings WealthField = "bank_savings"
	FieldInvestments WealthField = "investments"
)

// presetSplits maps presets to cash/bank/investment percentages
var presetSplits = map[coc.WealthPreset][3]int{
	coc.WealthPresetAllCash:  {100, 0, 0},
	coc.WealthPresetBalanced: {30, 50, 20},
	coc.WealthPresetInvested: {10, 20, 70},
}

// defaultSplit is the initial cash/bank/investment split
var defaultSplit = [3]int{60, 30, 10}

// splitRemaining divides remaining assets by percentages, flooring the
// first two fields and absorbing the leftover into the last so the split
// always conserves the total exactly.
func splitRemaining(remaining int, percentages [3]int) (cash, bank, investments int) {
	cash = remaining * percentages[0] / 100
	bank = remaining * percentages[1] / 100
	investments = remaining - cash - bank
	return cash, bank, investments
}

// ComputeWealth builds the initial wealth allocation for a bracket and
// credit rating, with the default 60/30/10 split.
func ComputeWealth(bracket coc.WealthBracket, creditRating int) coc.WealthAllocation {
	alloc := coc.WealthAllocation{
		TotalAssets:   bracket.Assets(creditRating),
		SpendingLevel: bracket.SpendingLevel,
		HousingCost:   bracket.HousingCost,
		ClothingCost:  bracket.ClothingCost,
	}
	alloc.CashOnHand, alloc.BankSavings, alloc.Investments = splitRemaining(alloc.RemainingAssets(), defaultSplit)
	return alloc
}

// ApplyPreset re-splits remaining assets by a named preset
func ApplyPreset(alloc coc.WealthAllocation, preset coc.WealthPreset) (coc.WealthAllocation, error) {
	split, ok := presetSplits[preset]
	if !ok {
		return coc.WealthAllocation{}, errors.InvalidArgumentf("unknown wealth preset %q", preset)
	}
	alloc.CashOnHand, alloc.BankSavings, alloc.Investments = splitRemaining(alloc.RemainingAssets(), split)
	return alloc, nil
}

// EditField sets one cash field to an explicit value and rebalances the
// other two proportionally to their current ratio, preserving the
// conservation invariant. Rounding is floor on the first rebalanced field
// with the leftover absorbed by the second.
func EditField(alloc coc.WealthAllocation, field WealthField, value int) (coc.WealthAllocation, error) {
	remaining := alloc.RemainingAssets()
	if value < 0 || value > remaining {
		return coc.WealthAllocation{}, errors.OutOfRangef("%s must be between 0 and %d", field, remaining)
	}

	rest := remaining - value

	rebalance := func(a, b int) (int, int) {
		sum := a + b
		if sum == 0 {
			return 0, rest
		}
		first := rest * a / sum
		return first, rest - first
	}

	switch field {
	case FieldCashOnHand:
		alloc.CashOnHand = value
		alloc.BankSavings, alloc.Investments = rebalance(alloc.BankSavings, alloc.Investments)
	case FieldBankSavings:
		alloc.BankSavings = value
		alloc.CashOnHand, alloc.Investments = rebalance(alloc.CashOnHand, alloc.Investments)
	case FieldInvestments:
		alloc.Investments = value
		alloc.CashOnHand, alloc.BankSavings = rebalance(alloc.CashOnHand, alloc.BankSavings)
	default:
		return coc.WealthAllocation{}, errors.InvalidArgumentf("unknown wealth field %q", field)
	}

	return alloc, nil
}

// EquipmentSpent sums the prices of items above the spending level. Items
// priced at or below it are free.
func EquipmentSpent(items []coc.EquipmentItem, spendingLevel int) int {
	spent := 0
	for _, item := range items {
		if item.Price > spendingLevel {
			spent += item.Price
		}
	}
	return spent
}

// OverBudget reports whether equipment spending exceeds cash on hand.
// A warning, not a hard block.
func OverBudget(alloc coc.WealthAllocation, items []coc.EquipmentItem) bool {
	return EquipmentSpent(items, alloc.SpendingLevel) > alloc.CashOnHand
}
