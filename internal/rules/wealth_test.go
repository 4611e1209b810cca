package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/rules"
)

var testBracket = coc.WealthBracket{
	Name:            "average",
	MinCredit:       10,
	MaxCredit:       49,
	SpendingLevel:   10,
	AssetsPerCredit: 50,
	HousingCost:     100,
	ClothingCost:    30,
}

func TestComputeWealth(t *testing.T) {
	alloc := rules.ComputeWealth(testBracket, 30)

	assert.Equal(t, 1500, alloc.TotalAssets)
	assert.Equal(t, 10, alloc.SpendingLevel)
	assert.Equal(t, 1370, alloc.RemainingAssets())
	// default 60/30/10 split, leftover absorbed by investments
	assert.Equal(t, 822, alloc.CashOnHand)
	assert.Equal(t, 411, alloc.BankSavings)
	assert.Equal(t, 137, alloc.Investments)
	assert.True(t, alloc.Balanced())
}

func TestComputeWealthLifestyleExceedsAssets(t *testing.T) {
	bracket := testBracket
	bracket.HousingCost = 10000

	alloc := rules.ComputeWealth(bracket, 10)

	assert.Equal(t, 0, alloc.RemainingAssets())
	assert.Equal(t, 0, alloc.CashOnHand+alloc.BankSavings+alloc.Investments)
	assert.True(t, alloc.Balanced())
}

func TestApplyPreset(t *testing.T) {
	alloc := rules.ComputeWealth(testBracket, 30)

	t.Run("all cash", func(t *testing.T) {
		result, err := rules.ApplyPreset(alloc, coc.WealthPresetAllCash)
		require.NoError(t, err)
		assert.Equal(t, 1370, result.CashOnHand)
		assert.Equal(t, 0, result.BankSavings)
		assert.Equal(t, 0, result.Investments)
		assert.True(t, result.Balanced())
	})

	t.Run("balanced", func(t *testing.T) {
		result, err := rules.ApplyPreset(alloc, coc.WealthPresetBalanced)
		require.NoError(t, err)
		assert.True(t, result.Balanced())
		assert.Greater(t, result.BankSavings, result.CashOnHand)
	})

	t.Run("invested", func(t *testing.T) {
		result, err := rules.ApplyPreset(alloc, coc.WealthPresetInvested)
		require.NoError(t, err)
		assert.True(t, result.Balanced())
		assert.Greater(t, result.Investments, result.CashOnHand+result.BankSavings)
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := rules.ApplyPreset(alloc, coc.WealthPreset("hoard"))
		assert.Error(t, err)
	})
}

func TestEditField(t *testing.T) {
	alloc := rules.ComputeWealth(testBracket, 30)

	t.Run("editing cash rebalances bank and investments", func(t *testing.T) {
		result, err := rules.EditField(alloc, rules.FieldCashOnHand, 500)
		require.NoError(t, err)
		assert.Equal(t, 500, result.CashOnHand)
		assert.True(t, result.Balanced())
		// bank and investments keep their 3:1 ratio
		assert.Equal(t, 652, result.BankSavings)
		assert.Equal(t, 218, result.Investments)
	})

	t.Run("editing with zero others gives rest to the last field", func(t *testing.T) {
		allCash, err := rules.ApplyPreset(alloc, coc.WealthPresetAllCash)
		require.NoError(t, err)

		result, err := rules.EditField(allCash, rules.FieldCashOnHand, 1000)
		require.NoError(t, err)
		assert.Equal(t, 1000, result.CashOnHand)
		assert.Equal(t, 0, result.BankSavings)
		assert.Equal(t, 370, result.Investments)
		assert.True(t, result.Balanced())
	})

	t.Run("conservation holds across repeated edits", func(t *testing.T) {
		current := alloc
		var err error
		for _, value := range []int{100, 900, 1370, 0, 333} {
			current, err = rules.EditField(current, rules.FieldBankSavings, value)
			require.NoError(t, err)
			assert.True(t, current.Balanced(), "after edit to %d", value)
		}
	})

	t.Run("value outside range rejected", func(t *testing.T) {
		_, err := rules.EditField(alloc, rules.FieldInvestments, 1371)
		assert.Error(t, err)

		_, err = rules.EditField(alloc, rules.FieldInvestments, -1)
		assert.Error(t, err)
	})
}

func TestEquipmentSpent(t *testing.T) {
	items := []coc.EquipmentItem{
		{ID: "flashlight", Price: 2},
		{ID: "revolver_38", Price: 30},
		{ID: "first_aid_kit", Price: 10},
		{ID: "motor_car", Price: 500},
	}

	// spending level 10: flashlight and first aid kit are free
	assert.Equal(t, 530, rules.EquipmentSpent(items, 10))
	assert.Equal(t, 0, rules.EquipmentSpent(items, 500))
}

func TestOverBudget(t *testing.T) {
	alloc := coc.WealthAllocation{SpendingLevel: 10, CashOnHand: 100}

	assert.False(t, rules.OverBudget(alloc, []coc.EquipmentItem{{Price: 30}, {Price: 70}}))
	assert.True(t, rules.OverBudget(alloc, []coc.EquipmentItem{{Price: 30}, {Price: 71}}))
}
