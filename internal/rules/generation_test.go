package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	dicemock "github.com/mythostools/investigator-api/internal/pkg/dice/mock"
	"github.com/mythostools/investigator-api/internal/rules"
)

func TestRollFormula(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := dicemock.NewMockRoller(ctrl)

	t.Run("3d6 times 5", func(t *testing.T) {
		roller.EXPECT().Roll(3, 6).Return(12, nil)

		value, err := rules.RollFormula(roller, coc.FormulaRegular)
		require.NoError(t, err)
		assert.Equal(t, 60, value)
	})

	t.Run("2d6 plus 6 times 5", func(t *testing.T) {
		roller.EXPECT().Roll(2, 6).Return(7, nil)

		value, err := rules.RollFormula(roller, coc.FormulaEducated)
		require.NoError(t, err)
		assert.Equal(t, 65, value)
	})
}

func TestRollCharacteristics(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := dicemock.NewMockRoller(ctrl)

	// STR, CON, DEX, APP, POW use 3d6; SIZ, INT, EDU use 2d6+6
	roller.EXPECT().Roll(3, 6).Return(10, nil).Times(5)
	roller.EXPECT().Roll(2, 6).Return(8, nil).Times(3)

	c, err := rules.RollCharacteristics(roller)
	require.NoError(t, err)

	assert.Equal(t, 50, c.STR)
	assert.Equal(t, 50, c.POW)
	assert.Equal(t, 70, c.SIZ)
	assert.Equal(t, 70, c.EDU)
}

func TestRollLuck(t *testing.T) {
	t.Run("single roll when not young", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roller := dicemock.NewMockRoller(ctrl)
		roller.EXPECT().Roll(3, 6).Return(11, nil)

		luck, err := rules.RollLuck(roller, false)
		require.NoError(t, err)
		assert.Equal(t, 55, luck)
	})

	t.Run("young keeps higher of two rolls", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roller := dicemock.NewMockRoller(ctrl)
		gomock.InOrder(
			roller.EXPECT().Roll(3, 6).Return(9, nil),
			roller.EXPECT().Roll(3, 6).Return(14, nil),
		)

		luck, err := rules.RollLuck(roller, true)
		require.NoError(t, err)
		assert.Equal(t, 70, luck)
	})
}

func TestRollEDUImprovement(t *testing.T) {
	t.Run("check above EDU gains 1d10", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roller := dicemock.NewMockRoller(ctrl)
		gomock.InOrder(
			roller.EXPECT().Roll(1, 100).Return(80, nil),
			roller.EXPECT().Roll(1, 10).Return(6, nil),
		)

		roll, err := rules.RollEDUImprovement(roller, 67)
		require.NoError(t, err)
		assert.Equal(t, 80, roll.Check)
		assert.Equal(t, 6, roll.Gain)
		assert.Equal(t, 73, roll.EDUAfter)
	})

	t.Run("check at or below EDU gains nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roller := dicemock.NewMockRoller(ctrl)
		roller.EXPECT().Roll(1, 100).Return(67, nil)

		roll, err := rules.RollEDUImprovement(roller, 67)
		require.NoError(t, err)
		assert.Equal(t, 0, roll.Gain)
		assert.Equal(t, 67, roll.EDUAfter)
	})

	t.Run("gain caps at 99", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roller := dicemock.NewMockRoller(ctrl)
		gomock.InOrder(
			roller.EXPECT().Roll(1, 100).Return(99, nil),
			roller.EXPECT().Roll(1, 10).Return(10, nil),
		)

		roll, err := rules.RollEDUImprovement(roller, 95)
		require.NoError(t, err)
		assert.Equal(t, 99, roll.EDUAfter)
	})

	t.Run("sequence never decreases EDU", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roller := dicemock.NewMockRoller(ctrl)

		edu := 60
		// 10 <= 60: no gain; 90 > 60: +7; 50 <= 67: no gain; 95 > 67: +4
		gomock.InOrder(
			roller.EXPECT().Roll(1, 100).Return(10, nil),
			roller.EXPECT().Roll(1, 100).Return(90, nil),
			roller.EXPECT().Roll(1, 10).Return(7, nil),
			roller.EXPECT().Roll(1, 100).Return(50, nil),
			roller.EXPECT().Roll(1, 100).Return(95, nil),
			roller.EXPECT().Roll(1, 10).Return(4, nil),
		)

		for i := 0; i < 4; i++ {
			roll, err := rules.RollEDUImprovement(roller, edu)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, roll.EDUAfter, edu)
			assert.LessOrEqual(t, roll.EDUAfter, 99)
			edu = roll.EDUAfter
		}
		assert.Equal(t, 71, edu)
	})
}

func TestValidateCharacteristics(t *testing.T) {
	pointBuyExact := &coc.Characteristics{STR: 60, CON: 60, SIZ: 60, DEX: 60, APP: 55, INT: 55, POW: 55, EDU: 55}
	require.Equal(t, coc.PointBuyTotal, pointBuyExact.Total())

	t.Run("point buy accepts exact total", func(t *testing.T) {
		assert.NoError(t, rules.ValidateCharacteristics(coc.MethodPointBuy, pointBuyExact))
	})

	t.Run("point buy rejects 459 and 461", func(t *testing.T) {
		under := *pointBuyExact
		under.EDU = 54
		err := rules.ValidateCharacteristics(coc.MethodPointBuy, &under)
		assert.True(t, errors.IsFailedPrecondition(err))

		over := *pointBuyExact
		over.EDU = 56
		err = rules.ValidateCharacteristics(coc.MethodPointBuy, &over)
		assert.True(t, errors.IsFailedPrecondition(err))
	})

	t.Run("point buy rejects value outside clamp range", func(t *testing.T) {
		c := *pointBuyExact
		c.STR = 95
		c.EDU = 20
		err := rules.ValidateCharacteristics(coc.MethodPointBuy, &c)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("direct entry allows 1 to 99", func(t *testing.T) {
		c := &coc.Characteristics{STR: 1, CON: 99, SIZ: 50, DEX: 50, APP: 50, INT: 50, POW: 50, EDU: 50}
		assert.NoError(t, rules.ValidateCharacteristics(coc.MethodDirect, c))

		c.STR = 0
		assert.Error(t, rules.ValidateCharacteristics(coc.MethodDirect, c))

		c.STR = 100
		assert.Error(t, rules.ValidateCharacteristics(coc.MethodDirect, c))
	})

	t.Run("unknown method rejected", func(t *testing.T) {
		err := rules.ValidateCharacteristics(coc.Method("telepathy"), pointBuyExact)
		assert.True(t, errors.IsInvalidArgument(err))
	})
}
