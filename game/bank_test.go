package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBank(t *testing.T) {
	t.Run("starts full", func(t *testing.T) {
		b := NewBank(19)
		require.Equal(t, 95, b.Total())
		for _, r := range Resources {
			require.Equal(t, 19, b.Remaining(r))
		}
	})

	t.Run("draw is all or nothing", func(t *testing.T) {
		b := NewBank(2)
		require.ErrorIs(t, b.Draw(3, Ore), ErrInsufficientSupply)
		require.Equal(t, 2, b.Remaining(Ore), "Failed draw should not change the bank")
		require.NoError(t, b.Draw(2, Ore))
		require.Zero(t, b.Remaining(Ore))
	})

	t.Run("draw all checks every resource first", func(t *testing.T) {
		b := NewBank(1)
		err := b.DrawAll(ResourceCounts{Wood: 1, Ore: 2})
		require.ErrorIs(t, err, ErrInsufficientSupply)
		require.Equal(t, 5, b.Total())

		require.NoError(t, b.DrawAll(ResourceCounts{Wood: 1, Ore: 1}))
		require.Equal(t, ResourceCounts{Brick: 1, Sheep: 1, Wheat: 1}, b.Counts())
	})

	t.Run("replenish and return", func(t *testing.T) {
		b := NewBank(0)
		b.Replenish(Sheep, 2)
		b.Return(ResourceCounts{Wood: 1, Sheep: 1})
		require.Equal(t, ResourceCounts{Wood: 1, Sheep: 3}, b.Counts())
	})

	t.Run("copy is independent", func(t *testing.T) {
		b := NewBank(3)
		cp := b.Copy()
		require.NoError(t, cp.Draw(3, Wheat))
		require.Equal(t, 3, b.Remaining(Wheat))
	})
}

func TestResourceCounts(t *testing.T) {
	hand := ResourceCounts{Wood: 2, Brick: 1, Wheat: 3}
	require.Equal(t, 6, hand.Total())
	require.True(t, hand.Contains(RoadCost))
	require.False(t, hand.Contains(SettlementCost))
	require.Equal(t, ResourceCounts{Wood: 1, Wheat: 3}, hand.Sub(RoadCost))
	require.Equal(t, ResourceCounts{Wood: 3, Brick: 2, Wheat: 3}, hand.Add(RoadCost))
	require.Equal(t, 6, hand.Total(), "Add and Sub should not mutate the receiver")
}
