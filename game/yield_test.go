package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tileWithNumber(t *testing.T, m *Map, number int) *Tile {
	t.Helper()
	for _, tile := range m.Tiles {
		if tile.Number == number {
			return tile
		}
	}
	t.Fatalf("no tile with number %d", number)
	return nil
}

func TestYield(t *testing.T) {
	m := BaseMap()
	// 2 and 12 each appear on exactly one tile.
	two := tileWithNumber(t, m, 2)

	t.Run("settlement yields one card", func(t *testing.T) {
		b := NewBoard(m)
		bank := NewBank(19)
		require.NoError(t, b.BuildSettlement(Red, two.Nodes[0], true))

		payout, depleted := Yield(b, bank, 2)
		require.Empty(t, depleted)
		require.Equal(t, Payout{Red: {two.Resource}}, payout)
		require.Equal(t, 18, bank.Remaining(two.Resource))
	})

	t.Run("city yields two cards", func(t *testing.T) {
		b := NewBoard(m)
		bank := NewBank(19)
		require.NoError(t, b.BuildSettlement(Red, two.Nodes[0], true))
		require.NoError(t, b.BuildCity(Red, two.Nodes[0]))

		payout, _ := Yield(b, bank, 2)
		require.Equal(t, Payout{Red: {two.Resource, two.Resource}}, payout)
	})

	t.Run("other numbers yield nothing", func(t *testing.T) {
		b := NewBoard(m)
		bank := NewBank(19)
		require.NoError(t, b.BuildSettlement(Red, two.Nodes[0], true))

		payout, depleted := Yield(b, bank, 12)
		require.Empty(t, payout)
		require.Empty(t, depleted)
		require.Equal(t, 95, bank.Total())
	})

	t.Run("robber blocks its tile", func(t *testing.T) {
		b := NewBoard(m)
		bank := NewBank(19)
		require.NoError(t, b.BuildSettlement(Red, two.Nodes[0], true))
		require.NoError(t, b.MoveRobber(two.Coordinate))

		payout, _ := Yield(b, bank, 2)
		require.Empty(t, payout)
	})

	t.Run("short bank withholds the resource from everyone", func(t *testing.T) {
		b := NewBoard(m)
		bank := NewBank(19)
		require.NoError(t, b.BuildSettlement(Red, two.Nodes[0], true))
		require.NoError(t, b.BuildSettlement(Blue, two.Nodes[2], true))
		require.NoError(t, bank.Draw(18, two.Resource))

		payout, depleted := Yield(b, bank, 2)
		require.Empty(t, payout)
		require.Equal(t, []Resource{two.Resource}, depleted)
		require.Equal(t, 1, bank.Remaining(two.Resource), "Bank should be untouched")
	})

	t.Run("exact supply is paid out", func(t *testing.T) {
		b := NewBoard(m)
		bank := NewBank(19)
		require.NoError(t, b.BuildSettlement(Red, two.Nodes[0], true))
		require.NoError(t, b.BuildSettlement(Blue, two.Nodes[2], true))
		require.NoError(t, bank.Draw(17, two.Resource))

		payout, depleted := Yield(b, bank, 2)
		require.Empty(t, depleted)
		require.Len(t, payout[Red], 1)
		require.Len(t, payout[Blue], 1)
		require.Zero(t, bank.Remaining(two.Resource))
	})

	t.Run("demand is summed over every tile of the roll", func(t *testing.T) {
		m := NewMap()
		m.AddTile(Cube{}, Wood, true, 0)
		oreA := m.AddTile(directions[0].Scale(2), Ore, false, 6)
		oreB := m.AddTile(directions[2].Scale(2), Ore, false, 6)
		wheat := m.AddTile(directions[4].Scale(2), Wheat, false, 6)

		b := NewBoard(m)
		bank := NewBank(19)
		require.NoError(t, b.BuildSettlement(Red, oreA.Nodes[0], true))
		require.NoError(t, b.BuildSettlement(Blue, oreB.Nodes[0], true))
		require.NoError(t, b.BuildSettlement(Red, wheat.Nodes[0], true))
		require.NoError(t, bank.Draw(18, Ore))

		payout, depleted := Yield(b, bank, 6)
		require.Equal(t, []Resource{Ore}, depleted, "Each ore tile alone could be paid, both together cannot")
		require.Equal(t, Payout{Red: {Wheat}}, payout)
		require.Equal(t, 1, bank.Remaining(Ore))
		require.Equal(t, 18, bank.Remaining(Wheat))
	})
}
