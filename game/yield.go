package game

// Payout maps each color to the cards it receives, one entry per card.
type Payout map[Color][]Resource

// Yield distributes production for a roll of number. Demand is summed per
// resource over the whole roll; a resource whose demand exceeds the bank is
// withheld from everyone and reported as depleted.
func Yield(board *Board, bank *Bank, number int) (Payout, []Resource) {
	intended := make(map[Color]*ResourceCounts)
	var demand ResourceCounts
	for _, t := range board.Map.Tiles {
		if t.Desert || t.Number != number || t.Coordinate == board.Robber {
			continue
		}
		for _, n := range t.Nodes {
			amount := buildingYield(board.Buildings[n])
			if amount == 0 {
				continue
			}
			owner := board.Buildings[n].Owner
			if intended[owner] == nil {
				intended[owner] = &ResourceCounts{}
			}
			intended[owner][t.Resource] += amount
			demand[t.Resource] += amount
		}
	}

	payout := make(Payout)
	var depleted []Resource
	for _, r := range Resources {
		if demand[r] == 0 {
			continue
		}
		if err := bank.Draw(demand[r], r); err != nil {
			depleted = append(depleted, r)
			continue
		}
		for color, counts := range intended {
			for i := 0; i < counts[r]; i++ {
				payout[color] = append(payout[color], r)
			}
		}
	}
	return payout, depleted
}

func buildingYield(b Building) int {
	switch b.Kind {
	case Settlement:
		return 1
	case City:
		return 2
	default:
		return 0
	}
}
