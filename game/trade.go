package game

// MaritimeTradePossibilities lists every bank trade color can execute now:
// 4:1 always, 3:1 with a generic port, 2:1 with the matching port. Worse
// rates stay on offer next to better ones. The bank must hold the card
// received.
func MaritimeTradePossibilities(gs *GameState, color Color) []Action {
	p := gs.PlayerState(color)
	if p == nil {
		return nil
	}
	var actions []Action
	for _, give := range Resources {
		for _, ratio := range tradeRatios(gs.Board, color, give) {
			if p.Hand[give] < ratio {
				continue
			}
			for _, receive := range Resources {
				if receive == give || gs.Bank.Remaining(receive) < 1 {
					continue
				}
				actions = append(actions, MaritimeTrade{Color: color, Give: give, Ratio: ratio, Receive: receive})
			}
		}
	}
	return actions
}

// tradeRatios returns the rates color may use to give away r, best first.
func tradeRatios(board *Board, color Color, r Resource) []int {
	generic, specific := board.PortAccess(color)
	var ratios []int
	if specific[r] {
		ratios = append(ratios, 2)
	}
	if generic {
		ratios = append(ratios, 3)
	}
	return append(ratios, 4)
}
