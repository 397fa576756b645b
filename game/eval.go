package game

// EvaluateVictoryPoints compares color's actual points with its strongest
// opponent's, giving a score between -1 and 1.
func EvaluateVictoryPoints(s State, color Color) float64 {
	gs := mustGameState(s)
	if w := gs.Winner(); w != NoColor {
		if w == color {
			return 1
		}
		return -1
	}
	own, other := gs.compare(color, func(c Color) float64 {
		return float64(gs.ActualVictoryPoints(c))
	})
	return normalize(own, other)
}

// EvaluateProduction weighs every building by the dice probability of its
// tiles (pips), cities counting double.
func EvaluateProduction(s State, color Color) float64 {
	gs := mustGameState(s)
	own, other := gs.compare(color, gs.productionPips)
	return normalize(own, other)
}

// EvaluateBalanced mixes points, production, hand size and titles.
func EvaluateBalanced(s State, color Color) float64 {
	gs := mustGameState(s)
	if gs.Winner() != NoColor {
		return EvaluateVictoryPoints(s, color)
	}
	vp := EvaluateVictoryPoints(s, color)
	production := EvaluateProduction(s, color)
	cards := normalize(gs.compare(color, func(c Color) float64 {
		p := gs.PlayerState(c)
		return float64(p.Hand.Total() + p.DevCards[Knight] + p.PlayedDevCards[Knight])
	}))
	roads := normalize(gs.compare(color, func(c Color) float64 {
		return float64(gs.PlayerState(c).LongestRoadLength)
	}))

	return 0.5*vp + 0.25*production + 0.15*cards + 0.1*roads
}

func mustGameState(s State) *GameState {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	return gs
}

// compare returns metric for color and the best value among its opponents.
func (gs *GameState) compare(color Color, metric func(Color) float64) (own, other float64) {
	for _, p := range gs.Players {
		v := metric(p.Color)
		if p.Color == color {
			own = v
		} else {
			other = max(other, v)
		}
	}
	return own, other
}

func (gs *GameState) productionPips(color Color) float64 {
	pips := 0
	for _, t := range gs.Map.Tiles {
		if t.Desert || t.Coordinate == gs.Board.Robber {
			continue
		}
		weight := 6 - abs(7-t.Number)
		for _, n := range t.Nodes {
			if b := gs.Board.Buildings[n]; b.Owner == color {
				pips += weight * buildingYield(b)
			}
		}
	}
	return float64(pips)
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
