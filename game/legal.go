package game

// LegalActions returns every action the executor accepts right now. The list
// is empty once the game is over.
func (gs *GameState) LegalActions() []Action {
	color := gs.Player()
	switch gs.Prompt {
	case InitialBuildPrompt:
		return gs.initialBuildActions(color)
	case PlayTurnPrompt:
		return gs.playTurnActions(color)
	case DiscardPrompt:
		return []Action{Discard{Color: color}}
	case MoveRobberPrompt:
		return gs.robberActions(color)
	default:
		return nil
	}
}

func (gs *GameState) initialBuildActions(color Color) []Action {
	var actions []Action
	if gs.initialRoadPending {
		for _, e := range gs.Map.NodeEdges[gs.lastSettlement] {
			if gs.Board.CanBuildRoad(color, e) == nil {
				actions = append(actions, BuildRoad{Color: color, Edge: e})
			}
		}
		return actions
	}
	for _, n := range gs.Board.BuildableNodes(color, true) {
		actions = append(actions, BuildSettlement{Color: color, Node: n})
	}
	return actions
}

func (gs *GameState) playTurnActions(color Color) []Action {
	p := gs.PlayerState(color)
	if gs.FreeRoads > 0 {
		return gs.roadActions(color)
	}
	if !p.HasRolled {
		actions := []Action{Roll{Color: color}}
		if gs.canPlayDevCard(p, Knight) == nil {
			actions = append(actions, PlayKnight{Color: color})
		}
		return actions
	}

	actions := []Action{EndTurn{Color: color}}
	if p.SettlementsLeft > 0 && p.Hand.Contains(SettlementCost) {
		for _, n := range gs.Board.BuildableNodes(color, false) {
			actions = append(actions, BuildSettlement{Color: color, Node: n})
		}
	}
	if p.RoadsLeft > 0 && p.Hand.Contains(RoadCost) {
		actions = append(actions, gs.roadActions(color)...)
	}
	if p.CitiesLeft > 0 && p.Hand.Contains(CityCost) {
		for n, b := range gs.Board.Buildings {
			if b.Kind == Settlement && b.Owner == color {
				actions = append(actions, BuildCity{Color: color, Node: NodeID(n)})
			}
		}
	}
	if len(gs.DevDeck) > 0 && p.Hand.Contains(DevelopmentCardCost) {
		actions = append(actions, BuyDevelopmentCard{Color: color})
	}
	actions = append(actions, gs.devCardActions(p)...)
	actions = append(actions, MaritimeTradePossibilities(gs, color)...)
	return actions
}

func (gs *GameState) roadActions(color Color) []Action {
	var actions []Action
	for _, e := range gs.Board.BuildableEdges(color) {
		actions = append(actions, BuildRoad{Color: color, Edge: e})
	}
	return actions
}

func (gs *GameState) devCardActions(p *PlayerState) []Action {
	var actions []Action
	if gs.canPlayDevCard(p, Knight) == nil {
		actions = append(actions, PlayKnight{Color: p.Color})
	}
	if gs.canPlayDevCard(p, YearOfPlenty) == nil {
		for i, first := range Resources {
			for _, second := range Resources[i:] {
				want := ResourceCounts{}
				want[first]++
				want[second]++
				if gs.Bank.Counts().Contains(want) {
					actions = append(actions, PlayYearOfPlenty{Color: p.Color, First: first, Second: second})
				}
			}
		}
	}
	if gs.canPlayDevCard(p, Monopoly) == nil {
		for _, r := range Resources {
			actions = append(actions, PlayMonopoly{Color: p.Color, Resource: r})
		}
	}
	if gs.canPlayDevCard(p, RoadBuilding) == nil && p.RoadsLeft > 0 && len(gs.Board.BuildableEdges(p.Color)) > 0 {
		actions = append(actions, PlayRoadBuilding{Color: p.Color})
	}
	return actions
}

// robberActions offers every other tile without a steal, plus one steal per
// opponent that has a building on the tile and at least one card.
func (gs *GameState) robberActions(color Color) []Action {
	var actions []Action
	for _, t := range gs.Map.Tiles {
		if t.Coordinate == gs.Board.Robber {
			continue
		}
		actions = append(actions, MoveRobber{Color: color, Tile: t.Coordinate, Victim: NoColor})
		for _, victim := range gs.stealableColors(color, t) {
			actions = append(actions, MoveRobber{Color: color, Tile: t.Coordinate, Victim: victim})
		}
	}
	return actions
}

func (gs *GameState) stealableColors(thief Color, t *Tile) []Color {
	var victims []Color
	for _, c := range gs.Board.ColorsOnTile(t) {
		if p := gs.PlayerState(c); c != thief && p != nil && p.Hand.Total() > 0 {
			victims = append(victims, c)
		}
	}
	return victims
}
