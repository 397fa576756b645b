package game

import "fmt"

// Apply validates a and, only if every precondition holds, mutates the state
// and advances the prompt. On error the state is unchanged.
func (gs *GameState) Apply(a Action) error {
	if gs.Prompt == GameOverPrompt {
		return fmt.Errorf("%w: game is over", ErrActionNotLegalNow)
	}
	if a == nil {
		return fmt.Errorf("%w: nil action", ErrActionNotLegalNow)
	}
	if a.Player() != gs.Player() {
		return fmt.Errorf("%w: %s acted but %s is to move", ErrActionNotLegalNow, a.Player(), gs.Player())
	}
	p := gs.PlayerState(a.Player())

	var err error
	switch a := a.(type) {
	case Roll:
		err = gs.roll(p)
	case Discard:
		err = gs.discard(p)
	case MoveRobber:
		err = gs.moveRobber(p, a)
	case BuildSettlement:
		err = gs.buildSettlement(p, a.Node)
	case BuildRoad:
		err = gs.buildRoad(p, a.Edge)
	case BuildCity:
		err = gs.buildCity(p, a.Node)
	case BuyDevelopmentCard:
		err = gs.buyDevelopmentCard(p)
	case PlayKnight:
		err = gs.playKnight(p)
	case PlayYearOfPlenty:
		err = gs.playYearOfPlenty(p, a.First, a.Second)
	case PlayMonopoly:
		err = gs.playMonopoly(p, a.Resource)
	case PlayRoadBuilding:
		err = gs.playRoadBuilding(p)
	case MaritimeTrade:
		err = gs.maritimeTrade(p, a)
	case EndTurn:
		err = gs.endTurn(p)
	default:
		err = fmt.Errorf("%w: unknown action %T", ErrActionNotLegalNow, a)
	}
	if err != nil {
		return err
	}

	gs.LastAction = a
	gs.checkWinner()
	return nil
}

// Play returns the successor of gs after a. It panics on an illegal action,
// which only a broken caller can submit.
func (gs *GameState) Play(a Action) State {
	next := gs.Copy()
	if err := next.Apply(a); err != nil {
		panic(err)
	}
	return next
}

// requireTurn checks the main turn prompt with no free roads pending and the
// given rolled flag.
func (gs *GameState) requireTurn(p *PlayerState, rolled bool) error {
	if gs.Prompt != PlayTurnPrompt || gs.FreeRoads > 0 {
		return fmt.Errorf("%w: prompt is %s", ErrActionNotLegalNow, gs.Prompt)
	}
	if p.HasRolled != rolled {
		if rolled {
			return fmt.Errorf("%w: %s must roll first", ErrActionNotLegalNow, p.Color)
		}
		return fmt.Errorf("%w: %s already rolled", ErrActionNotLegalNow, p.Color)
	}
	return nil
}

// pay moves cost from p's hand to the bank.
func (gs *GameState) pay(p *PlayerState, cost ResourceCounts) error {
	if !p.Hand.Contains(cost) {
		return fmt.Errorf("%w: %s holds %v, needs %v", ErrInsufficientResources, p.Color, p.Hand, cost)
	}
	p.Hand = p.Hand.Sub(cost)
	gs.Bank.Return(cost)
	return nil
}

func (gs *GameState) roll(p *PlayerState) error {
	if err := gs.requireTurn(p, false); err != nil {
		return err
	}
	d1, d2 := gs.rng.RollDice()
	gs.LastRoll = [2]int{d1, d2}
	gs.LastDepleted = nil
	p.HasRolled = true

	if d1+d2 != 7 {
		payout, depleted := Yield(gs.Board, gs.Bank, d1+d2)
		for color, cards := range payout {
			receiver := gs.PlayerState(color)
			for _, r := range cards {
				receiver.Hand[r]++
			}
		}
		gs.LastDepleted = depleted
		return nil
	}

	owing := false
	for _, other := range gs.Players {
		if other.Hand.Total() > gs.Rules.DiscardLimit() {
			other.MustDiscard = true
			owing = true
		}
	}
	if owing {
		gs.Prompt = DiscardPrompt
	} else {
		gs.Prompt = MoveRobberPrompt
	}
	return nil
}

func (gs *GameState) discard(p *PlayerState) error {
	if gs.Prompt != DiscardPrompt || !p.MustDiscard {
		return fmt.Errorf("%w: %s owes no discard", ErrActionNotLegalNow, p.Color)
	}
	for n := p.Hand.Total() / 2; n > 0; n-- {
		r := gs.randomCard(p.Hand)
		p.Hand[r]--
		gs.Bank.Replenish(r, 1)
	}
	p.MustDiscard = false

	for _, other := range gs.Players {
		if other.MustDiscard {
			return nil
		}
	}
	gs.Prompt = MoveRobberPrompt
	return nil
}

// randomCard picks a card uniformly from a non-empty hand.
func (gs *GameState) randomCard(hand ResourceCounts) Resource {
	k := gs.rng.Intn(hand.Total())
	for _, r := range Resources {
		if k < hand[r] {
			return r
		}
		k -= hand[r]
	}
	panic("random card from empty hand")
}

func (gs *GameState) moveRobber(p *PlayerState, a MoveRobber) error {
	if gs.Prompt != MoveRobberPrompt {
		return fmt.Errorf("%w: prompt is %s", ErrActionNotLegalNow, gs.Prompt)
	}
	t, ok := gs.Map.TileAt(a.Tile)
	if !ok || a.Tile == gs.Board.Robber {
		return fmt.Errorf("%w: cannot move to %v", ErrIllegalRobberMove, a.Tile)
	}
	var victim *PlayerState
	if a.Victim != NoColor {
		victims := gs.stealableColors(p.Color, t)
		found := false
		for _, c := range victims {
			found = found || c == a.Victim
		}
		if !found {
			return fmt.Errorf("%w: cannot steal from %s at %v", ErrActionNotLegalNow, a.Victim, a.Tile)
		}
		victim = gs.PlayerState(a.Victim)
	}

	if err := gs.Board.MoveRobber(a.Tile); err != nil {
		return err
	}
	if victim != nil {
		r := gs.randomCard(victim.Hand)
		victim.Hand[r]--
		p.Hand[r]++
	}
	gs.Prompt = PlayTurnPrompt
	return nil
}

func (gs *GameState) buildSettlement(p *PlayerState, n NodeID) error {
	if gs.Prompt == InitialBuildPrompt {
		if gs.initialRoadPending {
			return fmt.Errorf("%w: %s must place a road", ErrActionNotLegalNow, p.Color)
		}
		if err := gs.Board.BuildSettlement(p.Color, n, true); err != nil {
			return err
		}
		p.SettlementsLeft--
		gs.initialRoadPending = true
		gs.lastSettlement = n
		if gs.initialPlacements >= len(gs.Players) {
			gs.grantInitialResources(p, n)
		}
		gs.updateLongestRoad()
		return nil
	}

	if err := gs.requireTurn(p, true); err != nil {
		return err
	}
	if p.SettlementsLeft == 0 {
		return fmt.Errorf("%w: %s has no settlements left", ErrIllegalPlacement, p.Color)
	}
	if !p.Hand.Contains(SettlementCost) {
		return fmt.Errorf("%w: settlement costs %v", ErrInsufficientResources, SettlementCost)
	}
	if err := gs.Board.CanBuildSettlement(p.Color, n, false); err != nil {
		return err
	}
	gs.pay(p, SettlementCost)
	gs.Board.BuildSettlement(p.Color, n, false)
	p.SettlementsLeft--
	gs.updateLongestRoad()
	return nil
}

// grantInitialResources pays one card per producing tile around n.
func (gs *GameState) grantInitialResources(p *PlayerState, n NodeID) {
	for _, id := range gs.Map.NodeTiles[n] {
		t := gs.Map.Tiles[id]
		if t.Desert {
			continue
		}
		if gs.Bank.Draw(1, t.Resource) == nil {
			p.Hand[t.Resource]++
		}
	}
}

func (gs *GameState) buildRoad(p *PlayerState, e Edge) error {
	switch {
	case gs.Prompt == InitialBuildPrompt:
		if !gs.initialRoadPending {
			return fmt.Errorf("%w: %s must place a settlement", ErrActionNotLegalNow, p.Color)
		}
		if e.A != gs.lastSettlement && e.B != gs.lastSettlement {
			return fmt.Errorf("%w: road %v must touch settlement %d", ErrIllegalPlacement, e, gs.lastSettlement)
		}
		if err := gs.Board.BuildRoad(p.Color, e); err != nil {
			return err
		}
		p.RoadsLeft--
		gs.initialRoadPending = false
		gs.initialPlacements++
		if gs.initialPlacements == 2*len(gs.Players) {
			gs.Prompt = PlayTurnPrompt
			gs.CurrentIndex = 0
		} else {
			gs.CurrentIndex = gs.initialSeat(gs.initialPlacements)
		}

	case gs.Prompt == PlayTurnPrompt && gs.FreeRoads > 0:
		if err := gs.Board.BuildRoad(p.Color, e); err != nil {
			return err
		}
		p.RoadsLeft--
		gs.FreeRoads--
		if p.RoadsLeft == 0 || len(gs.Board.BuildableEdges(p.Color)) == 0 {
			gs.FreeRoads = 0
		}

	default:
		if err := gs.requireTurn(p, true); err != nil {
			return err
		}
		if p.RoadsLeft == 0 {
			return fmt.Errorf("%w: %s has no roads left", ErrIllegalPlacement, p.Color)
		}
		if !p.Hand.Contains(RoadCost) {
			return fmt.Errorf("%w: road costs %v", ErrInsufficientResources, RoadCost)
		}
		if err := gs.Board.CanBuildRoad(p.Color, e); err != nil {
			return err
		}
		gs.pay(p, RoadCost)
		gs.Board.BuildRoad(p.Color, e)
		p.RoadsLeft--
	}
	gs.updateLongestRoad()
	return nil
}

func (gs *GameState) buildCity(p *PlayerState, n NodeID) error {
	if err := gs.requireTurn(p, true); err != nil {
		return err
	}
	if p.CitiesLeft == 0 {
		return fmt.Errorf("%w: %s has no cities left", ErrIllegalUpgrade, p.Color)
	}
	if !p.Hand.Contains(CityCost) {
		return fmt.Errorf("%w: city costs %v", ErrInsufficientResources, CityCost)
	}
	if err := gs.Board.CanBuildCity(p.Color, n); err != nil {
		return err
	}
	gs.pay(p, CityCost)
	gs.Board.BuildCity(p.Color, n)
	p.CitiesLeft--
	p.SettlementsLeft++
	return nil
}

func (gs *GameState) buyDevelopmentCard(p *PlayerState) error {
	if err := gs.requireTurn(p, true); err != nil {
		return err
	}
	if len(gs.DevDeck) == 0 {
		return fmt.Errorf("%w: development deck is empty", ErrInsufficientSupply)
	}
	if err := gs.pay(p, DevelopmentCardCost); err != nil {
		return err
	}
	card := gs.DevDeck[0]
	gs.DevDeck = gs.DevDeck[1:]
	p.DevCards[card]++
	p.BoughtThisTurn[card]++
	return nil
}

// canPlayDevCard checks the per-turn development card rules for kind.
func (gs *GameState) canPlayDevCard(p *PlayerState, kind DevCard) error {
	if p.DevCards[kind] == 0 {
		return fmt.Errorf("%w: %s holds no %s", ErrMissingDevelopmentCard, p.Color, kind)
	}
	if p.HasPlayedDevCard {
		return fmt.Errorf("%w: %s", ErrDevelopmentCardAlreadyPlayed, p.Color)
	}
	if p.Playable(kind) == 0 {
		return fmt.Errorf("%w: %s bought its %s this turn", ErrMissingDevelopmentCard, p.Color, kind)
	}
	return nil
}

func (gs *GameState) consumeDevCard(p *PlayerState, kind DevCard) {
	p.DevCards[kind]--
	p.PlayedDevCards[kind]++
	p.HasPlayedDevCard = true
}

func (gs *GameState) playKnight(p *PlayerState) error {
	if gs.Prompt != PlayTurnPrompt || gs.FreeRoads > 0 {
		return fmt.Errorf("%w: prompt is %s", ErrActionNotLegalNow, gs.Prompt)
	}
	if err := gs.canPlayDevCard(p, Knight); err != nil {
		return err
	}
	gs.consumeDevCard(p, Knight)
	gs.updateLargestArmy(p)
	gs.Prompt = MoveRobberPrompt
	return nil
}

func (gs *GameState) playYearOfPlenty(p *PlayerState, first, second Resource) error {
	if err := gs.requireTurn(p, true); err != nil {
		return err
	}
	if err := gs.canPlayDevCard(p, YearOfPlenty); err != nil {
		return err
	}
	if !first.valid() || !second.valid() || first > second {
		return fmt.Errorf("%w: year of plenty pair %s, %s", ErrActionNotLegalNow, first, second)
	}
	want := ResourceCounts{}
	want[first]++
	want[second]++
	if err := gs.Bank.DrawAll(want); err != nil {
		return err
	}
	p.Hand = p.Hand.Add(want)
	gs.consumeDevCard(p, YearOfPlenty)
	return nil
}

func (gs *GameState) playMonopoly(p *PlayerState, r Resource) error {
	if err := gs.requireTurn(p, true); err != nil {
		return err
	}
	if err := gs.canPlayDevCard(p, Monopoly); err != nil {
		return err
	}
	if !r.valid() {
		return fmt.Errorf("%w: monopoly on %s", ErrActionNotLegalNow, r)
	}
	for _, other := range gs.Players {
		if other != p {
			p.Hand[r] += other.Hand[r]
			other.Hand[r] = 0
		}
	}
	gs.consumeDevCard(p, Monopoly)
	return nil
}

func (gs *GameState) playRoadBuilding(p *PlayerState) error {
	if err := gs.requireTurn(p, true); err != nil {
		return err
	}
	if err := gs.canPlayDevCard(p, RoadBuilding); err != nil {
		return err
	}
	if p.RoadsLeft == 0 || len(gs.Board.BuildableEdges(p.Color)) == 0 {
		return fmt.Errorf("%w: %s has nowhere to build", ErrIllegalPlacement, p.Color)
	}
	gs.consumeDevCard(p, RoadBuilding)
	gs.FreeRoads = min(2, p.RoadsLeft)
	return nil
}

func (gs *GameState) maritimeTrade(p *PlayerState, a MaritimeTrade) error {
	if err := gs.requireTurn(p, true); err != nil {
		return err
	}
	if !a.Give.valid() || !a.Receive.valid() || a.Give == a.Receive {
		return fmt.Errorf("%w: trade %s for %s", ErrActionNotLegalNow, a.Give, a.Receive)
	}
	allowed := false
	for _, ratio := range tradeRatios(gs.Board, p.Color, a.Give) {
		allowed = allowed || ratio == a.Ratio
	}
	if !allowed {
		return fmt.Errorf("%w: %s has no %d:1 rate for %s", ErrActionNotLegalNow, p.Color, a.Ratio, a.Give)
	}
	if p.Hand[a.Give] < a.Ratio {
		return fmt.Errorf("%w: %s holds %d %s, needs %d", ErrInsufficientResources, p.Color, p.Hand[a.Give], a.Give, a.Ratio)
	}
	if err := gs.Bank.Draw(1, a.Receive); err != nil {
		return err
	}
	p.Hand[a.Give] -= a.Ratio
	gs.Bank.Replenish(a.Give, a.Ratio)
	p.Hand[a.Receive]++
	return nil
}

func (gs *GameState) endTurn(p *PlayerState) error {
	if err := gs.requireTurn(p, true); err != nil {
		return err
	}
	p.resetTurn()
	gs.CurrentIndex = gs.NextPlayer()
	gs.CurrentPlayer().resetTurn()
	gs.Turns++
	return nil
}

func (p *PlayerState) resetTurn() {
	p.HasRolled = false
	p.HasPlayedDevCard = false
	p.BoughtThisTurn = DevCardCounts{}
}
