package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
)

// Prompt is the phase tag that governs which actions are legal.
type Prompt int

const (
	InitialBuildPrompt Prompt = iota
	PlayTurnPrompt
	DiscardPrompt
	MoveRobberPrompt
	GameOverPrompt
)

func (p Prompt) String() string {
	switch p {
	case InitialBuildPrompt:
		return "INITIAL_BUILD"
	case PlayTurnPrompt:
		return "PLAY_TURN"
	case DiscardPrompt:
		return "DISCARD"
	case MoveRobberPrompt:
		return "MOVE_ROBBER"
	case GameOverPrompt:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("Prompt(%d)", int(p))
	}
}

const (
	maxSettlements = 5
	maxCities      = 4
	maxRoads       = 15
)

// PlayerState is everything a single seat owns apart from the board.
type PlayerState struct {
	Color           Color
	Hand            ResourceCounts
	DevCards        DevCardCounts // held, including those bought this turn
	BoughtThisTurn  DevCardCounts
	PlayedDevCards  DevCardCounts
	SettlementsLeft int
	CitiesLeft      int
	RoadsLeft       int

	HasRolled        bool
	HasPlayedDevCard bool
	MustDiscard      bool

	LongestRoadLength int
}

func newPlayerState(c Color) *PlayerState {
	return &PlayerState{
		Color:           c,
		SettlementsLeft: maxSettlements,
		CitiesLeft:      maxCities,
		RoadsLeft:       maxRoads,
	}
}

// Playable counts cards of kind that may be played this turn.
func (p *PlayerState) Playable(kind DevCard) int {
	return p.DevCards[kind] - p.BoughtThisTurn[kind]
}

// GameState is the authoritative state of one game. It is mutated only by
// Apply; Play and Copy leave the receiver untouched.
type GameState struct {
	Map     *Map // static, shared between copies
	Board   *Board
	Bank    *Bank
	DevDeck []DevCard
	Rules   Rules

	Players      []*PlayerState // seating order
	CurrentIndex int
	Prompt       Prompt
	LastRoll     [2]int
	LastDepleted []Resource
	LastAction   Action
	FreeRoads    int // roads left to place from a road building card

	LongestRoadHolder Color
	LargestArmyHolder Color
	Turns             int
	Won               Color

	initialPlacements  int // completed settlement+road pairs
	initialRoadPending bool
	lastSettlement     NodeID
	rng                Randomizer
}

// NewGameState seats colors in the given order on a fresh board of m.
func NewGameState(m *Map, rules Rules, colors []Color, r Randomizer) *GameState {
	if len(colors) < 1 {
		panic("need at least one player")
	}
	gs := &GameState{
		Map:               m,
		Board:             NewBoard(m),
		Bank:              NewBank(rules.BankSize()),
		DevDeck:           NewDevDeck(r),
		Rules:             rules,
		Prompt:            InitialBuildPrompt,
		LongestRoadHolder: NoColor,
		LargestArmyHolder: NoColor,
		Won:               NoColor,
		rng:               r,
	}
	for _, c := range colors {
		gs.Players = append(gs.Players, newPlayerState(c))
	}
	return gs
}

func (gs *GameState) Copy() *GameState {
	players := make([]*PlayerState, len(gs.Players))
	for i, p := range gs.Players {
		cp := *p
		players[i] = &cp
	}
	cp := *gs
	cp.Board = gs.Board.Copy()
	cp.Bank = gs.Bank.Copy()
	cp.DevDeck = slices.Clone(gs.DevDeck)
	cp.LastDepleted = slices.Clone(gs.LastDepleted)
	cp.Players = players
	cp.rng = gs.rng.Clone()
	return &cp
}

// Determinize replaces the randomizer and reshuffles the hidden development
// deck, so a copy handed to a search agent cannot foresee chance outcomes.
func (gs *GameState) Determinize(r Randomizer) {
	gs.rng = r
	shuffle(r, len(gs.DevDeck), func(i, j int) {
		gs.DevDeck[i], gs.DevDeck[j] = gs.DevDeck[j], gs.DevDeck[i]
	})
}

// Colors returns the seating order.
func (gs *GameState) Colors() []Color {
	colors := make([]Color, len(gs.Players))
	for i, p := range gs.Players {
		colors[i] = p.Color
	}
	return colors
}

// PlayerState returns the seat of color c, or nil.
func (gs *GameState) PlayerState(c Color) *PlayerState {
	for _, p := range gs.Players {
		if p.Color == c {
			return p
		}
	}
	return nil
}

// CurrentPlayer is the seat whose turn it is.
func (gs *GameState) CurrentPlayer() *PlayerState {
	return gs.Players[gs.CurrentIndex]
}

// Player returns the color that must act next: the current player, or during
// a discard the first owing player in seating order from the current one.
func (gs *GameState) Player() Color {
	if gs.Prompt == DiscardPrompt {
		for i := range gs.Players {
			p := gs.Players[(gs.CurrentIndex+i)%len(gs.Players)]
			if p.MustDiscard {
				return p.Color
			}
		}
	}
	return gs.CurrentPlayer().Color
}

// NextPlayer returns the seat index after the current one.
func (gs *GameState) NextPlayer() int {
	return (gs.CurrentIndex + 1) % len(gs.Players)
}

// PublicVictoryPoints counts points visible to everyone.
func (gs *GameState) PublicVictoryPoints(c Color) int {
	points := gs.Board.CountBuildings(c, Settlement) + 2*gs.Board.CountBuildings(c, City)
	if gs.LongestRoadHolder == c {
		points += 2
	}
	if gs.LargestArmyHolder == c {
		points += 2
	}
	return points
}

// ActualVictoryPoints adds hidden victory point cards to the public score.
func (gs *GameState) ActualVictoryPoints(c Color) int {
	points := gs.PublicVictoryPoints(c)
	if p := gs.PlayerState(c); p != nil {
		points += p.DevCards[VictoryPoint]
	}
	return points
}

// Winner returns the winning color, NoColor while the game runs.
func (gs *GameState) Winner() Color {
	return gs.Won
}

// checkWinner ends the game once any player reaches the target, looking at
// the current player first.
func (gs *GameState) checkWinner() {
	for i := range gs.Players {
		p := gs.Players[(gs.CurrentIndex+i)%len(gs.Players)]
		if gs.ActualVictoryPoints(p.Color) >= gs.Rules.VictoryPointsToWin() {
			gs.Won = p.Color
			gs.Prompt = GameOverPrompt
			return
		}
	}
}

// updateLongestRoad recomputes every player's longest road. The holder keeps
// the title on a tie; otherwise a unique leader at or above the minimum takes
// it, and a tie among challengers leaves it unclaimed.
func (gs *GameState) updateLongestRoad() {
	best := 0
	for _, p := range gs.Players {
		p.LongestRoadLength = gs.Board.LongestRoad(p.Color)
		best = max(best, p.LongestRoadLength)
	}
	minimum := gs.Rules.LongestRoadMin()
	if holder := gs.PlayerState(gs.LongestRoadHolder); holder != nil &&
		holder.LongestRoadLength >= minimum && holder.LongestRoadLength == best {
		return
	}
	gs.LongestRoadHolder = NoColor
	if best < minimum {
		return
	}
	var leaders []Color
	for _, p := range gs.Players {
		if p.LongestRoadLength == best {
			leaders = append(leaders, p.Color)
		}
	}
	if len(leaders) == 1 {
		gs.LongestRoadHolder = leaders[0]
	}
}

// updateLargestArmy hands the title to p if its army strictly exceeds the holder's.
func (gs *GameState) updateLargestArmy(p *PlayerState) {
	knights := p.PlayedDevCards[Knight]
	if knights < gs.Rules.LargestArmyMin() {
		return
	}
	holder := gs.PlayerState(gs.LargestArmyHolder)
	if holder == nil || knights > holder.PlayedDevCards[Knight] {
		gs.LargestArmyHolder = p.Color
	}
}

// initialSeat is the seat placing the j-th settlement+road pair: forward
// through the seats, then back (snake draft).
func (gs *GameState) initialSeat(j int) int {
	n := len(gs.Players)
	if j < n {
		return j
	}
	return 2*n - 1 - j
}

// Hash identifies the observable state, so chance outcomes can be told apart.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}
	flag := func(b bool) {
		if b {
			write(1)
		} else {
			write(0)
		}
	}

	write(int(gs.Prompt))
	write(gs.CurrentIndex)
	write(gs.FreeRoads)
	write(gs.initialPlacements)
	flag(gs.initialRoadPending)
	write(int(gs.LongestRoadHolder))
	write(int(gs.LargestArmyHolder))
	write(gs.LastRoll[0])
	write(gs.LastRoll[1])
	write(gs.Robber().X)
	write(gs.Robber().Y)
	write(len(gs.DevDeck))
	for _, r := range Resources {
		write(gs.Bank.Remaining(r))
	}
	for _, p := range gs.Players {
		for _, n := range p.Hand {
			write(n)
		}
		for _, n := range p.DevCards {
			write(n)
		}
		for _, n := range p.BoughtThisTurn {
			write(n)
		}
		for _, n := range p.PlayedDevCards {
			write(n)
		}
		flag(p.HasRolled)
		flag(p.HasPlayedDevCard)
		flag(p.MustDiscard)
	}
	for _, b := range gs.Board.Buildings {
		write(int(b.Owner)*3 + int(b.Kind))
	}
	for _, owner := range gs.Board.Roads {
		write(int(owner))
	}
	return StateHash(hasher.Sum64())
}

// Robber returns the robber's tile coordinate.
func (gs *GameState) Robber() Cube {
	return gs.Board.Robber
}
