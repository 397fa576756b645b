package game

import "fmt"

// ActionType represents the kind of action a player can perform.
type ActionType int

const (
	RollAction ActionType = iota
	DiscardAction
	MoveRobberAction
	BuildSettlementAction
	BuildRoadAction
	BuildCityAction
	BuyDevelopmentCardAction
	PlayKnightAction
	PlayYearOfPlentyAction
	PlayMonopolyAction
	PlayRoadBuildingAction
	MaritimeTradeAction
	EndTurnAction
)

var actionTypeNames = [...]string{
	RollAction:               "ROLL",
	DiscardAction:            "DISCARD",
	MoveRobberAction:         "MOVE_ROBBER",
	BuildSettlementAction:    "BUILD_SETTLEMENT",
	BuildRoadAction:          "BUILD_ROAD",
	BuildCityAction:          "BUILD_CITY",
	BuyDevelopmentCardAction: "BUY_DEVELOPMENT_CARD",
	PlayKnightAction:         "PLAY_KNIGHT_CARD",
	PlayYearOfPlentyAction:   "PLAY_YEAR_OF_PLENTY",
	PlayMonopolyAction:       "PLAY_MONOPOLY",
	PlayRoadBuildingAction:   "PLAY_ROAD_BUILDING",
	MaritimeTradeAction:      "MARITIME_TRADE",
	EndTurnAction:            "END_TURN",
}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionTypeNames) {
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
	return actionTypeNames[t]
}

// Action is a move a player submits. Every kind is its own comparable struct,
// so the payload shape is fixed by the type and actions compare with ==.
type Action interface {
	Player() Color
	Type() ActionType
	// IsStochastic reports whether applying the action draws on the randomizer.
	IsStochastic() bool
}

type Roll struct {
	Color Color
}

// Discard drops half of the player's hand, rounded down; the cards are
// chosen by the game randomizer.
type Discard struct {
	Color Color
}

// MoveRobber moves the robber to Tile and steals a random card from Victim,
// or from nobody when Victim is NoColor.
type MoveRobber struct {
	Color  Color
	Tile   Cube
	Victim Color
}

type BuildSettlement struct {
	Color Color
	Node  NodeID
}

type BuildRoad struct {
	Color Color
	Edge  Edge
}

type BuildCity struct {
	Color Color
	Node  NodeID
}

type BuyDevelopmentCard struct {
	Color Color
}

type PlayKnight struct {
	Color Color
}

// PlayYearOfPlenty takes two cards from the bank, First <= Second.
type PlayYearOfPlenty struct {
	Color         Color
	First, Second Resource
}

type PlayMonopoly struct {
	Color    Color
	Resource Resource
}

type PlayRoadBuilding struct {
	Color Color
}

// MaritimeTrade gives Ratio cards of Give to the bank for one Receive.
type MaritimeTrade struct {
	Color   Color
	Give    Resource
	Ratio   int
	Receive Resource
}

type EndTurn struct {
	Color Color
}

func (a Roll) Player() Color               { return a.Color }
func (a Discard) Player() Color            { return a.Color }
func (a MoveRobber) Player() Color         { return a.Color }
func (a BuildSettlement) Player() Color    { return a.Color }
func (a BuildRoad) Player() Color          { return a.Color }
func (a BuildCity) Player() Color          { return a.Color }
func (a BuyDevelopmentCard) Player() Color { return a.Color }
func (a PlayKnight) Player() Color         { return a.Color }
func (a PlayYearOfPlenty) Player() Color   { return a.Color }
func (a PlayMonopoly) Player() Color       { return a.Color }
func (a PlayRoadBuilding) Player() Color   { return a.Color }
func (a MaritimeTrade) Player() Color      { return a.Color }
func (a EndTurn) Player() Color            { return a.Color }

func (Roll) Type() ActionType               { return RollAction }
func (Discard) Type() ActionType            { return DiscardAction }
func (MoveRobber) Type() ActionType         { return MoveRobberAction }
func (BuildSettlement) Type() ActionType    { return BuildSettlementAction }
func (BuildRoad) Type() ActionType          { return BuildRoadAction }
func (BuildCity) Type() ActionType          { return BuildCityAction }
func (BuyDevelopmentCard) Type() ActionType { return BuyDevelopmentCardAction }
func (PlayKnight) Type() ActionType         { return PlayKnightAction }
func (PlayYearOfPlenty) Type() ActionType   { return PlayYearOfPlentyAction }
func (PlayMonopoly) Type() ActionType       { return PlayMonopolyAction }
func (PlayRoadBuilding) Type() ActionType   { return PlayRoadBuildingAction }
func (MaritimeTrade) Type() ActionType      { return MaritimeTradeAction }
func (EndTurn) Type() ActionType            { return EndTurnAction }

func (Roll) IsStochastic() bool               { return true }
func (Discard) IsStochastic() bool            { return true }
func (a MoveRobber) IsStochastic() bool       { return a.Victim != NoColor }
func (BuildSettlement) IsStochastic() bool    { return false }
func (BuildRoad) IsStochastic() bool          { return false }
func (BuildCity) IsStochastic() bool          { return false }
func (BuyDevelopmentCard) IsStochastic() bool { return true }
func (PlayKnight) IsStochastic() bool         { return false }
func (PlayYearOfPlenty) IsStochastic() bool   { return false }
func (PlayMonopoly) IsStochastic() bool       { return false }
func (PlayRoadBuilding) IsStochastic() bool   { return false }
func (MaritimeTrade) IsStochastic() bool      { return false }
func (EndTurn) IsStochastic() bool            { return false }

// ContainsAction reports whether a is one of actions.
func ContainsAction(actions []Action, a Action) bool {
	for _, candidate := range actions {
		if candidate == a {
			return true
		}
	}
	return false
}
