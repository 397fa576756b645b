package game

// Rules holds the tunable constants of a game.
type Rules interface {
	VictoryPointsToWin() int
	DiscardLimit() int // a seven forces players above this many cards to discard
	BankSize() int     // cards of each resource in a fresh bank
	LongestRoadMin() int
	LargestArmyMin() int
}

type StandardRules struct {
	VictoryPoints int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{VictoryPoints: 10}
}

func (sr *StandardRules) VictoryPointsToWin() int {
	return sr.VictoryPoints
}

func (sr *StandardRules) DiscardLimit() int {
	return 7
}

func (sr *StandardRules) BankSize() int {
	return 19
}

func (sr *StandardRules) LongestRoadMin() int {
	return 5
}

func (sr *StandardRules) LargestArmyMin() int {
	return 3
}
