package game

import "fmt"

// DevCard is a development card type.
type DevCard int

const (
	Knight DevCard = iota
	YearOfPlenty
	Monopoly
	RoadBuilding
	VictoryPoint
)

const NumDevCards = 5

func (d DevCard) String() string {
	switch d {
	case Knight:
		return "KNIGHT"
	case YearOfPlenty:
		return "YEAR_OF_PLENTY"
	case Monopoly:
		return "MONOPOLY"
	case RoadBuilding:
		return "ROAD_BUILDING"
	case VictoryPoint:
		return "VICTORY_POINT"
	default:
		return fmt.Sprintf("DevCard(%d)", int(d))
	}
}

// DevCardCounts is indexed by DevCard.
type DevCardCounts [NumDevCards]int

// standardDevDeck is the composition of the base game development deck.
var standardDevDeck = DevCardCounts{
	Knight:       14,
	YearOfPlenty: 2,
	Monopoly:     2,
	RoadBuilding: 2,
	VictoryPoint: 5,
}

// NewDevDeck builds the standard development deck shuffled by r.
func NewDevDeck(r Randomizer) []DevCard {
	deck := make([]DevCard, 0, 25)
	for card, n := range standardDevDeck {
		for i := 0; i < n; i++ {
			deck = append(deck, DevCard(card))
		}
	}
	shuffle(r, len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
