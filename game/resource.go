package game

import "fmt"

// Resource is one of the five commodities produced by land tiles.
type Resource int

const (
	Wood Resource = iota
	Brick
	Sheep
	Wheat
	Ore
)

const NumResources = 5

// Resources lists every resource in canonical order.
var Resources = [NumResources]Resource{Wood, Brick, Sheep, Wheat, Ore}

func (r Resource) String() string {
	switch r {
	case Wood:
		return "WOOD"
	case Brick:
		return "BRICK"
	case Sheep:
		return "SHEEP"
	case Wheat:
		return "WHEAT"
	case Ore:
		return "ORE"
	default:
		return fmt.Sprintf("Resource(%d)", int(r))
	}
}

func (r Resource) valid() bool {
	return r >= Wood && r <= Ore
}

// ResourceCounts is a frequency deck indexed by Resource.
type ResourceCounts [NumResources]int

// Total returns the number of cards across all resources.
func (rc ResourceCounts) Total() int {
	total := 0
	for _, n := range rc {
		total += n
	}
	return total
}

func (rc ResourceCounts) Add(other ResourceCounts) ResourceCounts {
	for i := range rc {
		rc[i] += other[i]
	}
	return rc
}

func (rc ResourceCounts) Sub(other ResourceCounts) ResourceCounts {
	for i := range rc {
		rc[i] -= other[i]
	}
	return rc
}

// Contains reports whether rc holds at least the cards in other.
func (rc ResourceCounts) Contains(other ResourceCounts) bool {
	for i := range rc {
		if rc[i] < other[i] {
			return false
		}
	}
	return true
}

// Costs of the purchasable items.
var (
	RoadCost            = ResourceCounts{Wood: 1, Brick: 1}
	SettlementCost      = ResourceCounts{Wood: 1, Brick: 1, Sheep: 1, Wheat: 1}
	CityCost            = ResourceCounts{Wheat: 2, Ore: 3}
	DevelopmentCardCost = ResourceCounts{Sheep: 1, Wheat: 1, Ore: 1}
)
