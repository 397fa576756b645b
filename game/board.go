package game

import (
	"fmt"
	"slices"
)

// Color identifies a player.
type Color int

const (
	NoColor Color = iota - 1
	Red
	Blue
	White
	Orange
)

// Colors lists the seats in default seating order.
var Colors = []Color{Red, Blue, White, Orange}

func (c Color) String() string {
	switch c {
	case Red:
		return "RED"
	case Blue:
		return "BLUE"
	case White:
		return "WHITE"
	case Orange:
		return "ORANGE"
	case NoColor:
		return "NONE"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

type BuildingKind int

const (
	NoBuilding BuildingKind = iota
	Settlement
	City
)

// Building occupies a node. The zero value is an empty node.
type Building struct {
	Owner Color
	Kind  BuildingKind
}

// Board is the mutable occupancy of a Map plus the robber.
type Board struct {
	Map       *Map       // static, shared between copies
	Buildings []Building // indexed by NodeID
	Roads     []Color    // indexed by Map edge index, NoColor when empty
	Robber    Cube
	roadLog   []int // edge indices in build order
}

// NewBoard returns an empty board with the robber on the desert.
func NewBoard(m *Map) *Board {
	b := &Board{
		Map:       m,
		Buildings: make([]Building, m.NumNodes()),
		Roads:     make([]Color, len(m.Edges)),
	}
	for i := range b.Roads {
		b.Roads[i] = NoColor
	}
	i := slices.IndexFunc(m.Tiles, func(t *Tile) bool { return t.Desert })
	if i < 0 {
		panic("map has no desert for the robber")
	}
	b.Robber = m.Tiles[i].Coordinate
	return b
}

func (b *Board) Copy() *Board {
	return &Board{
		Map:       b.Map,
		Buildings: slices.Clone(b.Buildings),
		Roads:     slices.Clone(b.Roads),
		Robber:    b.Robber,
		roadLog:   slices.Clone(b.roadLog),
	}
}

// BuildingAt returns the building on n, if any.
func (b *Board) BuildingAt(n NodeID) (Building, bool) {
	if !b.Map.hasNode(n) || b.Buildings[n].Kind == NoBuilding {
		return Building{}, false
	}
	return b.Buildings[n], true
}

// RoadAt returns the owner of the road on e, if any.
func (b *Board) RoadAt(e Edge) (Color, bool) {
	i, ok := b.Map.EdgeIndex(e)
	if !ok || b.Roads[i] == NoColor {
		return NoColor, false
	}
	return b.Roads[i], true
}

func (b *Board) ownsRoadAt(color Color, n NodeID) bool {
	for _, e := range b.Map.NodeEdges[n] {
		if owner, ok := b.RoadAt(e); ok && owner == color {
			return true
		}
	}
	return false
}

// blocks reports whether n holds a building of someone other than color.
func (b *Board) blocks(color Color, n NodeID) bool {
	bld := b.Buildings[n]
	return bld.Kind != NoBuilding && bld.Owner != color
}

// CanBuildSettlement validates a settlement without placing it.
func (b *Board) CanBuildSettlement(color Color, n NodeID, initialPhase bool) error {
	if !b.Map.hasNode(n) {
		return fmt.Errorf("%w: unknown node %d", ErrIllegalPlacement, n)
	}
	if b.Buildings[n].Kind != NoBuilding {
		return fmt.Errorf("%w: node %d is occupied", ErrIllegalPlacement, n)
	}
	for _, neighbor := range b.Map.NodeNeighbors[n] {
		if b.Buildings[neighbor].Kind != NoBuilding {
			return fmt.Errorf("%w: node %d is next to a building on node %d", ErrIllegalPlacement, n, neighbor)
		}
	}
	if !initialPhase && !b.ownsRoadAt(color, n) {
		return fmt.Errorf("%w: node %d is not on %s's road network", ErrIllegalPlacement, n, color)
	}
	return nil
}

// BuildSettlement places a settlement of color on n.
func (b *Board) BuildSettlement(color Color, n NodeID, initialPhase bool) error {
	if err := b.CanBuildSettlement(color, n, initialPhase); err != nil {
		return err
	}
	b.Buildings[n] = Building{Owner: color, Kind: Settlement}
	return nil
}

// CanBuildRoad validates a road without placing it.
func (b *Board) CanBuildRoad(color Color, e Edge) error {
	i, ok := b.Map.EdgeIndex(e)
	if !ok {
		return fmt.Errorf("%w: unknown edge %v", ErrIllegalPlacement, e)
	}
	if b.Roads[i] != NoColor {
		return fmt.Errorf("%w: edge %v already has a road", ErrIllegalPlacement, e)
	}
	for _, n := range []NodeID{e.A, e.B} {
		if bld := b.Buildings[n]; bld.Kind != NoBuilding && bld.Owner == color {
			return nil
		}
		if !b.blocks(color, n) && b.ownsRoadAt(color, n) {
			return nil
		}
	}
	return fmt.Errorf("%w: edge %v is not connected to %s's network", ErrIllegalPlacement, e, color)
}

// BuildRoad places a road of color on e.
func (b *Board) BuildRoad(color Color, e Edge) error {
	if err := b.CanBuildRoad(color, e); err != nil {
		return err
	}
	i, _ := b.Map.EdgeIndex(e)
	b.Roads[i] = color
	b.roadLog = append(b.roadLog, i)
	return nil
}

// CanBuildCity checks that n holds a settlement of color.
func (b *Board) CanBuildCity(color Color, n NodeID) error {
	bld, ok := b.BuildingAt(n)
	if !ok || bld.Kind != Settlement || bld.Owner != color {
		return fmt.Errorf("%w: node %d has no settlement of %s", ErrIllegalUpgrade, n, color)
	}
	return nil
}

// BuildCity upgrades color's settlement on n.
func (b *Board) BuildCity(color Color, n NodeID) error {
	if err := b.CanBuildCity(color, n); err != nil {
		return err
	}
	b.Buildings[n].Kind = City
	return nil
}

// MoveRobber relocates the robber to the land tile at c.
func (b *Board) MoveRobber(c Cube) error {
	if _, ok := b.Map.TileAt(c); !ok {
		return fmt.Errorf("%w: no land tile at %v", ErrIllegalRobberMove, c)
	}
	if c == b.Robber {
		return fmt.Errorf("%w: robber is already on %v", ErrIllegalRobberMove, c)
	}
	b.Robber = c
	return nil
}

// BuildableNodes lists the nodes where color may place a settlement.
func (b *Board) BuildableNodes(color Color, initialPhase bool) []NodeID {
	var nodes []NodeID
	for n := range b.Buildings {
		if b.CanBuildSettlement(color, NodeID(n), initialPhase) == nil {
			nodes = append(nodes, NodeID(n))
		}
	}
	return nodes
}

// BuildableEdges lists the edges where color may place a road.
func (b *Board) BuildableEdges(color Color) []Edge {
	var edges []Edge
	for _, e := range b.Map.Edges {
		if b.CanBuildRoad(color, e) == nil {
			edges = append(edges, e)
		}
	}
	return edges
}

// CountBuildings counts color's buildings of the given kind.
func (b *Board) CountBuildings(color Color, kind BuildingKind) int {
	count := 0
	for _, bld := range b.Buildings {
		if bld.Owner == color && bld.Kind == kind {
			count++
		}
	}
	return count
}

// CountRoads counts color's roads.
func (b *Board) CountRoads(color Color) int {
	count := 0
	for _, owner := range b.Roads {
		if owner == color {
			count++
		}
	}
	return count
}

// ColorsOnTile returns the distinct owners of buildings around t, ascending.
func (b *Board) ColorsOnTile(t *Tile) []Color {
	var colors []Color
	for _, n := range t.Nodes {
		bld := b.Buildings[n]
		if bld.Kind != NoBuilding && !slices.Contains(colors, bld.Owner) {
			colors = append(colors, bld.Owner)
		}
	}
	slices.Sort(colors)
	return colors
}

// PortAccess reports which ports color has a building on.
func (b *Board) PortAccess(color Color) (generic bool, specific [NumResources]bool) {
	for _, p := range b.Map.Ports {
		for _, n := range p.Nodes {
			if bld := b.Buildings[n]; bld.Kind == NoBuilding || bld.Owner != color {
				continue
			}
			if p.Generic {
				generic = true
			} else {
				specific[p.Resource] = true
			}
		}
	}
	return generic, specific
}

// ContinuousRoadsByPlayer returns color's maximal connected road components.
// Components never pass through another player's building. They are ordered
// by their earliest-built road, and each lists edges in discovery order.
func (b *Board) ContinuousRoadsByPlayer(color Color) [][]Edge {
	visited := make([]bool, len(b.Roads))
	var components [][]Edge
	for _, start := range b.roadLog {
		if visited[start] || b.Roads[start] != color {
			continue
		}
		visited[start] = true
		var component []Edge
		queue := []int{start}
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			e := b.Map.Edges[i]
			component = append(component, e)
			for _, n := range []NodeID{e.A, e.B} {
				if b.blocks(color, n) {
					continue
				}
				for _, next := range b.Map.NodeEdges[n] {
					j, _ := b.Map.EdgeIndex(next)
					if !visited[j] && b.Roads[j] == color {
						visited[j] = true
						queue = append(queue, j)
					}
				}
			}
		}
		components = append(components, component)
	}
	return components
}

// LongestRoad returns the length of color's longest trail: a walk that never
// reuses a road and may end at, but not pass through, another player's building.
func (b *Board) LongestRoad(color Color) int {
	best := 0
	for _, component := range b.ContinuousRoadsByPlayer(color) {
		if len(component) <= best {
			continue
		}
		var starts []NodeID
		for _, e := range component {
			for _, n := range []NodeID{e.A, e.B} {
				if !slices.Contains(starts, n) {
					starts = append(starts, n)
				}
			}
		}
		for _, start := range starts {
			best = max(best, b.longestTrailFrom(color, start))
		}
	}
	return best
}

type trailFrame struct {
	node NodeID
	next int // next candidate in Map.NodeEdges[node]
}

// longestTrailFrom runs an iterative backtracking search; len(path) is always
// len(stack)-1, path[i] being the road that entered stack[i+1].
func (b *Board) longestTrailFrom(color Color, start NodeID) int {
	used := make([]bool, len(b.Roads))
	stack := []trailFrame{{node: start}}
	var path []int
	best := 0
	pop := func() {
		stack = stack[:len(stack)-1]
		if n := len(stack); n > 0 {
			used[path[n-1]] = false
			path = path[:n-1]
		}
	}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if len(stack) > 1 && b.blocks(color, top.node) {
			pop()
			continue
		}
		edges := b.Map.NodeEdges[top.node]
		if top.next >= len(edges) {
			pop()
			continue
		}
		e := edges[top.next]
		top.next++
		i, _ := b.Map.EdgeIndex(e)
		if used[i] || b.Roads[i] != color {
			continue
		}
		used[i] = true
		path = append(path, i)
		best = max(best, len(path))
		stack = append(stack, trailFrame{node: e.Other(top.node)})
	}
	return best
}
