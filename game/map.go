package game

import (
	"cmp"
	"slices"
)

// Cube is a cube coordinate of a hexagon, X+Y+Z == 0.
type Cube struct {
	X, Y, Z int
}

// directions are the six unit neighbors in order; consecutive entries are
// themselves neighbors, so corner i of a hex sits between directions i and i+1.
var directions = [6]Cube{
	{1, -1, 0}, {1, 0, -1}, {0, 1, -1}, {-1, 1, 0}, {-1, 0, 1}, {0, -1, 1},
}

func (c Cube) Add(o Cube) Cube {
	return Cube{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

func (c Cube) Scale(k int) Cube {
	return Cube{c.X * k, c.Y * k, c.Z * k}
}

// Radius is the hex distance from the origin.
func (c Cube) Radius() int {
	return max(abs(c.X), abs(c.Y), abs(c.Z))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func compareCubes(a, b Cube) int {
	return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y), cmp.Compare(a.Z, b.Z))
}

// NodeID identifies a corner where up to three tiles meet.
type NodeID int

// Edge connects two adjacent nodes. Always construct with NewEdge.
type Edge struct {
	A, B NodeID
}

// NewEdge returns the normalized edge between a and b.
func NewEdge(a, b NodeID) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Other returns the endpoint of e that is not n.
func (e Edge) Other(n NodeID) NodeID {
	if e.A == n {
		return e.B
	}
	return e.A
}

// Tile is one land hexagon. Tiles are immutable once the map is built.
type Tile struct {
	ID         int
	Coordinate Cube
	Resource   Resource // meaningless when Desert
	Desert     bool
	Number     int // 0 for the desert
	Nodes      [6]NodeID
	Edges      [6]Edge // Edges[i] joins Nodes[i] and Nodes[i+1]
}

// Port grants a better maritime rate to a player building on one of its nodes.
type Port struct {
	Resource Resource // meaningless when Generic
	Generic  bool
	Nodes    [2]NodeID
}

// Ratio is the number of cards given per card received at this port.
func (p Port) Ratio() int {
	if p.Generic {
		return 3
	}
	return 2
}

// Map is the static topology of a board: tiles, the node/edge graph and ports.
type Map struct {
	Tiles         []*Tile // spiral order, indexed by Tile.ID
	Edges         []Edge  // insertion order
	Ports         []Port
	NodeNeighbors [][]NodeID
	NodeEdges     [][]Edge
	NodeTiles     [][]int // tile IDs

	tileIDs   map[Cube]int
	edgeIDs   map[Edge]int
	nodePorts []int // port index, -1 when none
	corners   map[[3]Cube]NodeID
}

// NewMap creates and returns an empty Map.
func NewMap() *Map {
	return &Map{
		tileIDs: make(map[Cube]int),
		edgeIDs: make(map[Edge]int),
		corners: make(map[[3]Cube]NodeID),
	}
}

// NumNodes is the number of corners on the map.
func (m *Map) NumNodes() int {
	return len(m.NodeNeighbors)
}

// TileAt returns the land tile at c.
func (m *Map) TileAt(c Cube) (*Tile, bool) {
	id, ok := m.tileIDs[c]
	if !ok {
		return nil, false
	}
	return m.Tiles[id], true
}

// EdgeIndex returns the position of e in m.Edges.
func (m *Map) EdgeIndex(e Edge) (int, bool) {
	i, ok := m.edgeIDs[NewEdge(e.A, e.B)]
	return i, ok
}

func (m *Map) hasNode(n NodeID) bool {
	return n >= 0 && int(n) < m.NumNodes()
}

// PortAt returns the port attached to node n.
func (m *Map) PortAt(n NodeID) (Port, bool) {
	if !m.hasNode(n) || m.nodePorts[n] < 0 {
		return Port{}, false
	}
	return m.Ports[m.nodePorts[n]], true
}

// AddTile adds a land tile at coordinate c, creating its corners and edges.
// A map holds at most one desert.
func (m *Map) AddTile(c Cube, resource Resource, desert bool, number int) *Tile {
	if desert && slices.ContainsFunc(m.Tiles, func(t *Tile) bool { return t.Desert }) {
		panic("map already has a desert")
	}
	t := &Tile{
		ID:         len(m.Tiles),
		Coordinate: c,
		Resource:   resource,
		Desert:     desert,
		Number:     number,
	}
	for i := range t.Nodes {
		t.Nodes[i] = m.node(cornerKey(c, i))
		m.NodeTiles[t.Nodes[i]] = append(m.NodeTiles[t.Nodes[i]], t.ID)
	}
	for i := range t.Edges {
		t.Edges[i] = NewEdge(t.Nodes[i], t.Nodes[(i+1)%6])
		m.addEdge(t.Edges[i])
	}
	m.Tiles = append(m.Tiles, t)
	m.tileIDs[c] = t.ID
	return t
}

// AddPort attaches a port to the edge of tile c that faces direction dir.
func (m *Map) AddPort(c Cube, dir int, resource Resource, generic bool) {
	t, ok := m.TileAt(c)
	if !ok {
		panic("port on unknown tile")
	}
	p := Port{
		Resource: resource,
		Generic:  generic,
		Nodes:    [2]NodeID{t.Nodes[(dir+5)%6], t.Nodes[dir]},
	}
	for _, n := range p.Nodes {
		m.nodePorts[n] = len(m.Ports)
	}
	m.Ports = append(m.Ports, p)
}

func (m *Map) node(key [3]Cube) NodeID {
	if n, ok := m.corners[key]; ok {
		return n
	}
	n := NodeID(m.NumNodes())
	m.corners[key] = n
	m.NodeNeighbors = append(m.NodeNeighbors, nil)
	m.NodeEdges = append(m.NodeEdges, nil)
	m.NodeTiles = append(m.NodeTiles, nil)
	m.nodePorts = append(m.nodePorts, -1)
	return n
}

func (m *Map) addEdge(e Edge) {
	if _, ok := m.edgeIDs[e]; ok {
		return
	}
	m.edgeIDs[e] = len(m.Edges)
	m.Edges = append(m.Edges, e)
	m.NodeNeighbors[e.A] = append(m.NodeNeighbors[e.A], e.B)
	m.NodeNeighbors[e.B] = append(m.NodeNeighbors[e.B], e.A)
	m.NodeEdges[e.A] = append(m.NodeEdges[e.A], e)
	m.NodeEdges[e.B] = append(m.NodeEdges[e.B], e)
}

// cornerKey names corner i of hex c by the three hexes that meet there.
func cornerKey(c Cube, i int) [3]Cube {
	key := [3]Cube{c, c.Add(directions[i]), c.Add(directions[(i+1)%6])}
	slices.SortFunc(key[:], compareCubes)
	return key
}

// landCoordinates lists the 19 land hexes in spiral order: centre, ring 1, ring 2.
func landCoordinates() []Cube {
	coords := []Cube{{}}
	for k := 1; k <= 2; k++ {
		hex := directions[4].Scale(k)
		for i := 0; i < 6; i++ {
			for j := 0; j < k; j++ {
				coords = append(coords, hex)
				hex = hex.Add(directions[i])
			}
		}
	}
	return coords
}

type portLocation struct {
	tile Cube
	dir  int
}

// portLocations places nine ports on outward edges of the outer ring: one on
// each ring corner and one on every other ring side. No two share a node.
func portLocations() []portLocation {
	var locs []portLocation
	for i := 0; i < 6; i++ {
		locs = append(locs, portLocation{tile: directions[i].Scale(2), dir: i})
		if i%2 == 0 {
			locs = append(locs, portLocation{tile: directions[i].Add(directions[i+1]), dir: i})
		}
	}
	return locs
}

type tileSpec struct {
	resource Resource
	desert   bool
	number   int
}

type portSpec struct {
	resource Resource
	generic  bool
}

var desertTile = tileSpec{desert: true}

// baseTiles is the fixed layout used by BaseMap, in spiral order.
var baseTiles = []tileSpec{
	desertTile,
	{Wheat, false, 4}, {Ore, false, 3}, {Sheep, false, 11}, {Wood, false, 6}, {Brick, false, 5}, {Wheat, false, 10},
	{Wood, false, 9}, {Sheep, false, 12}, {Wood, false, 8}, {Brick, false, 2}, {Ore, false, 10}, {Wheat, false, 9},
	{Sheep, false, 4}, {Wood, false, 3}, {Ore, false, 5}, {Sheep, false, 8}, {Brick, false, 11}, {Wheat, false, 6},
}

var basePorts = []portSpec{
	{resource: Wood}, {generic: true}, {resource: Brick},
	{generic: true}, {resource: Sheep}, {generic: true},
	{resource: Wheat}, {generic: true}, {resource: Ore},
}

// createMap builds a map from tiles in spiral order and ports in portLocations order.
func createMap(tiles []tileSpec, ports []portSpec) *Map {
	m := NewMap()
	for i, c := range landCoordinates() {
		spec := tiles[i]
		m.AddTile(c, spec.resource, spec.desert, spec.number)
	}
	for i, loc := range portLocations() {
		m.AddPort(loc.tile, loc.dir, ports[i].resource, ports[i].generic)
	}
	return m
}

// BaseMap returns the fixed beginner layout with the desert in the centre.
func BaseMap() *Map {
	return createMap(baseTiles, basePorts)
}

// RandomMap shuffles the base tile resources, number tokens and ports with r.
func RandomMap(r Randomizer) *Map {
	kinds := make([]tileSpec, len(baseTiles))
	copy(kinds, baseTiles)
	shuffle(r, len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })

	var numbers []int
	for _, t := range baseTiles {
		if !t.desert {
			numbers = append(numbers, t.number)
		}
	}
	shuffle(r, len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })
	for i := range kinds {
		if kinds[i].desert {
			continue
		}
		kinds[i].number, numbers = numbers[0], numbers[1:]
	}

	ports := make([]portSpec, len(basePorts))
	copy(ports, basePorts)
	shuffle(r, len(ports), func(i, j int) { ports[i], ports[j] = ports[j], ports[i] })

	return createMap(kinds, ports)
}
