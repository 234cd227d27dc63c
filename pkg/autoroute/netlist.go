package autoroute

import (
	"math"

	"github.com/OpenTraceLab/trace/pkg/route"
)

// node is a wire end rounded to micrometers, so coordinates that print
// the same in the file compare equal.
type node struct {
	x, y int64
}

func nodeAt(p route.Point) node {
	return node{x: int64(math.Round(p.X * 1000)), y: int64(math.Round(p.Y * 1000))}
}

// Netlist groups wire ends that are electrically connected using a
// union-find structure. Names are attached to groups once all
// connections are known.
type Netlist struct {
	parent map[node]node
	rank   map[node]int
	names  map[node]string // root -> net name
}

// NewNetlist creates an empty netlist.
func NewNetlist() *Netlist {
	return &Netlist{
		parent: make(map[node]node),
		rank:   make(map[node]int),
		names:  make(map[node]string),
	}
}

func (nl *Netlist) add(n node) {
	if _, ok := nl.parent[n]; !ok {
		nl.parent[n] = n
	}
}

// Connect marks two points as electrically connected.
func (nl *Netlist) Connect(a, b route.Point) {
	rootA := nl.find(nodeAt(a))
	rootB := nl.find(nodeAt(b))
	if rootA == rootB {
		return
	}

	// Union by rank
	switch {
	case nl.rank[rootA] < nl.rank[rootB]:
		nl.parent[rootA] = rootB
	case nl.rank[rootA] > nl.rank[rootB]:
		nl.parent[rootB] = rootA
	default:
		nl.parent[rootB] = rootA
		nl.rank[rootA]++
	}
}

// find returns the root of n's group, compressing the path on the way.
func (nl *Netlist) find(n node) node {
	nl.add(n)

	root := n
	for nl.parent[root] != root {
		root = nl.parent[root]
	}

	for cur := n; cur != root; {
		next := nl.parent[cur]
		nl.parent[cur] = root
		cur = next
	}
	return root
}

// Connected reports whether a and b are in the same group.
func (nl *Netlist) Connected(a, b route.Point) bool {
	return nl.find(nodeAt(a)) == nl.find(nodeAt(b))
}

// Name gives the group containing p the net name, unless the group is
// already named. It must be called after every Connect.
func (nl *Netlist) Name(p route.Point, net string) {
	if net == "" {
		return
	}
	root := nl.find(nodeAt(p))
	if _, ok := nl.names[root]; !ok {
		nl.names[root] = net
	}
}

// NetAt returns the name of the group containing p, "" if unnamed.
func (nl *Netlist) NetAt(p route.Point) string {
	if _, ok := nl.parent[nodeAt(p)]; !ok {
		return ""
	}
	return nl.names[nl.find(nodeAt(p))]
}
