// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"math"
	"sort"
)

// DefaultLeafSize is the maximum number of members held by a leaf node.
const DefaultLeafSize = 16

// radiusSlack pads every node radius so rounding in the separation formula
// can never reject a node that holds a true match.
const radiusSlack = 1e-12

// Node is a bounding cap on the sky over a subset of the indexed points.
// Members holds indexes into the slice given to Build; it is only set on
// leaves.
type Node struct {
	RA      float64
	Dec     float64
	Radius  float64 // radians
	Members []int
	Left    *Node
	Right   *Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Centroid returns the node center as a Point.
func (n *Node) Centroid() Point {
	return Point{RA: n.RA, Dec: n.Dec}
}

// Compatible reports whether any point within radius of p could lie inside
// the node. It never returns false for a node holding such a point.
func (n *Node) Compatible(p Point, radius float64) bool {
	return p.AngularSeparation(n.Centroid())-n.Radius <= radius
}

// Tree is a kd-tree over unit-sphere positions. It is read-only once built.
type Tree struct {
	root     *Node
	points   []Point
	leaves   []*Node
	leafSize int
}

// Build indexes points with DefaultLeafSize.
func Build(points []Point) *Tree {
	return BuildWithLeafSize(points, DefaultLeafSize)
}

// BuildWithLeafSize indexes points, splitting nodes until they hold at most
// leafSize members.
func BuildWithLeafSize(points []Point, leafSize int) *Tree {
	if leafSize < 1 {
		leafSize = DefaultLeafSize
	}

	t := &Tree{points: points, leafSize: leafSize}
	if len(points) == 0 {
		return t
	}

	vectors := make([][3]float64, len(points))
	for i, p := range points {
		vectors[i] = p.Vector()
	}

	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}

	t.root = t.build(idx, vectors)

	return t
}

func (t *Tree) build(idx []int, vectors [][3]float64) *Node {
	node := t.bound(idx, vectors)

	if len(idx) <= t.leafSize {
		node.Members = append([]int(nil), idx...)
		t.leaves = append(t.leaves, node)

		return node
	}

	axis := widestAxis(idx, vectors)
	sort.Slice(idx, func(i, j int) bool {
		return vectors[idx[i]][axis] < vectors[idx[j]][axis]
	})

	mid := len(idx) / 2
	node.Left = t.build(idx[:mid], vectors)
	node.Right = t.build(idx[mid:], vectors)

	return node
}

// bound computes the centroid and the exact covering radius of idx.
func (t *Tree) bound(idx []int, vectors [][3]float64) *Node {
	var sum [3]float64
	for _, i := range idx {
		sum[0] += vectors[i][0]
		sum[1] += vectors[i][1]
		sum[2] += vectors[i][2]
	}

	center := t.points[idx[0]]
	if sum != [3]float64{} {
		center = FromVector(sum)
	}

	radius := 0.0
	for _, i := range idx {
		radius = math.Max(radius, center.AngularSeparation(t.points[i]))
	}

	return &Node{RA: center.RA, Dec: center.Dec, Radius: radius + radiusSlack}
}

func widestAxis(idx []int, vectors [][3]float64) int {
	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}

	for _, i := range idx {
		for a := range 3 {
			lo[a] = math.Min(lo[a], vectors[i][a])
			hi[a] = math.Max(hi[a], vectors[i][a])
		}
	}

	axis := 0
	for a := 1; a < 3; a++ {
		if hi[a]-lo[a] > hi[axis]-lo[axis] {
			axis = a
		}
	}

	return axis
}

// Len returns the number of indexed points.
func (t *Tree) Len() int {
	return len(t.points)
}

// Root returns the root node, nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Leaves returns the leaf nodes in build order.
func (t *Tree) Leaves() []*Node {
	return t.leaves
}

// Depth returns the number of levels in the tree.
func (t *Tree) Depth() int {
	var depth func(n *Node) int
	depth = func(n *Node) int {
		if n == nil {
			return 0
		}

		return 1 + max(depth(n.Left), depth(n.Right))
	}

	return depth(t.root)
}

// Search calls visit for every member of every leaf reachable through nodes
// compatible with p and radius. The visited set is a superset of the points
// within radius of p; callers apply the exact test.
func (t *Tree) Search(p Point, radius float64, visit func(member int)) {
	t.Walk(func(n *Node) bool { return n.Compatible(p, radius) }, visit)
}

// Walk descends from the root into every node accepted by keep and calls
// visit for the members of accepted leaves. Rejected nodes are skipped with
// their whole subtree.
func (t *Tree) Walk(keep func(n *Node) bool, visit func(member int)) {
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || !keep(n) {
			return
		}

		if n.IsLeaf() {
			for _, m := range n.Members {
				visit(m)
			}

			return
		}

		walk(n.Left)
		walk(n.Right)
	}

	walk(t.root)
}
