package geometry

import (
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// KDTreeMaxDepth bounds the recursion when splitting nodes. Nodes at a deeper
// level are never split, whatever their object count.
const KDTreeMaxDepth = 5

// KDTreeNode is a region of space and the objects overlapping it
type KDTreeNode struct {
	BoundingBox core.AABB
	Objects     []int // Object indices; for internal nodes only unbounded objects remain
	Left        *KDTreeNode
	Right       *KDTreeNode
}

// IsLeaf reports whether the node has no children
func (n *KDTreeNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// KDTree is a midpoint-split spatial index over shape indices. It reflects the
// shapes it was built from; moving a shape afterwards requires a rebuild.
type KDTree struct {
	Root      *KDTreeNode
	Unbounded []int // Shapes without a bounding box, returned for every ray

	boxes   []core.AABB
	bounded []bool
}

// NewKDTree builds a tree over shapes, identified by their slice index
func NewKDTree(shapes []Shape) *KDTree {
	tree := &KDTree{
		boxes:   make([]core.AABB, len(shapes)),
		bounded: make([]bool, len(shapes)),
	}

	sceneBox := core.EmptyAABB()
	all := make([]int, len(shapes))
	for i, shape := range shapes {
		all[i] = i
		box, ok := shape.BoundingBox()
		if !ok {
			tree.Unbounded = append(tree.Unbounded, i)
			continue
		}
		tree.boxes[i] = box
		tree.bounded[i] = true
		sceneBox = sceneBox.Union(box)
	}

	tree.Root = &KDTreeNode{BoundingBox: sceneBox, Objects: all}
	tree.split(tree.Root, 0, 0)
	return tree
}

// split subdivides node at the midpoint of axis, cycling X, Y, Z with depth
func (t *KDTree) split(node *KDTreeNode, axis, depth int) {
	if depth > KDTreeMaxDepth {
		return
	}

	splitValue := (node.BoundingBox.Min.Axis(axis) + node.BoundingBox.Max.Axis(axis)) / 2
	leftBox, rightBox := node.BoundingBox.Split(axis, splitValue)

	var left, right, unbounded []int
	for _, index := range node.Objects {
		if !t.bounded[index] {
			unbounded = append(unbounded, index)
			continue
		}
		box := t.boxes[index]
		switch {
		case box.Min.Axis(axis) > splitValue:
			right = append(right, index)
		case box.Max.Axis(axis) < splitValue:
			left = append(left, index)
		default:
			// Straddles the split plane: belongs to both sides
			left = append(left, index)
			right = append(right, index)
		}
	}

	// Everything went left and nothing was separated out: further splits cannot help
	initial := len(node.Objects)
	if len(left) == initial && len(right) < initial {
		return
	}

	node.Objects = unbounded
	next := (axis + 1) % 3

	if len(left) > 0 {
		node.Left = &KDTreeNode{BoundingBox: leftBox, Objects: left}
		t.split(node.Left, next, depth+1)
	}
	if len(right) > 0 {
		node.Right = &KDTreeNode{BoundingBox: rightBox, Objects: right}
		t.split(node.Right, next, depth+1)
	}
}

// Candidates returns the sorted, de-duplicated indices of every object the ray
// may hit: the contents of each node whose box the ray crosses, plus all
// unbounded objects.
func (t *KDTree) Candidates(ray core.Ray) []int {
	seen := make(map[int]struct{}, len(t.Unbounded))
	for _, index := range t.Unbounded {
		seen[index] = struct{}{}
	}
	if t.Root != nil {
		collect(t.Root, ray, seen)
	}

	candidates := make([]int, 0, len(seen))
	for index := range seen {
		candidates = append(candidates, index)
	}
	slices.Sort(candidates)
	return candidates
}

func collect(node *KDTreeNode, ray core.Ray, seen map[int]struct{}) {
	if !node.BoundingBox.Hit(ray) {
		return
	}
	for _, index := range node.Objects {
		seen[index] = struct{}{}
	}
	if node.Left != nil {
		collect(node.Left, ray, seen)
	}
	if node.Right != nil {
		collect(node.Right, ray, seen)
	}
}

// KDTreeStats describes the shape of a built tree
type KDTreeStats struct {
	TotalNodes   int
	LeafNodes    int
	MaxDepth     int
	LeafEntries  int // Sum of leaf object counts, counting duplicates
	BoundedCount int
}

// Stats walks the tree and collects structural statistics
func (t *KDTree) Stats() KDTreeStats {
	stats := KDTreeStats{}
	for _, bounded := range t.bounded {
		if bounded {
			stats.BoundedCount++
		}
	}
	if t.Root != nil {
		collectStats(t.Root, 0, &stats)
	}
	return stats
}

func collectStats(node *KDTreeNode, depth int, stats *KDTreeStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	if node.IsLeaf() {
		stats.LeafNodes++
		stats.LeafEntries += len(node.Objects)
		return
	}
	if node.Left != nil {
		collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		collectStats(node.Right, depth+1, stats)
	}
}
