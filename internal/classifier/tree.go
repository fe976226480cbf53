package classifier

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/aminaaguel/Guess-My-Emotion/internal/textfeat"
)

// A Node represents a splitting decision of the form
// "x[FeatureIndex] < Threshold ?".
type Node struct {
	// FeatureIndex indicates which feature is used in this splitting decision
	FeatureIndex int `json:"feature_index"`
	// Threshold is the cutoff between the left and right subtrees
	Threshold float64 `json:"threshold"`
	// LeftChild indexes Nodes, or Leaves when LeftIsLeaf is set
	LeftChild  int  `json:"left_child"`
	LeftIsLeaf bool `json:"left_is_leaf"`
	// RightChild indexes Nodes, or Leaves when RightIsLeaf is set
	RightChild  int  `json:"right_child"`
	RightIsLeaf bool `json:"right_is_leaf"`
}

// A Tree is a classification tree whose leaves hold class distributions.
// A tree with no nodes is a single leaf.
type Tree struct {
	Nodes []Node `json:"nodes"`
	// Leaves holds one class distribution per leaf
	Leaves [][]float64 `json:"leaves"`
	// FeatureSize is the length of feature vectors processed by this tree
	FeatureSize int `json:"feature_size"`
	// Depth is the maximum depth of any leaf in the tree
	Depth int `json:"depth"`
}

// Leaf drops x down the tree and returns the index of the leaf it lands in.
func (t *Tree) Leaf(x textfeat.Vector) (int, error) {
	if x.Dim != t.FeatureSize {
		return 0, &ErrDimension{Want: t.FeatureSize, Got: x.Dim}
	}
	if len(t.Nodes) == 0 {
		return 0, nil
	}
	cur := t.Nodes[0]
	for i := 0; i < t.Depth; i++ {
		if x.At(cur.FeatureIndex) < cur.Threshold {
			if cur.LeftIsLeaf {
				return cur.LeftChild, nil
			}
			cur = t.Nodes[cur.LeftChild]
		} else {
			if cur.RightIsLeaf {
				return cur.RightChild, nil
			}
			cur = t.Nodes[cur.RightChild]
		}
	}
	return 0, fmt.Errorf("tree traversal did not terminate within depth %d", t.Depth)
}

// Distribution returns the class distribution of the leaf x lands in.
func (t *Tree) Distribution(x textfeat.Vector) ([]float64, error) {
	l, err := t.Leaf(x)
	if err != nil {
		return nil, err
	}
	return t.Leaves[l], nil
}

// treeParams bounds growth of a single tree.
type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	maxFeatures     int
	numClasses      int
}

// entry is one non-zero feature value of a row reaching a node.
type entry struct {
	value float64
	label int
}

// treeBuilder grows one tree over rows of X. rows may repeat (bootstrap).
type treeBuilder struct {
	X      []textfeat.Vector
	y      []int
	params treeParams
	rng    *rand.Rand
	tree   *Tree
}

func growTree(X []textfeat.Vector, y []int, rows []int, p treeParams, rng *rand.Rand) *Tree {
	b := &treeBuilder{
		X:      X,
		y:      y,
		params: p,
		rng:    rng,
		tree:   &Tree{FeatureSize: X[0].Dim},
	}
	// The root, when split, is always Nodes[0].
	b.build(rows, 0)
	return b.tree
}

// build grows the subtree for rows at depth and returns whether it is a
// leaf and its index into Leaves or Nodes.
func (b *treeBuilder) build(rows []int, depth int) (bool, int) {
	counts := make([]int, b.params.numClasses)
	for _, r := range rows {
		counts[b.y[r]]++
	}

	if depth >= b.params.maxDepth || len(rows) < b.params.minSamplesSplit || isPure(counts) {
		return true, b.addLeaf(counts, len(rows), depth)
	}

	feature, threshold, ok := b.bestSplit(rows, counts)
	if !ok {
		return true, b.addLeaf(counts, len(rows), depth)
	}

	var left, right []int
	for _, r := range rows {
		if b.X[r].At(feature) < threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	nodeIdx := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, Node{FeatureIndex: feature, Threshold: threshold})

	leftLeaf, leftIdx := b.build(left, depth+1)
	rightLeaf, rightIdx := b.build(right, depth+1)

	n := &b.tree.Nodes[nodeIdx]
	n.LeftChild, n.LeftIsLeaf = leftIdx, leftLeaf
	n.RightChild, n.RightIsLeaf = rightIdx, rightLeaf
	return false, nodeIdx
}

func (b *treeBuilder) addLeaf(counts []int, n, depth int) int {
	dist := make([]float64, len(counts))
	if n > 0 {
		for c, k := range counts {
			dist[c] = float64(k) / float64(n)
		}
	}
	b.tree.Leaves = append(b.tree.Leaves, dist)
	if depth > b.tree.Depth {
		b.tree.Depth = depth
	}
	return len(b.tree.Leaves) - 1
}

// bestSplit picks maxFeatures candidates among the features non-zero in at
// least one row and returns the gini-optimal threshold across them.
func (b *treeBuilder) bestSplit(rows []int, counts []int) (int, float64, bool) {
	byFeature := make(map[int][]entry)
	for _, r := range rows {
		x := b.X[r]
		for k, f := range x.Indices {
			byFeature[f] = append(byFeature[f], entry{value: x.Values[k], label: b.y[r]})
		}
	}
	if len(byFeature) == 0 {
		return 0, 0, false
	}

	candidates := make([]int, 0, len(byFeature))
	for f := range byFeature {
		candidates = append(candidates, f)
	}
	sort.Ints(candidates)

	m := b.params.maxFeatures
	if m <= 0 || m > len(candidates) {
		m = len(candidates)
	}
	for i := 0; i < m; i++ {
		j := i + b.rng.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	candidates = candidates[:m]

	n := len(rows)
	parent := sumSquares(counts) / float64(n)
	bestScore := parent
	bestFeature, bestThreshold, found := 0, 0.0, false

	for _, f := range candidates {
		score, threshold, ok := splitFeature(byFeature[f], counts, n)
		if ok && score > bestScore+1e-12 {
			bestScore, bestFeature, bestThreshold, found = score, f, threshold, true
		}
	}
	return bestFeature, bestThreshold, found
}

// splitFeature sweeps thresholds of one feature. Rows absent from es hold
// zero and always fall left. The returned score is Σ cL²/nL + Σ cR²/nR,
// which grows as weighted gini impurity shrinks.
func splitFeature(es []entry, counts []int, n int) (float64, float64, bool) {
	sort.Slice(es, func(i, j int) bool { return es[i].value < es[j].value })

	left := make([]int, len(counts))
	right := make([]int, len(counts))
	copy(left, counts)
	for _, e := range es {
		left[e.label]--
		right[e.label]++
	}
	nLeft, nRight := n-len(es), len(es)
	sqLeft, sqRight := sumSquares(left), sumSquares(right)

	best, bestThreshold, found := 0.0, 0.0, false
	consider := func(threshold float64) {
		if nLeft == 0 || nRight == 0 {
			return
		}
		s := sqLeft/float64(nLeft) + sqRight/float64(nRight)
		if !found || s > best {
			best, bestThreshold, found = s, threshold, true
		}
	}

	if len(es) > 0 && es[0].value > 0 {
		consider(es[0].value / 2)
	}
	for i, e := range es {
		c := e.label
		sqLeft += float64(2*left[c] + 1)
		left[c]++
		sqRight -= float64(2*right[c] - 1)
		right[c]--
		nLeft++
		nRight--
		if i+1 < len(es) && es[i+1].value > e.value {
			consider((e.value + es[i+1].value) / 2)
		}
	}
	return best, bestThreshold, found
}

func sumSquares(counts []int) float64 {
	var s float64
	for _, c := range counts {
		s += float64(c * c)
	}
	return s
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}
