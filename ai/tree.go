package ai

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"rps-game/gameerrors"
)

// Sample is one labelled training row.
type Sample struct {
	Features Features
	Label    int
}

// Tree is a CART classification tree over Features, split on Gini impurity.
// It is grown until every leaf is pure or no feature can split it further.
type Tree struct {
	root    *treeNode
	classes int
}

type treeNode struct {
	counts    []int
	samples   int
	gini      float64
	feature   int // -1 on leaves
	threshold float64
	left      *treeNode // feature value <= threshold
	right     *treeNode
}

func (n *treeNode) leaf() bool {
	return n.feature < 0
}

// class returns the majority label; ties go to the lowest label.
func (n *treeNode) class() int {
	best := 0
	for i, c := range n.counts {
		if c > n.counts[best] {
			best = i
		}
	}
	return best
}

// TrainTree fits a tree to samples with labels in [0, numClasses).
// Training is deterministic: among equally good splits the first feature and lowest threshold win.
func TrainTree(samples []Sample, numClasses int) (*Tree, error) {
	if len(samples) == 0 {
		return nil, gameerrors.ErrNoTrainingData
	}
	for i, s := range samples {
		if s.Label < 0 || s.Label >= numClasses {
			return nil, fmt.Errorf("sample %d: label %d out of range [0, %d)", i, s.Label, numClasses)
		}
	}
	return &Tree{root: grow(samples, numClasses), classes: numClasses}, nil
}

// Predict returns the label for f.
func (t *Tree) Predict(f Features) int {
	n := t.root
	for !n.leaf() {
		if float64(f[n.feature]) <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.class()
}

// Depth is the number of splits on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	var depth func(n *treeNode) int
	depth = func(n *treeNode) int {
		if n.leaf() {
			return 0
		}
		return 1 + max(depth(n.left), depth(n.right))
	}
	return depth(t.root)
}

func grow(samples []Sample, numClasses int) *treeNode {
	n := &treeNode{
		counts:  classCounts(samples, numClasses),
		samples: len(samples),
		feature: -1,
	}
	n.gini = gini(n.counts, n.samples)
	if n.gini == 0 {
		return n
	}
	feature, threshold, ok := bestSplit(samples, numClasses)
	if !ok {
		return n
	}
	var left, right []Sample
	for _, s := range samples {
		if float64(s.Features[feature]) <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	n.feature = feature
	n.threshold = threshold
	n.left = grow(left, numClasses)
	n.right = grow(right, numClasses)
	return n
}

// bestSplit returns the split with the lowest weighted child impurity.
// Candidate thresholds are midpoints between consecutive distinct feature
// values, so both children are always non-empty.
func bestSplit(samples []Sample, numClasses int) (feature int, threshold float64, ok bool) {
	best := math.Inf(1)
	total := float64(len(samples))
	for f := 0; f < numFeatures; f++ {
		values := distinctValues(samples, f)
		for i := 0; i+1 < len(values); i++ {
			thr := float64(values[i]+values[i+1]) / 2
			leftCounts := make([]int, numClasses)
			rightCounts := make([]int, numClasses)
			nl, nr := 0, 0
			for _, s := range samples {
				if float64(s.Features[f]) <= thr {
					leftCounts[s.Label]++
					nl++
				} else {
					rightCounts[s.Label]++
					nr++
				}
			}
			score := (float64(nl)*gini(leftCounts, nl) + float64(nr)*gini(rightCounts, nr)) / total
			if score < best {
				best = score
				feature, threshold, ok = f, thr, true
			}
		}
	}
	return feature, threshold, ok
}

func distinctValues(samples []Sample, feature int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, s := range samples {
		v := s.Features[feature]
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func classCounts(samples []Sample, numClasses int) []int {
	counts := make([]int, numClasses)
	for _, s := range samples {
		counts[s.Label]++
	}
	return counts
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}

// WriteDOT writes the tree in Graphviz DOT format, numbering nodes in pre-order.
// featureNames and classNames label splits and leaves; either may be nil.
func (t *Tree) WriteDOT(w io.Writer, featureNames, classNames []string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph Tree {")
	fmt.Fprintln(bw, `node [shape=box] ;`)
	next := 0
	var walk func(n *treeNode, parent int)
	walk = func(n *treeNode, parent int) {
		id := next
		next++
		var label strings.Builder
		if !n.leaf() {
			name := fmt.Sprintf("X[%d]", n.feature)
			if n.feature < len(featureNames) {
				name = featureNames[n.feature]
			}
			fmt.Fprintf(&label, `%s <= %.1f\n`, name, n.threshold)
		}
		fmt.Fprintf(&label, `gini = %.3f\nsamples = %d\nvalue = %s`, n.gini, n.samples, formatCounts(n.counts))
		if n.leaf() && n.class() < len(classNames) {
			fmt.Fprintf(&label, `\nclass = %s`, classNames[n.class()])
		}
		fmt.Fprintf(bw, "%d [label=\"%s\"] ;\n", id, label.String())
		if parent >= 0 {
			fmt.Fprintf(bw, "%d -> %d ;\n", parent, id)
		}
		if !n.leaf() {
			walk(n.left, id)
			walk(n.right, id)
		}
	}
	walk(t.root, -1)
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func formatCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprint(c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
