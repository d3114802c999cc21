// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
)

// ForestConfig contains configuration for the random forest.
type ForestConfig struct {
	// NumTrees is the number of bagged trees.
	NumTrees int `json:"num_trees"`

	// Seed drives bootstrap sampling and feature sampling. Each tree gets
	// its own seed drawn from a source seeded with this value.
	Seed int64 `json:"seed"`

	// NumWorkers is the number of trees fitted concurrently.
	// If <= 0, defaults to runtime.NumCPU().
	NumWorkers int `json:"-"`
}

// DefaultForestConfig returns the training defaults.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		NumTrees: 100,
		Seed:     42,
	}
}

// treeNode is a node of a fitted decision tree. Leaves have Feature == -1
// and carry the class distribution of their training samples.
type treeNode struct {
	Feature   int       `json:"f"`
	Threshold float64   `json:"t,omitempty"`
	Left      int       `json:"l,omitempty"`
	Right     int       `json:"r,omitempty"`
	Value     []float64 `json:"v,omitempty"`
}

// DecisionTree is a fitted CART tree stored as a flat node list rooted at 0.
type DecisionTree struct {
	Nodes []treeNode `json:"nodes"`
}

// RandomForest is a bagged ensemble of gini decision trees. Each split
// examines sqrt(numFeatures) randomly drawn candidate features and a sample
// goes left when its value is <= the threshold.
type RandomForest struct {
	Config      ForestConfig    `json:"config"`
	Trees       []*DecisionTree `json:"trees"`
	NumClasses  int             `json:"num_classes"`
	NumFeatures int             `json:"num_features"`
}

// NewRandomForest creates an unfitted forest.
func NewRandomForest(cfg ForestConfig) *RandomForest {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = DefaultForestConfig().NumTrees
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	return &RandomForest{Config: cfg}
}

// Fit grows every tree to purity on its own bootstrap sample.
func (m *RandomForest) Fit(ctx context.Context, X []SparseVector, y []int, nClasses, nFeatures int) error {
	if err := checkTrainingInput(X, y, nClasses, nFeatures); err != nil {
		return err
	}

	seedSource := rand.New(rand.NewSource(m.Config.Seed)) //nolint:gosec // deterministic model training
	seeds := make([]int64, m.Config.NumTrees)
	for i := range seeds {
		seeds[i] = seedSource.Int63()
	}

	maxFeatures := int(math.Sqrt(float64(nFeatures)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	trees := make([]*DecisionTree, m.Config.NumTrees)
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := m.Config.NumWorkers
	if workers <= 0 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				b := &treeBuilder{
					X:           X,
					y:           y,
					nClasses:    nClasses,
					maxFeatures: maxFeatures,
					rng:         rand.New(rand.NewSource(seeds[t])), //nolint:gosec // deterministic model training
				}
				trees[t] = b.build()
			}
		}()
	}

	var err error
	for t := range trees {
		if ContextCancelled(ctx) {
			err = ctx.Err()
			break
		}
		jobs <- t
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return err
	}

	m.Trees = trees
	m.NumClasses = nClasses
	m.NumFeatures = nFeatures
	return nil
}

// Probabilities averages the leaf distributions reached in every tree.
func (m *RandomForest) Probabilities(x SparseVector) []float64 {
	if len(m.Trees) == 0 {
		return nil
	}
	proba := make([]float64, m.NumClasses)
	for _, tree := range m.Trees {
		for k, v := range tree.leaf(x) {
			proba[k] += v
		}
	}
	for k := range proba {
		proba[k] /= float64(len(m.Trees))
	}
	return proba
}

func (t *DecisionTree) leaf(x SparseVector) []float64 {
	node := 0
	for t.Nodes[node].Feature >= 0 {
		n := &t.Nodes[node]
		if featureValue(x, n.Feature) <= n.Threshold {
			node = n.Left
		} else {
			node = n.Right
		}
	}
	return t.Nodes[node].Value
}

// featureValue looks up feature f in x, returning 0 when absent.
func featureValue(x SparseVector, f int) float64 {
	k := sort.SearchInts(x.Indices, f)
	if k < len(x.Indices) && x.Indices[k] == f {
		return x.Values[k]
	}
	return 0
}

type treeBuilder struct {
	X           []SparseVector
	y           []int
	nClasses    int
	maxFeatures int
	rng         *rand.Rand
	nodes       []treeNode
}

// sample is a bootstrap row with its multiplicity.
type sample struct {
	row    int
	weight float64
}

func (b *treeBuilder) build() *DecisionTree {
	n := len(b.X)
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		weights[b.rng.Intn(n)]++
	}
	samples := make([]sample, 0, n)
	for row, w := range weights {
		if w > 0 {
			samples = append(samples, sample{row: row, weight: w})
		}
	}

	b.nodes = nil
	b.grow(samples)
	return &DecisionTree{Nodes: b.nodes}
}

// grow appends the subtree for samples and returns its root index.
func (b *treeBuilder) grow(samples []sample) int {
	counts := b.classWeights(samples)
	idx := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{Feature: -1})

	if isPure(counts) {
		b.nodes[idx].Value = distribution(counts)
		return idx
	}

	feature, threshold, ok := b.bestSplit(samples)
	if !ok {
		b.nodes[idx].Value = distribution(counts)
		return idx
	}

	var left, right []sample
	for _, s := range samples {
		if featureValue(b.X[s.row], feature) <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	l := b.grow(left)
	r := b.grow(right)
	b.nodes[idx] = treeNode{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return idx
}

func (b *treeBuilder) classWeights(samples []sample) []float64 {
	counts := make([]float64, b.nClasses)
	for _, s := range samples {
		counts[b.y[s.row]] += s.weight
	}
	return counts
}

// bestSplit draws candidate features from those present in the node and
// returns the split with the lowest weighted gini impurity. Drawing
// continues past maxFeatures until at least one candidate is non-constant.
func (b *treeBuilder) bestSplit(samples []sample) (int, float64, bool) {
	present := make(map[int]struct{})
	for _, s := range samples {
		for _, f := range b.X[s.row].Indices {
			present[f] = struct{}{}
		}
	}
	candidates := make([]int, 0, len(present))
	for f := range present {
		candidates = append(candidates, f)
	}
	sort.Ints(candidates)

	bestFeature, bestThreshold := -1, 0.0
	bestScore := math.Inf(1)
	evaluated := 0

	for i := 0; i < len(candidates); i++ {
		if evaluated >= b.maxFeatures && bestFeature >= 0 {
			break
		}
		j := i + b.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		f := candidates[i]

		threshold, score, ok := b.evaluate(samples, f)
		if !ok {
			continue
		}
		evaluated++
		if score < bestScore {
			bestFeature, bestThreshold, bestScore = f, threshold, score
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

type valuedSample struct {
	value  float64
	class  int
	weight float64
}

// evaluate finds the best threshold on feature f. The score is the sum of
// child impurities weighted by child mass; lower is better.
func (b *treeBuilder) evaluate(samples []sample, f int) (float64, float64, bool) {
	vals := make([]valuedSample, len(samples))
	for i, s := range samples {
		vals[i] = valuedSample{value: featureValue(b.X[s.row], f), class: b.y[s.row], weight: s.weight}
	}
	sort.SliceStable(vals, func(i, j int) bool { return vals[i].value < vals[j].value })
	if vals[0].value == vals[len(vals)-1].value {
		return 0, 0, false
	}

	right := make([]float64, b.nClasses)
	var rightTotal float64
	for _, v := range vals {
		right[v.class] += v.weight
		rightTotal += v.weight
	}
	left := make([]float64, b.nClasses)
	var leftTotal float64

	bestScore := math.Inf(1)
	bestThreshold := 0.0
	for i := 0; i < len(vals)-1; i++ {
		v := vals[i]
		left[v.class] += v.weight
		right[v.class] -= v.weight
		leftTotal += v.weight
		rightTotal -= v.weight

		if vals[i+1].value == v.value {
			continue
		}
		score := leftTotal*gini(left, leftTotal) + rightTotal*gini(right, rightTotal)
		if score < bestScore {
			bestScore = score
			bestThreshold = (v.value + vals[i+1].value) / 2
			if bestThreshold >= vals[i+1].value {
				bestThreshold = v.value
			}
		}
	}
	return bestThreshold, bestScore, true
}

func gini(counts []float64, total float64) float64 {
	if total <= 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := c / total
		sum += p * p
	}
	return 1 - sum
}

func isPure(counts []float64) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func distribution(counts []float64) []float64 {
	var total float64
	for _, c := range counts {
		total += c
	}
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for k, c := range counts {
		out[k] = c / total
	}
	return out
}
