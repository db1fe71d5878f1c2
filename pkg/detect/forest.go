/*
 * Copyright (C) 2023 KrishJani
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package detect

import (
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var forestLog = logrus.WithField("component", "detect.IsolationForest")

const (
	// DefaultTrees is the ensemble size used when none is configured.
	DefaultTrees = 200
	// DefaultSampleSize is the per-tree subsample cap ("auto" semantics:
	// min(DefaultSampleSize, record count)).
	DefaultSampleSize = 256

	eulerGamma = 0.5772156649
)

// ForestParams configures an isolation forest fit. Zero values select the
// defaults; explicit out-of-range values are rejected.
type ForestParams struct {
	Trees      int
	SampleSize int
	Seed       int64
}

// treeNode is one node of an isolation tree. Internal nodes carry the split;
// leaves carry the count of training points that reached them and their depth.
type treeNode struct {
	feature int
	split   float64
	left    *treeNode
	right   *treeNode
	size    int
	depth   int
}

func (n *treeNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// IsolationTree is one randomized binary partitioning tree, immutable after build.
type IsolationTree struct {
	root *treeNode
}

// PathLength returns the number of edges from the root to the leaf the vector
// falls into, plus the correction term for leaves holding several points.
func (t *IsolationTree) PathLength(v []float64) float64 {
	node := t.root
	for !node.isLeaf() {
		if v[node.feature] <= node.split {
			node = node.left
		} else {
			node = node.right
		}
	}
	return float64(node.depth) + pathCorrection(float64(node.size))
}

// IsolationForest is an ensemble of independently built isolation trees.
// It owns its trees and is read-only after fitting.
type IsolationForest struct {
	trees      []*IsolationTree
	sampleSize int
	norm       float64
}

// FitForest builds an ensemble over a standardized feature matrix.
// Each tree draws a subsample without replacement and random splits from its
// own deterministic stream seeded with Seed+treeIndex, so the same seed and
// input always build an identical forest regardless of build parallelism.
func FitForest(matrix [][]float64, params ForestParams) (*IsolationForest, error) {
	rows := len(matrix)
	if rows == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "forest fit")
	}
	numTrees := params.Trees
	if numTrees == 0 {
		numTrees = DefaultTrees
	}
	if numTrees < 1 {
		return nil, invalidParam("forest fit", "trees", params.Trees, "ensemble needs at least one tree")
	}
	sampleSize := params.SampleSize
	if sampleSize == 0 {
		sampleSize = DefaultSampleSize
	}
	if sampleSize > rows {
		sampleSize = rows
	}
	if sampleSize < 2 {
		return nil, invalidParam("forest fit", "sampleSize", sampleSize, "subsample needs at least two points")
	}

	forestLog.Debugf("fitting %d trees, sampleSize=%d, rows=%d, seed=%d", numTrees, sampleSize, rows, params.Seed)

	heightLimit := int(math.Ceil(math.Log2(float64(sampleSize))))
	forest := &IsolationForest{
		trees:      make([]*IsolationTree, numTrees),
		sampleSize: sampleSize,
		norm:       pathCorrection(float64(sampleSize)),
	}

	// trees are independent; build them on a bounded worker pool, each
	// writing its own slot
	workers := runtime.NumCPU()
	if workers > numTrees {
		workers = numTrees
	}
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i := 0; i < numTrees; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			forest.trees[i] = buildTree(matrix, sampleSize, heightLimit, params.Seed+int64(i))
			<-sem
		}(i)
	}
	wg.Wait()

	return forest, nil
}

// NumTrees returns the ensemble size.
func (f *IsolationForest) NumTrees() int {
	return len(f.trees)
}

// SampleSize returns the per-tree subsample size used during fitting.
func (f *IsolationForest) SampleSize() int {
	return f.sampleSize
}

// RawScore returns the isolation score 2^(-E[h(x)]/c(S)) in (0, 1];
// values near 1 indicate strong anomalies.
func (f *IsolationForest) RawScore(v []float64) float64 {
	total := 0.0
	for _, tree := range f.trees {
		total += tree.PathLength(v)
	}
	avg := total / float64(len(f.trees))
	return math.Pow(2, -avg/f.norm)
}

// Score returns the decision-function form of the score, 0.5 - RawScore,
// so lower values indicate stronger anomalies. The calibration table is
// defined over this convention.
func (f *IsolationForest) Score(v []float64) float64 {
	return 0.5 - f.RawScore(v)
}

// ScoreAll scores a batch of vectors. Tree traversal is read-only, so records
// are scored on parallel workers; output order matches input order.
func (f *IsolationForest) ScoreAll(matrix [][]float64) []float64 {
	scores := make([]float64, len(matrix))
	workers := runtime.NumCPU()
	if workers > len(matrix) {
		workers = len(matrix)
	}
	if workers <= 1 {
		for i, v := range matrix {
			scores[i] = f.Score(v)
		}
		return scores
	}
	var wg sync.WaitGroup
	chunk := (len(matrix) + workers - 1) / workers
	for start := 0; start < len(matrix); start += chunk {
		end := start + chunk
		if end > len(matrix) {
			end = len(matrix)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				scores[i] = f.Score(matrix[i])
			}
		}(start, end)
	}
	wg.Wait()
	return scores
}

func buildTree(matrix [][]float64, sampleSize, heightLimit int, seed int64) *IsolationTree {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(matrix))
	sample := make([][]float64, sampleSize)
	for i := 0; i < sampleSize; i++ {
		sample[i] = matrix[perm[i]]
	}
	return &IsolationTree{root: buildNode(sample, 0, heightLimit, rng)}
}

func buildNode(points [][]float64, depth, heightLimit int, rng *rand.Rand) *treeNode {
	n := len(points)
	if n <= 1 || depth >= heightLimit {
		return &treeNode{size: n, depth: depth}
	}

	feature := rng.Intn(len(points[0]))
	minVal, maxVal := points[0][feature], points[0][feature]
	for _, p := range points[1:] {
		if p[feature] < minVal {
			minVal = p[feature]
		}
		if p[feature] > maxVal {
			maxVal = p[feature]
		}
	}
	// degenerate column: every point identical in the chosen feature
	if minVal == maxVal {
		return &treeNode{size: n, depth: depth}
	}

	split := minVal + rng.Float64()*(maxVal-minVal)
	left := make([][]float64, 0, n/2)
	right := make([][]float64, 0, n/2)
	for _, p := range points {
		if p[feature] <= split {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}

	return &treeNode{
		feature: feature,
		split:   split,
		left:    buildNode(left, depth+1, heightLimit, rng),
		right:   buildNode(right, depth+1, heightLimit, rng),
	}
}

// pathCorrection is c(n) = 2(ln(n-1) + γ) - 2(n-1)/n, the expected path
// length of an unsuccessful BST search, used to account for subtrees that
// were never expanded.
func pathCorrection(n float64) float64 {
	if n <= 1 {
		return 0
	}
	return 2*(math.Log(n-1)+eulerGamma) - 2*(n-1)/n
}
