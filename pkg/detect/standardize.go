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

	"github.com/pkg/errors"
)

// StandardizationStats holds per-dimension mean and standard deviation,
// computed once over a full feature matrix. A zero population standard
// deviation is replaced by 1 so that constant columns transform to zero
// instead of dividing by zero.
type StandardizationStats struct {
	Mean []float64
	Std  []float64
}

// FitStandardizer computes per-dimension statistics over the matrix.
func FitStandardizer(matrix [][]float64) (*StandardizationStats, error) {
	if len(matrix) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "standardizer fit")
	}
	dims := len(matrix[0])
	n := float64(len(matrix))

	stats := &StandardizationStats{
		Mean: make([]float64, dims),
		Std:  make([]float64, dims),
	}
	for _, row := range matrix {
		for d, v := range row {
			stats.Mean[d] += v
		}
	}
	for d := range stats.Mean {
		stats.Mean[d] /= n
	}
	for _, row := range matrix {
		for d, v := range row {
			diff := v - stats.Mean[d]
			stats.Std[d] += diff * diff
		}
	}
	for d := range stats.Std {
		stats.Std[d] = math.Sqrt(stats.Std[d] / n)
		if stats.Std[d] == 0 {
			stats.Std[d] = 1
		}
	}
	return stats, nil
}

// TransformVector returns the z-scores of one feature vector.
func (s *StandardizationStats) TransformVector(v []float64) []float64 {
	out := make([]float64, len(v))
	for d, value := range v {
		out[d] = (value - s.Mean[d]) / s.Std[d]
	}
	return out
}

// Transform returns a new standardized matrix; the input is left untouched.
func (s *StandardizationStats) Transform(matrix [][]float64) [][]float64 {
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		out[i] = s.TransformVector(row)
	}
	return out
}
