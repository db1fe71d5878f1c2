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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestFitStandardizer(t *testing.T) {
	matrix := [][]float64{
		{2, 10},
		{4, 10},
		{6, 10},
	}
	stats, err := FitStandardizer(matrix)
	require.NoError(t, err)

	require.Equal(t, []float64{4, 10}, stats.Mean)
	// population std of {2,4,6} is sqrt(8/3); the constant column floors to 1
	require.InDelta(t, 1.632993161855452, stats.Std[0], 1e-12)
	require.Equal(t, 1.0, stats.Std[1])
}

func TestStandardizer_Transform(t *testing.T) {
	matrix := [][]float64{
		{0, 5},
		{10, 5},
	}
	stats, err := FitStandardizer(matrix)
	require.NoError(t, err)

	out := stats.Transform(matrix)
	require.InDelta(t, -1.0, out[0][0], 1e-12)
	require.InDelta(t, 1.0, out[1][0], 1e-12)
	// constant columns transform to zero instead of dividing by zero
	require.Equal(t, 0.0, out[0][1])
	require.Equal(t, 0.0, out[1][1])

	// the input matrix is left untouched
	require.Equal(t, [][]float64{{0, 5}, {10, 5}}, matrix)
}

func TestFitStandardizer_EmptyInput(t *testing.T) {
	_, err := FitStandardizer(nil)
	require.True(t, errors.Is(err, ErrEmptyInput))
}
