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

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertToFloat64(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected float64
	}{
		{float64(1.5), 1.5},
		{float32(2), 2},
		{int(7), 7},
		{int64(-3), -3},
		{uint32(9), 9},
		{"42.5", 42.5},
		{"", 0},
		{nil, 0},
	}
	for _, tt := range tests {
		value, err := ConvertToFloat64(tt.input)
		require.NoError(t, err, "input %v", tt.input)
		require.Equal(t, tt.expected, value, "input %v", tt.input)
	}

	_, err := ConvertToFloat64("not a number")
	require.Error(t, err)
	_, err = ConvertToFloat64([]string{"a"})
	require.Error(t, err)
}

func TestConvertToString(t *testing.T) {
	require.Equal(t, "abc", ConvertToString("abc"))
	require.Equal(t, "", ConvertToString(nil))
	require.Equal(t, "17", ConvertToString(17))
	require.Equal(t, "1.5", ConvertToString(1.5))
	require.Equal(t, "true", ConvertToString(true))
}

func TestConvertToBool(t *testing.T) {
	require.True(t, ConvertToBool(true))
	require.True(t, ConvertToBool("true"))
	require.True(t, ConvertToBool("1"))
	require.True(t, ConvertToBool(1))
	require.True(t, ConvertToBool(float64(1)))
	require.True(t, ConvertToBool(-2.5))

	require.False(t, ConvertToBool(false))
	require.False(t, ConvertToBool("false"))
	require.False(t, ConvertToBool("0"))
	require.False(t, ConvertToBool(0))
	require.False(t, ConvertToBool(float64(0)))
	require.False(t, ConvertToBool(nil))
	require.False(t, ConvertToBool("garbage"))
}
