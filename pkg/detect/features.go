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

import "github.com/pkg/errors"

// Engineered feature field names.
const (
	FieldTotalErrors      = "total_errors"
	FieldErrorRate        = "error_rate"
	FieldHighTemp         = "high_temp"
	FieldAgeFactor        = "age_factor"
	FieldHasReallocated   = "has_reallocated"
	FieldHasUncorrectable = "has_uncorrectable"
	FieldHasPending       = "has_pending"
)

const (
	highTempThreshold = 50.0
	hoursPerYear      = 8760.0
)

// NumFeatures is the width of a feature vector: six raw counters plus seven
// engineered features.
const NumFeatures = 13

// FeatureNames lists the thirteen feature dimensions, in vector order.
var FeatureNames = []string{
	FieldReallocatedSectors,
	FieldPowerOnHours,
	FieldUncorrectableErrors,
	FieldTemperature,
	FieldPendingSectors,
	FieldOfflineUncorrectable,
	FieldTotalErrors,
	FieldErrorRate,
	FieldHighTemp,
	FieldAgeFactor,
	FieldHasReallocated,
	FieldHasUncorrectable,
	FieldHasPending,
}

// FeatureVector derives the thirteen-dimensional feature vector of a record.
// It is a pure function of the six raw counters.
func FeatureVector(r DriveRecord) []float64 {
	totalErrors := r.ReallocatedSectors + r.UncorrectableErrors + r.PendingSectors
	// +1 avoids division by zero on drives reported before their first hour
	errorRate := totalErrors / (r.PowerOnHours + 1)

	return []float64{
		r.ReallocatedSectors,
		r.PowerOnHours,
		r.UncorrectableErrors,
		r.Temperature,
		r.PendingSectors,
		r.OfflineUncorrectable,
		totalErrors,
		errorRate,
		indicator(r.Temperature > highTempThreshold),
		r.PowerOnHours / hoursPerYear,
		indicator(r.ReallocatedSectors > 0),
		indicator(r.UncorrectableErrors > 0),
		indicator(r.PendingSectors > 0),
	}
}

// EngineeredFeatures returns only the seven engineered features keyed by
// field name, for stages that annotate entries rather than build matrices.
func EngineeredFeatures(r DriveRecord) map[string]float64 {
	v := FeatureVector(r)
	out := make(map[string]float64, NumFeatures-len(RawCounterFields))
	for i := len(RawCounterFields); i < NumFeatures; i++ {
		out[FeatureNames[i]] = v[i]
	}
	return out
}

// BuildFeatures derives one feature vector per record, preserving order.
func BuildFeatures(records []DriveRecord) ([][]float64, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "feature engineering")
	}
	matrix := make([][]float64, len(records))
	for i := range records {
		matrix[i] = FeatureVector(records[i])
	}
	return matrix, nil
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
