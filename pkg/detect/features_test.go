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

	"github.com/KrishJani/drive-health-pipeline/pkg/config"
)

func TestFeatureVector(t *testing.T) {
	r := DriveRecord{
		SerialNumber:         "ZTT4ABC1",
		ReallocatedSectors:   8,
		PowerOnHours:         17520,
		UncorrectableErrors:  2,
		Temperature:          55,
		PendingSectors:       4,
		OfflineUncorrectable: 1,
	}

	v := FeatureVector(r)
	require.Len(t, v, NumFeatures)
	require.Len(t, FeatureNames, NumFeatures)

	expected := []float64{
		8, 17520, 2, 55, 4, 1,
		14,                // total_errors = 8 + 2 + 4
		14.0 / 17521.0,    // error_rate = total / (poh + 1)
		1,                 // high_temp: 55 > 50
		2,                 // age_factor = 17520 / 8760
		1, 1, 1,           // has_reallocated, has_uncorrectable, has_pending
	}
	require.Equal(t, expected, v)
}

func TestFeatureVector_HealthyDrive(t *testing.T) {
	v := FeatureVector(DriveRecord{PowerOnHours: 100, Temperature: 30})

	require.Equal(t, 0.0, v[6], "total_errors")
	require.Equal(t, 0.0, v[7], "error_rate")
	require.Equal(t, 0.0, v[8], "high_temp")
	require.Equal(t, 0.0, v[10], "has_reallocated")
	require.Equal(t, 0.0, v[11], "has_uncorrectable")
	require.Equal(t, 0.0, v[12], "has_pending")
}

func TestFeatureVector_ZeroPowerOnHours(t *testing.T) {
	v := FeatureVector(DriveRecord{ReallocatedSectors: 5})
	// the +1 in the denominator keeps the rate finite on day-zero drives
	require.Equal(t, 5.0, v[7])
}

func TestEngineeredFeatures(t *testing.T) {
	features := EngineeredFeatures(DriveRecord{ReallocatedSectors: 3, PowerOnHours: 8759, Temperature: 51})

	require.Len(t, features, 7)
	require.Equal(t, 3.0, features[FieldTotalErrors])
	require.InDelta(t, 3.0/8760.0, features[FieldErrorRate], 1e-12)
	require.Equal(t, 1.0, features[FieldHighTemp])
	require.InDelta(t, 8759.0/8760.0, features[FieldAgeFactor], 1e-12)
	require.Equal(t, 1.0, features[FieldHasReallocated])
	require.Equal(t, 0.0, features[FieldHasUncorrectable])
	require.Equal(t, 0.0, features[FieldHasPending])
}

func TestBuildFeatures(t *testing.T) {
	_, err := BuildFeatures(nil)
	require.True(t, errors.Is(err, ErrEmptyInput))

	matrix, err := BuildFeatures([]DriveRecord{{Temperature: 30}, {Temperature: 60}})
	require.NoError(t, err)
	require.Len(t, matrix, 2)
	require.Equal(t, 0.0, matrix[0][8])
	require.Equal(t, 1.0, matrix[1][8])
}

func TestRecordFromGenericMap(t *testing.T) {
	entry := config.GenericMap{
		FieldSerialNumber:        "SN-1",
		FieldFailure:             1,
		FieldReallocatedSectors:  12.0,
		FieldPowerOnHours:        "4500",
		FieldTemperature:         38,
		FieldPendingSectors:      "not-a-number",
		FieldUncorrectableErrors: nil,
	}

	r := RecordFromGenericMap(entry)
	require.Equal(t, "SN-1", r.SerialNumber)
	require.True(t, r.Failed)
	require.Equal(t, 12.0, r.ReallocatedSectors)
	require.Equal(t, 4500.0, r.PowerOnHours)
	require.Equal(t, 38.0, r.Temperature)
	// unparseable and missing counters default to zero
	require.Equal(t, 0.0, r.PendingSectors)
	require.Equal(t, 0.0, r.UncorrectableErrors)
	require.Equal(t, 0.0, r.OfflineUncorrectable)
}

func TestRecordsFromGenericMaps_PreservesOrder(t *testing.T) {
	entries := []config.GenericMap{
		{FieldSerialNumber: "A"},
		{FieldSerialNumber: "B"},
		{FieldSerialNumber: "C"},
	}
	records := RecordsFromGenericMaps(entries)
	require.Len(t, records, 3)
	require.Equal(t, "A", records[0].SerialNumber)
	require.Equal(t, "B", records[1].SerialNumber)
	require.Equal(t, "C", records[2].SerialNumber)
}
