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
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/pipeline/utils"
)

// Field names of a drive record entry as produced by the ingest stages.
const (
	FieldSerialNumber         = "serial_number"
	FieldFailure              = "failure"
	FieldReallocatedSectors   = "reallocated_sectors"
	FieldPowerOnHours         = "power_on_hours"
	FieldUncorrectableErrors  = "uncorrectable_errors"
	FieldTemperature          = "temperature"
	FieldPendingSectors       = "pending_sectors"
	FieldOfflineUncorrectable = "offline_uncorrectable"
)

// Result field names added by the anomaly stage.
const (
	FieldAnomalyScore     = "anomaly_score"
	FieldAnomaly          = "anomaly"
	FieldPredictedFailure = "predicted_failure"
)

// RawCounterFields lists the six raw SMART counters, in feature order.
var RawCounterFields = []string{
	FieldReallocatedSectors,
	FieldPowerOnHours,
	FieldUncorrectableErrors,
	FieldTemperature,
	FieldPendingSectors,
	FieldOfflineUncorrectable,
}

// DriveRecord is one telemetry observation of one drive. Raw counters are
// non-negative; absent counters are zero. Records are never mutated after
// construction.
type DriveRecord struct {
	SerialNumber         string
	Failed               bool
	ReallocatedSectors   float64
	PowerOnHours         float64
	UncorrectableErrors  float64
	Temperature          float64
	PendingSectors       float64
	OfflineUncorrectable float64
}

// RecordFromGenericMap builds a DriveRecord from a pipeline entry. Missing or
// unparseable numeric fields are treated as zero, matching the ingest contract.
func RecordFromGenericMap(entry config.GenericMap) DriveRecord {
	return DriveRecord{
		SerialNumber:         utils.ConvertToString(entry[FieldSerialNumber]),
		Failed:               utils.ConvertToBool(entry[FieldFailure]),
		ReallocatedSectors:   numericField(entry, FieldReallocatedSectors),
		PowerOnHours:         numericField(entry, FieldPowerOnHours),
		UncorrectableErrors:  numericField(entry, FieldUncorrectableErrors),
		Temperature:          numericField(entry, FieldTemperature),
		PendingSectors:       numericField(entry, FieldPendingSectors),
		OfflineUncorrectable: numericField(entry, FieldOfflineUncorrectable),
	}
}

// RecordsFromGenericMaps converts a batch of entries, preserving order.
func RecordsFromGenericMaps(entries []config.GenericMap) []DriveRecord {
	records := make([]DriveRecord, len(entries))
	for i, entry := range entries {
		records[i] = RecordFromGenericMap(entry)
	}
	return records
}

func numericField(entry config.GenericMap, field string) float64 {
	raw, ok := entry[field]
	if !ok {
		return 0
	}
	value, err := utils.ConvertToFloat64(raw)
	if err != nil {
		return 0
	}
	return value
}
