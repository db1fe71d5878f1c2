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

package extract

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/detect"
	"github.com/KrishJani/drive-health-pipeline/pkg/operational"
	"github.com/KrishJani/drive-health-pipeline/pkg/test"
)

const testConfigAnomaly = `---
pipeline:
  - name: ingest
  - name: anomaly
    follows: ingest
parameters:
  - name: ingest
    ingest:
      type: synthetic
  - name: anomaly
    extract:
      type: anomaly
      anomaly:
        trees: 50
        sampleSize: 64
        contamination: 0.02
        seed: 42
`

func newAnomalyFromConfig(t *testing.T) *Anomaly {
	t.Helper()
	_, cfg := test.InitConfig(t, testConfigAnomaly)
	extractor, err := NewExtractAnomaly(cfg.Parameters[1], operational.NewMetrics(nil))
	require.NoError(t, err)
	anomaly, ok := extractor.(*Anomaly)
	require.True(t, ok)
	return anomaly
}

// testEntries builds a healthy population plus a few drives with heavy error
// counters, the failed ones flagged in ground truth.
func testEntries(healthy, failed int) []config.GenericMap {
	entries := make([]config.GenericMap, 0, healthy+failed)
	for i := 0; i < healthy; i++ {
		entry := test.GetIngestMockEntry(fmt.Sprintf("OK-%04d", i), false)
		entry[detect.FieldPowerOnHours] = float64(10000 + i*13%20000)
		entry[detect.FieldTemperature] = float64(28 + i%8)
		entries = append(entries, entry)
	}
	for i := 0; i < failed; i++ {
		entry := test.GetIngestMockEntry(fmt.Sprintf("BAD-%04d", i), true)
		entry[detect.FieldReallocatedSectors] = float64(500 + i*100)
		entry[detect.FieldPendingSectors] = float64(40 + i*10)
		entry[detect.FieldUncorrectableErrors] = float64(10 + i)
		entry[detect.FieldTemperature] = float64(55 + i)
		entries = append(entries, entry)
	}
	return entries
}

func TestExtractAnomaly_AnnotatesAndReports(t *testing.T) {
	anomaly := newAnomalyFromConfig(t)
	entries := testEntries(300, 6)

	out, err := anomaly.Extract(entries)
	require.NoError(t, err)
	// one annotated entry per record plus the trailing report entry
	require.Len(t, out, len(entries)+1)

	for _, entry := range out[:len(entries)] {
		require.Contains(t, entry, detect.FieldAnomalyScore)
		label := entry[detect.FieldAnomaly]
		require.Contains(t, []interface{}{-1, 1}, label)
		if label == -1 {
			require.Equal(t, 1, entry[detect.FieldPredictedFailure])
		} else {
			require.Equal(t, 0, entry[detect.FieldPredictedFailure])
		}
	}

	reportEntry := out[len(entries)]
	require.Equal(t, RecordTypeEvaluation, reportEntry[RecordTypeField])
	require.Equal(t, anomaly.Report(), reportEntry["report"])
	require.NotNil(t, anomaly.Calibration())
	require.False(t, anomaly.Calibration().Fallback)

	// the threshold sits at the 30th percentile of the failed scores, so at
	// least the two lowest-scoring failures are below it
	require.GreaterOrEqual(t, anomaly.Report().TruePositives, 2)
}

func TestExtractAnomaly_InputNotMutated(t *testing.T) {
	anomaly := newAnomalyFromConfig(t)
	entries := testEntries(50, 2)

	_, err := anomaly.Extract(entries)
	require.NoError(t, err)
	for _, entry := range entries {
		require.NotContains(t, entry, detect.FieldAnomalyScore)
		require.NotContains(t, entry, detect.FieldAnomaly)
	}
}

func TestExtractAnomaly_DeterministicBySeed(t *testing.T) {
	entries := testEntries(200, 4)

	out1, err := newAnomalyFromConfig(t).Extract(entries)
	require.NoError(t, err)
	out2, err := newAnomalyFromConfig(t).Extract(entries)
	require.NoError(t, err)

	for i := range out1[:len(entries)] {
		require.Equal(t, out1[i][detect.FieldAnomalyScore], out2[i][detect.FieldAnomalyScore])
	}
}

func TestExtractAnomaly_FallbackWithoutLabels(t *testing.T) {
	anomaly := newAnomalyFromConfig(t)
	entries := testEntries(150, 0)

	out, err := anomaly.Extract(entries)
	require.NoError(t, err)
	require.Len(t, out, len(entries)+1)
	require.True(t, anomaly.Calibration().Fallback)

	flagged := 0
	for _, entry := range out[:len(entries)] {
		if entry[detect.FieldAnomaly] == -1 {
			flagged++
		}
	}
	// the fallback flags the lowest-scoring contamination fraction, at least
	require.GreaterOrEqual(t, flagged, 3)
}

func TestExtractAnomaly_EmptyInput(t *testing.T) {
	anomaly := newAnomalyFromConfig(t)
	_, err := anomaly.Extract(nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, detect.ErrEmptyInput))
}

func TestNewExtractAnomaly_Validation(t *testing.T) {
	metrics := operational.NewMetrics(nil)
	param := func(cfg api.ExtractAnomaly) config.StageParam {
		return config.StageParam{Extract: &config.Extract{Type: api.AnomalyType, Anomaly: &cfg}}
	}

	_, err := NewExtractAnomaly(param(api.ExtractAnomaly{}), metrics)
	require.NoError(t, err)

	_, err = NewExtractAnomaly(param(api.ExtractAnomaly{Trees: -1}), metrics)
	require.Error(t, err)

	_, err = NewExtractAnomaly(param(api.ExtractAnomaly{SampleSize: 1}), metrics)
	require.Error(t, err)

	_, err = NewExtractAnomaly(param(api.ExtractAnomaly{SampleSize: -3}), metrics)
	require.Error(t, err)

	_, err = NewExtractAnomaly(param(api.ExtractAnomaly{Contamination: 1.5}), metrics)
	require.Error(t, err)

	_, err = NewExtractAnomaly(param(api.ExtractAnomaly{Contamination: -0.1}), metrics)
	require.Error(t, err)
}
