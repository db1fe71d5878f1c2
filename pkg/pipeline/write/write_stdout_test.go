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

package write

import (
	"bytes"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/detect"
	"github.com/KrishJani/drive-health-pipeline/pkg/pipeline/extract"
)

func annotatedEntry(serial string, score float64, anomalous, failed bool) config.GenericMap {
	anomaly := 1
	predicted := 0
	if anomalous {
		anomaly = -1
		predicted = 1
	}
	failure := float64(0)
	if failed {
		failure = 1
	}
	return config.GenericMap{
		detect.FieldSerialNumber:     serial,
		detect.FieldFailure:          failure,
		detect.FieldAnomalyScore:     score,
		detect.FieldAnomaly:          anomaly,
		detect.FieldPredictedFailure: predicted,
	}
}

func reportTestEntry() config.GenericMap {
	return config.GenericMap{
		extract.RecordTypeField: extract.RecordTypeEvaluation,
		"report": &detect.EvaluationReport{
			TruePositives: 1,
			Normal:        detect.ClassMetrics{Precision: 1, Recall: 0.5, F1: 2.0 / 3.0, Support: 2},
			Failed:        detect.ClassMetrics{Precision: 0.5, Recall: 1, F1: 2.0 / 3.0, Support: 1},
			Accuracy:      2.0 / 3.0,
		},
		"threshold":  -0.05,
		"percentile": 0.5,
		"fallback":   false,
	}
}

func TestWriteStdout_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := &writeStdout{format: "text", top: 2, out: buf}

	err := writer.Write([]config.GenericMap{
		annotatedEntry("OK-1", 0.12, false, false),
		annotatedEntry("BAD-1", -0.21, true, true),
		annotatedEntry("OK-2", 0.08, false, false),
		annotatedEntry("SUS-1", -0.10, true, false),
		reportTestEntry(),
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Drive records analyzed: 4")
	require.Contains(t, out, "Anomalies detected:     2")
	require.Contains(t, out, "Actual failures:        1")

	// most anomalous first, trimmed to top 2
	require.Contains(t, out, "Top 2 most anomalous drives:")
	badIdx := strings.Index(out, "BAD-1")
	susIdx := strings.Index(out, "SUS-1")
	require.Greater(t, badIdx, -1)
	require.Greater(t, susIdx, badIdx)
	require.NotContains(t, out, "Serial: OK-1")

	require.Contains(t, out, "FAILED")
	require.Contains(t, out, "Model performance evaluation (threshold -0.0500)")
	require.Contains(t, out, "Normal (0)")
	require.Contains(t, out, "Failed (1)")
	require.Contains(t, out, "accuracy")
}

func TestWriteStdout_TextWithoutReport(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := &writeStdout{format: "text", top: 5, out: buf}

	err := writer.Write([]config.GenericMap{annotatedEntry("OK-1", 0.2, false, false)})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Drive records analyzed: 1")
	require.NotContains(t, buf.String(), "Model performance evaluation")
}

func TestWriteStdout_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := &writeStdout{format: "json", out: buf}

	err := writer.Write([]config.GenericMap{
		annotatedEntry("OK-1", 0.12, false, false),
		annotatedEntry("BAD-1", -0.21, true, true),
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &decoded))
	require.Equal(t, "BAD-1", decoded[detect.FieldSerialNumber])
	require.Equal(t, -0.21, decoded[detect.FieldAnomalyScore])
	require.Equal(t, float64(-1), decoded[detect.FieldAnomaly])
}

func TestNewWriteStdout_Defaults(t *testing.T) {
	writer, err := NewWriteStdout(config.StageParam{})
	require.NoError(t, err)
	stdout, ok := writer.(*writeStdout)
	require.True(t, ok)
	require.Equal(t, defaultTopAnomalies, stdout.top)
}
