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
	"fmt"
	"io"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/detect"
	"github.com/KrishJani/drive-health-pipeline/pkg/pipeline/extract"
	"github.com/KrishJani/drive-health-pipeline/pkg/pipeline/utils"
)

var stdoutLog = logrus.WithField("component", "write.Stdout")

const defaultTopAnomalies = 10

type writeStdout struct {
	format string
	top    int
	out    io.Writer
}

// Write renders the annotated batch. In json format, one JSON document per
// entry. In text format, a run summary: anomaly counts, the most anomalous
// drives and the evaluation report.
func (w *writeStdout) Write(entries []config.GenericMap) error {
	stdoutLog.Debugf("writing %d entries as %s", len(entries), w.format)
	if w.format == "json" {
		return w.writeJSON(entries)
	}
	return w.writeText(entries)
}

func (w *writeStdout) writeJSON(entries []config.GenericMap) error {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	for _, entry := range entries {
		txt, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		fmt.Fprintln(w.out, string(txt))
	}
	return nil
}

func (w *writeStdout) writeText(entries []config.GenericMap) error {
	records, reportEntry := splitReport(entries)

	anomalies := 0
	failures := 0
	for _, entry := range records {
		if v, err := utils.ConvertToFloat64(entry[detect.FieldAnomaly]); err == nil && v == -1 {
			anomalies++
		}
		if utils.ConvertToBool(entry[detect.FieldFailure]) {
			failures++
		}
	}
	fmt.Fprintf(w.out, "Drive records analyzed: %d\n", len(records))
	fmt.Fprintf(w.out, "Anomalies detected:     %d\n", anomalies)
	fmt.Fprintf(w.out, "Actual failures:        %d\n", failures)

	w.writeTopAnomalies(records)
	if reportEntry != nil {
		w.writeReport(reportEntry)
	}
	return nil
}

func (w *writeStdout) writeTopAnomalies(records []config.GenericMap) {
	scored := make([]config.GenericMap, 0, len(records))
	for _, entry := range records {
		if _, ok := entry[detect.FieldAnomalyScore]; ok {
			scored = append(scored, entry)
		}
	}
	if len(scored) == 0 {
		return
	}
	// lowest score first: most anomalous on top
	sort.SliceStable(scored, func(i, j int) bool {
		a, _ := utils.ConvertToFloat64(scored[i][detect.FieldAnomalyScore])
		b, _ := utils.ConvertToFloat64(scored[j][detect.FieldAnomalyScore])
		return a < b
	})
	top := w.top
	if top > len(scored) {
		top = len(scored)
	}
	fmt.Fprintf(w.out, "\nTop %d most anomalous drives:\n", top)
	for _, entry := range scored[:top] {
		status := "Normal"
		if utils.ConvertToBool(entry[detect.FieldFailure]) {
			status = "FAILED"
		}
		score, _ := utils.ConvertToFloat64(entry[detect.FieldAnomalyScore])
		fmt.Fprintf(w.out, "Serial: %-20s | Status: %-6s | Score: %.4f\n",
			utils.ConvertToString(entry[detect.FieldSerialNumber]), status, score)
	}
}

func (w *writeStdout) writeReport(entry config.GenericMap) {
	report, ok := entry["report"].(*detect.EvaluationReport)
	if !ok {
		stdoutLog.Debugf("evaluation entry carries no report")
		return
	}
	threshold, _ := utils.ConvertToFloat64(entry["threshold"])

	fmt.Fprintf(w.out, "\nModel performance evaluation (threshold %.4f):\n", threshold)
	fmt.Fprintf(w.out, "%-12s %10s %10s %10s %10s\n", "", "precision", "recall", "f1-score", "support")
	fmt.Fprintf(w.out, "%-12s %10.2f %10.2f %10.2f %10d\n",
		"Normal (0)", report.Normal.Precision, report.Normal.Recall, report.Normal.F1, report.Normal.Support)
	fmt.Fprintf(w.out, "%-12s %10.2f %10.2f %10.2f %10d\n",
		"Failed (1)", report.Failed.Precision, report.Failed.Recall, report.Failed.F1, report.Failed.Support)
	fmt.Fprintf(w.out, "%-12s %10s %10s %10.2f %10d\n", "accuracy", "", "", report.Accuracy,
		report.Normal.Support+report.Failed.Support)
}

// splitReport separates regular record entries from the evaluation entry.
func splitReport(entries []config.GenericMap) ([]config.GenericMap, config.GenericMap) {
	records := make([]config.GenericMap, 0, len(entries))
	var reportEntry config.GenericMap
	for _, entry := range entries {
		if entry[extract.RecordTypeField] == extract.RecordTypeEvaluation {
			reportEntry = entry
			continue
		}
		records = append(records, entry)
	}
	return records, reportEntry
}

// NewWriteStdout creates a stdout writer.
func NewWriteStdout(params config.StageParam) (Writer, error) {
	stdoutConfig := api.WriteStdout{}
	if params.Write != nil && params.Write.Stdout != nil {
		stdoutConfig = *params.Write.Stdout
	}
	top := stdoutConfig.Top
	if top <= 0 {
		top = defaultTopAnomalies
	}
	return &writeStdout{
		format: stdoutConfig.Format,
		top:    top,
		out:    os.Stdout,
	}, nil
}
