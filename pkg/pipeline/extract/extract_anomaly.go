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
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/detect"
	"github.com/KrishJani/drive-health-pipeline/pkg/operational"
)

var anomalyLog = logrus.WithField("component", "extract.Anomaly")

const defaultContamination = 0.01

// RecordTypeField marks non-record entries emitted by this stage.
const (
	RecordTypeField      = "record_type"
	RecordTypeEvaluation = "evaluation_report"
)

var anomalyRecordsScored = operational.DefineMetric(
	"extract_anomaly_records_scored",
	"Number of drive records scored by the isolation forest",
	operational.TypeCounter,
)

// Anomaly is the batch anomaly detection stage: it standardizes the feature
// matrix, fits an isolation forest, calibrates the score threshold against
// the contamination rate and evaluates the labeling against ground truth.
type Anomaly struct {
	params        api.ExtractAnomaly
	report        *detect.EvaluationReport
	calibration   *detect.CalibrationResult
	recordsScored prometheus.Counter
}

// Extract annotates every entry with its anomaly score and labels, and
// appends one evaluation report entry at the end of the batch.
// Input entries are not mutated.
func (a *Anomaly) Extract(entries []config.GenericMap) ([]config.GenericMap, error) {
	records := detect.RecordsFromGenericMaps(entries)
	features, err := detect.BuildFeatures(records)
	if err != nil {
		return nil, err
	}
	stats, err := detect.FitStandardizer(features)
	if err != nil {
		return nil, err
	}
	standardized := stats.Transform(features)

	forest, err := detect.FitForest(standardized, detect.ForestParams{
		Trees:      a.params.Trees,
		SampleSize: a.params.SampleSize,
		Seed:       a.params.Seed,
	})
	if err != nil {
		return nil, err
	}
	scores := forest.ScoreAll(standardized)
	a.recordsScored.Add(float64(len(scores)))

	failed := make([]bool, len(records))
	failures := 0
	for i := range records {
		failed[i] = records[i].Failed
		if failed[i] {
			failures++
		}
	}
	anomalyLog.Infof("scored %d records with %d trees (sample size %d), %d known failures",
		len(scores), forest.NumTrees(), forest.SampleSize(), failures)

	calibration, err := detect.Calibrate(scores, failed, a.params.Contamination)
	if err != nil {
		return nil, err
	}
	report, err := detect.Evaluate(calibration.Anomalous, failed)
	if err != nil {
		return nil, err
	}
	a.calibration = calibration
	a.report = report

	out := make([]config.GenericMap, 0, len(entries)+1)
	for i, entry := range entries {
		annotated := entry.Copy()
		annotated[detect.FieldAnomalyScore] = scores[i]
		if calibration.Anomalous[i] {
			annotated[detect.FieldAnomaly] = -1
			annotated[detect.FieldPredictedFailure] = 1
		} else {
			annotated[detect.FieldAnomaly] = 1
			annotated[detect.FieldPredictedFailure] = 0
		}
		out = append(out, annotated)
	}
	out = append(out, config.GenericMap{
		RecordTypeField: RecordTypeEvaluation,
		"report":        report,
		"threshold":     calibration.Threshold,
		"percentile":    calibration.Percentile,
		"fallback":      calibration.Fallback,
	})
	return out, nil
}

// Report returns the evaluation of the last Extract call, or nil before it.
func (a *Anomaly) Report() *detect.EvaluationReport {
	return a.report
}

// Calibration returns the operating point of the last Extract call, or nil before it.
func (a *Anomaly) Calibration() *detect.CalibrationResult {
	return a.calibration
}

// NewExtractAnomaly creates the anomaly detection stage. Parameters are
// validated here, before any data is read.
func NewExtractAnomaly(params config.StageParam, opMetrics *operational.Metrics) (Extractor, error) {
	anomalyConfig := api.ExtractAnomaly{}
	if params.Extract != nil && params.Extract.Anomaly != nil {
		anomalyConfig = *params.Extract.Anomaly
	}
	if anomalyConfig.Trees == 0 {
		anomalyConfig.Trees = detect.DefaultTrees
	}
	if anomalyConfig.Trees < 1 {
		return nil, errors.Errorf("trees must be at least 1, got %d", anomalyConfig.Trees)
	}
	if anomalyConfig.SampleSize < 0 || anomalyConfig.SampleSize == 1 {
		return nil, errors.Errorf("sampleSize must be 0 (auto) or at least 2, got %d", anomalyConfig.SampleSize)
	}
	if anomalyConfig.Contamination == 0 {
		anomalyConfig.Contamination = defaultContamination
	}
	if anomalyConfig.Contamination <= 0 || anomalyConfig.Contamination >= 1 {
		return nil, errors.Errorf("contamination must be in (0, 1), got %v", anomalyConfig.Contamination)
	}
	anomalyLog.Infof("NewExtractAnomaly trees=%d sampleSize=%d contamination=%v seed=%d",
		anomalyConfig.Trees, anomalyConfig.SampleSize, anomalyConfig.Contamination, anomalyConfig.Seed)

	return &Anomaly{
		params:        anomalyConfig,
		recordsScored: opMetrics.NewCounter(&anomalyRecordsScored),
	}, nil
}
