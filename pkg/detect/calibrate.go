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
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var calibrateLog = logrus.WithField("component", "detect.Calibrator")

// CalibrationResult holds the operating point picked for a contamination rate
// and the resulting per-record labels.
type CalibrationResult struct {
	// Threshold is the score cutoff: records scoring at or below it are anomalous.
	Threshold float64
	// Percentile of the failed-drive score distribution the threshold was taken at.
	// Zero when the unsupervised fallback was used.
	Percentile float64
	// Fallback is true when ground truth had no positive labels and the
	// lowest-scoring contamination fraction was flagged instead.
	Fallback bool
	// Anomalous holds one label per input record, in input order.
	Anomalous []bool
}

// Calibrate converts a contamination rate into a score cutoff and labels
// every record. The cutoff is a fixed percentile of the score distribution
// among records with a positive ground-truth label: lower contamination picks
// a higher percentile, i.e. a stricter operating point.
//
// This calibration reads ground-truth labels. It is meant for offline
// evaluation and tuning only; without labels it degrades to plain
// lowest-fraction thresholding.
func Calibrate(scores []float64, failed []bool, contamination float64) (*CalibrationResult, error) {
	if len(scores) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "threshold calibration")
	}
	if len(scores) != len(failed) {
		return nil, invalidParam("threshold calibration", "labels", len(failed), "label count differs from score count")
	}
	if contamination <= 0 || contamination >= 1 {
		return nil, invalidParam("threshold calibration", "contamination", contamination, "must be in (0, 1)")
	}

	failedScores := make([]float64, 0)
	for i, s := range scores {
		if failed[i] {
			failedScores = append(failedScores, s)
		}
	}

	result := &CalibrationResult{Anomalous: make([]bool, len(scores))}
	if len(failedScores) == 0 {
		// no ground truth to calibrate against: flag the lowest-scoring
		// contamination fraction of the whole population
		result.Fallback = true
		result.Threshold = fallbackThreshold(scores, contamination)
		calibrateLog.Infof("no failed drives in ground truth, falling back to unsupervised threshold %.4f", result.Threshold)
	} else {
		result.Percentile = percentileFor(contamination)
		sort.Float64s(failedScores)
		result.Threshold = quantile(failedScores, result.Percentile)
		calibrateLog.Infof("contamination %.4f -> %.0fth percentile of %d failed drives, threshold %.4f",
			contamination, result.Percentile*100, len(failedScores), result.Threshold)
	}

	for i, s := range scores {
		result.Anomalous[i] = s <= result.Threshold
	}
	return result, nil
}

// percentileFor maps a contamination rate to the percentile of the
// failed-drive score distribution used as cutoff. The breakpoints are a
// hand-tuned lookup with no interpolation; lower contamination means a more
// selective threshold.
func percentileFor(contamination float64) float64 {
	switch {
	case contamination <= 0.001:
		return 0.9
	case contamination <= 0.005:
		return 0.7
	case contamination <= 0.01:
		return 0.5
	case contamination <= 0.02:
		return 0.3
	default:
		return 0.1
	}
}

// quantile returns the q-quantile of sorted values using linear interpolation
// between order statistics.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// fallbackThreshold returns the score of the k-th lowest record, where k is
// the contamination fraction of the population rounded up.
func fallbackThreshold(scores []float64, contamination float64) float64 {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	k := int(math.Ceil(contamination * float64(len(sorted))))
	if k < 1 {
		k = 1
	}
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[k-1]
}
