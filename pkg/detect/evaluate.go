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

// ClassMetrics holds per-class classification quality. Ratios with a zero
// denominator report as zero rather than failing.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// EvaluationReport compares predicted failures against ground truth.
// The positive class is "failed".
type EvaluationReport struct {
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`

	Normal   ClassMetrics `json:"normal"`
	Failed   ClassMetrics `json:"failed"`
	Accuracy float64      `json:"accuracy"`
}

// Evaluate computes the confusion matrix of predicted against true failure
// labels, plus precision, recall and F1 for both classes.
func Evaluate(predicted, truth []bool) (*EvaluationReport, error) {
	if len(predicted) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "evaluation")
	}
	if len(predicted) != len(truth) {
		return nil, invalidParam("evaluation", "predicted", len(predicted), "prediction count differs from label count")
	}

	r := &EvaluationReport{}
	for i := range predicted {
		switch {
		case predicted[i] && truth[i]:
			r.TruePositives++
		case predicted[i] && !truth[i]:
			r.FalsePositives++
		case !predicted[i] && truth[i]:
			r.FalseNegatives++
		default:
			r.TrueNegatives++
		}
	}

	r.Failed = classMetrics(r.TruePositives, r.FalsePositives, r.FalseNegatives)
	// the normal class mirrors the matrix: its true positives are the true negatives
	r.Normal = classMetrics(r.TrueNegatives, r.FalseNegatives, r.FalsePositives)
	r.Accuracy = ratio(r.TruePositives+r.TrueNegatives, len(predicted))
	return r, nil
}

func classMetrics(tp, fp, fn int) ClassMetrics {
	m := ClassMetrics{
		Precision: ratio(tp, tp+fp),
		Recall:    ratio(tp, tp+fn),
		Support:   tp + fn,
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
