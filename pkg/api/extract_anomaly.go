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

package api

// ExtractAnomaly describes configuration for the isolation forest anomaly stage.
type ExtractAnomaly struct {
	Trees         int     `yaml:"trees,omitempty" json:"trees,omitempty" doc:"number of isolation trees in the ensemble (default 200)"`
	SampleSize    int     `yaml:"sampleSize,omitempty" json:"sampleSize,omitempty" doc:"subsample size per tree; 0 means min(256, record count)"`
	Contamination float64 `yaml:"contamination,omitempty" json:"contamination,omitempty" doc:"expected fraction of anomalous records, in (0,1); drives threshold calibration"`
	Seed          int64   `yaml:"seed,omitempty" json:"seed,omitempty" doc:"random seed; same seed and input build an identical forest"`
}
