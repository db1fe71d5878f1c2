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

// IngestCSV reads daily Backblaze-style telemetry dumps: every *.csv file
// under Directory, keeping only the SMART columns relevant to failure prediction.
type IngestCSV struct {
	Directory   string `yaml:"directory,omitempty" json:"directory,omitempty" doc:"directory containing the per-day telemetry CSV files"`
	FilePattern string `yaml:"filePattern,omitempty" json:"filePattern,omitempty" doc:"glob pattern of files to read inside the directory (default *.csv)"`
}

type IngestSynthetic struct {
	Records     int     `yaml:"records,omitempty" json:"records,omitempty" doc:"number of synthetic drive records to generate"`
	FailureRate float64 `yaml:"failureRate,omitempty" json:"failureRate,omitempty" doc:"fraction of generated records marked as failed drives"`
	Seed        int64   `yaml:"seed,omitempty" json:"seed,omitempty" doc:"random seed of the generator; same seed yields the same records"`
}
