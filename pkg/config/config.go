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

package config

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
)

// Options contains the raw configuration handed over from the command line:
// the pipeline and parameters sections as JSON strings, plus process-level settings.
type Options struct {
	PipeLine   string
	Parameters string
	Profile    Profile
}

type Profile struct {
	Port int
}

// ConfigFileStruct is the internal representation of the full configuration.
type ConfigFileStruct struct {
	LogLevel   string       `yaml:"log-level,omitempty" json:"log-level,omitempty"`
	Pipeline   []Stage      `yaml:"pipeline,omitempty" json:"pipeline,omitempty"`
	Parameters []StageParam `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

type Stage struct {
	Name    string `yaml:"name" json:"name"`
	Follows string `yaml:"follows,omitempty" json:"follows,omitempty"`
}

type StageParam struct {
	Name      string     `yaml:"name" json:"name"`
	Ingest    *Ingest    `yaml:"ingest,omitempty" json:"ingest,omitempty"`
	Transform *Transform `yaml:"transform,omitempty" json:"transform,omitempty"`
	Extract   *Extract   `yaml:"extract,omitempty" json:"extract,omitempty"`
	Write     *Write     `yaml:"write,omitempty" json:"write,omitempty"`
}

type Ingest struct {
	Type      string               `yaml:"type" json:"type"`
	CSV       *api.IngestCSV       `yaml:"csv,omitempty" json:"csv,omitempty"`
	Synthetic *api.IngestSynthetic `yaml:"synthetic,omitempty" json:"synthetic,omitempty"`
}

type Transform struct {
	Type     string                 `yaml:"type" json:"type"`
	Features *api.TransformFeatures `yaml:"features,omitempty" json:"features,omitempty"`
	Filter   *api.TransformFilter   `yaml:"filter,omitempty" json:"filter,omitempty"`
}

type Extract struct {
	Type    string              `yaml:"type" json:"type"`
	Anomaly *api.ExtractAnomaly `yaml:"anomaly,omitempty" json:"anomaly,omitempty"`
}

type Write struct {
	Type   string           `yaml:"type" json:"type"`
	Stdout *api.WriteStdout `yaml:"stdout,omitempty" json:"stdout,omitempty"`
	Kafka  *api.WriteKafka  `yaml:"kafka,omitempty" json:"kafka,omitempty"`
	S3     *api.WriteS3     `yaml:"s3,omitempty" json:"s3,omitempty"`
}

// ParseConfig creates the internal unmarshalled representation from the Pipeline and Parameters json
func ParseConfig(opts *Options) (ConfigFileStruct, error) {
	out := ConfigFileStruct{}
	var json = jsoniter.ConfigCompatibleWithStandardLibrary

	if err := json.Unmarshal([]byte(opts.PipeLine), &out.Pipeline); err != nil {
		return out, errors.Wrap(err, "error reading pipeline configuration")
	}
	if err := json.Unmarshal([]byte(opts.Parameters), &out.Parameters); err != nil {
		return out, errors.Wrap(err, "error reading parameters configuration")
	}
	return out, nil
}
