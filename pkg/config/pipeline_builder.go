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
	"gopkg.in/yaml.v2"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
)

// pipeline is a helper to build a pipeline configuration programmatically,
// e.g. from command line shortcut flags.
type pipeline struct {
	stages []Stage
	config []StageParam
}

// PipelineBuilderStage holds the current stage of a pipeline under construction.
type PipelineBuilderStage struct {
	lastStage string
	pipeline  *pipeline
}

// NewCSVPipeline creates a new pipeline reading drive records from CSV files.
func NewCSVPipeline(name string, ingest api.IngestCSV) PipelineBuilderStage {
	p := pipeline{
		stages: []Stage{{Name: name}},
		config: []StageParam{{Name: name, Ingest: &Ingest{Type: api.CSVType, CSV: &ingest}}},
	}
	return PipelineBuilderStage{pipeline: &p, lastStage: name}
}

// NewSyntheticPipeline creates a new pipeline over generated drive records.
func NewSyntheticPipeline(name string, ingest api.IngestSynthetic) PipelineBuilderStage {
	p := pipeline{
		stages: []Stage{{Name: name}},
		config: []StageParam{{Name: name, Ingest: &Ingest{Type: api.SyntheticType, Synthetic: &ingest}}},
	}
	return PipelineBuilderStage{pipeline: &p, lastStage: name}
}

func (b *PipelineBuilderStage) next(name string, param StageParam) PipelineBuilderStage {
	b.pipeline.stages = append(b.pipeline.stages, Stage{Name: name, Follows: b.lastStage})
	b.pipeline.config = append(b.pipeline.config, param)
	return PipelineBuilderStage{pipeline: b.pipeline, lastStage: name}
}

// TransformFeatures chains a feature engineering stage.
func (b *PipelineBuilderStage) TransformFeatures(name string, features api.TransformFeatures) PipelineBuilderStage {
	return b.next(name, StageParam{Name: name, Transform: &Transform{Type: api.FeaturesType, Features: &features}})
}

// TransformFilter chains an expression filter stage.
func (b *PipelineBuilderStage) TransformFilter(name string, filter api.TransformFilter) PipelineBuilderStage {
	return b.next(name, StageParam{Name: name, Transform: &Transform{Type: api.FilterType, Filter: &filter}})
}

// ExtractAnomaly chains the anomaly detection stage.
func (b *PipelineBuilderStage) ExtractAnomaly(name string, anomaly api.ExtractAnomaly) PipelineBuilderStage {
	return b.next(name, StageParam{Name: name, Extract: &Extract{Type: api.AnomalyType, Anomaly: &anomaly}})
}

// WriteStdout chains a stdout writer stage.
func (b *PipelineBuilderStage) WriteStdout(name string, stdout api.WriteStdout) PipelineBuilderStage {
	return b.next(name, StageParam{Name: name, Write: &Write{Type: api.StdoutType, Stdout: &stdout}})
}

// WriteKafka chains a kafka writer stage.
func (b *PipelineBuilderStage) WriteKafka(name string, kafka api.WriteKafka) PipelineBuilderStage {
	return b.next(name, StageParam{Name: name, Write: &Write{Type: api.KafkaType, Kafka: &kafka}})
}

// WriteS3 chains an S3 writer stage.
func (b *PipelineBuilderStage) WriteS3(name string, s3 api.WriteS3) PipelineBuilderStage {
	return b.next(name, StageParam{Name: name, Write: &Write{Type: api.S3Type, S3: &s3}})
}

// GetStages returns the current pipeline stages.
func (b *PipelineBuilderStage) GetStages() []Stage {
	return b.pipeline.stages
}

// GetStageParams returns the current pipeline stage params.
func (b *PipelineBuilderStage) GetStageParams() []StageParam {
	return b.pipeline.config
}

// IntoConfigFileStruct sets the pipeline and params of the provided config.
func (b *PipelineBuilderStage) IntoConfigFileStruct(cfs *ConfigFileStruct) *ConfigFileStruct {
	cfs.Pipeline = b.GetStages()
	cfs.Parameters = b.GetStageParams()
	return cfs
}

// ToConfigFileStruct returns the ConfigFileStruct from the builder.
func (b *PipelineBuilderStage) ToConfigFileStruct() *ConfigFileStruct {
	return b.IntoConfigFileStruct(&ConfigFileStruct{})
}

// IntoOptions marshals the built pipeline back into the json-string options form.
func (b *PipelineBuilderStage) IntoOptions(opts *Options) error {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	pipelineBytes, err := json.Marshal(b.GetStages())
	if err != nil {
		return err
	}
	paramsBytes, err := json.Marshal(b.GetStageParams())
	if err != nil {
		return err
	}
	opts.PipeLine = string(pipelineBytes)
	opts.Parameters = string(paramsBytes)
	return nil
}

// IntoYAML returns the yaml rendering of the built pipeline, convenient for
// dumping a generated configuration to a reusable file.
func (b *PipelineBuilderStage) IntoYAML() (string, error) {
	yamlBytes, err := yaml.Marshal(b.ToConfigFileStruct())
	if err != nil {
		return "", err
	}
	return string(yamlBytes), nil
}
