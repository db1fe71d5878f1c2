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

package pipeline

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/detect"
	"github.com/KrishJani/drive-health-pipeline/pkg/operational"
	"github.com/KrishJani/drive-health-pipeline/pkg/pipeline/extract"
	"github.com/KrishJani/drive-health-pipeline/pkg/pipeline/ingest"
	"github.com/KrishJani/drive-health-pipeline/pkg/pipeline/transform"
	"github.com/KrishJani/drive-health-pipeline/pkg/pipeline/write"
)

// stage kinds
const (
	StageIngest    = "ingest"
	StageTransform = "transform"
	StageExtract   = "extract"
	StageWrite     = "write"
)

// Pipeline runs one batch pass: a single ingester feeding a directed graph of
// transform, extract and write stages.
type Pipeline struct {
	firstStage *pipelineEntry
	entryMap   map[string]*pipelineEntry
	anomaly    *extract.Anomaly
	clock      clock.Clock
}

type pipelineEntry struct {
	stage       config.Stage
	stageType   string
	ingester    ingest.Ingester
	transformer transform.Transformer
	extractor   extract.Extractor
	writer      write.Writer
	nextStages  []*pipelineEntry
}

// NewPipeline builds the stage graph from the parsed configuration.
func NewPipeline(cfg *config.ConfigFileStruct, opMetrics *operational.Metrics) (*Pipeline, error) {
	log.Debugf("entering NewPipeline, %d stages", len(cfg.Pipeline))
	if opMetrics == nil {
		opMetrics = operational.NewMetrics(nil)
	}
	p := &Pipeline{
		entryMap: map[string]*pipelineEntry{},
		clock:    clock.New(),
	}

	for _, stage := range cfg.Pipeline {
		params := findStageParameters(stage.Name, cfg.Parameters)
		if params == nil {
			return nil, errors.Errorf("parameters not defined for stage %s", stage.Name)
		}
		entry := &pipelineEntry{stage: stage}
		var err error
		switch {
		case params.Ingest != nil:
			entry.stageType = StageIngest
			entry.ingester, err = getIngester(*params, opMetrics)
		case params.Transform != nil:
			entry.stageType = StageTransform
			entry.transformer, err = getTransformer(*params)
		case params.Extract != nil:
			entry.stageType = StageExtract
			entry.extractor, err = getExtractor(*params, opMetrics)
			if anomaly, ok := entry.extractor.(*extract.Anomaly); ok {
				p.anomaly = anomaly
			}
		case params.Write != nil:
			entry.stageType = StageWrite
			entry.writer, err = getWriter(*params)
		default:
			err = errors.Errorf("stage %s defines no operation", stage.Name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "creating stage %s", stage.Name)
		}
		p.entryMap[stage.Name] = entry
	}

	if err := p.connectStages(cfg.Pipeline); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pipeline) connectStages(stages []config.Stage) error {
	for _, stage := range stages {
		entry := p.entryMap[stage.Name]
		if entry.stageType == StageIngest {
			if p.firstStage != nil {
				return errors.New("only a single ingest stage is allowed")
			}
			if stage.Follows != "" {
				return errors.Errorf("ingest stage %s cannot follow another stage", stage.Name)
			}
			p.firstStage = entry
			continue
		}
		follows, ok := p.entryMap[stage.Follows]
		if !ok {
			return errors.Errorf("follows stage %s is not defined for %s", stage.Follows, stage.Name)
		}
		follows.nextStages = append(follows.nextStages, entry)
	}
	if p.firstStage == nil {
		return errors.New("no ingest stage found")
	}
	return nil
}

// Run executes one batch pass over the pipeline.
func (p *Pipeline) Run() error {
	start := p.clock.Now()
	entries, err := p.firstStage.ingester.Ingest()
	if err != nil {
		return errors.Wrapf(err, "ingest stage %s", p.firstStage.stage.Name)
	}
	for _, next := range p.firstStage.nextStages {
		if err := p.processStage(next, entries); err != nil {
			return err
		}
	}
	log.Infof("pipeline completed: %d records in %s", len(entries), p.clock.Since(start))
	return nil
}

func (p *Pipeline) processStage(entry *pipelineEntry, entries []config.GenericMap) error {
	log.Debugf("entering processStage, stage = %s, type = %s", entry.stage.Name, entry.stageType)
	var out []config.GenericMap
	var err error
	switch entry.stageType {
	case StageTransform:
		out = transform.ExecuteTransform(entry.transformer, entries)
	case StageExtract:
		out, err = entry.extractor.Extract(entries)
	case StageWrite:
		err = entry.writer.Write(entries)
		out = entries
	default:
		err = errors.Errorf("stage %s has unexpected type %s", entry.stage.Name, entry.stageType)
	}
	if err != nil {
		return errors.Wrapf(err, "stage %s", entry.stage.Name)
	}

	if len(entry.nextStages) == 1 {
		return p.processStage(entry.nextStages[0], out)
	}
	for _, next := range entry.nextStages {
		// separate copy of the batch for each branch
		entriesCopy := make([]config.GenericMap, len(out))
		copy(entriesCopy, out)
		if err := p.processStage(next, entriesCopy); err != nil {
			return err
		}
	}
	return nil
}

// Report returns the evaluation produced by the anomaly stage of the last
// run, or nil when the pipeline has no anomaly stage or has not run.
func (p *Pipeline) Report() *detect.EvaluationReport {
	if p.anomaly == nil {
		return nil
	}
	return p.anomaly.Report()
}

func findStageParameters(name string, params []config.StageParam) *config.StageParam {
	for i := range params {
		if params[i].Name == name {
			return &params[i]
		}
	}
	return nil
}

func getIngester(params config.StageParam, opMetrics *operational.Metrics) (ingest.Ingester, error) {
	switch params.Ingest.Type {
	case api.CSVType:
		return ingest.NewIngestCSV(params, opMetrics)
	case api.SyntheticType:
		return ingest.NewIngestSynthetic(params)
	default:
		return nil, fmt.Errorf("`ingest` type %s not defined", params.Ingest.Type)
	}
}

func getTransformer(params config.StageParam) (transform.Transformer, error) {
	switch params.Transform.Type {
	case api.FeaturesType:
		return transform.NewTransformFeatures(params)
	case api.FilterType:
		return transform.NewTransformFilter(params)
	default:
		return nil, fmt.Errorf("`transform` type %s not defined", params.Transform.Type)
	}
}

func getExtractor(params config.StageParam, opMetrics *operational.Metrics) (extract.Extractor, error) {
	switch params.Extract.Type {
	case api.AnomalyType:
		return extract.NewExtractAnomaly(params, opMetrics)
	default:
		return nil, fmt.Errorf("`extract` type %s not defined", params.Extract.Type)
	}
}

func getWriter(params config.StageParam) (write.Writer, error) {
	switch params.Write.Type {
	case api.StdoutType:
		return write.NewWriteStdout(params)
	case api.KafkaType:
		return write.NewWriteKafka(params)
	case api.S3Type:
		return write.NewWriteS3(params)
	default:
		return nil, fmt.Errorf("`write` type %s not defined", params.Write.Type)
	}
}
