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

package ingest

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/detect"
)

var synthLog = logrus.WithField("component", "ingest.Synthetic")

const (
	defaultSyntheticRecords     = 1000
	defaultSyntheticFailureRate = 0.01
)

type ingestSynthetic struct {
	params api.IngestSynthetic
}

// Ingest generates a deterministic population of drive records: a healthy
// majority with near-zero error counters, and a failed tail with elevated
// reallocated/pending/uncorrectable counts. Useful for demos and pipeline
// tests without a telemetry dataset.
func (s *ingestSynthetic) Ingest() ([]config.GenericMap, error) {
	rng := rand.New(rand.NewSource(s.params.Seed))
	entries := make([]config.GenericMap, 0, s.params.Records)
	failures := int(math.Round(s.params.FailureRate * float64(s.params.Records)))

	for i := 0; i < s.params.Records; i++ {
		failed := i < failures
		entries = append(entries, syntheticRecord(rng, i, failed))
	}
	// spread the failed drives through the batch deterministically
	rng.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})

	synthLog.Infof("generated %d drive records (%d failed)", len(entries), failures)
	return entries, nil
}

func syntheticRecord(rng *rand.Rand, index int, failed bool) config.GenericMap {
	powerOnHours := rng.Float64() * 45000
	temperature := 28 + rng.NormFloat64()*4

	var reallocated, pending, uncorrectable, offline float64
	var failure float64
	if failed {
		failure = 1
		reallocated = float64(5 + rng.Intn(2000))
		pending = float64(rng.Intn(500))
		uncorrectable = float64(rng.Intn(100))
		offline = float64(rng.Intn(50))
		temperature += 10 + rng.Float64()*15
	} else if rng.Float64() < 0.05 {
		// a few healthy drives carry a couple of reallocated sectors
		reallocated = float64(rng.Intn(4))
	}

	return config.GenericMap{
		detect.FieldSerialNumber:         fmt.Sprintf("SYN-%06d", index),
		detect.FieldFailure:              failure,
		detect.FieldReallocatedSectors:   reallocated,
		detect.FieldPowerOnHours:         math.Round(powerOnHours),
		detect.FieldUncorrectableErrors:  uncorrectable,
		detect.FieldTemperature:          math.Round(temperature),
		detect.FieldPendingSectors:       pending,
		detect.FieldOfflineUncorrectable: offline,
	}
}

// NewIngestSynthetic creates a generator of synthetic drive records.
func NewIngestSynthetic(params config.StageParam) (Ingester, error) {
	synthConfig := api.IngestSynthetic{}
	if params.Ingest != nil && params.Ingest.Synthetic != nil {
		synthConfig = *params.Ingest.Synthetic
	}
	if synthConfig.Records == 0 {
		synthConfig.Records = defaultSyntheticRecords
	}
	if synthConfig.FailureRate == 0 {
		synthConfig.FailureRate = defaultSyntheticFailureRate
	}
	synthLog.Debugf("params = %v", synthConfig)

	return &ingestSynthetic{params: synthConfig}, nil
}
