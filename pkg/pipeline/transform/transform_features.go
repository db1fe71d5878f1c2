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

package transform

import (
	"github.com/sirupsen/logrus"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/detect"
)

var featuresLog = logrus.WithField("component", "transform.Features")

// Features annotates each record with the engineered feature fields
// (total_errors, error_rate, high_temp, age_factor and the three
// presence indicators) derived from its raw SMART counters.
type Features struct {
	prefix string
}

// Transform appends the engineered features to a copy of the entry.
func (f *Features) Transform(entry config.GenericMap) (config.GenericMap, bool) {
	record := detect.RecordFromGenericMap(entry)
	out := entry.Copy()
	for name, value := range detect.EngineeredFeatures(record) {
		out[f.prefix+name] = value
	}
	return out, true
}

// NewTransformFeatures creates a feature engineering transformer.
func NewTransformFeatures(params config.StageParam) (Transformer, error) {
	featuresConfig := api.TransformFeatures{}
	if params.Transform != nil && params.Transform.Features != nil {
		featuresConfig = *params.Transform.Features
	}
	featuresLog.Debugf("prefix = %q", featuresConfig.Prefix)
	return &Features{prefix: featuresConfig.Prefix}, nil
}
