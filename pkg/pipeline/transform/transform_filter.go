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
	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
)

var filterLog = logrus.WithField("component", "transform.Filter")

// Filter drops entries whose fields do not satisfy the configured expression,
// e.g. `power_on_hours >= 0 && serial_number != ''`.
type Filter struct {
	query      string
	expression *govaluate.EvaluableExpression
}

// Transform keeps the entry when the expression evaluates to true.
// Entries the expression cannot be evaluated against are dropped.
func (f *Filter) Transform(entry config.GenericMap) (config.GenericMap, bool) {
	result, err := f.expression.Evaluate(map[string]interface{}(entry))
	if err != nil {
		filterLog.Debugf("dropping entry, cannot evaluate %q: %v", f.query, err)
		return entry, false
	}
	keep, ok := result.(bool)
	if !ok {
		filterLog.Debugf("dropping entry, expression %q is not boolean", f.query)
		return entry, false
	}
	return entry, keep
}

// NewTransformFilter creates an expression filter transformer.
func NewTransformFilter(params config.StageParam) (Transformer, error) {
	filterConfig := api.TransformFilter{}
	if params.Transform != nil && params.Transform.Filter != nil {
		filterConfig = *params.Transform.Filter
	}
	if filterConfig.Query == "" {
		return nil, errors.New("filter query must be provided")
	}
	expression, err := govaluate.NewEvaluableExpression(filterConfig.Query)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing filter query %q", filterConfig.Query)
	}
	filterLog.Infof("NewTransformFilter query=%q", filterConfig.Query)
	return &Filter{query: filterConfig.Query, expression: expression}, nil
}
