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

package operational

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type MetricType string

const (
	TypeCounter MetricType = "counter"
	TypeGauge   MetricType = "gauge"
)

const metricPrefix = "drivehealth_"

// MetricDefinition describes one operational metric of the pipeline itself.
type MetricDefinition struct {
	Name   string
	Help   string
	Type   MetricType
	Labels []string
}

var allMetrics = []MetricDefinition{}

// DefineMetric registers a metric definition at package init time.
func DefineMetric(name, help string, t MetricType, labels ...string) MetricDefinition {
	def := MetricDefinition{
		Name:   name,
		Help:   help,
		Type:   t,
		Labels: labels,
	}
	allMetrics = append(allMetrics, def)
	return def
}

// GetDocumentation lists all defined operational metrics, for doc generation.
func GetDocumentation() []MetricDefinition {
	return allMetrics
}

// Metrics instantiates operational metrics against a registry. A nil registry
// creates a private one, which keeps repeated instantiations (tests) from
// colliding on duplicate registration.
type Metrics struct {
	registry prometheus.Registerer
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return &Metrics{registry: registry}
}

func (o *Metrics) register(c prometheus.Collector, name string) {
	if err := o.registry.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			logrus.Errorf("metrics registration error [%s]: %v", name, err)
		}
	}
}

func (o *Metrics) NewCounter(def *MetricDefinition, labels ...string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        metricPrefix + def.Name,
		Help:        def.Help,
		ConstLabels: constLabels(def, labels),
	})
	o.register(c, def.Name)
	return c
}

func (o *Metrics) NewCounterVec(def *MetricDefinition) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricPrefix + def.Name,
		Help: def.Help,
	}, def.Labels)
	o.register(c, def.Name)
	return c
}

func (o *Metrics) NewGauge(def *MetricDefinition, labels ...string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        metricPrefix + def.Name,
		Help:        def.Help,
		ConstLabels: constLabels(def, labels),
	})
	o.register(g, def.Name)
	return g
}

func constLabels(def *MetricDefinition, values []string) prometheus.Labels {
	if len(def.Labels) == 0 || len(values) == 0 {
		return nil
	}
	labels := prometheus.Labels{}
	for i, label := range def.Labels {
		if i < len(values) {
			labels[label] = values[i]
		}
	}
	return labels
}
