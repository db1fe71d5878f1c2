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

package test

import (
	"bytes"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/KrishJani/drive-health-pipeline/pkg/config"
)

// InitConfig parses a yaml configuration string the way the command line
// does: yaml -> json option strings -> internal config structs.
func InitConfig(t *testing.T, conf string) (*viper.Viper, *config.ConfigFileStruct) {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary

	v := viper.New()
	v.SetConfigType("yaml")
	err := v.ReadConfig(bytes.NewReader([]byte(conf)))
	require.NoError(t, err)

	var opts config.Options
	pipelineStr := v.Get("pipeline")
	b, err := json.Marshal(&pipelineStr)
	require.NoError(t, err)
	opts.PipeLine = string(b)

	parametersStr := v.Get("parameters")
	b, err = json.Marshal(&parametersStr)
	require.NoError(t, err)
	opts.Parameters = string(b)

	cfg, err := config.ParseConfig(&opts)
	require.NoError(t, err)
	return v, &cfg
}

// GetIngestMockEntry returns one plausible drive record entry.
func GetIngestMockEntry(serial string, failed bool) config.GenericMap {
	failure := float64(0)
	if failed {
		failure = 1
	}
	return config.GenericMap{
		"serial_number":         serial,
		"failure":               failure,
		"reallocated_sectors":   float64(0),
		"power_on_hours":        float64(12000),
		"uncorrectable_errors":  float64(0),
		"temperature":           float64(31),
		"pending_sectors":       float64(0),
		"offline_uncorrectable": float64(0),
	}
}
