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

const TagYaml = "yaml"
const TagDoc = "doc"
const TagEnum = "enum"

// Stage type names as they appear in the pipeline configuration.
const (
	CSVType       = "csv"
	SyntheticType = "synthetic"
	FeaturesType  = "drive_features"
	FilterType    = "filter"
	AnomalyType   = "anomaly"
	StdoutType    = "stdout"
	KafkaType     = "kafka"
	S3Type        = "s3"
)

// Note: items beginning with doc: "## title" are top level items that get divided into sections inside api.md.

type API struct {
	IngestCSV         IngestCSV         `yaml:"csv" doc:"## CSV ingest API\nFollowing is the supported API format for the CSV directory ingest:\n"`
	IngestSynthetic   IngestSynthetic   `yaml:"synthetic" doc:"## Synthetic ingest API\nFollowing is the supported API format for the synthetic record generator:\n"`
	TransformFeatures TransformFeatures `yaml:"drive_features" doc:"## Drive features transform API\nFollowing is the supported API format for the feature engineering transform:\n"`
	TransformFilter   TransformFilter   `yaml:"filter" doc:"## Filter transform API\nFollowing is the supported API format for the expression filter transform:\n"`
	ExtractAnomaly    ExtractAnomaly    `yaml:"anomaly" doc:"## Anomaly extract API\nFollowing is the supported API format for the isolation forest anomaly extract:\n"`
	WriteStdout       WriteStdout       `yaml:"stdout" doc:"## Stdout write API\nFollowing is the supported API format for the stdout writer:\n"`
	WriteKafka        WriteKafka        `yaml:"kafka" doc:"## Kafka write API\nFollowing is the supported API format for the kafka writer:\n"`
	WriteS3           WriteS3           `yaml:"s3" doc:"## S3 write API\nFollowing is the supported API format for the S3 writer:\n"`
}
