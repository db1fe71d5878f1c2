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

type WriteS3 struct {
	Endpoint        string `yaml:"endpoint" json:"endpoint" doc:"address of the S3-compatible server"`
	Bucket          string `yaml:"bucket" json:"bucket" doc:"bucket receiving the result objects"`
	AccessKeyID     string `yaml:"accessKeyId,omitempty" json:"accessKeyId,omitempty" doc:"access key id"`
	SecretAccessKey string `yaml:"secretAccessKey,omitempty" json:"secretAccessKey,omitempty" doc:"secret access key"`
	ObjectPrefix    string `yaml:"objectPrefix,omitempty" json:"objectPrefix,omitempty" doc:"prefix of the uploaded object names"`
	Secure          bool   `yaml:"secure,omitempty" json:"secure,omitempty" doc:"true for https endpoints"`
}
