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

	"github.com/KrishJani/drive-health-pipeline/pkg/config"
)

// Transformer maps one entry to another; returning false drops the entry.
type Transformer interface {
	Transform(entry config.GenericMap) (config.GenericMap, bool)
}

// ExecuteTransform applies a transformer over a batch, keeping order.
func ExecuteTransform(t Transformer, entries []config.GenericMap) []config.GenericMap {
	out := make([]config.GenericMap, 0, len(entries))
	for _, entry := range entries {
		if transformed, ok := t.Transform(entry); ok {
			out = append(out, transformed)
		}
	}
	logrus.Debugf("ExecuteTransform: %d entries in, %d out", len(entries), len(out))
	return out
}
