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

package extract

import "github.com/KrishJani/drive-health-pipeline/pkg/config"

// Extractor consumes a whole batch and produces a derived batch. Unlike a
// Transformer it sees all entries at once, which batch statistics need.
type Extractor interface {
	Extract(entries []config.GenericMap) ([]config.GenericMap, error)
}
