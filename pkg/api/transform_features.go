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

// TransformFeatures describes configuration for the feature engineering stage.
type TransformFeatures struct {
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty" doc:"prefix added to the engineered feature fields"`
}

// TransformFilter describes configuration for the expression filter stage.
type TransformFilter struct {
	Query string `yaml:"query,omitempty" json:"query,omitempty" doc:"govaluate expression; entries evaluating to false are dropped"`
}
