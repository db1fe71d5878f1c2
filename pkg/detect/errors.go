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

package detect

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a stage receives zero records. Statistics
// over an empty population are undefined, so the whole call fails.
var ErrEmptyInput = errors.New("no input records")

// InvalidParameterError reports a parameter rejected before any computation.
type InvalidParameterError struct {
	Stage  string
	Param  string
	Value  interface{}
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid parameter %s=%v: %s", e.Stage, e.Param, e.Value, e.Reason)
}

func invalidParam(stage, param string, value interface{}, reason string) error {
	return &InvalidParameterError{Stage: stage, Param: param, Value: value, Reason: reason}
}
