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

package utils

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

var floatType = reflect.TypeOf(float64(0))
var stringType = reflect.TypeOf("")

// ConvertToFloat64 converts an unknown type to float64.
func ConvertToFloat64(unk interface{}) (float64, error) {
	switch i := unk.(type) {
	case float64:
		return i, nil
	case float32:
		return float64(i), nil
	case int64:
		return float64(i), nil
	case int32:
		return float64(i), nil
	case int16:
		return float64(i), nil
	case int8:
		return float64(i), nil
	case uint64:
		return float64(i), nil
	case uint32:
		return float64(i), nil
	case uint16:
		return float64(i), nil
	case uint8:
		return float64(i), nil
	case int:
		return float64(i), nil
	case uint:
		return float64(i), nil
	case string:
		if i == "" {
			return 0, nil
		}
		return strconv.ParseFloat(i, 64)
	case nil:
		return 0, nil
	default:
		v := reflect.ValueOf(unk)
		v = reflect.Indirect(v)
		if v.Type().ConvertibleTo(floatType) {
			fv := v.Convert(floatType)
			return fv.Float(), nil
		} else if v.Type().ConvertibleTo(stringType) {
			sv := v.Convert(stringType)
			s := sv.String()
			return strconv.ParseFloat(s, 64)
		}
		return math.NaN(), fmt.Errorf("can't convert %v to float64", v.Type())
	}
}

// ConvertToString converts an unknown type to its string representation.
func ConvertToString(unk interface{}) string {
	if unk == nil {
		return ""
	}
	if s, ok := unk.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", unk)
}

// ConvertToBool interprets an unknown type as a boolean flag. Nonzero
// numbers, "1" and "true" are true; anything else is false.
func ConvertToBool(unk interface{}) bool {
	switch i := unk.(type) {
	case bool:
		return i
	case string:
		b, err := strconv.ParseBool(i)
		if err == nil {
			return b
		}
		f, err := strconv.ParseFloat(i, 64)
		return err == nil && f != 0
	case nil:
		return false
	default:
		f, err := ConvertToFloat64(unk)
		return err == nil && f != 0
	}
}
