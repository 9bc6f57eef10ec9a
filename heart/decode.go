package heart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// FieldError 单个字段校验错误，格式与pydantic一致
type FieldError struct {
	Type  string `json:"type"`
	Loc   []any  `json:"loc"`
	Msg   string `json:"msg"`
	Input any    `json:"input"`
}

// ValidationError 请求体校验错误
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		loc := make([]string, 0, len(fe.Loc))
		for _, l := range fe.Loc {
			loc = append(loc, fmt.Sprint(l))
		}
		parts = append(parts, strings.Join(loc, ".")+": "+fe.Msg)
	}
	return fmt.Sprintf("%d validation error(s): %s", len(e.Errors), strings.Join(parts, "; "))
}

func (e *ValidationError) add(typ string, msg string, input any, loc ...any) {
	e.Errors = append(e.Errors, FieldError{
		Type:  typ,
		Loc:   append([]any{"body"}, loc...),
		Msg:   msg,
		Input: input,
	})
}

// Decode 解析请求体并按Schema校验
// 只检查字段是否存在和基本类型，不检查取值范围，错误按向量顺序全部列出
func Decode(body []byte) (Observation, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		verr := &ValidationError{}
		verr.add("missing", "Field required", nil)
		return Observation{}, verr
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		verr := &ValidationError{}
		verr.add("json_invalid", "JSON decode error", nil)
		return Observation{}, verr
	}
	if dec.More() {
		verr := &ValidationError{}
		verr.add("json_invalid", "JSON decode error", nil)
		return Observation{}, verr
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		verr := &ValidationError{}
		verr.add("model_attributes_type", "Input should be a valid dictionary or object to extract fields from", raw)
		return Observation{}, verr
	}

	s := Schema()
	verr := &ValidationError{}
	var vec Vector
	for i, name := range FieldNames {
		v, present := obj[name]
		if !present {
			if slices.Contains(s.Required, name) {
				verr.add("missing", "Field required", obj, name)
			}
			continue
		}

		typ := "number"
		if s.Properties != nil {
			if prop, ok := s.Properties.Get(name); ok && prop.Type != "" {
				typ = prop.Type
			}
		}

		switch typ {
		case "integer":
			n, code, msg := asInt(v)
			if code != "" {
				verr.add(code, msg, v, name)
				continue
			}
			vec[i] = float64(n)
		default:
			f, code, msg := asFloat(v)
			if code != "" {
				verr.add(code, msg, v, name)
				continue
			}
			vec[i] = f
		}
	}

	if len(verr.Errors) > 0 {
		return Observation{}, verr
	}
	return FromVector(vec), nil
}

// FromVector 由特征向量还原观测值，整数字段截断
func FromVector(v Vector) Observation {
	return Observation{
		Age:      int(v[0]),
		Sex:      int(v[1]),
		Cp:       int(v[2]),
		Trestbps: int(v[3]),
		Chol:     int(v[4]),
		Fbs:      int(v[5]),
		Restecg:  int(v[6]),
		Thalach:  int(v[7]),
		Exang:    int(v[8]),
		Oldpeak:  v[9],
		Slope:    int(v[10]),
		Ca:       int(v[11]),
		Thal:     int(v[12]),
	}
}

const (
	intTypeMsg      = "Input should be a valid integer"
	intParsingMsg   = "Input should be a valid integer, unable to parse string as an integer"
	intFractionMsg  = "Input should be a valid integer, got a number with a fractional part"
	floatTypeMsg    = "Input should be a valid number"
	floatParsingMsg = "Input should be a valid number, unable to parse string as a number"
)

// asInt 按宽松模式转换整数字段：数字、整数字符串和布尔值都接受
func asInt(v any) (int, string, string) {
	var n json.Number
	switch x := v.(type) {
	case json.Number:
		n = x
	case bool:
		if x {
			return 1, "", ""
		}
		return 0, "", ""
	case string:
		n = json.Number(strings.TrimSpace(x))
		if _, err := strconv.ParseFloat(string(n), 64); err != nil {
			return 0, "int_parsing", intParsingMsg
		}
	default:
		return 0, "int_type", intTypeMsg
	}

	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return int(i), "", ""
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		if _, isString := v.(string); isString {
			return 0, "int_parsing", intParsingMsg
		}
		return 0, "int_type", intTypeMsg
	}
	if f != math.Trunc(f) {
		if _, isString := v.(string); isString {
			return 0, "int_parsing", intParsingMsg
		}
		return 0, "int_from_float", intFractionMsg
	}
	return int(f), "", ""
}

// asFloat 按宽松模式转换浮点字段：数字、数字字符串和布尔值都接受
func asFloat(v any) (float64, string, string) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, "float_type", floatTypeMsg
		}
		return f, "", ""
	case bool:
		if x {
			return 1, "", ""
		}
		return 0, "", ""
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, "float_parsing", floatParsingMsg
		}
		return f, "", ""
	default:
		return 0, "float_type", floatTypeMsg
	}
}
