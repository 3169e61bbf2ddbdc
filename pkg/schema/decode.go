package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// Decode converts a loosely-typed document (as produced by a YAML, JSON or TOML
// parser) into a Definition. It does not validate the result.
func Decode(raw map[string]any) (Definition, error) {
	var def Definition

	normalized, err := normalize(raw)
	if err != nil {
		return def, err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       alphabetHook,
		WeaklyTypedInput: true,
		Result:           &def,
	})
	if err != nil {
		return def, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(normalized); err != nil {
		return def, fmt.Errorf("failed to decode definition: %w", err)
	}

	return def, nil
}

var stringSliceType = reflect.TypeOf([]string(nil))

// alphabetHook accepts an alphabet written as a string ("01") or as a list of
// scalars ([0, 1]).
func alphabetHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != stringSliceType {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		tokens := domain.Tokenize(v)
		out := make([]string, len(tokens))
		for i, t := range tokens {
			out[i] = string(t)
		}
		return out, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			if item == nil || !isScalar(item) {
				return nil, &ValidationError{Key: fmt.Sprintf("alphabet[%d]", i), Reason: "token must be a scalar", Value: item}
			}
			s, err := cast.ToStringE(item)
			if err != nil {
				return nil, &ValidationError{Key: fmt.Sprintf("alphabet[%d]", i), Reason: err.Error(), Value: item}
			}
			out[i] = s
		}
		return out, nil
	}
	return data, nil
}

// normalize rewrites parser output into map[string]any trees with canonical
// numbers: integers as int, everything else numeric as float64.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			n, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			key, err := cast.ToStringE(k)
			if err != nil {
				return nil, fmt.Errorf("invalid key %v: %w", k, err)
			}
			n, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			n, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case json.Number:
		if i, err := t.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", t, err)
		}
		return f, nil
	case int8, int16, int32, int64, uint8, uint16, uint32:
		return cast.ToIntE(t)
	case float32:
		return float64(t), nil
	}
	return v, nil
}
