package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML and JSON print float64(2) as "2", which decodes back as int. Outputs that
// are floats are written with a fraction so they keep their type on reload.

type plainStateSpec StateSpec

// MarshalJSON writes float outputs with a fractional part.
func (s StateSpec) MarshalJSON() ([]byte, error) {
	if lit, ok := floatLiteral(s.Output); ok {
		return []byte(`{"output":` + lit + `}`), nil
	}
	return json.Marshal(plainStateSpec(s))
}

// MarshalYAML writes float outputs as !!float scalars.
func (s StateSpec) MarshalYAML() (any, error) {
	if lit, ok := floatLiteral(s.Output); ok {
		return map[string]*yaml.Node{
			"output": {Kind: yaml.ScalarNode, Tag: "!!float", Value: lit},
		}, nil
	}
	return plainStateSpec(s), nil
}

// floatLiteral formats finite float outputs so they never read as integers.
func floatLiteral(v any) (string, bool) {
	f, ok := v.(float64)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	lit := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(lit, ".eE") {
		lit += ".0"
	}
	return lit, true
}
