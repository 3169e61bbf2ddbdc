package schema

import (
	"sort"
	"strconv"
	"unicode/utf8"
)

// Validate checks the shape of the definition: single-character tokens, scalar
// outputs and a named initial state. Cross references between states, tokens and
// transitions are checked by the engine when the machine is built.
func (d Definition) Validate() error {
	var errs []error

	if d.Initial == "" {
		errs = append(errs, &ValidationError{Key: "initial", Reason: "required"})
	}
	if len(d.States) == 0 {
		errs = append(errs, &ValidationError{Key: "states", Reason: "at least one state is required"})
	}

	for i, tok := range d.Alphabet {
		if utf8.RuneCountInString(tok) != 1 {
			errs = append(errs, &ValidationError{
				Key:    "alphabet[" + strconv.Itoa(i) + "]",
				Reason: "token must be a single character",
				Value:  tok,
			})
		}
	}

	names := make([]string, 0, len(d.States))
	for name := range d.States {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out := d.States[name].Output
		if out != nil && !isScalar(out) {
			errs = append(errs, &ValidationError{
				Key:    "states." + name + ".output",
				Reason: "output must be a string, bool or number",
				Value:  out,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
