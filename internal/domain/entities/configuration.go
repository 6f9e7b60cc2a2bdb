package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidSelectionValue = errors.New("selection value must be a boolean or a string")

// ValueKind tells which JSON kind a selection was given as.
type ValueKind int

const (
	ValueKindNone ValueKind = iota
	ValueKindBool
	ValueKindString
)

// SelectionValue is one entry of a Configuration: a boolean for checkbox
// options, a choice value for select options, free text for text options.
type SelectionValue struct {
	Kind ValueKind
	Bool bool
	Text string
}

func BoolValue(b bool) SelectionValue {
	return SelectionValue{Kind: ValueKindBool, Bool: b}
}

func TextValue(s string) SelectionValue {
	return SelectionValue{Kind: ValueKindString, Text: s}
}

// IsChecked is true only for a boolean true.
func (v SelectionValue) IsChecked() bool {
	return v.Kind == ValueKindBool && v.Bool
}

// HasText is true for a string with non-blank content.
func (v SelectionValue) HasText() bool {
	return v.Kind == ValueKindString && strings.TrimSpace(v.Text) != ""
}

func (v SelectionValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueKindBool:
		return json.Marshal(v.Bool)
	case ValueKindString:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

func (v *SelectionValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*v = BoolValue(bytes.Equal(data, []byte("true")))
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	default:
		return ErrInvalidSelectionValue
	}
}

// Configuration maps option ids to the customer's selections.
type Configuration map[string]SelectionValue

// Keys returns the option ids in lexical order.
func (c Configuration) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy, used to snapshot a configuration on an order.
func (c Configuration) Clone() Configuration {
	if c == nil {
		return nil
	}
	out := make(Configuration, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// ToMap renders the configuration with plain Go values (bool / string).
func (c Configuration) ToMap() map[string]any {
	out := make(map[string]any, len(c))
	for k, v := range c {
		switch v.Kind {
		case ValueKindBool:
			out[k] = v.Bool
		case ValueKindString:
			out[k] = v.Text
		}
	}
	return out
}

// ConfigurationFromMap is the inverse of ToMap.
func ConfigurationFromMap(m map[string]any) (Configuration, error) {
	out := make(Configuration, len(m))
	for k, raw := range m {
		switch val := raw.(type) {
		case bool:
			out[k] = BoolValue(val)
		case string:
			out[k] = TextValue(val)
		default:
			return nil, fmt.Errorf("option %s: %w", k, ErrInvalidSelectionValue)
		}
	}
	return out, nil
}
