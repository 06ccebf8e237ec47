package prefs

import (
	"encoding/json"
	"fmt"
)

// BoolEntry declares a boolean preference.
func BoolEntry(key string, def bool) EntryDef {
	return EntryDef{
		Key:     key,
		Default: def,
		Validate: func(raw json.RawMessage) (any, error) {
			var v bool
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("expected a boolean: %w", err)
			}
			return v, nil
		},
	}
}

// IntEntry declares an integer preference with an inclusive range.
func IntEntry(key string, def, min, max int) EntryDef {
	return EntryDef{
		Key:     key,
		Default: def,
		Validate: func(raw json.RawMessage) (any, error) {
			var v int
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("expected an integer: %w", err)
			}
			if v < min || v > max {
				return nil, fmt.Errorf("%d outside [%d, %d]", v, min, max)
			}
			return v, nil
		},
	}
}

// StringEntry declares a string preference, optionally restricted to a set
// of allowed values.
func StringEntry(key, def string, allowed ...string) EntryDef {
	return EntryDef{
		Key:     key,
		Default: def,
		Validate: func(raw json.RawMessage) (any, error) {
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("expected a string: %w", err)
			}
			if len(allowed) == 0 {
				return v, nil
			}
			for _, a := range allowed {
				if v == a {
					return v, nil
				}
			}
			return nil, fmt.Errorf("%q is not an allowed value", v)
		},
	}
}

// StringListEntry declares a list-of-strings preference.
func StringListEntry(key string, def []string) EntryDef {
	return EntryDef{
		Key:     key,
		Default: def,
		Validate: func(raw json.RawMessage) (any, error) {
			var v []string
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("expected a string list: %w", err)
			}
			return v, nil
		},
	}
}
