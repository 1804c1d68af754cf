// Package jsonutil handles the loosely typed JSON the web client sends.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleID is a numeric identifier that accepts both JSON numbers and
// numeric strings. The web client is inconsistent about which it sends, so
// identifiers must be coerced before use in store filters.
type FlexibleID int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleID) UnmarshalJSON(raw []byte) error {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	// Try number first
	var numVal int64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		*f = FlexibleID(numVal)
		return nil
	}

	// Try numeric string
	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		parsed, err := strconv.ParseInt(strings.TrimSpace(strVal), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric id %q", strVal)
		}
		*f = FlexibleID(parsed)
		return nil
	}

	return fmt.Errorf("invalid id value %s", s)
}

// Int64 returns the identifier as an int64.
func (f FlexibleID) Int64() int64 { return int64(f) }

// IsZero reports whether the identifier was absent or zero.
func (f FlexibleID) IsZero() bool { return f == 0 }
