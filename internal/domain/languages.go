package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Languages is the ordered list of languages a lawyer works in. It is stored
// as a JSON array in a text column so that existing databases keep working.
type Languages []string

// GormDataType pins the column type regardless of dialect.
func (Languages) GormDataType() string {
	return "text"
}

// Value encodes the list as JSON text. A nil list is stored as "[]".
func (l Languages) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("encode languages: %w", err)
	}
	return string(b), nil
}

// Scan decodes the stored JSON text.
//
// Fallback: a stored value that is not a JSON array of strings (hand edited
// rows, legacy free text) reads back as an empty list instead of failing the
// whole query. Writes always go through Value, so the fallback only ever
// applies to data produced outside this service.
func (l *Languages) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		*l = Languages{}
		return nil
	}

	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded == nil {
		*l = Languages{}
		return nil
	}
	*l = decoded
	return nil
}

// MarshalJSON always renders a JSON array, never null.
func (l Languages) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// UnmarshalJSON accepts a list of strings or a single string, which becomes a
// one element list.
func (l *Languages) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = Languages{}
		return nil
	}

	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*l = Languages{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("languages must be a string or a list of strings")
	}
	if list == nil {
		list = []string{}
	}
	*l = list
	return nil
}
