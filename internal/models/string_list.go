package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings stored as a JSON array in a text
// column. Reads never fail: NULL, malformed JSON and non-array values all
// decode to an empty list.
type StringList []string

// Value implements driver.Valuer. A nil list is written as "[]".
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("encode string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*l = DecodeStringList([]byte(v))
	case []byte:
		*l = DecodeStringList(v)
	default:
		*l = StringList{}
	}
	return nil
}

// GormDataType keeps the column a plain text type on every dialect.
func (StringList) GormDataType() string {
	return "text"
}

// DecodeStringList parses raw JSON leniently. Non-string elements are dropped.
func DecodeStringList(raw []byte) StringList {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return StringList{}
	}
	out := make(StringList, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Strings returns a plain copy, never nil.
func (l StringList) Strings() []string {
	out := make([]string, len(l))
	copy(out, l)
	return out
}

// MarshalJSON writes a nil list as [] so clients never see null.
func (l StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Strings())
}
