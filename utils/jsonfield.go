package utils

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

// ParseLeadingInt reads the integer prefix of s ("12", " 7", "42abc").
// It reports false when s does not start with digits.
func ParseLeadingInt(s string) (int, bool) {
	match := leadingInt.FindStringSubmatch(s)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FlexInt is a request field that accepts a JSON number or a numeric string.
// Null, absent, "", 0 and false all count as not present.
type FlexInt struct {
	Present bool
	Valid   bool
	Value   int
}

// UnmarshalJSON never fails so that type problems surface as validation codes
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt{}
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case 'n', 'f':
		return nil
	case 't', '{', '[':
		f.Present = true
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return nil
		}
		f.Present = true
		f.Value, f.Valid = ParseLeadingInt(s)
		return nil
	}

	num, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		f.Present = true
		return nil
	}
	if num == 0 {
		return nil
	}
	f.Present = true
	// outside the int64 range the conversion below is undefined
	if math.IsNaN(num) || num >= math.MaxInt64 || num < math.MinInt64 {
		return nil
	}
	f.Valid = true
	f.Value = int(num)
	return nil
}

// IsID reports whether the value can be a row id: a valid integer above zero
func (f FlexInt) IsID() bool {
	return f.Valid && f.Value > 0
}

// Uint returns the value as a row id; callers check IsID first
func (f FlexInt) Uint() uint {
	return uint(f.Value)
}

// StringField is a body field that only takes a JSON string. Other types,
// null included, leave IsString false instead of failing the whole body.
type StringField struct {
	Set      bool
	IsString bool
	Value    string
}

// UnmarshalJSON is only invoked when the key is present in the body
func (s *StringField) UnmarshalJSON(data []byte) error {
	*s = StringField{Set: true}
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || raw[0] != '"' {
		return nil
	}
	if err := json.Unmarshal(raw, &s.Value); err == nil {
		s.IsString = true
	}
	return nil
}

// Optional is a body field that remembers whether its key was sent at all,
// so partial updates can tell "omitted" from "explicitly null".
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON is only invoked when the key is present in the body
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(bytes.TrimSpace(data)) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value, or nil when the key was omitted or null
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
