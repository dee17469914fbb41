package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// Optional records whether a JSON key was sent at all, whether it was null,
// and its decoded value otherwise.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// UnmarshalJSON is only invoked by encoding/json when the key exists in the body.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON writes null for absent or null values.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}

// HasValue reports whether a non-null value was sent.
func (o Optional[T]) HasValue() bool {
	return o.Present && !o.Null
}

// Ptr returns nil when the key was absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.HasValue() {
		return nil
	}
	v := o.Value
	return &v
}

// Some builds a present Optional, mostly for tests.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}

// maxFlexInt is the largest magnitude a NUMBER(10) column holds.
const maxFlexInt = 9_999_999_999

// FlexInt accepts a JSON number or a numeric string. Fractions are truncated.
// Values outside NUMBER(10) are rejected.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	raw, err := numericText(data)
	if err != nil || raw == "" {
		return err
	}
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("invalid integer value %s", data)
		}
		f = math.Trunc(f)
		if math.Abs(f) > maxFlexInt {
			return fmt.Errorf("integer value %s out of range", data)
		}
		i = int64(f)
	}
	if i > maxFlexInt || i < -maxFlexInt {
		return fmt.Errorf("integer value %s out of range", data)
	}
	*n = FlexInt(i)
	return nil
}

// FlexFloat accepts a JSON number or a numeric string.
type FlexFloat float64

func (n *FlexFloat) UnmarshalJSON(data []byte) error {
	raw, err := numericText(data)
	if err != nil || raw == "" {
		return err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number value %s", data)
	}
	*n = FlexFloat(f)
	return nil
}

// FlexString accepts any JSON value. Strings are kept as they are; numbers,
// booleans, arrays and objects are stored as their compact JSON text.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, jsonNull) {
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return err
	}
	*s = FlexString(buf.String())
	return nil
}

// numericText strips quotes from a string token. It returns "" for null.
func numericText(data []byte) (string, error) {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return "", nil
	}
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return "", fmt.Errorf("invalid numeric string %s", data)
		}
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			return "", fmt.Errorf("empty numeric string")
		}
	}
	return raw, nil
}
