package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

// Payload is a decoded JSON object body. Numbers are expected as json.Number
// (decoder.UseNumber) but float64 is accepted as well.
type Payload map[string]any

// Present reports whether key carries a usable value: not missing, not null,
// and not a whitespace-only string.
func (p Payload) Present(key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// String returns the trimmed string at key, or nil if it is absent or empty.
func (p Payload) String(key string) *string {
	if !p.Present(key) {
		return nil
	}
	s, ok := p[key].(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Int returns the integer at key. Numeric strings are accepted.
func (p Payload) Int(key string) (int64, bool) {
	if !p.Present(key) {
		return 0, false
	}
	return toInt(p[key])
}

// Float returns the finite number at key. Numeric strings are accepted.
func (p Payload) Float(key string) (float64, bool) {
	if !p.Present(key) {
		return 0, false
	}
	return toFloat(p[key])
}

// Date returns the calendar date at key.
func (p Payload) Date(key string) (time.Time, bool) {
	s := p.String(key)
	if s == nil {
		return time.Time{}, false
	}
	t, err := models.ParseDate(*s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Strings returns the string elements of the array at key.
func (p Payload) Strings(key string) []string {
	if !p.Present(key) {
		return nil
	}
	arr, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch n := v.(type) {
	case json.Number:
		f, err = n.Float64()
	case float64:
		f = n
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func describe(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
