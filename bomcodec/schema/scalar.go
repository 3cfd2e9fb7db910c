package schema

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
)

// isScalar reports whether values of t are carried as a single leaf value (attribute, element text or JSON
// primitive).
func isScalar(t reflect.Type) bool {
	if t == timeType {
		return true
	}
	if _, ok := lookupEnum(t); ok {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// FormatText renders a leaf value as text. The second return value is false when the value is absent: a nil
// pointer, an empty string, a zero timestamp or an unset enumeration. Values held behind a non-nil pointer are
// always present.
func FormatText(v reflect.Value, c Convention) (string, bool, error) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", false, nil
		}
		return formatText(v.Elem(), c, true)
	}
	return formatText(v, c, false)
}

func formatText(v reflect.Value, c Convention, held bool) (string, bool, error) {
	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.IsZero() && !held {
			return "", false, nil
		}
		return FormatTimestamp(t), true, nil
	}
	if e, ok := lookupEnum(v.Type()); ok {
		if v.Int() == 0 {
			return "", false, nil
		}
		s, err := e.formatValue(v, c)
		if err != nil {
			return "", false, err
		}
		return s, true, nil
	}
	switch v.Kind() {
	case reflect.String:
		s := v.String()
		return s, s != "" || held, nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true, nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true, nil
	}
	return "", false, fmt.Errorf("unsupported scalar type %s", v.Type())
}

// Native renders a leaf value as a JSON primitive: booleans and integers keep their native type, everything else
// is rendered as text. Presence follows the FormatText rules.
func Native(v reflect.Value, c Convention) (interface{}, bool, error) {
	inner := v
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false, nil
		}
		inner = v.Elem()
	}
	if inner.Type() != timeType {
		if _, isEnum := lookupEnum(inner.Type()); !isEnum {
			switch inner.Kind() {
			case reflect.Bool:
				return inner.Bool(), true, nil
			case reflect.Int, reflect.Int32, reflect.Int64:
				return inner.Int(), true, nil
			}
		}
	}
	return FormatText(v, c)
}

// ParseText parses s into dst, which must be settable. Pointer destinations are allocated.
func ParseText(s string, dst reflect.Value, c Convention) error {
	if dst.Kind() == reflect.Ptr {
		p := reflect.New(dst.Type().Elem())
		if err := parseText(s, p.Elem(), c); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	}
	return parseText(s, dst, c)
}

func parseText(s string, dst reflect.Value, c Convention) error {
	if dst.Type() == timeType {
		t, err := ParseTimestamp(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(t))
		return nil
	}
	if e, ok := lookupEnum(dst.Type()); ok {
		return e.parseValue(strings.TrimSpace(s), c, dst)
	}
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(s)
		return nil
	case reflect.Bool:
		switch strings.TrimSpace(s) {
		case "true", "1":
			dst.SetBool(true)
		case "false", "0":
			dst.SetBool(false)
		default:
			return fmt.Errorf("%w: %q is not a boolean", bomerr.ErrInvalidValue, s)
		}
		return nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil || dst.OverflowInt(n) {
			return fmt.Errorf("%w: %q is not an integer", bomerr.ErrInvalidValue, s)
		}
		dst.SetInt(n)
		return nil
	}
	return fmt.Errorf("unsupported scalar type %s", dst.Type())
}

// SetNative stores a decoded JSON primitive into dst. Booleans and integers must arrive as JSON booleans and
// numbers, all other leaf types as JSON strings.
func SetNative(dst reflect.Value, raw interface{}, c Convention) error {
	if dst.Kind() == reflect.Ptr {
		p := reflect.New(dst.Type().Elem())
		if err := setNative(p.Elem(), raw, c); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	}
	return setNative(dst, raw, c)
}

func setNative(dst reflect.Value, raw interface{}, c Convention) error {
	_, isEnum := lookupEnum(dst.Type())
	if dst.Type() == timeType || isEnum || dst.Kind() == reflect.String {
		s, ok := raw.(string)
		if !ok {
			return mismatch("a string", raw)
		}
		return parseText(s, dst, c)
	}
	switch dst.Kind() {
	case reflect.Bool:
		b, ok := raw.(bool)
		if !ok {
			return mismatch("a boolean", raw)
		}
		dst.SetBool(b)
		return nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		var n int64
		switch number := raw.(type) {
		case int64:
			n = number
		case float64:
			if number != math.Trunc(number) || number > math.MaxInt64 || number < math.MinInt64 {
				return fmt.Errorf("%w: %v is not an integer", bomerr.ErrInvalidValue, number)
			}
			n = int64(number)
		default:
			return mismatch("a number", raw)
		}
		if dst.OverflowInt(n) {
			return fmt.Errorf("%w: %d is out of range", bomerr.ErrInvalidValue, n)
		}
		dst.SetInt(n)
		return nil
	}
	return fmt.Errorf("unsupported scalar type %s", dst.Type())
}

func mismatch(expected string, raw interface{}) error {
	return fmt.Errorf("%w: expected %s, found %s", bomerr.ErrInvalidValue, expected, DescribeJSON(raw))
}

// DescribeJSON names the JSON type of a generically decoded value.
func DescribeJSON(raw interface{}) string {
	switch raw.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "an object"
	case []interface{}:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int64, float64, int:
		return "a number"
	}
	return fmt.Sprintf("%T", raw)
}
