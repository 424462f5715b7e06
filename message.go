package olink

import "fmt"

// Message is an ordered tuple whose first element is always a Kind.
// The remaining elements depend on the kind (see the builders in
// builders.go). The core never interprets payload values beyond what
// their position in the tuple requires.
type Message []any

// KindOf extracts and validates the leading Kind element of m.
func (m Message) KindOf() (Kind, error) {
	if len(m) == 0 {
		return 0, fmt.Errorf("olink: empty message")
	}
	n, ok := asInt(m[0])
	if !ok {
		return 0, fmt.Errorf("olink: message kind is not a number: %v", m[0])
	}
	return Kind(n), nil
}

// asInt coerces the numeric types a JSON decode or a direct builder
// call may produce (float64, Kind, int, int64) into an int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case Kind:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
