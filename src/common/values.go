package common

// Helpers to read loosely typed values out of decoded JSON maps.

// ToFloat converts any numeric value to float64.
func ToFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// ToInt64 converts any numeric value to int64, truncating floats.
func ToInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	if f, ok := ToFloat(v); ok {
		return int64(f), true
	}
	return 0, false
}

// StringValue returns m[key] if it is a string.
func StringValue(m map[string]interface{}, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// MapValue returns m[key] if it is a map.
func MapValue(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	v, ok := m[key].(map[string]interface{})
	return v, ok
}

// BoolValue returns m[key] if it is a bool, false otherwise.
func BoolValue(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}
