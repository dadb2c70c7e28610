package core

import "strconv"

// The helpers below read flag-style overrides. Missing or malformed values
// leave the destination untouched.

// IntFrom reads a positive-or-zero integer from cfg[key] into dst. When
// positive is set, zero is rejected too.
func IntFrom(cfg map[string]string, key string, dst *int, positive bool) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 || (positive && parsed == 0) {
		return
	}
	*dst = parsed
}

// Int64From reads any integer from cfg[key] into dst.
func Int64From(cfg map[string]string, key string, dst *int64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = parsed
		}
	}
}

// FloatFrom reads a non-negative float from cfg[key] into dst.
func FloatFrom(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
}

// BoolFrom reads a boolean from cfg[key] into dst.
func BoolFrom(cfg map[string]string, key string, dst *bool) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			*dst = parsed
		}
	}
}
