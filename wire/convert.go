package wire

import (
	"fmt"
	"strconv"
)

// coerceScalar converts an untyped value into the field's scalar type. JSON
// decoding surfaces numbers as float64 and occasionally as strings (64-bit
// integers), so both are accepted alongside the exact Go numeric types.
// Integer targets parse strings with the integer parsers first, so values
// above 2^53 survive exactly; float parsing is only the fallback.
func coerceScalar[T fixedValue](v interface{}) (T, error) {
	var zero T
	switch interface{}(zero).(type) {
	case float32, float64:
		return coerceToFloat[T](v)
	case uint32, uint64:
		return coerceToInt[T](v, true)
	default:
		return coerceToInt[T](v, false)
	}
}

// coerceToFloat handles the float32/float64 targets.
func coerceToFloat[T fixedValue](v interface{}) (T, error) {
	var zero T
	switch x := v.(type) {
	case int:
		return T(x), nil
	case int32:
		return T(x), nil
	case int64:
		return T(x), nil
	case uint:
		return T(x), nil
	case uint32:
		return T(x), nil
	case uint64:
		return T(x), nil
	case float32:
		return T(x), nil
	case float64:
		return T(x), nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return zero, fmt.Errorf("cannot convert %q to %T: %v", x, zero, err)
		}
		return T(f), nil
	default:
		return zero, fmt.Errorf("cannot convert %T to %T", v, zero)
	}
}

// coerceToInt handles the integer targets. Signed sources must be
// non-negative for unsigned targets, and float sources must lie inside the
// target family's range: conversion of an out-of-range float is not defined
// by the language, so it is rejected rather than produced.
func coerceToInt[T fixedValue](v interface{}, unsigned bool) (T, error) {
	var zero T
	switch x := v.(type) {
	case int:
		return intToInt[T](int64(x), unsigned)
	case int32:
		return intToInt[T](int64(x), unsigned)
	case int64:
		return intToInt[T](x, unsigned)
	case uint:
		return T(uint64(x)), nil
	case uint32:
		return T(x), nil
	case uint64:
		return T(x), nil
	case float32:
		return floatToInt[T](float64(x), unsigned)
	case float64:
		return floatToInt[T](x, unsigned)
	case string:
		if unsigned {
			if n, err := strconv.ParseUint(x, 10, 64); err == nil {
				return T(n), nil
			}
		} else {
			if n, err := strconv.ParseInt(x, 10, 64); err == nil {
				return T(n), nil
			}
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return zero, fmt.Errorf("cannot convert %q to %T: %v", x, zero, err)
		}
		return floatToInt[T](f, unsigned)
	default:
		return zero, fmt.Errorf("cannot convert %T to %T", v, zero)
	}
}

func intToInt[T fixedValue](n int64, unsigned bool) (T, error) {
	var zero T
	if unsigned && n < 0 {
		return zero, fmt.Errorf("cannot convert %d to %T: negative value", n, zero)
	}
	return T(n), nil
}

func floatToInt[T fixedValue](f float64, unsigned bool) (T, error) {
	var zero T
	if unsigned {
		if f < 0 || f >= 1<<64 {
			return zero, fmt.Errorf("cannot convert %v to %T: out of range", f, zero)
		}
		return T(uint64(f)), nil
	}
	if f >= 1<<63 || f < -(1<<63) {
		return zero, fmt.Errorf("cannot convert %v to %T: out of range", f, zero)
	}
	return T(int64(f)), nil
}

func errNotBool(v interface{}) error {
	return fmt.Errorf("cannot convert %T to bool", v)
}

func errNotBytes(v interface{}) error {
	return fmt.Errorf("cannot convert %T to bytes", v)
}
