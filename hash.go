package deepdiff

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
	"unicode/utf16"
)

// OrderIndependentHash produces a 32-bit signed hash of v that is invariant
// to array element order and object key order: a permuted array or a map
// built in a different insertion order hashes identically. It is the basis
// of order-independent array comparison, which sorts both arrays by this
// hash before walking them.
//
// The hash is a heuristic, not a cryptographic one: distinct values usually
// hash differently but no collision freedom is guaranteed.
func OrderIndependentHash(v interface{}) int32 {
	switch KindOf(v) {
	case KindArray:
		// unordered sum of element hashes, re-tagged so that array-ness and
		// arity survive into the result
		var accum int32
		rv := reflect.ValueOf(v)
		for i := 0; i < rv.Len(); i++ {
			accum += OrderIndependentHash(rv.Index(i).Interface())
		}
		return accum + hashString(fmt.Sprintf("[type: array, hash: %d]", accum))
	case KindObject:
		// summing per-key tag hashes makes the result key-order independent
		// by construction
		var accum int32
		for _, key := range objectKeys(v) {
			val, _ := objectValue(v, key)
			accum += hashString(fmt.Sprintf("[ type: object, key: %s, value hash: %d]", key, OrderIndependentHash(val)))
		}
		return accum
	default:
		return hashString(fmt.Sprintf("[ type: %s ; value: %s]", KindOf(v), stringify(v)))
	}
}

// hashString is the 32-bit rolling hash the order-independent comparison
// depends on: h = h*31 + codeunit, expressed as (h<<5)-h, truncated to 32
// bits by int32 arithmetic. It runs over UTF-16 code units so multi-byte
// text hashes by character, not by byte.
func hashString(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// stringify renders a scalar the way the hasher tags it
func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case *time.Time:
		if x != nil {
			return x.Format(time.RFC3339Nano)
		}
		return "null"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(x).Int(), 10)
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return strconv.FormatUint(reflect.ValueOf(x).Uint(), 10)
	}
	if KindOf(v) == KindRegexp {
		return regexpString(v)
	}
	return fmt.Sprint(v)
}
