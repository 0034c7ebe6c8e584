package deepdiff

import (
	"fmt"
	"reflect"
	"regexp"
	"time"
)

// Kind identifies the semantic type of a runtime value for comparison
// purposes. Classification decides which equality rule applies: values of
// different kinds never compare equal, dates compare by instant, regexps by
// source text, arrays and objects recursively, everything else by value.
type Kind uint8

const (
	// KindUndefined is the kind of the Undefined sentinel
	KindUndefined Kind = iota
	// KindNull is the kind of nil and of nil pointers
	KindNull
	KindBool
	KindNumber
	KindString
	KindFunc
	KindArray
	KindDate
	KindRegexp
	// KindObject is the catch-all for maps and structs
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunc:
		return "function"
	case KindArray:
		return "array"
	case KindDate:
		return "date"
	case KindRegexp:
		return "regexp"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

type undefined struct{}

// Undefined marks a property that is present on its parent but holds no
// value. It is distinct from nil (null): a key stored with Undefined on one
// side and missing on the other still yields a change record, while
// Undefined on both sides yields none. The diff engine also uses it
// internally as the "nothing here" marker when one side of a comparison is
// absent, disambiguating the two cases with a presence check on the parent.
var Undefined = undefined{}

func (undefined) String() string { return "undefined" }

// MarshalJSON renders Undefined as null, the closest JSON has
func (undefined) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// regexpLike matches the slash-delimited string form of a regexp literal
var regexpLike = regexp.MustCompile(`^/.*/[a-z]*$`)

// KindOf classifies v. Scalar types pass through directly; nil and nil
// pointers are null; slices are arrays; time.Time is a date;
// *regexp.Regexp is a regexp; maps and structs are objects.
//
// Legacy quirk, kept for compatibility with the original behavior: any
// other value whose String method prints a slash-delimited literal
// ("/pattern/flags") is classified as a regexp even if it is not one, and
// will be compared by that string form.
func KindOf(v interface{}) Kind {
	switch x := v.(type) {
	case nil:
		return KindNull
	case undefined:
		return KindUndefined
	case bool:
		return KindBool
	case string:
		return KindString
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return KindNumber
	case time.Time:
		return KindDate
	case *regexp.Regexp:
		if x == nil {
			return KindNull
		}
		return KindRegexp
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Func:
		return KindFunc
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
		return KindOf(rv.Elem().Interface())
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	}

	if s, ok := v.(fmt.Stringer); ok && regexpLike.MatchString(s.String()) {
		return KindRegexp
	}

	if rv.Kind() == reflect.String {
		return KindString
	}
	return KindObject
}

// regexpString returns the slash-delimited literal form two regexp-kinded
// values are reduced to before comparison.
func regexpString(v interface{}) string {
	switch x := v.(type) {
	case *regexp.Regexp:
		return "/" + x.String() + "/"
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
