package predicate

import (
	"reflect"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Truthy converts an operand to a boolean:
//
//   - nil is false, a bool is itself
//   - a Predicate is evaluated, a Booler decides for itself
//   - an ldvalue.Value follows JSON truthiness: null and false are false, a number is true
//     unless zero, a string unless empty, arrays and objects are true
//   - numbers are true unless zero, strings unless empty
//   - pointers, interfaces, maps, slices, channels and funcs are true unless nil
//   - anything else (structs, arrays) is true
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case Predicate:
		return Eval(v)
	case Booler:
		return v.Bool()
	case ldvalue.Value:
		return jsonTruthy(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	case reflect.String:
		return rv.Len() != 0
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return !rv.IsNil()
	default:
		return true
	}
}

func jsonTruthy(v ldvalue.Value) bool {
	switch v.Type() {
	case ldvalue.NullType:
		return false
	case ldvalue.BoolType:
		return v.BoolValue()
	case ldvalue.NumberType:
		return v.Float64Value() != 0
	case ldvalue.StringType:
		return v.StringValue() != ""
	default:
		return true
	}
}
