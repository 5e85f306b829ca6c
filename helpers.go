package deepaccess

import (
	"fmt"
	"reflect"
	"strconv"
)

///////////////////////////////////////////////////////////////////////////////
// Shape inference
///////////////////////////////////////////////////////////////////////////////

// unwrap strips interface wrappers so that shape checks see the dynamic
// value. Returns an invalid value for a nil interface.
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}

// derefAll follows pointers (and interfaces) down to the pointee. A nil
// pointer yields an invalid value.
func derefAll(v reflect.Value) reflect.Value {
	v = unwrap(v)
	for v.IsValid() && v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = unwrap(v.Elem())
	}
	return v
}

// isAbsentValue reports whether v holds the Absent sentinel.
func isAbsentValue(v reflect.Value) bool {
	v = unwrap(v)
	if !v.IsValid() || v.Type() != reflect.TypeOf(Absent) {
		return false
	}
	return true
}

// isUndefined reports whether v is an undefined node: a missing slot, nil
// interface, nil pointer, or the Absent sentinel.
func isUndefined(v reflect.Value) bool {
	v = unwrap(v)
	if !v.IsValid() {
		return true
	}
	if isAbsentValue(v) {
		return true
	}
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return true
	}
	return false
}

// inferKind resolves the traversal kind of a node from its runtime shape.
// Method-bearing objects are detected first: an object's identity takes
// precedence over being incidentally map-like or slice-like. Pointers are
// followed for the mapping/sequence checks but not for the method check,
// since method sets differ between T and *T.
func inferKind(v reflect.Value) Kind {
	v = unwrap(v)
	if isUndefined(v) {
		return KindUndefined
	}
	if v.NumMethod() > 0 {
		return KindMethod
	}
	d := derefAll(v)
	if !d.IsValid() {
		return KindUndefined
	}
	switch d.Kind() {
	case reflect.Map:
		return KindMapping
	case reflect.Slice, reflect.Array:
		return KindSequence
	default:
		return KindScalar
	}
}

///////////////////////////////////////////////////////////////////////////////
// Key and value coercion
///////////////////////////////////////////////////////////////////////////////

// coerceMapKey converts a segment key to the map's key type. String-keyed
// maps stringify scalar keys the way dynamic-language mappings do; numeric
// key types parse numeric strings and check for overflow.
func coerceMapKey(key any, keyType reflect.Type) (reflect.Value, error) {
	kv := reflect.ValueOf(key)
	if !kv.IsValid() {
		return reflect.Value{}, traversalErrorf("mapping key must not be nil")
	}
	if kv.Type().AssignableTo(keyType) {
		return kv, nil
	}

	switch keyType.Kind() {
	case reflect.String:
		if kv.Kind() == reflect.String {
			return kv.Convert(keyType), nil
		}
		if s, ok := key.(fmt.Stringer); ok {
			return reflect.ValueOf(s.String()).Convert(keyType), nil
		}
		switch kv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64, reflect.Bool:
			return reflect.ValueOf(fmt.Sprint(key)).Convert(keyType), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := keyToInt(kv)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(keyType).Elem()
		if out.OverflowInt(i) {
			return reflect.Value{}, traversalErrorf("mapping key %d overflows %s", i, keyType)
		}
		out.SetInt(i)
		return out, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := keyToInt(kv)
		if err != nil || i < 0 {
			return reflect.Value{}, traversalErrorf("mapping key %v is not a valid %s", key, keyType)
		}
		out := reflect.New(keyType).Elem()
		if out.OverflowUint(uint64(i)) {
			return reflect.Value{}, traversalErrorf("mapping key %d overflows %s", i, keyType)
		}
		out.SetUint(uint64(i))
		return out, nil
	case reflect.Interface:
		if keyType.NumMethod() == 0 {
			return kv, nil
		}
	}
	return reflect.Value{}, traversalErrorf("cannot use %T as %s mapping key", key, keyType)
}

// keyToInt widens any integer kind, or parses a decimal string.
func keyToInt(kv reflect.Value) (int64, error) {
	switch kv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return kv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := kv.Uint()
		if u > uint64(int64(^uint64(0)>>1)) {
			return 0, traversalErrorf("integer key %d overflows int64", u)
		}
		return int64(u), nil
	case reflect.String:
		i, err := strconv.ParseInt(kv.String(), 10, 64)
		if err != nil {
			return 0, traversalErrorf("key %q is not an integer", kv.String())
		}
		return i, nil
	default:
		return 0, traversalErrorf("cannot use %s as integer key", kv.Type())
	}
}

// coerceIndex converts a segment key to a sequence index. Strings holding
// decimal integers are accepted the way loosely typed callers supply them.
func coerceIndex(key any) (int, error) {
	kv := reflect.ValueOf(key)
	if !kv.IsValid() {
		return 0, traversalErrorf("sequence index must not be nil")
	}
	i, err := keyToInt(kv)
	if err != nil {
		return 0, traversalErrorf("cannot use %T as sequence index", key)
	}
	return int(i), nil
}

// methodKey converts a segment key to a method name.
func methodKey(key any) (string, error) {
	switch k := key.(type) {
	case string:
		return k, nil
	case fmt.Stringer:
		return k.String(), nil
	default:
		return "", traversalErrorf("method name must be a string, got %T", key)
	}
}

// coerceAssign produces a value of type t from v, for storing into a map
// slot, sequence slot or method argument. A nil v becomes the zero value of
// t when t can hold nil.
func coerceAssign(v any, t reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, traversalErrorf("cannot store nil in %s", t)
		}
	}
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(t) && isNumericKind(rv.Kind()) && isNumericKind(t.Kind()) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, traversalErrorf("cannot store %T in %s", v, t)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// valueOrNil converts a (possibly invalid) reflect value back to an
// interface.
func valueOrNil(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}
