package reflectx

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Error types.
var (
	ErrInvalidArgumentValue = errors.New("invalid argument value")
	ErrNilArgument          = errors.New("nil argument for non-nilable type")
)

// Converter adapts raw argument values to the parameter types of a resolved
// callable. The zero value is ready to use.
type Converter struct{}

// Convert returns raw adapted to the type t.
//
// The conversion runs in this order:
//  1. A nil raw value yields the zero value of t when t can hold nil.
//  2. A raw value whose dynamic type is assignable to t is used as is.
//  3. A raw value convertible to t by Go conversion rules is converted,
//     except for conversions to a string kind from anything but another
//     string kind or byte/rune slice: string(65) is "A", never "65".
//  4. A string or []byte raw value is decoded into t. Valid JSON is
//     unmarshaled, with protojson for proto.Message targets, then
//     encoding.TextUnmarshaler, proto.Unmarshal, encoding.BinaryUnmarshaler
//     and BytesDecoder are tried in sequence.
//
// Anything else fails with ErrInvalidArgumentValue.
func (Converter) Convert(raw any, t reflect.Type) (reflect.Value, error) {
	if raw == nil {
		switch t.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrNilArgument, t.String())
		}
	}

	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if convertible(rv.Type(), t) {
		return rv.Convert(t), nil
	}

	switch arg := raw.(type) {
	case string:
		return decode([]byte(arg), t)
	case []byte:
		return decode(arg, t)
	}

	return reflect.Value{}, fmt.Errorf("%w: %v (%T) for type '%s'", ErrInvalidArgumentValue, raw, raw, t.String())
}

// convertible reports whether a Go conversion from one type to the other
// keeps the value's meaning. Conversions to a string kind are allowed only
// from another string kind or from a byte or rune slice.
func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}

	if to.Kind() == reflect.String && from.Kind() != reflect.String && from.Kind() != reflect.Slice {
		return false
	}

	return true
}

// decode converts the raw bytes of a textual argument to a value of type t,
// trying the supported unmarshaling interfaces in sequence.
func decode(raw []byte, t reflect.Type) (reflect.Value, error) {
	pointer := t.Kind() == reflect.Pointer

	var (
		argValue reflect.Value
		outValue reflect.Value
	)
	if pointer {
		argValue = reflect.New(t.Elem())
		outValue = argValue
	} else {
		argValue = reflect.New(t)
		outValue = argValue.Elem()
	}

	switch {
	case t.Kind() == reflect.String:
		outValue.SetString(string(raw))
		return outValue, nil
	case pointer && t.Elem().Kind() == reflect.String:
		argValue.Elem().SetString(string(raw))
		return outValue, nil
	}

	argInterface := argValue.Interface()

	if json.Valid(raw) {
		var err error
		if protoMessage, ok := argInterface.(proto.Message); ok {
			err = protojson.Unmarshal(raw, protoMessage)
		} else {
			err = json.Unmarshal(raw, argInterface)
		}
		if err == nil {
			return outValue, nil
		}
	}

	if unmarshaler, ok := argInterface.(encoding.TextUnmarshaler); ok {
		if err := unmarshaler.UnmarshalText(raw); err == nil {
			return outValue, nil
		}
	}

	if protoMessage, ok := argInterface.(proto.Message); ok {
		if err := proto.Unmarshal(raw, protoMessage); err == nil {
			return outValue, nil
		}
	}

	if unmarshaler, ok := argInterface.(encoding.BinaryUnmarshaler); ok {
		if err := unmarshaler.UnmarshalBinary(raw); err == nil {
			return outValue, nil
		}
	}

	if decoder, ok := argInterface.(BytesDecoder); ok {
		if err := decoder.DecodeFromBytes(raw); err == nil {
			return outValue, nil
		}
	}

	return reflect.Value{}, fmt.Errorf("%w: '%s' for type '%s'", ErrInvalidArgumentValue, raw, t.String())
}
