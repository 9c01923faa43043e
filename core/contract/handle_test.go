package contract

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHandleMetadata(t *testing.T) {
	tests := []struct {
		name         string
		fn           any
		numIn        int
		variadic     bool
		numOut       int
		returnsError bool
		result       reflect.Type
	}{
		{
			name:         "value and error",
			fn:           func(a, b int) (int, error) { return a + b, nil },
			numIn:        2,
			numOut:       2,
			returnsError: true,
			result:       reflect.TypeOf(0),
		},
		{
			name:   "value only",
			fn:     func(n int) int { return n * n },
			numIn:  1,
			numOut: 1,
			result: reflect.TypeOf(0),
		},
		{
			name:         "error only",
			fn:           func() error { return nil },
			returnsError: true,
		},
		{
			name: "no results",
			fn:   func(s string) {},

			numIn: 1,
		},
		{
			name:         "variadic with error",
			fn:           func(sep string, parts ...string) (string, error) { return strings.Join(parts, sep), nil },
			numIn:        2,
			variadic:     true,
			numOut:       2,
			returnsError: true,
			result:       reflect.TypeOf(""),
		},
		{
			name:   "multiple values without error",
			fn:     func() (int, string) { return 1, "one" },
			numOut: 2,
			result: reflect.TypeOf(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandle(TargetStatic, "class", "Method", reflect.ValueOf(tt.fn))

			require.True(t, h.Valid())
			require.Equal(t, tt.numIn, h.NumIn)
			require.Equal(t, tt.variadic, h.Variadic)
			require.Equal(t, tt.numOut, h.NumOut)
			require.Equal(t, tt.returnsError, h.ReturnsError)
			require.Equal(t, tt.result, h.Result)
		})
	}
}

func TestHandleArgType(t *testing.T) {
	h := NewHandle(
		TargetStatic,
		"strings",
		"Join",
		reflect.ValueOf(func(sep string, parts ...string) string { return strings.Join(parts, sep) }),
	)

	require.Equal(t, reflect.TypeOf(""), h.ArgType(0))
	require.Equal(t, reflect.TypeOf(""), h.ArgType(1))
	require.Equal(t, reflect.TypeOf(""), h.ArgType(4))

	fixed := NewHandle(
		TargetStatic,
		"math",
		"Pow",
		reflect.ValueOf(func(base float64, exp int) float64 { return 0 }),
	)

	require.Equal(t, reflect.TypeOf(float64(0)), fixed.ArgType(0))
	require.Equal(t, reflect.TypeOf(0), fixed.ArgType(1))
}

func TestHandleCall(t *testing.T) {
	errBoom := errors.New("boom")

	h := NewHandle(
		TargetStatic,
		"class",
		"Fail",
		reflect.ValueOf(func(fail bool) (string, error) {
			if fail {
				return "", errBoom
			}
			return "ok", nil
		}),
	)

	out := h.Call([]reflect.Value{reflect.ValueOf(false)})
	require.Len(t, out, 2)
	require.Equal(t, "ok", out[0].Interface())
	require.True(t, out[1].IsNil())

	out = h.Call([]reflect.Value{reflect.ValueOf(true)})
	require.Len(t, out, 2)
	require.ErrorIs(t, out[1].Interface().(error), errBoom)
}

func TestHandleZeroValue(t *testing.T) {
	var h Handle

	require.False(t, h.Valid())
	require.Equal(t, TargetUnknown, h.Kind)
	require.Nil(t, h.Result)
}

func TestTargetKindString(t *testing.T) {
	require.Equal(t, "static", TargetStatic.String())
	require.Equal(t, "instance", TargetInstance.String())
	require.Equal(t, "unknown", TargetUnknown.String())
	require.Equal(t, "unknown", TargetKind(7).String())
}
