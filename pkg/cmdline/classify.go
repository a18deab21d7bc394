// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"reflect"
)

var (
	errorType = reflect.TypeFor[error]()
)

// signature is the classified shape of a handler.
type signature struct {
	arity Arity
	// param is the declared parameter type, nil for NoArgument.
	param reflect.Type
	// elem is the type each token converts to, nil for NoArgument.
	elem        reflect.Type
	variadic    bool
	returnsBool bool
	returnsErr  bool
}

// classify derives the arity and element type of the function type fn.
// argumentType supplies the element type of []any parameters. Entry points
// must take exactly one parameter and may only return an error.
func classify(name string, fn reflect.Type, argumentType reflect.Type, entry bool) (signature, error) {
	fail := func(format string, args ...any) (signature, error) {
		return signature{}, &SignatureError{Handler: name, Reason: fmt.Sprintf(format, args...)}
	}
	if fn == nil || fn.Kind() != reflect.Func {
		return fail("handler is a %v, not a function", fn)
	}

	var sig signature
	switch fn.NumOut() {
	case 0:
	case 1:
		switch out := fn.Out(0); {
		case out == errorType:
			sig.returnsErr = true
		case out.Kind() == reflect.Bool && !entry:
			sig.returnsBool = true
		default:
			return fail("invalid return type %v", out)
		}
	case 2:
		if entry {
			return fail("entry point must return nothing or an error")
		}
		if fn.Out(0).Kind() != reflect.Bool {
			return fail("invalid return type %v", fn.Out(0))
		}
		if fn.Out(1) != errorType {
			return fail("invalid failure type %v, only error is allowed", fn.Out(1))
		}
		sig.returnsBool = true
		sig.returnsErr = true
	default:
		return fail("too many return values")
	}

	switch fn.NumIn() {
	case 0:
		if entry {
			return fail("entry point must take the positional arguments")
		}
		sig.arity = NoArgument
		return sig, nil
	case 1:
	default:
		return fail("too many arguments")
	}

	param := fn.In(0)
	sig.param = param
	sig.variadic = fn.IsVariadic()
	switch {
	case param.Kind() == reflect.Array:
		return fail("array parameter %v has a fixed size, use a slice", param)
	case param.Kind() == reflect.Slice && isEmptyInterface(param.Elem()) && !entry:
		if argumentType == nil {
			return fail("parameter %v needs an argument type", param)
		}
		sig.arity = VariableSequence
		sig.elem = argumentType
	case param.Kind() == reflect.Slice:
		sig.arity = FixedSequence
		sig.elem = param.Elem()
	default:
		sig.arity = Scalar
		sig.elem = param
	}
	return sig, nil
}

func isEmptyInterface(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}

// nillable reports whether t has a nil value.
func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
