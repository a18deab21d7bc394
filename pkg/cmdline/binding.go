// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"reflect"

	"github.com/yeetrun/cmdline/pkg/convert"
)

// verdict is a handler's opinion on whether the entry point should run.
type verdict uint8

const (
	// abstain is reported by handlers without a bool result.
	abstain verdict = iota
	proceed
	suppress
)

// binding is a handler together with its calling convention.
type binding struct {
	name string
	fn   reflect.Value
	sig  signature
	conv convert.Converter
}

// invoke converts tokens according to the handler's arity and calls it.
func (b *binding) invoke(tokens []string) (verdict, error) {
	switch b.sig.arity {
	case NoArgument:
		return b.call(nil)

	case Scalar:
		if len(tokens) == 0 {
			return b.call([]reflect.Value{reflect.Zero(b.sig.param)})
		}
		v := abstain
		for _, tok := range tokens {
			arg, err := b.convert(tok)
			if err != nil {
				return v, err
			}
			if v, err = b.call([]reflect.Value{arg}); err != nil || v == suppress {
				return v, err
			}
		}
		return v, nil

	case FixedSequence, VariableSequence:
		seq := reflect.MakeSlice(b.sig.param, len(tokens), len(tokens))
		for i, tok := range tokens {
			arg, err := b.convert(tok)
			if err != nil {
				return abstain, err
			}
			seq.Index(i).Set(arg)
		}
		return b.call([]reflect.Value{seq})
	}
	return abstain, fmt.Errorf("unknown arity %v", b.sig.arity)
}

func (b *binding) convert(token string) (reflect.Value, error) {
	v, err := b.conv.Convert(token)
	if err != nil {
		return reflect.Value{}, &DispatchError{
			Kind:    ConversionFailure,
			Handler: b.name,
			Token:   token,
			Type:    b.sig.elem,
			Err:     err,
		}
	}
	return v, nil
}

// call invokes the handler and interprets its results. Panics are reported
// as invocation failures.
func (b *binding) call(args []reflect.Value) (v verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = abstain
			err = &DispatchError{
				Kind:    HandlerInvocation,
				Handler: b.name,
				Err:     fmt.Errorf("panic: %v", r),
			}
		}
	}()

	var out []reflect.Value
	if b.sig.variadic {
		out = b.fn.CallSlice(args)
	} else {
		out = b.fn.Call(args)
	}

	v = abstain
	if b.sig.returnsBool {
		v = suppress
		if out[0].Bool() {
			v = proceed
		}
	}
	if b.sig.returnsErr {
		if e := out[len(out)-1]; !e.IsNil() {
			return v, &DispatchError{
				Kind:    HandlerInvocation,
				Handler: b.name,
				Err:     e.Interface().(error),
			}
		}
	}
	return v, nil
}
