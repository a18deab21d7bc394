// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert turns single command-line tokens into typed Go values.
//
// A Registry maps a reflect.Type to a Converter. Lookups resolve exact
// registrations first and then derive converters for pointers, named types
// over a builtin kind, and types implementing encoding.TextUnmarshaler.
//
//	reg := convert.Builtin()
//	c, ok := reg.Lookup(reflect.TypeFor[int]())
//	v, err := c.Convert("42") // v.Int() == 42
package convert

import (
	"encoding"
	"fmt"
	"reflect"
)

// Error is returned when a token cannot be converted to its target type.
type Error struct {
	Token string
	Type  reflect.Type
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Token, e.Type, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Converter converts tokens into values of Type and back.
type Converter struct {
	Type   reflect.Type
	parse  func(string) (reflect.Value, error)
	format func(reflect.Value) string
}

// Convert parses token into a value of c.Type.
func (c Converter) Convert(token string) (reflect.Value, error) {
	if c.parse == nil {
		return reflect.Value{}, &Error{Token: token, Type: c.Type, Err: fmt.Errorf("no converter")}
	}
	v, err := c.parse(token)
	if err != nil {
		return reflect.Value{}, &Error{Token: token, Type: c.Type, Err: err}
	}
	return v, nil
}

// Format renders v, a value of c.Type, as a token that Convert accepts.
func (c Converter) Format(v reflect.Value) string {
	if c.format == nil {
		return fmt.Sprint(v.Interface())
	}
	return c.format(v)
}

// Registry is a set of converters keyed by target type. It is not safe for
// concurrent registration.
type Registry struct {
	converters map[reflect.Type]Converter
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{converters: make(map[reflect.Type]Converter)}
}

// Register adds or replaces the converter for T.
func Register[T any](r *Registry, parse func(string) (T, error), format func(T) string) {
	t := reflect.TypeFor[T]()
	c := Converter{
		Type: t,
		parse: func(s string) (reflect.Value, error) {
			v, err := parse(s)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(&v).Elem(), nil
		},
	}
	if format != nil {
		c.format = func(v reflect.Value) string {
			return format(v.Interface().(T))
		}
	}
	r.converters[t] = c
}

// Lookup returns the converter for t.
func (r *Registry) Lookup(t reflect.Type) (Converter, bool) {
	if t == nil {
		return Converter{}, false
	}
	if c, ok := r.converters[t]; ok {
		return c, true
	}
	if c, ok := r.textConverter(t); ok {
		return c, true
	}
	switch t.Kind() {
	case reflect.Interface:
		return Converter{}, false
	case reflect.Ptr:
		return r.pointerConverter(t)
	}
	return r.kindConverter(t)
}

// pointerConverter allocates a new element for each token.
func (r *Registry) pointerConverter(t reflect.Type) (Converter, bool) {
	elem, ok := r.Lookup(t.Elem())
	if !ok {
		return Converter{}, false
	}
	return Converter{
		Type: t,
		parse: func(s string) (reflect.Value, error) {
			v, err := elem.parse(s)
			if err != nil {
				return reflect.Value{}, err
			}
			p := reflect.New(t.Elem())
			p.Elem().Set(v)
			return p, nil
		},
		format: func(v reflect.Value) string {
			if v.IsNil() {
				return ""
			}
			return elem.Format(v.Elem())
		},
	}, true
}

// kindConverter handles named types such as `type Level int` by converting
// through the builtin type of the same kind.
func (r *Registry) kindConverter(t reflect.Type) (Converter, bool) {
	base, ok := kindTypes[t.Kind()]
	if !ok || base == t {
		return Converter{}, false
	}
	c, ok := r.converters[base]
	if !ok {
		return Converter{}, false
	}
	return Converter{
		Type: t,
		parse: func(s string) (reflect.Value, error) {
			v, err := c.parse(s)
			if err != nil {
				return reflect.Value{}, err
			}
			return v.Convert(t), nil
		},
		format: func(v reflect.Value) string {
			return c.Format(v.Convert(base))
		},
	}, true
}

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
)

func (r *Registry) textConverter(t reflect.Type) (Converter, bool) {
	if t.Kind() == reflect.Interface || t.Kind() == reflect.Ptr {
		return Converter{}, false
	}
	if !reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return Converter{}, false
	}
	c := Converter{
		Type: t,
		parse: func(s string) (reflect.Value, error) {
			p := reflect.New(t)
			if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return reflect.Value{}, err
			}
			return p.Elem(), nil
		},
	}
	if t.Implements(textMarshalerType) {
		c.format = func(v reflect.Value) string {
			b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return ""
			}
			return string(b)
		}
	}
	return c, true
}
