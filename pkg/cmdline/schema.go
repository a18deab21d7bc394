// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/huandu/xstrings"
)

// Schema validates the registered handlers and returns the resulting
// schema. Exactly one entry point must have been declared.
func (a *Application) Schema() (*Schema, error) {
	return a.build(true)
}

// build validates the registrations in declaration order. Usage rendering
// passes requireMain=false so that a help page can be shown for an
// application without an entry point.
func (a *Application) build(requireMain bool) (*Schema, error) {
	s := &Schema{}
	shorts := make(map[rune]string)
	longs := make(map[string]string)

	for _, reg := range a.regs {
		if reg.err != nil {
			return nil, &SchemaError{Handler: reg.name, Err: reg.err}
		}
		if reg.fn.Kind() == reflect.Func && reg.fn.IsNil() {
			return nil, &SchemaError{Handler: reg.name, Err: &SignatureError{Handler: reg.name, Reason: "handler is nil"}}
		}

		if reg.isEntry {
			if s.Main != nil {
				return nil, &SchemaError{Handler: reg.name, Err: fmt.Errorf("%w: %s is already the entry point", ErrDuplicateEntryPoint, s.Main.Handler)}
			}
			b, err := a.bind(reg, nil, true)
			if err != nil {
				return nil, err
			}
			s.Main = &EntryPoint{
				Handler:     reg.name,
				Arity:       b.sig.arity,
				ElementType: b.sig.elem,
				binding:     b,
			}
			a.logf("cmdline: entry point %s (%v of %v)", reg.name, b.sig.arity, b.sig.elem)
			continue
		}

		d, err := a.describe(reg)
		if err != nil {
			return nil, err
		}
		if d.Short != 0 {
			if other, ok := shorts[d.Short]; ok {
				return nil, &SchemaError{Handler: reg.name, Err: fmt.Errorf("%w: -%c is used by %s", ErrNameCollision, d.Short, other)}
			}
			// A one letter long name is reported under the same key.
			if other, ok := longs[string(d.Short)]; ok {
				return nil, &SchemaError{Handler: reg.name, Err: fmt.Errorf("%w: -%c is the long name of %s", ErrNameCollision, d.Short, other)}
			}
		}
		if d.Long != "" {
			if other, ok := longs[d.Long]; ok {
				return nil, &SchemaError{Handler: reg.name, Err: fmt.Errorf("%w: --%s is used by %s", ErrNameCollision, d.Long, other)}
			}
			if r, size := utf8.DecodeRuneInString(d.Long); size == len(d.Long) {
				if other, ok := shorts[r]; ok {
					return nil, &SchemaError{Handler: reg.name, Err: fmt.Errorf("%w: --%s is the short name of %s", ErrNameCollision, d.Long, other)}
				}
			}
		}
		if d.Short != 0 {
			shorts[d.Short] = reg.name
		}
		if d.Long != "" {
			longs[d.Long] = reg.name
		}
		s.Options = append(s.Options, d)
		a.logf("cmdline: option %s bound to %s (%v)", d.spec().Display(), reg.name, d.Arity)
	}
	if requireMain && s.Main == nil {
		return nil, &SchemaError{Err: ErrNoEntryPoint}
	}
	return s, nil
}

// describe merges the classified signature of reg with its metadata.
func (a *Application) describe(reg registration) (*Descriptor, error) {
	opt := reg.option
	b, err := a.bind(reg, opt.ArgumentType, false)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{
		Short:       opt.Short,
		Long:        opt.Long,
		Usage:       opt.Usage,
		ArgName:     opt.ArgName,
		Arity:       b.sig.arity,
		ElementType: b.sig.elem,
		Required:    opt.Required,
		MaxArgs:     opt.MaxArgs,
		Separator:   opt.Separator,
		OptionalArg: opt.OptionalArg,
		Handler:     reg.name,
		binding:     b,
	}
	if d.Short == 0 && d.Long == "" {
		d.Long = xstrings.ToKebabCase(reg.name)
	}
	if err := validateNames(d); err != nil {
		return nil, &SchemaError{Handler: reg.name, Err: err}
	}
	if strings.TrimSpace(d.Usage) == "" {
		return nil, &SchemaError{Handler: reg.name, Err: &SignatureError{Handler: reg.name, Reason: "usage text is required"}}
	}

	if !d.TakesArgument() {
		d.MaxArgs = 0
		d.Separator = 0
		d.OptionalArg = false
		d.ArgName = ""
		return d, nil
	}
	if d.ArgName == "" {
		d.ArgName = defaultArgName
	}
	if d.Separator == 0 {
		d.Separator = defaultSeparator
	}
	if d.MaxArgs == 0 {
		d.MaxArgs = 1
	}
	if d.MaxArgs < 0 && d.MaxArgs != Unlimited {
		return nil, &SchemaError{Handler: reg.name, Err: fmt.Errorf("invalid maximum argument count %d", d.MaxArgs)}
	}
	if d.OptionalArg && d.Arity == Scalar && !nillable(b.sig.param) {
		return nil, &SchemaError{Handler: reg.name, Err: &SignatureError{
			Handler: reg.name,
			Reason:  fmt.Sprintf("optional argument needs a parameter that can be nil, not %v", b.sig.param),
		}}
	}
	return d, nil
}

// bind classifies reg and resolves the converter for its element type.
func (a *Application) bind(reg registration, argumentType reflect.Type, entry bool) (*binding, error) {
	sig, err := classify(reg.name, reg.fn.Type(), argumentType, entry)
	if err != nil {
		return nil, &SchemaError{Handler: reg.name, Err: err}
	}
	b := &binding{name: reg.name, fn: reg.fn, sig: sig}
	if sig.arity == NoArgument {
		return b, nil
	}
	conv, ok := a.cfg.Converters.Lookup(sig.elem)
	if !ok {
		return nil, &SchemaError{Handler: reg.name, Err: fmt.Errorf("%w for type %v", ErrNoConversion, sig.elem)}
	}
	b.conv = conv
	return b, nil
}

func validateNames(d *Descriptor) error {
	if d.Short != 0 && !unicode.IsLetter(d.Short) && !unicode.IsDigit(d.Short) {
		return fmt.Errorf("%w: short name %q must be a letter or digit", ErrInvalidName, d.Short)
	}
	if d.Long == "" {
		return nil
	}
	if strings.HasPrefix(d.Long, "-") {
		return fmt.Errorf("%w: long name %q must not start with a dash", ErrInvalidName, d.Long)
	}
	if strings.ContainsFunc(d.Long, func(r rune) bool { return r == '=' || unicode.IsSpace(r) }) {
		return fmt.Errorf("%w: long name %q must not contain '=' or spaces", ErrInvalidName, d.Long)
	}
	return nil
}
