// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"reflect"

	"github.com/yeetrun/cmdline/pkg/argv"
)

// Unlimited as Option.MaxArgs lets an option take any number of values.
const Unlimited = argv.Unlimited

const (
	defaultSeparator = ','
	defaultArgName   = "arg"
)

// Arity is the argument shape of a handler, derived from its signature.
type Arity int

const (
	// NoArgument handlers take no parameters.
	NoArgument Arity = iota
	// Scalar handlers take a single value and are called once per token.
	Scalar
	// FixedSequence handlers take a typed slice holding every token.
	FixedSequence
	// VariableSequence handlers take a []any whose element type is given
	// by Option.ArgumentType.
	VariableSequence
)

func (a Arity) String() string {
	switch a {
	case NoArgument:
		return "no argument"
	case Scalar:
		return "scalar"
	case FixedSequence:
		return "fixed sequence"
	case VariableSequence:
		return "variable sequence"
	}
	return "unknown"
}

// Option is the metadata attached to an option handler.
type Option struct {
	// Short enables -x matching. Zero means no short form.
	Short rune
	// Long enables --name matching. If both Short and Long are empty the
	// handler name, in kebab case, is used.
	Long string
	// Usage is the help text for the option. Required.
	Usage string
	// ArgName is the value placeholder shown in help. Defaults to "arg".
	ArgName string
	// ArgumentType is the element type for handlers taking []any.
	ArgumentType reflect.Type
	// Required makes the option mandatory on the command line.
	Required bool
	// Separator splits a single token into several values. Defaults to ','.
	Separator rune
	// MaxArgs is the number of values one occurrence accepts. Defaults to 1.
	MaxArgs int
	// OptionalArg allows the option to appear without its value.
	OptionalArg bool
}

// Descriptor is a validated option in a Schema.
type Descriptor struct {
	Short       rune
	Long        string
	Usage       string
	ArgName     string
	Arity       Arity
	ElementType reflect.Type // nil for NoArgument
	Required    bool
	MaxArgs     int
	Separator   rune
	OptionalArg bool
	// Handler is the name of the bound handler.
	Handler string

	binding *binding
}

// Key returns the name the descriptor is matched by in a parse result.
func (d *Descriptor) Key() string {
	return d.spec().Key()
}

// TakesArgument reports whether the option accepts values.
func (d *Descriptor) TakesArgument() bool {
	return d.Arity != NoArgument
}

func (d *Descriptor) spec() argv.Spec {
	s := argv.Spec{
		Short:    d.Short,
		Long:     d.Long,
		Required: d.Required,
	}
	if d.TakesArgument() {
		s.HasArg = true
		s.MaxArgs = d.MaxArgs
		s.Separator = d.Separator
		s.OptionalArg = d.OptionalArg
	}
	return s
}

// EntryPoint is the validated main routine of a Schema.
type EntryPoint struct {
	Handler     string
	Arity       Arity // Scalar or FixedSequence
	ElementType reflect.Type

	binding *binding
}

// Schema is the validated set of options plus the entry point.
type Schema struct {
	// Options are in declaration order.
	Options []*Descriptor
	// Main is nil when no entry point was declared.
	Main *EntryPoint
}

// Lookup returns the descriptor matching name, which may be a short or a
// long name without dashes.
func (s *Schema) Lookup(name string) (*Descriptor, bool) {
	for _, d := range s.Options {
		if d.Long == name || (d.Short != 0 && string(d.Short) == name) {
			return d, true
		}
	}
	return nil, false
}

func (s *Schema) specs() []argv.Spec {
	specs := make([]argv.Spec, 0, len(s.Options))
	for _, d := range s.Options {
		specs = append(specs, d.spec())
	}
	return specs
}
