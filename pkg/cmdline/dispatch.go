// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"

	"github.com/yeetrun/cmdline/pkg/argv"
)

// ParseAndRun builds the schema, parses args against it, invokes the
// handlers of the options present in declaration order and, unless one of
// them returned false, invokes the entry point with the positional
// arguments. Args should not include the binary name (os.Args[1:]).
//
// Errors are a *SchemaError or a *DispatchError.
func (a *Application) ParseAndRun(args []string) error {
	schema, err := a.Schema()
	if err != nil {
		return err
	}
	d := &dispatcher{schema: schema, logf: a.logf}
	d.enter(schemaBuilt)
	return d.run(args)
}

type runState int

const (
	initial runState = iota
	schemaBuilt
	parsed
	dispatching
	entryPointInvoked
	suppressed
	done
)

func (s runState) String() string {
	switch s {
	case initial:
		return "initial"
	case schemaBuilt:
		return "schema built"
	case parsed:
		return "parsed"
	case dispatching:
		return "dispatching"
	case entryPointInvoked:
		return "entry point invoked"
	case suppressed:
		return "suppressed"
	case done:
		return "done"
	}
	return "unknown"
}

var errDispatcherUsed = errors.New("cmdline: dispatcher already ran")

// dispatcher executes a single run against a schema.
type dispatcher struct {
	schema *Schema
	logf   func(format string, args ...any)
	state  runState
}

func (d *dispatcher) enter(s runState) {
	d.state = s
	d.logf("cmdline: run %v", s)
}

func (d *dispatcher) run(args []string) error {
	if d.state != schemaBuilt {
		return errDispatcherUsed
	}
	defer d.enter(done)

	res, err := argv.Parse(d.schema.specs(), args)
	if err != nil {
		return &DispatchError{Kind: ParseFailure, Err: err}
	}
	d.enter(parsed)

	d.enter(dispatching)
	runMain := true
	for _, opt := range d.schema.Options {
		key := opt.Key()
		if !res.Has(key) {
			continue
		}
		var values []string
		if opt.TakesArgument() {
			values = res.Values(key)
		}
		d.logf("cmdline: invoking %s with %q", opt.Handler, values)
		v, err := opt.binding.invoke(values)
		if err != nil {
			return err
		}
		if v == suppress {
			d.logf("cmdline: %s suppressed the entry point", opt.Handler)
			runMain = false
		}
	}

	if !runMain {
		d.enter(suppressed)
		return nil
	}

	// Only the positional arguments are needed from here on.
	positional := res.Args
	main := d.schema.Main
	d.schema = nil

	d.enter(entryPointInvoked)
	d.logf("cmdline: invoking entry point %s with %q", main.Handler, positional)
	if main.Arity == Scalar {
		for _, tok := range positional {
			if _, err := main.binding.invoke([]string{tok}); err != nil {
				return err
			}
		}
		return nil
	}
	_, err = main.binding.invoke(positional)
	return err
}
