// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/containerd/errdefs"
)

// Sentinel errors wrapped by SchemaError.
var (
	ErrNoEntryPoint        = errors.New("no entry point declared")
	ErrDuplicateEntryPoint = errors.New("duplicate entry point")
	ErrNameCollision       = errors.New("option name already in use")
	ErrNoConversion        = errors.New("no conversion available")
	ErrInvalidName         = errors.New("invalid option name")
)

// SignatureError is returned when a handler's shape cannot be bound.
type SignatureError struct {
	Handler string
	Reason  string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("handler %s: %s", e.Handler, e.Reason)
}

// SchemaError reports a problem with the set of registered handlers. Err is
// a *SignatureError or one of the Err* sentinels, possibly wrapped.
type SchemaError struct {
	Handler string // empty for schema-wide problems
	Err     error
}

func (e *SchemaError) Error() string {
	var sigErr *SignatureError
	if e.Handler == "" || errors.As(e.Err, &sigErr) {
		return "invalid command line schema: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid command line schema: handler %s: %v", e.Handler, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is classifies schema errors as failed preconditions.
func (e *SchemaError) Is(target error) bool {
	return target == errdefs.ErrFailedPrecondition
}

// DispatchKind identifies the stage at which a run failed.
type DispatchKind int

const (
	// ParseFailure means the argument vector was rejected by the tokenizer.
	ParseFailure DispatchKind = iota
	// ConversionFailure means a token could not be converted to its type.
	ConversionFailure
	// HandlerInvocation means a handler returned an error or panicked.
	HandlerInvocation
)

func (k DispatchKind) String() string {
	switch k {
	case ParseFailure:
		return "parse"
	case ConversionFailure:
		return "conversion"
	case HandlerInvocation:
		return "handler invocation"
	}
	return fmt.Sprintf("DispatchKind(%d)", int(k))
}

// DispatchError is returned by ParseAndRun when a run fails after the
// schema was built.
type DispatchError struct {
	Kind    DispatchKind
	Handler string       // set for ConversionFailure and HandlerInvocation
	Token   string       // set for ConversionFailure
	Type    reflect.Type // set for ConversionFailure
	Err     error
}

func (e *DispatchError) Error() string {
	switch e.Kind {
	case ParseFailure:
		return "unable to parse command line: " + e.Err.Error()
	case ConversionFailure:
		return fmt.Sprintf("invalid argument %q for %s: %v", e.Token, e.Handler, e.Err)
	default:
		return fmt.Sprintf("unable to invoke %s: %v", e.Handler, e.Err)
	}
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Is classifies bad user input (parse and conversion failures) as invalid
// arguments.
func (e *DispatchError) Is(target error) bool {
	if target != errdefs.ErrInvalidArgument {
		return false
	}
	return e.Kind == ParseFailure || e.Kind == ConversionFailure
}
